package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Server:  ServerConfig{Host: "0.0.0.0", Port: 8080, ShutdownTimeout: time.Second},
		Storage: StorageConfig{Backend: "postgres"},
		Postgres: PostgresConfig{
			Host: "localhost", Port: 5432, User: "postgres", Password: "postgres", DBName: "db", SSLMode: "disable",
		},
		Notify: NotifyConfig{QueueSize: 10, Workers: 1},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "ok", mutate: func(_ *Config) {}},
		{name: "memory backend skips postgres", mutate: func(c *Config) {
			c.Storage.Backend = "memory"
			c.Postgres = PostgresConfig{}
		}},
		{name: "unknown backend", mutate: func(c *Config) { c.Storage.Backend = "mysql" }, wantErr: true},
		{name: "missing port", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: true},
		{name: "missing postgres host", mutate: func(c *Config) { c.Postgres.Host = "" }, wantErr: true},
		{name: "mail without sender", mutate: func(c *Config) {
			c.Mail = MailConfig{Enabled: true, Host: "smtp", Port: 25}
		}, wantErr: true},
		{name: "no workers", mutate: func(c *Config) { c.Notify.Workers = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestNewConfigDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORAGE_BACKEND", "memory")

	cfg, err := NewConfig()
	require.NoError(t, err)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "memory", cfg.Storage.Backend)
	require.Equal(t, "http://localhost:3000", cfg.HTTP.FrontendURL)
	require.Equal(t, 2*time.Second, cfg.Notify.RetryDelay)
	require.Zero(t, cfg.Notify.MaxRetries)
	require.Equal(t, "0.0.0.0:9090", cfg.ServerAddr())
}
