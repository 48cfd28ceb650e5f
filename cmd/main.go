// Package main wires the HTTP server for the approval workflow service.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"approval-workflow/config"
	"approval-workflow/internal/notification"
	"approval-workflow/internal/notification/smtp"
	"approval-workflow/internal/repository"
	"approval-workflow/internal/transport/http/middleware"
	"approval-workflow/internal/transport/http/server/handlers-fiber"
	"approval-workflow/internal/usecase"
	"approval-workflow/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Logging.Level)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	repo, err := repository.New(ctx, cfg.Storage.Backend, log, cfg)
	if err != nil {
		log.Errorw("repository initialization error", "error", err)
		return
	}
	if err := repo.OnStart(ctx); err != nil {
		log.Errorw("repository start error", "error", err)
		return
	}
	defer func() {
		_ = repo.OnStop(context.Background())
	}()

	renderer, err := notification.NewRenderer()
	if err != nil {
		log.Errorw("email templates error", "error", err)
		return
	}
	var sender notification.Sender = notification.NewLogSender(log)
	if cfg.Mail.Enabled {
		sender = smtp.New(log, cfg.Mail)
	}
	dispatcher := notification.NewAsyncDispatcher(log, sender, renderer, notification.Config{
		QueueSize:   cfg.Notify.QueueSize,
		Workers:     cfg.Notify.Workers,
		MaxRetries:  cfg.Notify.MaxRetries,
		RetryDelay:  cfg.Notify.RetryDelay,
		SendTimeout: cfg.Notify.SendTimeout,
	})

	uc := usecase.New(log, ctx, repo, dispatcher, cfg.HTTP.RequestTimeout)

	serv := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTP.RequestTimeout,
		WriteTimeout: cfg.HTTP.RequestTimeout,
	})
	serv.Use(recover.New())
	serv.Use(requestid.New())
	serv.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.HTTP.FrontendURL,
		AllowCredentials: true,
	}))
	serv.Use(middleware.RequestLogger(log.Named("http.access")))
	serv.Use(middleware.Metrics())

	serv.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	serv.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	h := handlers_fiber.NewHandler(log, uc)
	handlers_fiber.RegisterHandlers(serv, h)

	go func() {
		log.Infow("http server starting", "addr", cfg.ServerAddr(), "storage", cfg.Storage.Backend, "mail_enabled", cfg.Mail.Enabled)
		if err := serv.Listen(cfg.ServerAddr()); err != nil {
			log.Errorw("failed to start server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	done := make(chan struct{})
	go func() {
		_ = serv.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-shutdownCtx.Done():
		log.Warnw("server shutdown timeout", "timeout", cfg.Server.ShutdownTimeout)
	}

	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Warnw("pending notifications abandoned", "error", err)
	}
}
