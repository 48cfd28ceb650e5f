package smtp

import (
	"context"
	"net"
	"testing"
	"time"

	"approval-workflow/config"
	"approval-workflow/internal/notification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBuildMessageHeaders(t *testing.T) {
	s := New(zap.NewNop().Sugar(), config.MailConfig{
		Host: "localhost", Port: 2525, FromAddress: "no-reply@approvals.local", FromName: "Approvals",
	})

	m := s.buildMessage(notification.Message{
		RequestID: uuid.New(),
		To:        "alice@example.com",
		ToName:    "Alice Smith",
		Subject:   "New Approval Request: Laptop",
		HTMLBody:  "<p>hi</p>",
	})

	require.Len(t, m.GetHeader("From"), 1)
	require.Contains(t, m.GetHeader("From")[0], "no-reply@approvals.local")
	require.Contains(t, m.GetHeader("To")[0], "alice@example.com")
	require.Equal(t, []string{"New Approval Request: Laptop"}, m.GetHeader("Subject"))
}

func TestSendHonoursContext(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	// Accept connections but never speak SMTP so the dial hangs on the greeting.
	conns := make(chan net.Conn, 4)
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			conns <- conn
		}
	}()
	t.Cleanup(func() {
		for {
			select {
			case conn := <-conns:
				_ = conn.Close()
			default:
				return
			}
		}
	})

	addr := ln.Addr().(*net.TCPAddr)
	s := New(zap.NewNop().Sugar(), config.MailConfig{Host: "127.0.0.1", Port: addr.Port, FromAddress: "a@b.c"})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err = s.Send(ctx, notification.Message{To: "x@y.z", Subject: "s", HTMLBody: "b"})
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
