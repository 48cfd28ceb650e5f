// Package smtp delivers notification emails through an SMTP relay.
package smtp

import (
	"context"
	"fmt"

	"approval-workflow/config"
	"approval-workflow/internal/notification"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Sender sends HTML emails with gomail.
type Sender struct {
	log         *zap.SugaredLogger
	dialer      *gomail.Dialer
	fromAddress string
	fromName    string
}

// New configures a sender for the relay described by cfg.
func New(log *zap.SugaredLogger, cfg config.MailConfig) *Sender {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	dialer.SSL = cfg.SSL

	return &Sender{
		log:         log.Named("notify.smtp"),
		dialer:      dialer,
		fromAddress: cfg.FromAddress,
		fromName:    cfg.FromName,
	}
}

// Send delivers msg, giving up when ctx is done.
func (s *Sender) Send(ctx context.Context, msg notification.Message) error {
	m := s.buildMessage(msg)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.dialer.DialAndSend(m)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("smtp send to %s: %w", msg.To, err)
		}
		s.log.Debugw("smtp message accepted", "request_id", msg.RequestID, "recipient", msg.To)
		return nil
	case <-ctx.Done():
		return fmt.Errorf("smtp send to %s: %w", msg.To, ctx.Err())
	}
}

func (s *Sender) buildMessage(msg notification.Message) *gomail.Message {
	m := gomail.NewMessage(gomail.SetCharset("UTF-8"))
	m.SetAddressHeader("From", s.fromAddress, s.fromName)
	m.SetAddressHeader("To", msg.To, msg.ToName)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTMLBody)
	return m
}

var _ notification.Sender = (*Sender)(nil)
