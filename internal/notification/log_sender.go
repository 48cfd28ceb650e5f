package notification

import (
	"context"

	"go.uber.org/zap"
)

// LogSender writes messages to the log instead of delivering them.
type LogSender struct {
	log *zap.SugaredLogger
}

// NewLogSender returns a sender for environments without a mail relay.
func NewLogSender(log *zap.SugaredLogger) *LogSender {
	return &LogSender{log: log.Named("notify.log_sender")}
}

// Send logs msg.
func (s *LogSender) Send(_ context.Context, msg Message) error {
	s.log.Infow("email delivery disabled, message logged",
		"request_id", msg.RequestID,
		"recipient", msg.To,
		"subject", msg.Subject,
	)
	return nil
}
