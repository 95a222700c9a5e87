// Package mail renders and sends notification emails.
package mail

import (
	"context"

	"github.com/rs/zerolog"
)

type Message struct {
	To      string
	Subject string
	// HTML is the complete HTML document of the message body.
	HTML string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// NopSender drops every message. It is used when no SMTP server is
// configured.
type NopSender struct {
	logger zerolog.Logger
}

func NewNopSender(logger zerolog.Logger) *NopSender {
	return &NopSender{logger: logger}
}

func (s *NopSender) Send(_ context.Context, msg Message) error {
	s.logger.Debug().Str("to", msg.To).Str("subject", msg.Subject).Msg("smtp is not configured, email skipped")
	return nil
}
