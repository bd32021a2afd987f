package email

import (
	"context"
	"errors"
	"fmt"

	"portfolio-backend/config"
)

// ErrNotConfigured is returned when transport credentials are missing. The
// process keeps serving; only the contact endpoint becomes unavailable.
var ErrNotConfigured = errors.New("email transport is not configured")

// Transport delivers a notification message to its recipient. Implementations
// must honor context cancellation and attempt delivery exactly once; retries
// are the caller's decision, and no caller here makes one.
type Transport interface {
	Send(ctx context.Context, msg Message) error
}

// NewTransport selects a transport implementation from configuration. The
// dispatcher treats every implementation identically.
func NewTransport(cfg *config.Config) (Transport, error) {
	switch cfg.EmailProvider {
	case config.ProviderResend:
		return NewResendTransport(cfg.ResendAPIKey, cfg.ResendFromEmail)
	case config.ProviderSMTP:
		return NewSMTPTransport(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFromEmail)
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.EmailProvider)
	}
}
