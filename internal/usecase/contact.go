package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"sync"
	"time"

	"portfolio-backend/config"
	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/email"
	"portfolio-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
)

// ContactUsecase validates submissions, builds the notification and hands it
// to the transport. In async mode the HTTP response never waits on the send;
// failures are only visible in the logs.
type ContactUsecase struct {
	transport email.Transport
	validate  *validator.Validate
	recipient string
	siteName  string
	mode      string
	timeout   time.Duration
	log       *slog.Logger
	wg        sync.WaitGroup
}

// NewContactUsecase creates a new contact usecase. A nil transport is valid
// and makes the contact endpoint report itself as unavailable.
func NewContactUsecase(transport email.Transport, validate *validator.Validate, cfg *config.Config) *ContactUsecase {
	log := logger.Log
	if log == nil {
		log = slog.Default()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ContactUsecase{
		transport: transport,
		validate:  validate,
		recipient: cfg.ContactEmailTo,
		siteName:  cfg.SiteName,
		mode:      cfg.ContactDispatchMode,
		timeout:   cfg.SendTimeout,
		log:       log,
	}
}

// SendContactMessage validates the contact request and dispatches the email
func (uc *ContactUsecase) SendContactMessage(ctx context.Context, req *domain.ContactRequest) error {
	// Structural validation first, so callers that bypass HTTP binding get
	// the same rules
	if err := uc.validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return &domain.ValidationError{
				Field:  strings.ToLower(fe.Field()),
				Reason: fmt.Sprintf("failed %q validation", fe.Tag()),
			}
		}
		return &domain.ValidationError{Field: "request", Reason: err.Error()}
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return &domain.ValidationError{Field: "name", Reason: "must not be empty"}
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return &domain.ValidationError{Field: "message", Reason: "must not be empty"}
	}

	address, err := normalizeEmail(req.Email)
	if err != nil {
		return &domain.ValidationError{Field: "email", Reason: err.Error()}
	}

	if uc.transport == nil || uc.recipient == "" {
		return domain.ErrEmailNotConfigured
	}

	msg, err := email.NewContactMessage(name, address, message, uc.recipient, uc.siteName)
	if err != nil {
		return fmt.Errorf("failed to build contact email: %w", err)
	}

	if uc.mode == config.DispatchSync {
		sendCtx, cancel := context.WithTimeout(ctx, uc.timeout)
		defer cancel()
		if err := uc.transport.Send(sendCtx, msg); err != nil {
			uc.log.Error("contact email delivery failed", "error", err, "reply_to", msg.ReplyTo)
			return fmt.Errorf("failed to send contact email: %w", err)
		}
		uc.log.Info("contact email delivered", "reply_to", msg.ReplyTo)
		return nil
	}

	// Fire-and-forget: the send runs on a detached context so a slow relay
	// never holds up the HTTP response. Shutdown drains via Wait.
	uc.wg.Add(1)
	go func() {
		defer uc.wg.Done()
		sendCtx, cancel := context.WithTimeout(context.Background(), uc.timeout)
		defer cancel()
		if err := uc.transport.Send(sendCtx, msg); err != nil {
			uc.log.Error("contact email delivery failed", "error", err, "reply_to", msg.ReplyTo)
			return
		}
		uc.log.Info("contact email delivered", "reply_to", msg.ReplyTo)
	}()

	return nil
}

// Wait blocks until in-flight background sends have finished.
func (uc *ContactUsecase) Wait() {
	uc.wg.Wait()
}

// normalizeEmail accepts a bare RFC 5322 address with a dotted domain. No
// deliverability check is performed.
func normalizeEmail(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("must not be empty")
	}

	addr, err := mail.ParseAddress(trimmed)
	if err != nil {
		return "", fmt.Errorf("must be a valid email address")
	}
	if addr.Name != "" || addr.Address != trimmed {
		return "", fmt.Errorf("must be a bare email address")
	}

	host := addr.Address[strings.LastIndex(addr.Address, "@")+1:]
	if !strings.Contains(strings.Trim(host, "."), ".") {
		return "", fmt.Errorf("email domain must contain a dot-separated label")
	}

	return addr.Address, nil
}
