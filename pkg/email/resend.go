package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// ResendTransport delivers messages through the Resend transactional email
// API over HTTPS with a bearer API key.
type ResendTransport struct {
	client *resend.Client
	from   string
}

func NewResendTransport(apiKey, from string) (*ResendTransport, error) {
	if apiKey == "" || from == "" {
		return nil, fmt.Errorf("%w: Resend API key and sender address are required", ErrNotConfigured)
	}
	return &ResendTransport{
		client: resend.NewClient(apiKey),
		from:   from,
	}, nil
}

func (t *ResendTransport) Send(ctx context.Context, msg Message) error {
	params := &resend.SendEmailRequest{
		From:    t.from,
		To:      []string{msg.Recipient},
		ReplyTo: msg.ReplyTo,
		Subject: msg.Subject,
		Text:    msg.Text,
		Html:    msg.HTML,
	}

	if _, err := t.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("resend: send: %w", err)
	}
	return nil
}
