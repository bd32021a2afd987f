package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"portfolio-backend/config"
	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/usecase"
	"portfolio-backend/pkg/email"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mock Transport
type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Send(ctx context.Context, msg email.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func testConfig(mode string) *config.Config {
	return &config.Config{
		ContactEmailTo:      "owner@example.com",
		SiteName:            "Example Portfolio",
		ContactDispatchMode: mode,
		SendTimeout:         2 * time.Second,
	}
}

func TestContactValidation(t *testing.T) {
	cases := []struct {
		name string
		req  domain.ContactRequest
	}{
		{"empty name", domain.ContactRequest{Name: "", Email: "a@example.com", Message: "hi"}},
		{"whitespace name", domain.ContactRequest{Name: "   ", Email: "a@example.com", Message: "hi"}},
		{"empty message", domain.ContactRequest{Name: "Ada", Email: "a@example.com", Message: ""}},
		{"whitespace message", domain.ContactRequest{Name: "Ada", Email: "a@example.com", Message: " \n\t "}},
		{"not an email", domain.ContactRequest{Name: "Ada", Email: "not-an-email", Message: "hi"}},
		{"no dot in domain", domain.ContactRequest{Name: "Ada", Email: "a@localhost", Message: "hi"}},
		{"display name form", domain.ContactRequest{Name: "Ada", Email: "Ada <a@example.com>", Message: "hi"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			transport := new(MockTransport)
			uc := usecase.NewContactUsecase(transport, validator.New(), testConfig(config.DispatchSync))

			err := uc.SendContactMessage(context.Background(), &tc.req)

			var vErr *domain.ValidationError
			assert.Error(t, err)
			assert.True(t, errors.As(err, &vErr), "expected a validation error, got %v", err)
			transport.AssertNotCalled(t, "Send")
		})
	}
}

func TestContactSendsExactlyOnce(t *testing.T) {
	transport := new(MockTransport)
	transport.On("Send", mock.Anything, mock.AnythingOfType("email.Message")).Return(nil)
	uc := usecase.NewContactUsecase(transport, validator.New(), testConfig(config.DispatchSync))

	req := &domain.ContactRequest{Name: "Ada", Email: "ada@example.com", Message: "hello"}
	err := uc.SendContactMessage(context.Background(), req)

	assert.NoError(t, err)
	transport.AssertNumberOfCalls(t, "Send", 1)
}

func TestContactMessageRendering(t *testing.T) {
	var sent email.Message
	transport := new(MockTransport)
	transport.On("Send", mock.Anything, mock.AnythingOfType("email.Message")).
		Run(func(args mock.Arguments) {
			sent = args.Get(1).(email.Message)
		}).
		Return(nil)
	uc := usecase.NewContactUsecase(transport, validator.New(), testConfig(config.DispatchSync))

	req := &domain.ContactRequest{
		Name:    "Ada Lovelace",
		Email:   "ada@example.com",
		Message: "Hello,\nI'd like to connect.",
	}
	err := uc.SendContactMessage(context.Background(), req)
	assert.NoError(t, err)

	assert.Equal(t, "Portfolio Contact: Ada Lovelace", sent.Subject)
	assert.Equal(t, "ada@example.com", sent.ReplyTo)
	assert.Equal(t, "owner@example.com", sent.Recipient)
	assert.Contains(t, sent.Text, "Ada Lovelace")
	assert.Contains(t, sent.Text, "Hello,\nI'd like to connect.")
	assert.Contains(t, sent.HTML, "mailto:ada@example.com")
	assert.Contains(t, sent.HTML, "Ada Lovelace")
}

func TestContactHeaderInjectionStripped(t *testing.T) {
	var sent email.Message
	transport := new(MockTransport)
	transport.On("Send", mock.Anything, mock.AnythingOfType("email.Message")).
		Run(func(args mock.Arguments) {
			sent = args.Get(1).(email.Message)
		}).
		Return(nil)
	uc := usecase.NewContactUsecase(transport, validator.New(), testConfig(config.DispatchSync))

	req := &domain.ContactRequest{
		Name:    "Eve\r\nBcc: spam@example.com",
		Email:   "eve@example.com",
		Message: "hi",
	}
	err := uc.SendContactMessage(context.Background(), req)
	assert.NoError(t, err)

	assert.NotContains(t, sent.Subject, "\r")
	assert.NotContains(t, sent.Subject, "\n")
	assert.True(t, strings.HasPrefix(sent.Subject, "Portfolio Contact: Eve"))
}

func TestContactNotConfigured(t *testing.T) {
	uc := usecase.NewContactUsecase(nil, validator.New(), testConfig(config.DispatchSync))

	req := &domain.ContactRequest{Name: "Ada", Email: "ada@example.com", Message: "hello"}
	err := uc.SendContactMessage(context.Background(), req)

	assert.ErrorIs(t, err, domain.ErrEmailNotConfigured)
}

func TestContactNoRecipientConfigured(t *testing.T) {
	cfg := testConfig(config.DispatchSync)
	cfg.ContactEmailTo = ""
	uc := usecase.NewContactUsecase(new(MockTransport), validator.New(), cfg)

	req := &domain.ContactRequest{Name: "Ada", Email: "ada@example.com", Message: "hello"}
	err := uc.SendContactMessage(context.Background(), req)

	assert.ErrorIs(t, err, domain.ErrEmailNotConfigured)
}

func TestContactSyncModePropagatesFailure(t *testing.T) {
	transport := new(MockTransport)
	transport.On("Send", mock.Anything, mock.AnythingOfType("email.Message")).
		Return(errors.New("relay rejected the message"))
	uc := usecase.NewContactUsecase(transport, validator.New(), testConfig(config.DispatchSync))

	req := &domain.ContactRequest{Name: "Ada", Email: "ada@example.com", Message: "hello"}
	err := uc.SendContactMessage(context.Background(), req)

	assert.Error(t, err)
	transport.AssertNumberOfCalls(t, "Send", 1)
}

func TestContactFireAndForget(t *testing.T) {
	release := make(chan struct{})
	transport := new(MockTransport)
	transport.On("Send", mock.Anything, mock.AnythingOfType("email.Message")).
		Run(func(args mock.Arguments) {
			// Simulate a transport that hangs until released
			<-release
		}).
		Return(nil)
	uc := usecase.NewContactUsecase(transport, validator.New(), testConfig(config.DispatchAsync))

	req := &domain.ContactRequest{Name: "Ada", Email: "ada@example.com", Message: "hello"}

	start := time.Now()
	err := uc.SendContactMessage(context.Background(), req)
	elapsed := time.Since(start)

	assert.NoError(t, err)
	assert.Less(t, elapsed, 500*time.Millisecond, "response must not wait on the transport")

	close(release)
	uc.Wait()
	transport.AssertNumberOfCalls(t, "Send", 1)
}

func TestContactFireAndForgetSwallowsTransportFailure(t *testing.T) {
	transport := new(MockTransport)
	transport.On("Send", mock.Anything, mock.AnythingOfType("email.Message")).
		Return(errors.New("timeout"))
	uc := usecase.NewContactUsecase(transport, validator.New(), testConfig(config.DispatchAsync))

	req := &domain.ContactRequest{Name: "Ada", Email: "ada@example.com", Message: "hello"}
	err := uc.SendContactMessage(context.Background(), req)

	// Failure is logged, never surfaced to the caller
	assert.NoError(t, err)
	uc.Wait()
	transport.AssertNumberOfCalls(t, "Send", 1)
}
