package domain

import (
	"context"
	"errors"
	"fmt"
)

// ContactRequest represents a contact form submission
type ContactRequest struct {
	Name    string `json:"name" binding:"required" validate:"required"`
	Email   string `json:"email" binding:"required,email" validate:"required,email"`
	Message string `json:"message" binding:"required" validate:"required"`
}

// ErrEmailNotConfigured is returned when the outbound transport has no
// credentials. The caller gets a generic failure; detail stays server-side.
var ErrEmailNotConfigured = errors.New("email service is not configured")

// ValidationError describes a rejected contact field with enough detail for
// the caller to fix the input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// SendContactMessage validates and dispatches a contact form message
	SendContactMessage(ctx context.Context, req *ContactRequest) error
}
