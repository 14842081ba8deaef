// Package notify wraps the third-party email and SMS providers. Every call
// is a single pass-through request; failures are surfaced to the caller and
// never retried.
package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// ErrNotConfigured is returned when a provider credential is missing. The
// handler reports it as an upstream failure rather than rejecting the input.
var ErrNotConfigured = errors.New("provider is not configured")

// EmailSender delivers a plain-text email through the mail provider.
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// EmailConfig points the sender at a SendGrid-compatible mail API.
type EmailConfig struct {
	BaseURL string
	APIKey  string
	From    string
}

type emailSender struct {
	client *resty.Client
	cfg    EmailConfig
}

func NewEmailSender(cfg EmailConfig) EmailSender {
	client := resty.New()
	if cfg.BaseURL != "" {
		client.SetBaseURL(cfg.BaseURL)
	}
	return &emailSender{client: client, cfg: cfg}
}

type mailAddress struct {
	Email string `json:"email"`
}

type mailPersonalization struct {
	To []mailAddress `json:"to"`
}

type mailContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type mailRequest struct {
	Personalizations []mailPersonalization `json:"personalizations"`
	From             mailAddress           `json:"from"`
	Subject          string                `json:"subject"`
	Content          []mailContent         `json:"content"`
}

func (s *emailSender) Send(ctx context.Context, to, subject, body string) error {
	if s.cfg.APIKey == "" {
		return ErrNotConfigured
	}

	req := mailRequest{
		Personalizations: []mailPersonalization{{To: []mailAddress{{Email: to}}}},
		From:             mailAddress{Email: s.cfg.From},
		Subject:          subject,
		Content:          []mailContent{{Type: "text/plain", Value: body}},
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(s.cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/v3/mail/send")
	if err != nil {
		return fmt.Errorf("mail provider request: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("mail provider responded %d", resp.StatusCode())
	}
	return nil
}
