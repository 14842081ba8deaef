package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// SMSSender delivers a text message through the SMS provider.
type SMSSender interface {
	Send(ctx context.Context, to, message string) (string, error)
}

// SMSConfig points the sender at a Twilio-compatible messaging API.
type SMSConfig struct {
	BaseURL    string
	AccountSID string
	AuthToken  string
	From       string
}

type smsSender struct {
	client *resty.Client
	cfg    SMSConfig
}

func NewSMSSender(cfg SMSConfig) SMSSender {
	client := resty.New()
	if cfg.BaseURL != "" {
		client.SetBaseURL(cfg.BaseURL)
	}
	return &smsSender{client: client, cfg: cfg}
}

// Send posts the message and returns the provider-assigned message id.
func (s *smsSender) Send(ctx context.Context, to, message string) (string, error) {
	if s.cfg.AccountSID == "" || s.cfg.AuthToken == "" {
		return "", ErrNotConfigured
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetBasicAuth(s.cfg.AccountSID, s.cfg.AuthToken).
		SetFormData(map[string]string{
			"To":   to,
			"From": s.cfg.From,
			"Body": message,
		}).
		Post(fmt.Sprintf("/2010-04-01/Accounts/%s/Messages.json", s.cfg.AccountSID))
	if err != nil {
		return "", fmt.Errorf("sms provider request: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("sms provider responded %d", resp.StatusCode())
	}

	var body struct {
		SID string `json:"sid"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return "", fmt.Errorf("decode sms provider response: %w", err)
	}
	return body.SID, nil
}
