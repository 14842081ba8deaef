// Package payment wraps the card payment provider. Creating an intent is a
// single pass-through call; nothing is retried or reconciled here.
package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"
)

// ErrNotConfigured is returned when the provider secret key is missing.
var ErrNotConfigured = errors.New("payment provider is not configured")

// Intent is the provider's handle for a pending card payment.
type Intent struct {
	ID           string
	ClientSecret string
}

// Client creates payment intents against a Stripe-compatible API.
type Client interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (*Intent, error)
}

// Config points the client at the payment API.
type Config struct {
	BaseURL   string
	SecretKey string
}

type client struct {
	http *resty.Client
	cfg  Config
}

func NewClient(cfg Config) Client {
	http := resty.New()
	if cfg.BaseURL != "" {
		http.SetBaseURL(cfg.BaseURL)
	}
	return &client{http: http, cfg: cfg}
}

// CreateIntent registers a card payment for the given amount in the smallest
// currency unit. Currency defaults to usd.
func (c *client) CreateIntent(ctx context.Context, amount int64, currency string) (*Intent, error) {
	if c.cfg.SecretKey == "" {
		return nil, ErrNotConfigured
	}
	if amount <= 0 {
		return nil, errors.New("amount must be positive")
	}
	if currency == "" {
		currency = "usd"
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.cfg.SecretKey).
		SetFormData(map[string]string{
			"amount":                  strconv.FormatInt(amount, 10),
			"currency":                currency,
			"payment_method_types[0]": "card",
		}).
		Post("/v1/payment_intents")
	if err != nil {
		return nil, fmt.Errorf("payment provider request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("payment provider responded %d", resp.StatusCode())
	}

	var body struct {
		ID           string `json:"id"`
		ClientSecret string `json:"client_secret"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("decode payment provider response: %w", err)
	}
	return &Intent{ID: body.ID, ClientSecret: body.ClientSecret}, nil
}
