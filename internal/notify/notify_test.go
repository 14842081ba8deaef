package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailSender_Send(t *testing.T) {
	var got mailRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v3/mail/send", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	sender := NewEmailSender(EmailConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
		From:    "noreply@leaar.com",
	})

	err := sender.Send(context.Background(), "ann@example.com", "Welcome", "hello")
	require.NoError(t, err)

	require.Len(t, got.Personalizations, 1)
	require.Len(t, got.Personalizations[0].To, 1)
	assert.Equal(t, "ann@example.com", got.Personalizations[0].To[0].Email)
	assert.Equal(t, "noreply@leaar.com", got.From.Email)
	assert.Equal(t, "Welcome", got.Subject)
}

func TestEmailSender_NotConfigured(t *testing.T) {
	sender := NewEmailSender(EmailConfig{})
	err := sender.Send(context.Background(), "ann@example.com", "s", "b")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestEmailSender_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	sender := NewEmailSender(EmailConfig{BaseURL: server.URL, APIKey: "bad-key"})
	err := sender.Send(context.Background(), "ann@example.com", "s", "b")
	assert.Error(t, err)
}

func TestSMSSender_Send(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/2010-04-01/Accounts/AC123/Messages.json", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "AC123", user)
		assert.Equal(t, "token", pass)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "+15551230000", r.PostForm.Get("To"))
		assert.Equal(t, "+15550001111", r.PostForm.Get("From"))
		assert.Equal(t, "ping", r.PostForm.Get("Body"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"sid":"SM42"}`))
	}))
	defer server.Close()

	sender := NewSMSSender(SMSConfig{
		BaseURL:    server.URL,
		AccountSID: "AC123",
		AuthToken:  "token",
		From:       "+15550001111",
	})

	sid, err := sender.Send(context.Background(), "+15551230000", "ping")
	require.NoError(t, err)
	assert.Equal(t, "SM42", sid)
}

func TestSMSSender_NotConfigured(t *testing.T) {
	sender := NewSMSSender(SMSConfig{})
	_, err := sender.Send(context.Background(), "+15551230000", "ping")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
