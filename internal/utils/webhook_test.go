package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shjra/Shjra-Maps/internal/models"
)

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"rate limited", &StatusError{Code: 429, Body: `{"retry_after": 2.5}`}, true},
		{"service unavailable", &StatusError{Code: 503, Body: ""}, true},
		{"cloudflare block", &StatusError{Code: 403, Body: "You are being blocked"}, true},
		{"bad request", &StatusError{Code: 400, Body: "invalid payload"}, false},
		{"plain error", context.DeadlineExceeded, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransient(tt.err))
		})
	}
}

func TestWebhookNotifierSend(t *testing.T) {
	payload := BuildLoginEmbed(models.User{ID: "42", Username: "cliente"}, time.Now())

	t.Run("posts the embed payload", func(t *testing.T) {
		var got WebhookPayload
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		err := NewWebhookNotifier(srv.URL).Send(context.Background(), payload)
		require.NoError(t, err)
		require.Len(t, got.Embeds, 1)
		assert.Equal(t, "🔐 Nuovo Login", got.Embeds[0].Title)
	})

	t.Run("retries on rate limit", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"retry_after": 0.1}`))
				return
			}
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		err := NewWebhookNotifier(srv.URL).Send(context.Background(), payload)
		require.NoError(t, err)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("does not retry a hard failure", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("invalid payload"))
		}))
		defer srv.Close()

		err := NewWebhookNotifier(srv.URL).Send(context.Background(), payload)
		require.Error(t, err)
		assert.Equal(t, int32(1), calls.Load())

		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusBadRequest, statusErr.Code)
	})

	t.Run("no url configured is a no-op", func(t *testing.T) {
		assert.NoError(t, NewWebhookNotifier("").Send(context.Background(), payload))

		var nilNotifier *WebhookNotifier
		assert.NoError(t, nilNotifier.Send(context.Background(), payload))
	})
}
