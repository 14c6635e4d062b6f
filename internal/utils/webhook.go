package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Shjra/Shjra-Maps/pkg/retry"
)

// StatusError porte le statut HTTP d'un appel sortant raté, pour distinguer
// les erreurs transitoires (rate limit, indisponibilité) des erreurs franches
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Body)
}

// IsTransient classe les signaux de rate-limiting et d'indisponibilité :
// 429, 503, ou le marqueur de blocage renvoyé par Discord dans le body
func IsTransient(err error) bool {
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		return false
	}
	if statusErr.Code == http.StatusTooManyRequests || statusErr.Code == http.StatusServiceUnavailable {
		return true
	}
	return strings.Contains(statusErr.Body, "You are being blocked") ||
		strings.Contains(statusErr.Body, "retry_after")
}

// WebhookNotifier envoie des embeds Discord vers un webhook fixe.
// Best-effort uniquement : l'échec est loggé, jamais propagé à la mutation.
type WebhookNotifier struct {
	url    string
	client *http.Client
}

func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Send poste le payload avec relance sur rate limit
func (n *WebhookNotifier) Send(ctx context.Context, payload WebhookPayload) error {
	if n == nil || n.url == "" {
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	cfg := retry.Config{
		MaxAttempts: 3,
		Backoff:     retry.ExponentialBackoff(500 * time.Millisecond),
		ShouldRetry: IsTransient,
	}

	return retry.Do(ctx, cfg, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := n.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 {
			respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			return &StatusError{Code: resp.StatusCode, Body: string(respBody)}
		}
		return nil
	})
}

// SendAsync déclenche l'envoi en arrière-plan, fire-and-forget
func (n *WebhookNotifier) SendAsync(payload WebhookPayload) {
	if n == nil || n.url == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := n.Send(ctx, payload); err != nil {
			log.Printf("❌ Erreur envoi webhook: %v", err)
		}
	}()
}
