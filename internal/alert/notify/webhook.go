package notify

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	json "github.com/goccy/go-json"
)

const SignatureHeader = "X-Ecoai-Signature"

// WebhookSink posts each event as JSON. When a secret is set the body is signed
// with HMAC-SHA256 in SignatureHeader.
type WebhookSink struct {
	url    string
	secret string
	client *resty.Client
}

func NewWebhookSink(url, secret string, timeout time.Duration) *WebhookSink {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(200*time.Millisecond).
		SetRetryMaxWaitTime(time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &WebhookSink{url: url, secret: secret, client: client}
}

func (w *WebhookSink) Name() string { return "webhook" }

func (w *WebhookSink) Send(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode alert event: %w", err)
	}

	req := w.client.R().SetContext(ctx).SetBody(body)
	if w.secret != "" {
		req.SetHeader(SignatureHeader, Sign(w.secret, body))
	}
	resp, err := req.Post(w.url)
	if err != nil {
		return fmt.Errorf("post alert webhook: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("alert webhook responded %d", resp.StatusCode())
	}
	return nil
}

func (w *WebhookSink) Close() error { return nil }

// Sign returns the hex HMAC-SHA256 of body under secret.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
