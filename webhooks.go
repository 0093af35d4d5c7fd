package mailgun

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// ValidateWebhook reports whether a webhook notification genuinely
// originated from Mailgun. The signature must be the hex HMAC-SHA256 of
// timestamp followed by token, keyed with the account API key.
//
// Timestamps older than Config.WebhookMaxAge (or further than that in the
// future) are rejected before any hash work. Malformed input returns false
// rather than panicking. Rejections are logged at warn level unless
// Config.Mute is set.
func (c *Client) ValidateWebhook(timestamp, token, signature string) bool {
	if timestamp == "" || token == "" || signature == "" {
		c.rejectWebhook(timestamp, "missing field")
		return false
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		c.rejectWebhook(timestamp, "malformed timestamp")
		return false
	}

	age := time.Since(time.Unix(ts, 0))
	if age > c.cfg.WebhookMaxAge || age < -c.cfg.WebhookMaxAge {
		c.rejectWebhook(timestamp, "stale timestamp")
		return false
	}

	provided, err := hex.DecodeString(signature)
	if err != nil {
		c.rejectWebhook(timestamp, "malformed signature")
		return false
	}

	expected := computeWebhookSignature(c.cfg.APIKey, timestamp, token)
	if !hmac.Equal(provided, expected) {
		c.rejectWebhook(timestamp, "signature mismatch")
		return false
	}
	return true
}

func (c *Client) rejectWebhook(timestamp, reason string) {
	if c.cfg.Mute {
		return
	}
	c.log.Warn().
		Str("timestamp", timestamp).
		Str("reason", reason).
		Msg("webhook validation failed")
}

// computeWebhookSignature computes the HMAC-SHA256 signature Mailgun
// attaches to webhook notifications.
func computeWebhookSignature(key, timestamp, token string) []byte {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(timestamp))
	mac.Write([]byte(token))
	return mac.Sum(nil)
}

// Webhook is a configured event notification target.
type Webhook struct {
	URL string `json:"url"`
}

// WebhooksAPI is the collection-level handle over a domain's webhooks.
type WebhooksAPI struct {
	client *Client
	domain string
}

// List returns the configured webhooks keyed by event name.
func (a *WebhooksAPI) List(ctx context.Context) (map[string]Webhook, error) {
	raw, err := a.client.Get(ctx, a.path(), nil)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Webhooks map[string]Webhook `json:"webhooks"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("mailgun: failed to parse webhooks: %w", err)
	}
	return resp.Webhooks, nil
}

// Create registers a notification URL for the named event.
func (a *WebhooksAPI) Create(ctx context.Context, name, targetURL string) error {
	data := url.Values{}
	data.Set("id", name)
	data.Set("url", targetURL)
	_, err := a.client.Post(ctx, a.path(), data)
	return err
}

func (a *WebhooksAPI) path() string {
	return "/domains/" + url.PathEscape(a.domain) + "/webhooks"
}

// WebhookAPI is the item-level handle over one named webhook.
type WebhookAPI struct {
	client *Client
	domain string
	name   string
}

// Info returns the webhook's target URL.
func (a *WebhookAPI) Info(ctx context.Context) (*Webhook, error) {
	raw, err := a.client.Get(ctx, a.path(), nil)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Webhook Webhook `json:"webhook"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("mailgun: failed to parse webhook: %w", err)
	}
	return &resp.Webhook, nil
}

// Update changes the webhook's target URL.
func (a *WebhookAPI) Update(ctx context.Context, targetURL string) error {
	data := url.Values{}
	data.Set("url", targetURL)
	_, err := a.client.Put(ctx, a.path(), data)
	return err
}

// Delete removes the webhook.
func (a *WebhookAPI) Delete(ctx context.Context) error {
	_, err := a.client.Delete(ctx, a.path())
	return err
}

func (a *WebhookAPI) path() string {
	return "/domains/" + url.PathEscape(a.domain) + "/webhooks/" + url.PathEscape(a.name)
}
