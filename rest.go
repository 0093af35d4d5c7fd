package mailgun

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const formContentType = "application/x-www-form-urlencoded"

// retryBaseDelay is the initial delay for exponential backoff between
// attempts. Variable so tests can shorten it.
var retryBaseDelay = 500 * time.Millisecond

// Get issues a GET request against the configured endpoint and returns the
// raw response body. params, if non-empty, are encoded as the query string.
func (c *Client) Get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	if len(params) > 0 {
		path = path + "?" + params.Encode()
	}
	return c.do(ctx, http.MethodGet, path, "", nil)
}

// Post issues a form-encoded POST request against the configured endpoint.
func (c *Client) Post(ctx context.Context, path string, data url.Values) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, path, formContentType, []byte(data.Encode()))
}

// PostRaw issues a POST request with a pre-encoded form payload.
func (c *Client) PostRaw(ctx context.Context, path, encoded string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, path, formContentType, []byte(encoded))
}

// Put issues a form-encoded PUT request against the configured endpoint.
func (c *Client) Put(ctx context.Context, path string, data url.Values) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPut, path, formContentType, []byte(data.Encode()))
}

// PutRaw issues a PUT request with a pre-encoded form payload.
func (c *Client) PutRaw(ctx context.Context, path, encoded string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPut, path, formContentType, []byte(encoded))
}

// Delete issues a DELETE request against the configured endpoint.
func (c *Client) Delete(ctx context.Context, path string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, path, "", nil)
}

// do issues the request, retrying transport failures up to the configured
// attempt count. Provider responses, success or error, end the loop
// immediately.
func (c *Client) do(ctx context.Context, method, path, contentType string, body []byte) (json.RawMessage, error) {
	attempts := c.cfg.Retry

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			c.log.Debug().
				Str("method", method).
				Str("path", path).
				Int("attempt", attempt+1).
				Msg("retrying request")
			if err := sleepWithContext(ctx, backoffDelay(attempt)); err != nil {
				return nil, err
			}
		}

		raw, retriable, err := c.doOnce(ctx, method, path, contentType, body)
		if err == nil {
			return raw, nil
		}
		if !retriable {
			return nil, err
		}
		lastErr = err
	}

	if attempts > 1 {
		return nil, fmt.Errorf("mailgun: request failed after %d attempts: %w", attempts, lastErr)
	}
	return nil, lastErr
}

// doOnce performs a single request. The retriable flag marks transport
// failures; provider responses are never retriable.
func (c *Client) doOnce(ctx context.Context, method, path, contentType string, body []byte) (json.RawMessage, bool, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, false, fmt.Errorf("mailgun: failed to create request: %w", err)
	}
	req.SetBasicAuth("api", c.cfg.APIKey)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("mailgun: request failed: %w", err)
	}
	defer c.bodyCloser(resp.Body)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("mailgun: failed to read response: %w", err)
	}

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("API request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, false, parseAPIError(resp.StatusCode, respBody)
	}
	return respBody, false, nil
}

func (c *Client) bodyCloser(body io.ReadCloser) {
	if body != nil {
		if err := body.Close(); err != nil {
			c.log.Error().Err(err).Msg("failed to close response body")
		}
	}
}

// backoffDelay returns the exponential backoff delay for the given attempt
// number.
func backoffDelay(attempt int) time.Duration {
	delay := retryBaseDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
	}
	return delay
}

// sleepWithContext waits for the specified duration or until the context is
// cancelled.
func sleepWithContext(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
