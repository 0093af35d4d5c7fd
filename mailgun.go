// Package mailgun provides a typed client for the Mailgun transactional
// email REST API.
//
// # Client Creation
//
// A client is constructed from a Config carrying the API key and sending
// domain. All other fields have working defaults:
//
//	client, err := mailgun.New(mailgun.Config{
//		APIKey: os.Getenv("MAILGUN_API_KEY"),
//		Domain: "example.com",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	resp, err := client.Messages().Send(ctx, &mailgun.Message{
//		From:    "sender@example.com",
//		To:      []string{"recipient@example.com"},
//		Subject: "hello",
//		Text:    "hello from mailgun-go",
//	})
//
// # Retry Behavior
//
// Config.Retry is the total number of attempts per call (default 1, no
// retry). Only transport-level failures are retried; any response from the
// provider, success or error, ends the call. The retry delay doubles with
// each attempt and honors context cancellation.
//
// # Error Handling
//
// Non-2xx provider responses are returned as *APIError carrying the HTTP
// status and the provider-supplied error message. Use IsAPIError or
// errors.As to inspect them. Transport failures are returned wrapped, never
// swallowed.
//
// # Thread Safety
//
// Client holds no mutable state besides its configuration and is safe for
// concurrent use. Independent calls do not coordinate or share ordering.
package mailgun

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Defaults applied to zero-valued Config fields.
const (
	DefaultHost          = "api.mailgun.net"
	DefaultProtocol      = "https"
	DefaultPort          = 443
	DefaultEndpoint      = "/v3"
	DefaultTimeout       = 30 * time.Second
	DefaultWebhookMaxAge = 5 * time.Minute
)

// Config holds the configuration for the Mailgun client.
type Config struct {
	// APIKey is the private Mailgun API key. Required.
	APIKey string

	// Domain is the sending domain registered with Mailgun. Required.
	Domain string

	// Host overrides the API host. Default: "api.mailgun.net".
	Host string

	// Protocol is "https" or "http". Default: "https".
	Protocol string

	// Port overrides the API port. Default: 443.
	Port int

	// Endpoint is the API path prefix. Default: "/v3".
	Endpoint string

	// Proxy is an optional proxy URI for outbound requests.
	Proxy string

	// Timeout applies per request on the underlying HTTP client.
	// Default: 30 seconds.
	Timeout time.Duration

	// Retry is the total number of attempts per call. Transport failures
	// are retried up to Retry-1 times; provider responses never are.
	// Default: 1 (perform the operation once).
	Retry int

	// Mute suppresses webhook-validation diagnostics.
	Mute bool

	// WebhookMaxAge is the oldest (or furthest-future) webhook timestamp
	// accepted by ValidateWebhook. Default: 5 minutes.
	WebhookMaxAge time.Duration

	// Logger is an optional logger for request and validation diagnostics.
	// If nil, a stderr logger at warn level is used.
	Logger *zerolog.Logger

	// HTTPClient is an optional custom HTTP client. If nil, a client with
	// Timeout and Proxy applied is used.
	HTTPClient *http.Client
}

func (c *Config) defaults() {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Protocol == "" {
		c.Protocol = DefaultProtocol
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.Endpoint == "" {
		c.Endpoint = DefaultEndpoint
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Retry < 1 {
		c.Retry = 1
	}
	if c.WebhookMaxAge == 0 {
		c.WebhookMaxAge = DefaultWebhookMaxAge
	}
}

// Client is the Mailgun API client. It exposes resource-scoped handles
// (messages, domains, mailing lists, webhooks) plus generic HTTP verbs for
// endpoints without a dedicated method.
type Client struct {
	cfg     Config
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// New creates a Mailgun client with the given configuration. It fails when
// the API key or domain is missing, or when the proxy URI or protocol is
// invalid.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if strings.TrimSpace(cfg.Domain) == "" {
		return nil, ErrMissingDomain
	}
	cfg.defaults()

	if cfg.Protocol != "https" && cfg.Protocol != "http" {
		return nil, fmt.Errorf("mailgun: unsupported protocol %q", cfg.Protocol)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		if cfg.Proxy != "" {
			proxyURL, err := url.Parse(cfg.Proxy)
			if err != nil {
				return nil, fmt.Errorf("mailgun: invalid proxy URI: %w", err)
			}
			transport.Proxy = http.ProxyURL(proxyURL)
		}
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		}
	}

	var log zerolog.Logger
	if cfg.Logger != nil {
		log = *cfg.Logger
	} else {
		log = zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.WarnLevel)
	}

	return &Client{
		cfg:     cfg,
		baseURL: fmt.Sprintf("%s://%s:%d%s", cfg.Protocol, cfg.Host, cfg.Port, cfg.Endpoint),
		http:    httpClient,
		log:     log,
	}, nil
}

// Messages returns the message-sending handle scoped to the configured
// domain.
func (c *Client) Messages() *MessagesAPI {
	return &MessagesAPI{client: c, domain: c.cfg.Domain}
}

// Domains returns the collection-level domains handle (list, create).
func (c *Client) Domains() *DomainsAPI {
	return &DomainsAPI{client: c}
}

// Domain returns the item-level handle for one domain (info, delete,
// verify, credentials).
func (c *Client) Domain(name string) *DomainAPI {
	return &DomainAPI{client: c, name: name}
}

// Lists returns the collection-level mailing lists handle (list, create).
func (c *Client) Lists() *ListsAPI {
	return &ListsAPI{client: c}
}

// List returns the item-level handle for one mailing list (info, update,
// delete, members).
func (c *Client) List(address string) *ListAPI {
	return &ListAPI{client: c, address: address}
}

// Webhooks returns the collection-level webhooks handle for the configured
// domain.
func (c *Client) Webhooks() *WebhooksAPI {
	return &WebhooksAPI{client: c, domain: c.cfg.Domain}
}

// Webhook returns the item-level handle for one named webhook.
func (c *Client) Webhook(name string) *WebhookAPI {
	return &WebhookAPI{client: c, domain: c.cfg.Domain, name: name}
}
