package mailgun

import (
	"net"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testClient builds a client pointed at the given test server. The default
// "/v3" endpoint prefix stays in effect, so handlers should expect paths
// like "/v3/domains".
func testClient(t *testing.T, srv *httptest.Server, mutate func(*Config)) *Client {
	t.Helper()

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	host, portStr, err := net.SplitHostPort(u.Host)
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	cfg := Config{
		APIKey:   "key-test",
		Domain:   "example.com",
		Protocol: u.Scheme,
		Host:     host,
		Port:     port,
	}
	if mutate != nil {
		mutate(&cfg)
	}

	client, err := New(cfg)
	require.NoError(t, err)
	return client
}

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := New(Config{Domain: "example.com"})
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	_, err = New(Config{APIKey: "   ", Domain: "example.com"})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestNew_RequiresDomain(t *testing.T) {
	_, err := New(Config{APIKey: "key-x"})
	assert.ErrorIs(t, err, ErrMissingDomain)
}

func TestNew_Defaults(t *testing.T) {
	client, err := New(Config{APIKey: "key-x", Domain: "example.com"})
	require.NoError(t, err)

	assert.Equal(t, "https://api.mailgun.net:443/v3", client.baseURL)
	assert.Equal(t, 1, client.cfg.Retry)
	assert.Equal(t, DefaultTimeout, client.cfg.Timeout)
	assert.Equal(t, DefaultWebhookMaxAge, client.cfg.WebhookMaxAge)
	assert.Equal(t, DefaultTimeout, client.http.Timeout)
}

func TestNew_Overrides(t *testing.T) {
	client, err := New(Config{
		APIKey:   "key-x",
		Domain:   "example.com",
		Protocol: "http",
		Host:     "localhost",
		Port:     8080,
		Endpoint: "/v2",
		Timeout:  5 * time.Second,
		Retry:    3,
	})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/v2", client.baseURL)
	assert.Equal(t, 3, client.cfg.Retry)
	assert.Equal(t, 5*time.Second, client.http.Timeout)
}

func TestNew_InvalidProxy(t *testing.T) {
	_, err := New(Config{
		APIKey: "key-x",
		Domain: "example.com",
		Proxy:  "http://proxy.example.com:%zz",
	})
	assert.Error(t, err)
}

func TestNew_UnsupportedProtocol(t *testing.T) {
	_, err := New(Config{
		APIKey:   "key-x",
		Domain:   "example.com",
		Protocol: "ftp",
	})
	assert.Error(t, err)
}
