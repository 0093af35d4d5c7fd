package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mailgun "github.com/courierkit/mailgun-go"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, mailgun.DefaultHost, cfg.Host)
	assert.Equal(t, mailgun.DefaultProtocol, cfg.Protocol)
	assert.Equal(t, mailgun.DefaultPort, cfg.Port)
	assert.Equal(t, mailgun.DefaultEndpoint, cfg.Endpoint)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 1, cfg.Retry)
	assert.False(t, cfg.Mute)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MAILGUN_API_KEY", "key-from-env")
	t.Setenv("MAILGUN_DOMAIN", "env.example.com")
	t.Setenv("MAILGUN_HOST", "api.eu.mailgun.net")
	t.Setenv("MAILGUN_TIMEOUT", "10s")
	t.Setenv("MAILGUN_RETRY", "3")
	t.Setenv("MAILGUN_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "key-from-env", cfg.APIKey)
	assert.Equal(t, "env.example.com", cfg.Domain)
	assert.Equal(t, "api.eu.mailgun.net", cfg.Host)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, 3, cfg.Retry)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestConfig_Client(t *testing.T) {
	t.Setenv("MAILGUN_API_KEY", "key-x")
	t.Setenv("MAILGUN_DOMAIN", "example.com")

	cfg, err := Load()
	require.NoError(t, err)

	clientCfg := cfg.Client()
	assert.Equal(t, "key-x", clientCfg.APIKey)
	assert.Equal(t, "example.com", clientCfg.Domain)
	assert.Equal(t, mailgun.DefaultHost, clientCfg.Host)

	client, err := mailgun.New(clientCfg)
	require.NoError(t, err)
	assert.NotNil(t, client)
}
