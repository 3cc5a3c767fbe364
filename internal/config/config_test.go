package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestDefaults(t *testing.T) {
	cfg, err := FromEnv(env(nil))
	require.NoError(t, err)
	assert.Equal(t, ":8443", cfg.Addr)
	assert.Equal(t, 1.0, cfg.RateLimit)
	assert.Equal(t, 3, cfg.RateBurst)
	assert.Equal(t, 60*time.Second, cfg.OptimizerTimeout)
	assert.Positive(t, cfg.OptimizerWorkers)
	assert.False(t, cfg.TLSEnabled())
	assert.ErrorIs(t, cfg.RequireTokenKey(), ErrMissingTokenKey)
}

func TestOverrides(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"GIRDER_ADDR":       ":9000",
		"TLS_CERT":          "server.crt",
		"TLS_KEY":           "server.key",
		"TOKEN_KEY":         "secret",
		"RATE_LIMIT":        "2.5",
		"RATE_BURST":        "10",
		"OPTIMIZER_WORKERS": "4",
		"OPTIMIZER_TIMEOUT": "90s",
	}))
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.True(t, cfg.TLSEnabled())
	assert.NoError(t, cfg.RequireTokenKey())
	assert.Equal(t, 2.5, cfg.RateLimit)
	assert.Equal(t, 10, cfg.RateBurst)
	assert.Equal(t, 4, cfg.OptimizerWorkers)
	assert.Equal(t, 90*time.Second, cfg.OptimizerTimeout)
}

func TestInvalidValues(t *testing.T) {
	for _, kv := range [][2]string{
		{"RATE_LIMIT", "fast"},
		{"RATE_BURST", "0"},
		{"OPTIMIZER_WORKERS", "-1"},
		{"OPTIMIZER_TIMEOUT", "soon"},
	} {
		_, err := FromEnv(env(map[string]string{kv[0]: kv[1]}))
		assert.Error(t, err, kv[0])
	}
}
