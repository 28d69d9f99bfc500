package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AUTH_SECRET", strings.Repeat("s", 32))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.HTTPAddr)
	assert.Equal(t, 7, cfg.TokenLifetimeDays)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, 7*24*60*60, int(cfg.TokenLifetime().Seconds()))
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("AUTH_SECRET", strings.Repeat("s", 32))
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("TOKEN_LIFETIME_DAYS", "1")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.HTTPAddr)
	assert.Equal(t, 1, cfg.TokenLifetimeDays)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestValidate(t *testing.T) {
	for _, tc := range []struct {
		name string
		cfg  Config
	}{
		{"missing secret", Config{TokenLifetimeDays: 7}},
		{"short secret", Config{AuthSecret: "short", TokenLifetimeDays: 7}},
		{"zero lifetime", Config{AuthSecret: strings.Repeat("s", 32)}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, tc.cfg.Validate())
		})
	}

	ok := Config{AuthSecret: strings.Repeat("s", 32), TokenLifetimeDays: 7}
	assert.NoError(t, ok.Validate())
}
