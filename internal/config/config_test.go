package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "USD", cfg.Store.Currency)
	assert.Equal(t, 12, cfg.Store.PageSize)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 30*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, "sandbox", cfg.BrainTree.Environment)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "mysql")
	t.Setenv("DATABASE_URL", "user:pass@tcp(localhost:3306)/store")
	t.Setenv("STORE_CURRENCY", "INR")
	t.Setenv("STORE_PAGE_SIZE", "24")
	t.Setenv("PAYPAL_CLIENT_ID", "paypal-public")
	t.Setenv("BRAINTREE_PUBLIC_KEY", "bt-public")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("BASE_URL", "https://shop.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "user:pass@tcp(localhost:3306)/store", cfg.Database.URL)
	assert.Equal(t, "INR", cfg.Store.Currency)
	assert.Equal(t, 24, cfg.Store.PageSize)
	assert.Equal(t, "paypal-public", cfg.Paypal.ClientID)
	assert.Equal(t, "bt-public", cfg.BrainTree.PublicKey)
	assert.Equal(t, "0.0.0.0:9000", cfg.HTTP.Addr())
	assert.Equal(t, "https://shop.example.com", cfg.BaseURL)
}

func TestLoad_RejectsNonPositivePageSize(t *testing.T) {
	t.Setenv("STORE_PAGE_SIZE", "0")

	_, err := Load()
	assert.Error(t, err)
}
