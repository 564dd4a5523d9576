package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopifyproduct.com/pkg/date"
	"shopifyproduct.com/pkg/shopify"
)

func TestLoadConfig(t *testing.T) {
	// no .env in the test working directory, godotenv's error is ignored
	t.Run("Success loading from env", func(t *testing.T) {
		t.Setenv("SHOPIFY_SHOP_URL", "example.myshopify.com")
		t.Setenv("SHOPIFY_ACCESS_TOKEN", "shpat_test")
		t.Setenv("SHOPIFY_API_VERSION", "2024-07")
		t.Setenv("SHOPIFY_LOCATION_ID", "gid://shopify/Location/1")
		t.Setenv("APP_ENV", "test")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "example.myshopify.com", cfg.ShopURL)
		assert.Equal(t, "shpat_test", cfg.AccessToken)
		assert.Equal(t, "2024-07", cfg.APIVersion)
		assert.Equal(t, "gid://shopify/Location/1", cfg.LocationID)
		assert.Equal(t, "test", cfg.AppEnv)

		sc := cfg.Shopify()
		assert.Equal(t, shopify.Config{
			Shop:        "example.myshopify.com",
			AccessToken: "shpat_test",
			APIVersion:  "2024-07",
			LocationID:  "gid://shopify/Location/1",
		}, sc)
	})

	t.Run("Default API version", func(t *testing.T) {
		t.Setenv("SHOPIFY_SHOP_URL", "example")
		t.Setenv("SHOPIFY_ACCESS_TOKEN", "shpat_test")
		t.Setenv("SHOPIFY_API_VERSION", "")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, shopify.DefaultAPIVersion, cfg.APIVersion)
	})

	t.Run("Latest API version", func(t *testing.T) {
		t.Setenv("SHOPIFY_SHOP_URL", "example")
		t.Setenv("SHOPIFY_ACCESS_TOKEN", "shpat_test")
		t.Setenv("SHOPIFY_API_VERSION", "latest")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, date.APIVersion(time.Now()), cfg.APIVersion)
		assert.True(t, date.ValidAPIVersion(cfg.APIVersion))
	})

	t.Run("Missing credentials", func(t *testing.T) {
		t.Setenv("SHOPIFY_SHOP_URL", "example")
		t.Setenv("SHOPIFY_ACCESS_TOKEN", "")

		cfg, err := LoadConfig()
		assert.Nil(t, cfg)
		assert.ErrorContains(t, err, "SHOPIFY_ACCESS_TOKEN")
	})

	t.Run("Bad API version", func(t *testing.T) {
		t.Setenv("SHOPIFY_SHOP_URL", "example")
		t.Setenv("SHOPIFY_ACCESS_TOKEN", "shpat_test")
		t.Setenv("SHOPIFY_API_VERSION", "2024-02")

		_, err := LoadConfig()
		assert.ErrorContains(t, err, "2024-02")
	})
}
