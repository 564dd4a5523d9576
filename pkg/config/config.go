package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"shopifyproduct.com/pkg/date"
	"shopifyproduct.com/pkg/shopify"
)

// latestVersion selects the release current at start up.
const latestVersion = "latest"

type Config struct {
	ShopURL     string
	AccessToken string
	APIVersion  string
	LocationID  string
	AppEnv      string
}

// LoadConfig reads the environment, after loading a .env file from the
// working directory when there is one.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ShopURL:     os.Getenv("SHOPIFY_SHOP_URL"),
		AccessToken: os.Getenv("SHOPIFY_ACCESS_TOKEN"),
		APIVersion:  os.Getenv("SHOPIFY_API_VERSION"),
		LocationID:  os.Getenv("SHOPIFY_LOCATION_ID"),
		AppEnv:      os.Getenv("APP_ENV"),
	}
	if cfg.ShopURL == "" || cfg.AccessToken == "" {
		return nil, errors.New("SHOPIFY_SHOP_URL and SHOPIFY_ACCESS_TOKEN must be set")
	}
	switch cfg.APIVersion {
	case "":
		cfg.APIVersion = shopify.DefaultAPIVersion
	case latestVersion:
		cfg.APIVersion = date.APIVersion(time.Now())
	}
	if !date.ValidAPIVersion(cfg.APIVersion) {
		return nil, errors.Errorf("SHOPIFY_API_VERSION %q is not an Admin API release", cfg.APIVersion)
	}
	return cfg, nil
} // ./LoadConfig

func (c *Config) Shopify() shopify.Config {
	return shopify.Config{
		Shop:        c.ShopURL,
		AccessToken: c.AccessToken,
		APIVersion:  c.APIVersion,
		LocationID:  c.LocationID,
	}
} // ./Shopify
