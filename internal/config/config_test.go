package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("PUBLIC_BASE_URL", "https://realreselling.rs/")
	t.Setenv("PRODUCT_PRICE", "")
	t.Setenv("NOTIFY_TIMEOUT_SECONDS", "")

	c := Load()
	if c.AppPort != "8080" {
		t.Fatalf("AppPort = %q, want 8080", c.AppPort)
	}
	if c.PublicBaseURL != "https://realreselling.rs" {
		t.Fatalf("PublicBaseURL not trimmed: %q", c.PublicBaseURL)
	}
	if c.ProductPrice != 4990 {
		t.Fatalf("ProductPrice = %v, want 4990", c.ProductPrice)
	}
	if c.NotifyTimeout != 5*time.Second {
		t.Fatalf("NotifyTimeout = %v, want 5s", c.NotifyTimeout)
	}
	if c.PhoneCountryCode != "381" {
		t.Fatalf("PhoneCountryCode = %q, want 381", c.PhoneCountryCode)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("REDIS_DB", "3")
	t.Setenv("IDEMPOTENCY_TTL_SECONDS", "60")
	t.Setenv("PRODUCT_PRICE", "39.5")
	t.Setenv("NOTIFY_TIMEOUT_SECONDS", "2")

	c := Load()
	if c.RedisDB != 3 {
		t.Fatalf("RedisDB = %d, want 3", c.RedisDB)
	}
	if c.IdempotencyTTL() != time.Minute {
		t.Fatalf("IdempotencyTTL = %v, want 1m", c.IdempotencyTTL())
	}
	if c.ProductPrice != 39.5 {
		t.Fatalf("ProductPrice = %v, want 39.5", c.ProductPrice)
	}
	if c.NotifyTimeout != 2*time.Second {
		t.Fatalf("NotifyTimeout = %v, want 2s", c.NotifyTimeout)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{AppPort: "8080", DBDriver: "postgres", DBDSN: "postgres://x", ProductPrice: 1}
	}

	if err := base().Validate(); err != nil {
		t.Fatalf("valid config: %v", err)
	}

	cases := map[string]func(c *Config){
		"missing port":   func(c *Config) { c.AppPort = "" },
		"bad driver":     func(c *Config) { c.DBDriver = "oracle" },
		"missing dsn":    func(c *Config) { c.DBDSN = "" },
		"non-positive $": func(c *Config) { c.ProductPrice = 0 },
	}
	for name, mutate := range cases {
		c := base()
		mutate(c)
		if err := c.Validate(); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestStorageAndAdsConfigured(t *testing.T) {
	c := &Config{}
	if c.StorageConfigured() || c.AdsConfigured() {
		t.Fatalf("empty config must report nothing configured")
	}
	c.S3Bucket, c.S3AccessKey, c.S3SecretKey, c.S3PublicBaseURL = "b", "k", "s", "https://cdn"
	c.MetaPixelID, c.MetaAccessToken = "123", "tok"
	if !c.StorageConfigured() || !c.AdsConfigured() {
		t.Fatalf("expected storage and ads configured")
	}
}
