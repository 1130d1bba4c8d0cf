package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort       string
	LogLevel      string
	PublicBaseURL string

	DBDriver string
	DBDSN    string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs int

	S3Endpoint      string
	S3Region        string
	S3Bucket        string
	S3AccessKey     string
	S3SecretKey     string
	S3PublicBaseURL string

	WebhookURL     string
	WebhookSecret  string
	LeadWebhookURL string

	MetaPixelID       string
	MetaAccessToken   string
	MetaAPIVersion    string
	MetaTestEventCode string

	ProductPrice     float64
	ProductCurrency  string
	PhoneCountryCode string

	NotifyTimeout time.Duration
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

// Load reads the environment, after an optional .env file in the working directory.
func Load() *Config {
	_ = godotenv.Load()

	c := &Config{
		AppPort:       getenv("APP_PORT", "8080"),
		LogLevel:      getenv("LOG_LEVEL", "info"),
		PublicBaseURL: strings.TrimRight(getenv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),

		DBDriver: getenv("DB_DRIVER", "postgres"),
		DBDSN:    os.Getenv("DB_DSN"),

		RedisAddr:    os.Getenv("REDIS_ADDR"),
		IdempTTLSecs: 300,

		S3Endpoint:      os.Getenv("S3_ENDPOINT"),
		S3Region:        getenv("S3_REGION", "us-east-1"),
		S3Bucket:        os.Getenv("S3_BUCKET"),
		S3AccessKey:     os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:     os.Getenv("S3_SECRET_KEY"),
		S3PublicBaseURL: strings.TrimRight(os.Getenv("S3_PUBLIC_BASE_URL"), "/"),

		WebhookURL:     os.Getenv("WEBHOOK_URL"),
		WebhookSecret:  os.Getenv("WEBHOOK_SECRET"),
		LeadWebhookURL: os.Getenv("LEAD_WEBHOOK_URL"),

		MetaPixelID:       os.Getenv("META_PIXEL_ID"),
		MetaAccessToken:   os.Getenv("META_ACCESS_TOKEN"),
		MetaAPIVersion:    getenv("META_API_VERSION", "v19.0"),
		MetaTestEventCode: os.Getenv("META_TEST_EVENT_CODE"),

		ProductPrice:     4990,
		ProductCurrency:  getenv("PRODUCT_CURRENCY", "RSD"),
		PhoneCountryCode: getenv("PHONE_COUNTRY_CODE", "381"),

		NotifyTimeout: 5 * time.Second,
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RedisDB = n
		}
	}
	if v := os.Getenv("IDEMPOTENCY_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.IdempTTLSecs = n
		}
	}
	if v := os.Getenv("PRODUCT_PRICE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.ProductPrice = f
		}
	}
	if v := os.Getenv("NOTIFY_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.NotifyTimeout = time.Duration(n) * time.Second
		}
	}
	return c
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if _, err := net.LookupPort("tcp", c.AppPort); err != nil {
		return fmt.Errorf("invalid APP_PORT %q: %w", c.AppPort, err)
	}
	switch c.DBDriver {
	case "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want mysql or postgres)", c.DBDriver)
	}
	if c.DBDSN == "" {
		return errors.New("missing DB_DSN")
	}
	if c.ProductPrice <= 0 {
		return errors.New("PRODUCT_PRICE must be positive")
	}
	return nil
}

// StorageConfigured reports whether proof images can be uploaded.
// Intake answers 500 when it is false.
func (c *Config) StorageConfigured() bool {
	return c.S3Bucket != "" && c.S3AccessKey != "" && c.S3SecretKey != "" && c.S3PublicBaseURL != ""
}

func (c *Config) AdsConfigured() bool { return c.MetaPixelID != "" && c.MetaAccessToken != "" }

func (c *Config) IdempotencyTTL() time.Duration { return time.Duration(c.IdempTTLSecs) * time.Second }
