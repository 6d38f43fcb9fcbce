package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	// BaseURL is the storefront's public origin.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8080"`

	Database  Database  `envPrefix:"DATABASE_"`
	Auth      Auth      `envPrefix:"AUTH_"`
	Store     Store     `envPrefix:"STORE_"`
	Paypal    Paypal    `envPrefix:"PAYPAL_"`
	BrainTree Braintree `envPrefix:"BRAINTREE_"`
}

type Paypal struct {
	BaseApiURL   string `env:"BASE_API_URL" envDefault:"https://api-m.sandbox.paypal.com"`
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
}

type Braintree struct {
	Environment string `env:"ENVIRONMENT" envDefault:"sandbox"`
	MerchantID  string `env:"MERCHANT_ID"`
	PublicKey   string `env:"PUBLIC_KEY"`
	PrivateKey  string `env:"PRIVATE_KEY"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host            string        `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port            string        `env:"HTTP_PORT" envDefault:"8080"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// Database selects the gorm dialector. URL is a DSN for mysql/postgres and a
// file path for sqlite.
type Database struct {
	Driver       string `env:"DRIVER" envDefault:"sqlite"`
	URL          string `env:"URL" envDefault:"storefront.db"`
	MaxIdleConns int    `env:"MAX_IDLE_CONNS" envDefault:"10"`
	MaxOpenConns int    `env:"MAX_OPEN_CONNS" envDefault:"50"`
}

type Auth struct {
	JWTSecret string `env:"JWT_SECRET"`
}

type Store struct {
	Currency string `env:"CURRENCY" envDefault:"USD"`
	PageSize int    `env:"PAGE_SIZE" envDefault:"12"`
	// requests per second allowed per client on the refund endpoint
	RefundRateLimit float64 `env:"REFUND_RATE_LIMIT" envDefault:"1"`
}

func (h HTTPServer) Addr() string {
	return h.Host + ":" + h.Port
}

// Load reads an optional .env file into the process environment and parses
// the configuration from it.
func Load() (*Config, error) {
	// a missing .env is fine outside development
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Store.PageSize <= 0 {
		return nil, fmt.Errorf("STORE_PAGE_SIZE must be positive, got %d", cfg.Store.PageSize)
	}

	return cfg, nil
}
