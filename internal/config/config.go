package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/flexprice/paystack-bridge/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Postgres   PostgresConfig
	Paystack   PaystackConfig `validate:"required"`
	CRM        CRMConfig
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// PaystackConfig holds the gateway credentials and client settings.
// Secret keys are never logged; use Redact when a key needs to appear
// in an error message.
type PaystackConfig struct {
	APIURL        string `mapstructure:"api_url"`
	SecretKey     string `mapstructure:"secret_key"`
	PublicKey     string `mapstructure:"public_key"`
	TestSecretKey string `mapstructure:"test_secret_key"`
	TestPublicKey string `mapstructure:"test_public_key"`
	TestMode      bool   `mapstructure:"test_mode"`
	// Timeout bounds every outbound call to the gateway
	Timeout time.Duration `mapstructure:"timeout"`
}

// CRMConfig points back at the hosting billing application
type CRMConfig struct {
	// InvoiceURL is the base URL browsers are sent to after a redirect
	// callback, e.g. https://billing.example.com/invoice
	InvoiceURL string `mapstructure:"invoice_url"`
	// CallbackURL is the URL Paystack redirects to after checkout
	CallbackURL string `mapstructure:"callback_url"`
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	// Load .env if present; env vars win over the config file
	_ = godotenv.Load()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/paystack-bridge")

	v.SetEnvPrefix("BRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	v.SetDefault("deployment.mode", types.ModeAPI)
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", types.LogLevelInfo)
	v.SetDefault("paystack.api_url", "https://api.paystack.co")
	v.SetDefault("paystack.timeout", 10*time.Second)

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c Configuration) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	return c.Paystack.Validate()
}

// Validate fails fast on missing or malformed credentials so a
// misconfigured bridge refuses to start rather than rejecting every
// webhook at runtime.
func (c PaystackConfig) Validate() error {
	if c.TestMode {
		if !strings.HasPrefix(c.TestSecretKey, "sk_test_") {
			return fmt.Errorf("paystack test secret key must start with 'sk_test_', got %q", Redact(c.TestSecretKey))
		}
		return nil
	}
	if !strings.HasPrefix(c.SecretKey, "sk_live_") {
		return fmt.Errorf("paystack secret key must start with 'sk_live_', got %q", Redact(c.SecretKey))
	}
	return nil
}

// ActiveSecretKey returns the secret key for the configured mode
func (c PaystackConfig) ActiveSecretKey() string {
	if c.TestMode {
		return c.TestSecretKey
	}
	return c.SecretKey
}

// ActivePublicKey returns the public key for the configured mode
func (c PaystackConfig) ActivePublicKey() string {
	if c.TestMode {
		return c.TestPublicKey
	}
	return c.PublicKey
}

// Redact keeps the key prefix for diagnostics and hides the rest
func Redact(key string) string {
	if len(key) <= 8 {
		return "***"
	}
	return key[:8] + "***"
}

// GetDefaultConfig returns a default configuration for local development
// and tests; the placeholder keys satisfy the prefix check only.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Paystack: PaystackConfig{
			APIURL:        "https://api.paystack.co",
			TestMode:      true,
			TestSecretKey: "sk_test_placeholder",
			TestPublicKey: "pk_test_placeholder",
			Timeout:       10 * time.Second,
		},
	}
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User,
		c.Password,
		c.DBName,
		c.Host,
		c.Port,
		c.SSLMode,
	)
}
