package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds process-level settings sourced from the environment.
// Collaborator credentials are optional: a missing Twilio credential
// degrades outbound SMS, it never stops the server.
type Config struct {
	Port       string
	Env        string
	ConfigPath string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string
	PlumberCell      string
	TestCellOnly     string
}

// Load loads configuration from environment variables only.
func Load() (*Config, error) {
	return LoadWithFile("")
}

// LoadWithFile loads configuration from an optional .env file and environment variables.
func LoadWithFile(envFile string) (*Config, error) {
	// Attempt to load .env file if provided, but don't fail if it doesn't exist.
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	cfg := &Config{
		Port:             getEnvOrDefault("PORT", "8080"),
		Env:              getEnvOrDefault("ENV", "production"),
		ConfigPath:       getEnvOrDefault("CONFIG_PATH", "data/dispatch_config.toml"),
		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber: os.Getenv("TWILIO_PHONE_NUMBER"),
		PlumberCell:      os.Getenv("PLUMBER_CELL_PHONE"),
		TestCellOnly:     os.Getenv("TEST_CELL_PHONE"),
	}

	return cfg, nil
}

// SMSConfigured reports whether every Twilio setting needed for outbound
// texts is present.
func (c *Config) SMSConfigured() bool {
	return c.TwilioAccountSID != "" &&
		c.TwilioAuthToken != "" &&
		c.TwilioFromNumber != "" &&
		c.PlumberCell != ""
}

// getEnvOrDefault returns the environment value or a default if unset.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
