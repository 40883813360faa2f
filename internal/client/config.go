package client

import (
	"errors"
	"net/url"
	"os"
	"time"
)

// Config holds the API client configuration.
type Config struct {
	APIURL  string
	Timeout time.Duration

	LogLevel  string
	LogFormat string
}

// LoadConfig reads client configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		APIURL:  getEnvString("GREATLOVEAUDIO_API_URL", "http://localhost:8000"),
		Timeout: getEnvDuration("GREATLOVEAUDIO_TIMEOUT", 2*time.Minute),

		LogLevel:  getEnvString("LOG_LEVEL", "info"),
		LogFormat: getEnvString("LOG_FORMAT", "text"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return errors.New("GREATLOVEAUDIO_API_URL cannot be empty")
	}

	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("GREATLOVEAUDIO_API_URL must be an absolute URL")
	}

	if c.Timeout <= 0 {
		return errors.New("GREATLOVEAUDIO_TIMEOUT must be positive")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.LogLevel] {
		return errors.New("LOG_LEVEL must be one of: debug, info, warn, error")
	}

	validLogFormats := map[string]bool{"text": true, "json": true, "color": true}
	if !validLogFormats[c.LogFormat] {
		return errors.New("LOG_FORMAT must be one of: text, json, color")
	}

	return nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
