package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// DefaultAllowedOrigins are the local front-end dev servers allowed by CORS.
var DefaultAllowedOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}

// Config holds all application configuration.
type Config struct {
	// HTTP settings
	HTTPPort       int
	AllowedOrigins []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxUploadSize  int64

	// Storage settings
	UploadDir string
	AudioDir  string

	// Speech settings
	DefaultVoice string

	// Event settings
	NATSURL     string
	NATSSubject string

	// Logging settings
	LogLevel  string
	LogFormat string
}

// fileConfig mirrors Config for the optional TOML file. Unset keys keep the defaults.
type fileConfig struct {
	HTTPPort       *int     `toml:"http_port"`
	AllowedOrigins []string `toml:"allowed_origins"`
	ReadTimeout    string   `toml:"read_timeout"`
	WriteTimeout   string   `toml:"write_timeout"`
	MaxUploadSize  *int64   `toml:"max_upload_size"`
	UploadDir      string   `toml:"upload_dir"`
	AudioDir       string   `toml:"audio_dir"`
	DefaultVoice   string   `toml:"default_voice"`
	NATSURL        string   `toml:"nats_url"`
	NATSSubject    string   `toml:"nats_subject"`
	LogLevel       string   `toml:"log_level"`
	LogFormat      string   `toml:"log_format"`
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		HTTPPort:       8000,
		AllowedOrigins: append([]string(nil), DefaultAllowedOrigins...),
		ReadTimeout:    60 * time.Second,
		WriteTimeout:   60 * time.Second,
		MaxUploadSize:  100 << 20,

		UploadDir: "uploads",
		AudioDir:  "audio",

		DefaultVoice: "default",

		NATSURL:     "",
		NATSSubject: "books.parsed",

		LogLevel:  "info",
		LogFormat: "text",
	}
}

// LoadDotEnv loads .env files into the process environment without
// overriding variables that are already set. With no arguments it reads ./.env.
func LoadDotEnv(filenames ...string) error {
	if err := godotenv.Load(filenames...); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// Load builds the configuration from defaults, the TOML file named by
// CONFIG_FILE (if any) and environment variables, in increasing precedence.
func Load() (*Config, error) {
	cfg := Defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if fc.HTTPPort != nil {
		c.HTTPPort = *fc.HTTPPort
	}
	if len(fc.AllowedOrigins) > 0 {
		c.AllowedOrigins = fc.AllowedOrigins
	}
	if fc.ReadTimeout != "" {
		d, err := time.ParseDuration(fc.ReadTimeout)
		if err != nil {
			return fmt.Errorf("invalid read_timeout %q: %w", fc.ReadTimeout, err)
		}
		c.ReadTimeout = d
	}
	if fc.WriteTimeout != "" {
		d, err := time.ParseDuration(fc.WriteTimeout)
		if err != nil {
			return fmt.Errorf("invalid write_timeout %q: %w", fc.WriteTimeout, err)
		}
		c.WriteTimeout = d
	}
	if fc.MaxUploadSize != nil {
		c.MaxUploadSize = *fc.MaxUploadSize
	}
	c.UploadDir = orDefault(fc.UploadDir, c.UploadDir)
	c.AudioDir = orDefault(fc.AudioDir, c.AudioDir)
	c.DefaultVoice = orDefault(fc.DefaultVoice, c.DefaultVoice)
	c.NATSURL = orDefault(fc.NATSURL, c.NATSURL)
	c.NATSSubject = orDefault(fc.NATSSubject, c.NATSSubject)
	c.LogLevel = orDefault(fc.LogLevel, c.LogLevel)
	c.LogFormat = orDefault(fc.LogFormat, c.LogFormat)

	return nil
}

func (c *Config) applyEnv() {
	c.HTTPPort = getEnvInt("HTTP_PORT", c.HTTPPort)
	c.AllowedOrigins = getEnvList("ALLOWED_ORIGINS", c.AllowedOrigins)
	c.ReadTimeout = getEnvDuration("READ_TIMEOUT", c.ReadTimeout)
	c.WriteTimeout = getEnvDuration("WRITE_TIMEOUT", c.WriteTimeout)
	c.MaxUploadSize = getEnvInt64("MAX_UPLOAD_SIZE", c.MaxUploadSize)

	c.UploadDir = getEnvString("UPLOAD_DIR", c.UploadDir)
	c.AudioDir = getEnvString("AUDIO_DIR", c.AudioDir)

	c.DefaultVoice = getEnvString("DEFAULT_VOICE", c.DefaultVoice)

	c.NATSURL = getEnvString("NATS_URL", c.NATSURL)
	c.NATSSubject = getEnvString("NATS_SUBJECT", c.NATSSubject)

	c.LogLevel = getEnvString("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnvString("LOG_FORMAT", c.LogFormat)
}

// EventsEnabled returns true if parsed-book events should be published.
func (c *Config) EventsEnabled() bool {
	return c.NATSURL != ""
}

// Validate checks that configuration values are usable.
func (c *Config) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return errors.New("HTTP_PORT must be between 1 and 65535")
	}

	if len(c.AllowedOrigins) == 0 {
		return errors.New("ALLOWED_ORIGINS must list at least one origin")
	}

	if c.ReadTimeout < 0 || c.WriteTimeout < 0 {
		return errors.New("READ_TIMEOUT and WRITE_TIMEOUT must be non-negative")
	}

	if c.MaxUploadSize < 1 {
		return errors.New("MAX_UPLOAD_SIZE must be at least 1")
	}

	if c.UploadDir == "" {
		return errors.New("UPLOAD_DIR cannot be empty")
	}

	if c.AudioDir == "" {
		return errors.New("AUDIO_DIR cannot be empty")
	}

	if c.DefaultVoice == "" {
		return errors.New("DEFAULT_VOICE cannot be empty")
	}

	if c.EventsEnabled() && c.NATSSubject == "" {
		return errors.New("NATS_SUBJECT cannot be empty when NATS_URL is set")
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

func orDefault(value, defaultValue string) string {
	if value != "" {
		return value
	}
	return defaultValue
}

// getEnvString returns the environment variable value or a default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the environment variable as an int or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvInt64 returns the environment variable as an int64 or a default.
func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration returns the environment variable as a duration or a default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getEnvList returns a comma-separated environment variable as a list or a default.
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
