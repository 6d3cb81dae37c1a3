package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the giveaway service
type Config struct {
	// Instagram account credentials
	Instagram InstagramConfig `yaml:"instagram" json:"instagram"`

	// HTTP API server settings
	Server ServerConfig `yaml:"server" json:"server"`

	// Draw settings
	Draw DrawConfig `yaml:"draw" json:"draw"`

	// Outbound HTTP settings
	HTTP HTTPConfig `yaml:"http" json:"http"`

	// Rate limiting for comment pagination
	RateLimit RateLimitConfig `yaml:"rate_limit" json:"rate_limit"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// InstagramConfig holds the account used to read post comments
type InstagramConfig struct {
	Username  string `yaml:"username" json:"username"`
	Password  string `yaml:"password" json:"password"`
	UserAgent string `yaml:"user_agent" json:"user_agent"`
}

// ServerConfig holds HTTP API server settings
type ServerConfig struct {
	Host string `yaml:"host" json:"host"`
	Port string `yaml:"port" json:"port"`
}

// DrawConfig holds draw behavior settings
type DrawConfig struct {
	// MaxCommentPages bounds the comment pagination loop
	MaxCommentPages int `yaml:"max_comment_pages" json:"max_comment_pages"`
}

// HTTPConfig holds outbound HTTP client settings
type HTTPConfig struct {
	Timeout    time.Duration `yaml:"timeout" json:"timeout"`
	MaxRetries int           `yaml:"max_retries" json:"max_retries"`
	RetryDelay time.Duration `yaml:"retry_delay" json:"retry_delay"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute" json:"requests_per_minute"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Instagram: InstagramConfig{
			UserAgent: "Instagram 275.0.0.27.98 Android (33/13; 420dpi; 1080x2400; samsung; SM-G991B; o1s; exynos2100; en_US)",
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: "8080",
		},
		Draw: DrawConfig{
			MaxCommentPages: 20,
		},
		HTTP: HTTPConfig{
			Timeout:    30 * time.Second,
			MaxRetries: 3,
			RetryDelay: 2 * time.Second,
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 60,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	// Instagram credentials
	if username := os.Getenv("INSTAGRAM_USERNAME"); username != "" {
		c.Instagram.Username = username
	}
	if password := os.Getenv("INSTAGRAM_PASSWORD"); password != "" {
		c.Instagram.Password = password
	}
	if userAgent := os.Getenv("IGDRAW_USER_AGENT"); userAgent != "" {
		c.Instagram.UserAgent = userAgent
	}

	// Server
	if host := os.Getenv("IGDRAW_HOST"); host != "" {
		c.Server.Host = host
	}
	if port := os.Getenv("IGDRAW_PORT"); port != "" {
		c.Server.Port = port
	}

	// Rate limiting
	if rpm := os.Getenv("IGDRAW_REQUESTS_PER_MINUTE"); rpm != "" {
		var val int
		fmt.Sscanf(rpm, "%d", &val)
		if val > 0 {
			c.RateLimit.RequestsPerMinute = val
		}
	}

	// Logging level
	if logLevel := os.Getenv("IGDRAW_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	return nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	// Check in order of precedence
	locations := []string{
		".igdraw.yaml",
		".igdraw.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "igdraw", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".config", "igdraw", "config.yml"),
		filepath.Join(os.Getenv("HOME"), ".igdraw.yaml"),
		filepath.Join(os.Getenv("HOME"), ".igdraw.yml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid.
// Credentials are deliberately not required here: a missing account is a
// request-time error reported to the caller, not a startup failure.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port == "" {
		errs = append(errs, errors.New("server port is required"))
	}

	if c.Draw.MaxCommentPages <= 0 {
		errs = append(errs, errors.New("max comment pages must be positive"))
	}

	if c.HTTP.Timeout <= 0 {
		errs = append(errs, errors.New("HTTP timeout must be positive"))
	}
	if c.HTTP.MaxRetries < 0 {
		errs = append(errs, errors.New("max retries cannot be negative"))
	}

	if c.RateLimit.RequestsPerMinute <= 0 {
		errs = append(errs, errors.New("requests per minute must be positive"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// HasCredentials reports whether an Instagram account is configured
func (c *Config) HasCredentials() bool {
	return c.Instagram.Username != "" && c.Instagram.Password != ""
}

// Addr returns the host:port the API server should listen on
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// MergeCommandLineFlags merges command line flags into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if username, ok := flags["username"].(string); ok && username != "" {
		c.Instagram.Username = username
	}
	if password, ok := flags["password"].(string); ok && password != "" {
		c.Instagram.Password = password
	}
	if port, ok := flags["port"].(string); ok && port != "" {
		c.Server.Port = port
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// Try to load .env files (don't fail if they don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".igdraw.env"))

	// Start with defaults
	config := DefaultConfig()

	// Load from config file
	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	// Override with environment variables (includes values from .env)
	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Override with command line flags
	config.MergeCommandLineFlags(flags)

	// Validate final configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
