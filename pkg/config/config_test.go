package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	// Test default values
	if config.RateLimit.RequestsPerMinute != 60 {
		t.Errorf("Expected default requests per minute to be 60, got %d", config.RateLimit.RequestsPerMinute)
	}

	if config.Draw.MaxCommentPages != 20 {
		t.Errorf("Expected default max comment pages to be 20, got %d", config.Draw.MaxCommentPages)
	}

	if config.Server.Port != "8080" {
		t.Errorf("Expected default server port to be 8080, got %s", config.Server.Port)
	}

	if config.HTTP.Timeout != 30*time.Second {
		t.Errorf("Expected default HTTP timeout to be 30s, got %v", config.HTTP.Timeout)
	}

	if config.HasCredentials() {
		t.Error("Expected default config to have no credentials")
	}
}

func TestLoadFromEnv(t *testing.T) {
	// Set test environment variables
	os.Setenv("INSTAGRAM_USERNAME", "env-account")
	os.Setenv("INSTAGRAM_PASSWORD", "env-password")
	os.Setenv("IGDRAW_PORT", "9090")
	os.Setenv("IGDRAW_REQUESTS_PER_MINUTE", "30")
	os.Setenv("IGDRAW_LOG_LEVEL", "debug")

	defer func() {
		// Clean up environment variables
		os.Unsetenv("INSTAGRAM_USERNAME")
		os.Unsetenv("INSTAGRAM_PASSWORD")
		os.Unsetenv("IGDRAW_PORT")
		os.Unsetenv("IGDRAW_REQUESTS_PER_MINUTE")
		os.Unsetenv("IGDRAW_LOG_LEVEL")
	}()

	config := DefaultConfig()
	err := config.LoadFromEnv()
	if err != nil {
		t.Fatalf("Failed to load from environment: %v", err)
	}

	// Test loaded values
	if config.Instagram.Username != "env-account" {
		t.Errorf("Expected username to be env-account, got %s", config.Instagram.Username)
	}

	if config.Instagram.Password != "env-password" {
		t.Errorf("Expected password to be env-password, got %s", config.Instagram.Password)
	}

	if config.Server.Port != "9090" {
		t.Errorf("Expected server port to be 9090, got %s", config.Server.Port)
	}

	if config.RateLimit.RequestsPerMinute != 30 {
		t.Errorf("Expected requests per minute to be 30, got %d", config.RateLimit.RequestsPerMinute)
	}

	if config.Logging.Level != "debug" {
		t.Errorf("Expected log level to be debug, got %s", config.Logging.Level)
	}

	if !config.HasCredentials() {
		t.Error("Expected credentials to be configured from environment")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantError bool
	}{
		{
			name:      "valid defaults",
			mutate:    func(c *Config) {},
			wantError: false,
		},
		{
			name: "missing credentials is still valid",
			mutate: func(c *Config) {
				c.Instagram.Username = ""
				c.Instagram.Password = ""
			},
			wantError: false,
		},
		{
			name: "missing server port",
			mutate: func(c *Config) {
				c.Server.Port = ""
			},
			wantError: true,
		},
		{
			name: "zero max comment pages",
			mutate: func(c *Config) {
				c.Draw.MaxCommentPages = 0
			},
			wantError: true,
		},
		{
			name: "negative max retries",
			mutate: func(c *Config) {
				c.HTTP.MaxRetries = -1
			},
			wantError: true,
		},
		{
			name: "invalid log level",
			mutate: func(c *Config) {
				c.Logging.Level = "verbose"
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)
			err := config.Validate()
			if (err != nil) != tt.wantError {
				t.Errorf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestMergeCommandLineFlags(t *testing.T) {
	config := DefaultConfig()

	flags := map[string]interface{}{
		"username":  "flag-account",
		"password":  "flag-password",
		"port":      "7070",
		"log-level": "error",
	}

	config.MergeCommandLineFlags(flags)

	// Test merged values
	if config.Instagram.Username != "flag-account" {
		t.Errorf("Expected username to be flag-account, got %s", config.Instagram.Username)
	}

	if config.Instagram.Password != "flag-password" {
		t.Errorf("Expected password to be flag-password, got %s", config.Instagram.Password)
	}

	if config.Server.Port != "7070" {
		t.Errorf("Expected server port to be 7070, got %s", config.Server.Port)
	}

	if config.Logging.Level != "error" {
		t.Errorf("Expected log level to be error, got %s", config.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.yaml")

	content := []byte(`
instagram:
  username: file-account
  password: file-password
server:
  port: "6060"
draw:
  max_comment_pages: 10
`)
	if err := os.WriteFile(configPath, content, 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	config := DefaultConfig()
	if err := config.LoadFromFile(configPath); err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if config.Instagram.Username != "file-account" {
		t.Errorf("Expected loaded username to be file-account, got %s", config.Instagram.Username)
	}

	if config.Server.Port != "6060" {
		t.Errorf("Expected loaded server port to be 6060, got %s", config.Server.Port)
	}

	if config.Draw.MaxCommentPages != 10 {
		t.Errorf("Expected loaded max comment pages to be 10, got %d", config.Draw.MaxCommentPages)
	}

	// Unset fields keep their defaults
	if config.RateLimit.RequestsPerMinute != 60 {
		t.Errorf("Expected requests per minute to keep default 60, got %d", config.RateLimit.RequestsPerMinute)
	}
}

func TestAddr(t *testing.T) {
	config := DefaultConfig()
	config.Server.Host = "127.0.0.1"
	config.Server.Port = "8081"

	if config.Addr() != "127.0.0.1:8081" {
		t.Errorf("Expected addr to be 127.0.0.1:8081, got %s", config.Addr())
	}
}
