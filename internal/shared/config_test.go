package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.API.BaseURL != "https://example.com" {
			t.Errorf("expected base URL https://example.com, got %s", config.API.BaseURL)
		}

		if config.Client.TimeoutSeconds != 30 {
			t.Errorf("expected timeout 30, got %d", config.Client.TimeoutSeconds)
		}

		if config.Client.RateLimit != 5.0 {
			t.Errorf("expected rate limit 5.0, got %f", config.Client.RateLimit)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.API.BaseURL != defaultConfig.API.BaseURL {
			t.Errorf("created config base URL doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[api]
base_url = "https://crm.example.org"
username = "admin"
password = "app-password"

[client]
timeout_seconds = 10
rate_limit = 2.5

[export]
output_dir = "/tmp/export"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.API.BaseURL != "https://crm.example.org" {
			t.Errorf("expected base URL https://crm.example.org, got %s", config.API.BaseURL)
		}

		if config.Client.TimeoutSeconds != 10 {
			t.Errorf("expected timeout 10, got %d", config.Client.TimeoutSeconds)
		}

		if config.Export.OutputDir != "/tmp/export" {
			t.Errorf("expected output dir /tmp/export, got %s", config.Export.OutputDir)
		}
	})

	t.Run("ApplyEnv", func(t *testing.T) {
		t.Setenv("FLUENT_URL", "https://env.example.com")
		t.Setenv("FLUENT_USER", "env-user")
		t.Setenv("FLUENT_PASSWORD", "env-pass")

		config := DefaultConfig()
		config.ApplyEnv()

		if config.API.BaseURL != "https://env.example.com" {
			t.Errorf("expected env base URL to win, got %s", config.API.BaseURL)
		}
		if config.API.Username != "env-user" {
			t.Errorf("expected env username to win, got %s", config.API.Username)
		}
		if config.API.Password != "env-pass" {
			t.Errorf("expected env password to win, got %s", config.API.Password)
		}
	})

	t.Run("ValidateCredentials", func(t *testing.T) {
		config := &Config{}
		if err := config.ValidateCredentials(); err == nil {
			t.Error("expected error for empty credentials")
		}

		config.API = APIConfig{BaseURL: "https://crm.example.org", Username: "u", Password: "p"}
		if err := config.ValidateCredentials(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})
}
