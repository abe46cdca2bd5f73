package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Catalog.BaseURL != "https://yts.lt/api/v2" {
			t.Errorf("expected catalog base URL https://yts.lt/api/v2, got %s", config.Catalog.BaseURL)
		}

		if config.Catalog.PageSize != 50 {
			t.Errorf("expected page size 50, got %d", config.Catalog.PageSize)
		}

		if config.Sync.BatchSize != 500 {
			t.Errorf("expected batch size 500, got %d", config.Sync.BatchSize)
		}

		// 0 defers to the checkpoint; a positive default would silently
		// restart every bulk run from page 1.
		if config.Sync.StartPage != 0 {
			t.Errorf("expected start page 0 (resume from checkpoint), got %d", config.Sync.StartPage)
		}

		if len(config.Sync.Qualities) != 2 || config.Sync.Qualities[0] != "2160p" {
			t.Errorf("expected qualities [2160p 1080p], got %v", config.Sync.Qualities)
		}

		if config.Pacing.BackoffUnit != 10 {
			t.Errorf("expected backoff unit 10, got %d", config.Pacing.BackoffUnit)
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
		if config.Debrid.BaseURL != defaultConfig.Debrid.BaseURL {
			t.Errorf("created config debrid base URL doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[debrid]
api_token = "tok_123"

[catalog]
base_url = "https://yts.example/api/v2"
min_rating = 6.5
page_size = 25

[sync]
start_page = 3
batch_size = 10
qualities = ["1080p"]
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Debrid.APIToken != "tok_123" {
			t.Errorf("expected token tok_123, got %s", config.Debrid.APIToken)
		}

		if config.Catalog.MinRating != 6.5 {
			t.Errorf("expected min rating 6.5, got %f", config.Catalog.MinRating)
		}

		if config.Sync.StartPage != 3 {
			t.Errorf("expected start page 3, got %d", config.Sync.StartPage)
		}
	})

	t.Run("LoadConfig missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("ApplyEnv", func(t *testing.T) {
		t.Setenv("REAL_DEBRID_API_TOKEN", "env_token")
		t.Setenv("MIN_RATING", "7.2")
		t.Setenv("START_PAGE", "42")
		t.Setenv("MAX_PAGES", "not-a-number")
		t.Setenv("QUALITIES", "720p, 1080p")

		config := DefaultConfig()
		originalMaxPages := config.Sync.MaxPages
		config.ApplyEnv()

		if config.Debrid.APIToken != "env_token" {
			t.Errorf("expected env token, got %s", config.Debrid.APIToken)
		}

		if config.Catalog.MinRating != 7.2 {
			t.Errorf("expected min rating 7.2, got %f", config.Catalog.MinRating)
		}

		if config.Sync.StartPage != 42 {
			t.Errorf("expected start page 42, got %d", config.Sync.StartPage)
		}

		if config.Sync.MaxPages != originalMaxPages {
			t.Errorf("malformed MAX_PAGES should keep existing value, got %d", config.Sync.MaxPages)
		}

		if len(config.Sync.Qualities) != 2 || config.Sync.Qualities[0] != "720p" || config.Sync.Qualities[1] != "1080p" {
			t.Errorf("expected qualities [720p 1080p], got %v", config.Sync.Qualities)
		}
	})

	t.Run("Validate", func(t *testing.T) {
		config := DefaultConfig()
		if err := config.Validate(); !errors.Is(err, ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}

		config.Debrid.APIToken = "tok"
		if err := config.Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})
}
