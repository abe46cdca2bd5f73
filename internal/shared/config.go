package shared

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file,
// optionally overridden by environment variables (see [Config.ApplyEnv]).
type Config struct {
	Debrid  DebridConfig  `toml:"debrid"`
	Catalog CatalogConfig `toml:"catalog"`
	Feed    FeedConfig    `toml:"feed"`
	Sync    SyncConfig    `toml:"sync"`
	Pacing  PacingConfig  `toml:"pacing"`
}

// DebridConfig contains Real-Debrid API settings.
type DebridConfig struct {
	APIToken string `toml:"api_token"`
	BaseURL  string `toml:"base_url"`
}

// CatalogConfig contains upstream catalog (YTS) settings.
type CatalogConfig struct {
	BaseURL   string  `toml:"base_url"`
	MinRating float64 `toml:"min_rating"`
	PageSize  int     `toml:"page_size"`
}

// FeedConfig contains ShowRSS feed settings.
type FeedConfig struct {
	URL string `toml:"url"`
}

// SyncConfig contains batch sync settings.
type SyncConfig struct {
	StartPage     int      `toml:"start_page"`
	MaxPages      int      `toml:"max_pages"`
	BatchSize     int      `toml:"batch_size"`
	Qualities     []string `toml:"qualities"`
	CheckpointDir string   `toml:"checkpoint_dir"`
}

// PacingConfig contains self-imposed rate limiting settings, in seconds.
type PacingConfig struct {
	SubmitInterval int `toml:"submit_interval"`
	BackoffUnit    int `toml:"backoff_unit"`
	SettleDelay    int `toml:"settle_delay"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv layers environment variables over the loaded configuration.
// A .env file in the working directory is picked up first when present
// (scheduled runs pass secrets through the environment, not the config
// file). Unset or malformed variables leave the existing value in place.
func (c *Config) ApplyEnv() {
	_ = godotenv.Load()

	if v := os.Getenv("REAL_DEBRID_API_TOKEN"); v != "" {
		c.Debrid.APIToken = v
	}
	if v := os.Getenv("SHOWRSS_URL"); v != "" {
		c.Feed.URL = v
	}
	if v := os.Getenv("YTS_BASE_URL"); v != "" {
		c.Catalog.BaseURL = v
	}
	if v := os.Getenv("MIN_RATING"); v != "" {
		if rating, err := strconv.ParseFloat(v, 64); err == nil {
			c.Catalog.MinRating = rating
		}
	}
	if v := os.Getenv("START_PAGE"); v != "" {
		if page, err := strconv.Atoi(v); err == nil {
			c.Sync.StartPage = page
		}
	}
	if v := os.Getenv("MAX_PAGES"); v != "" {
		if pages, err := strconv.Atoi(v); err == nil {
			c.Sync.MaxPages = pages
		}
	}
	if v := os.Getenv("BATCH_SIZE"); v != "" {
		if size, err := strconv.Atoi(v); err == nil {
			c.Sync.BatchSize = size
		}
	}
	if v := os.Getenv("QUALITIES"); v != "" {
		var qualities []string
		for _, q := range strings.Split(v, ",") {
			if q = strings.TrimSpace(q); q != "" {
				qualities = append(qualities, q)
			}
		}
		if len(qualities) > 0 {
			c.Sync.Qualities = qualities
		}
	}
}

// Validate checks that required settings are present. The Real-Debrid token
// is the only hard requirement; everything else has a usable default.
func (c *Config) Validate() error {
	if c.Debrid.APIToken == "" {
		return fmt.Errorf("%w: REAL_DEBRID_API_TOKEN not set", ErrMissingCredentials)
	}
	return nil
}
