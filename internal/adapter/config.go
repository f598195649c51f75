package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// SourceType identifies the movie source backend
type SourceType string

const (
	SourceTypeTMDB           SourceType = "tmdb"
	SourceTypeRottenTomatoes SourceType = "rottentomatoes"
	SourceTypeCatalog        SourceType = "catalog"
)

// Default source endpoints
const (
	DefaultTMDBURL           = "https://api.themoviedb.org/3"
	DefaultTMDBImageURL      = "https://image.tmdb.org/t/p/w342"
	DefaultRottenTomatoesURL = "https://www.rottentomatoes.com"
)

// Config holds all application configuration
type Config struct {
	Source  SourceConfig  `mapstructure:"source"`
	Feed    FeedConfig    `mapstructure:"feed"`
	UI      UIConfig      `mapstructure:"ui"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// SourceConfig holds movie source configuration
type SourceConfig struct {
	Type        SourceType `mapstructure:"type"`         // "tmdb", "rottentomatoes" or "catalog"
	URL         string     `mapstructure:"url"`          // API or site base URL
	Token       string     `mapstructure:"token"`        // TMDB v3 API key or v4 read token
	ImageURL    string     `mapstructure:"image_url"`    // TMDB only: poster base URL
	CatalogFile string     `mapstructure:"catalog_file"` // catalog only: JSON file of movies
	PageSize    int        `mapstructure:"page_size"`    // catalog only
}

// FeedConfig holds query and paging behaviour
type FeedConfig struct {
	Debounce          time.Duration `mapstructure:"debounce"`
	FreshFor          time.Duration `mapstructure:"fresh_for"`
	EvictAfter        time.Duration `mapstructure:"evict_after"`
	LoadMoreThreshold float64       `mapstructure:"load_more_threshold"`
	PruneInterval     time.Duration `mapstructure:"prune_interval"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	GridColumns  int      `mapstructure:"grid_columns"`
	ShowOverview bool     `mapstructure:"show_overview"`
	Browser      string   `mapstructure:"browser"`      // Command that opens movie pages, empty = system default
	BrowserArgs  []string `mapstructure:"browser_args"` // Arguments placed before the URL
}

// CacheConfig holds page cache configuration
type CacheConfig struct {
	Dir string `mapstructure:"dir"` // Empty = memory only
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Type:     SourceTypeTMDB,
			URL:      DefaultTMDBURL,
			ImageURL: DefaultTMDBImageURL,
			PageSize: 20,
		},
		Feed: FeedConfig{
			Debounce:          300 * time.Millisecond,
			FreshFor:          5 * time.Minute,
			EvictAfter:        10 * time.Minute,
			LoadMoreThreshold: 0.3,
			PruneInterval:     time.Minute,
		},
		UI: UIConfig{
			GridColumns:  2,
			ShowOverview: true,
		},
		Cache: CacheConfig{
			Dir: defaultCachePath(),
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "reel", "reel.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "reel", "reel.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "reel")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "reel")
	}
}

// defaultCachePath returns the default cache directory path for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "reel", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "reel", "cache")
	}
}

// LoadConfig loads configuration from file and environment.
// A non-empty path reads that file instead of searching the default locations.
func LoadConfig(path string) (*Config, error) {
	return loadConfig(viper.GetViper(), path)
}

func loadConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	// Environment variable overrides (REEL_SOURCE_TOKEN etc.)
	v.SetEnvPrefix("REEL")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()
	bindEnvKeys(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	cfg.applyFallbacks()
	return cfg, nil
}

// applyFallbacks fills settings the file may have blanked or set out of range
func (c *Config) applyFallbacks() {
	defaults := DefaultConfig()

	if c.Source.Type == "" {
		c.Source.Type = SourceTypeTMDB
	}
	if c.Source.URL == "" {
		switch c.Source.Type {
		case SourceTypeTMDB:
			c.Source.URL = DefaultTMDBURL
		case SourceTypeRottenTomatoes:
			c.Source.URL = DefaultRottenTomatoesURL
		}
	}
	if c.Source.Type == SourceTypeRottenTomatoes && c.Source.URL == DefaultTMDBURL {
		c.Source.URL = DefaultRottenTomatoesURL
	}
	if c.Source.PageSize <= 0 {
		c.Source.PageSize = defaults.Source.PageSize
	}
	if c.Feed.Debounce <= 0 {
		c.Feed.Debounce = defaults.Feed.Debounce
	}
	if c.Feed.LoadMoreThreshold <= 0 || c.Feed.LoadMoreThreshold > 1 {
		c.Feed.LoadMoreThreshold = defaults.Feed.LoadMoreThreshold
	}
	if c.Feed.PruneInterval <= 0 {
		c.Feed.PruneInterval = defaults.Feed.PruneInterval
	}
	if c.UI.GridColumns < 1 {
		c.UI.GridColumns = defaults.UI.GridColumns
	}
}

// SaveConfig saves the current configuration to file
func SaveConfig(cfg *Config) error {
	return saveConfig(viper.GetViper(), cfg, defaultConfigPath())
}

func saveConfig(v *viper.Viper, cfg *Config, configPath string) error {
	// Ensure config directory exists
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	v.Set("source.type", cfg.Source.Type)
	v.Set("source.url", cfg.Source.URL)
	v.Set("source.token", cfg.Source.Token)
	v.Set("source.image_url", cfg.Source.ImageURL)
	v.Set("source.catalog_file", cfg.Source.CatalogFile)
	v.Set("source.page_size", cfg.Source.PageSize)

	v.Set("feed.debounce", cfg.Feed.Debounce.String())
	v.Set("feed.fresh_for", cfg.Feed.FreshFor.String())
	v.Set("feed.evict_after", cfg.Feed.EvictAfter.String())
	v.Set("feed.load_more_threshold", cfg.Feed.LoadMoreThreshold)
	v.Set("feed.prune_interval", cfg.Feed.PruneInterval.String())

	v.Set("ui.grid_columns", cfg.UI.GridColumns)
	v.Set("ui.show_overview", cfg.UI.ShowOverview)
	v.Set("ui.browser", cfg.UI.Browser)
	v.Set("ui.browser_args", cfg.UI.BrowserArgs)

	v.Set("cache.dir", cfg.Cache.Dir)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

var envKeyReplacer = strings.NewReplacer(".", "_")

// envKeys lists the keys that may be overridden from the environment.
// viper only consults the environment during Unmarshal for keys it knows about.
var envKeys = []string{
	"source.type", "source.url", "source.token", "source.image_url",
	"source.catalog_file", "source.page_size",
	"feed.debounce", "feed.fresh_for", "feed.evict_after",
	"feed.load_more_threshold", "feed.prune_interval",
	"ui.grid_columns", "ui.show_overview", "ui.browser",
	"cache.dir",
	"logging.file", "logging.level",
}

func bindEnvKeys(v *viper.Viper) {
	for _, key := range envKeys {
		v.BindEnv(key)
	}
}

// IsConfigured returns true if the selected source has what it needs to run
func (c *Config) IsConfigured() bool {
	switch c.Source.Type {
	case SourceTypeTMDB:
		return c.Source.URL != "" && c.Source.Token != ""
	case SourceTypeRottenTomatoes:
		return c.Source.URL != ""
	case SourceTypeCatalog:
		return c.Source.CatalogFile != ""
	default:
		return false
	}
}

// SourceID identifies the configured source for cache partitioning
func (c *Config) SourceID() string {
	switch c.Source.Type {
	case SourceTypeCatalog:
		return string(c.Source.Type) + ":" + c.Source.CatalogFile
	default:
		return string(c.Source.Type) + ":" + c.Source.URL
	}
}

// ClearCache removes all cached data
func ClearCache(dir string) error {
	if dir == "" {
		return nil
	}
	if err := os.RemoveAll(dir); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

// GetCachePath returns the default cache directory path
func GetCachePath() string {
	return defaultCachePath()
}
