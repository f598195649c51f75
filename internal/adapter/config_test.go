package adapter

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, SourceTypeTMDB, cfg.Source.Type)
	assert.Equal(t, 300*time.Millisecond, cfg.Feed.Debounce)
	assert.Equal(t, 5*time.Minute, cfg.Feed.FreshFor)
	assert.Equal(t, 10*time.Minute, cfg.Feed.EvictAfter)
	assert.InDelta(t, 0.3, cfg.Feed.LoadMoreThreshold, 1e-9)
	assert.Equal(t, 2, cfg.UI.GridColumns)
	assert.False(t, cfg.IsConfigured(), "tmdb needs a token")
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfig(t, `
source:
  type: catalog
  catalog_file: /tmp/movies.json
  page_size: 10
feed:
  debounce: 500ms
  fresh_for: 1m
  load_more_threshold: 0.5
ui:
  grid_columns: 3
  browser: firefox
  browser_args: ["--new-tab"]
cache:
  dir: ""
logging:
  level: debug
`)

	cfg, err := loadConfig(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, SourceTypeCatalog, cfg.Source.Type)
	assert.Equal(t, "/tmp/movies.json", cfg.Source.CatalogFile)
	assert.Equal(t, 10, cfg.Source.PageSize)
	assert.Equal(t, 500*time.Millisecond, cfg.Feed.Debounce)
	assert.Equal(t, time.Minute, cfg.Feed.FreshFor)
	assert.Equal(t, 10*time.Minute, cfg.Feed.EvictAfter, "unset keys keep defaults")
	assert.InDelta(t, 0.5, cfg.Feed.LoadMoreThreshold, 1e-9)
	assert.Equal(t, 3, cfg.UI.GridColumns)
	assert.Equal(t, "firefox", cfg.UI.Browser)
	assert.Equal(t, []string{"--new-tab"}, cfg.UI.BrowserArgs)
	assert.Equal(t, "", cfg.Cache.Dir)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.IsConfigured())
}

func TestLoadConfigFallbacks(t *testing.T) {
	path := writeConfig(t, `
source:
  type: rottentomatoes
feed:
  debounce: 0s
  load_more_threshold: 4
ui:
  grid_columns: 0
`)

	cfg, err := loadConfig(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, DefaultRottenTomatoesURL, cfg.Source.URL)
	assert.Equal(t, 300*time.Millisecond, cfg.Feed.Debounce)
	assert.InDelta(t, 0.3, cfg.Feed.LoadMoreThreshold, 1e-9)
	assert.Equal(t, 2, cfg.UI.GridColumns)
	assert.True(t, cfg.IsConfigured())
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("REEL_SOURCE_TOKEN", "secret")
	t.Setenv("REEL_FEED_DEBOUNCE", "1s")

	path := writeConfig(t, "source:\n  type: tmdb\n")
	cfg, err := loadConfig(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.Source.Token)
	assert.Equal(t, time.Second, cfg.Feed.Debounce)
	assert.True(t, cfg.IsConfigured())
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := loadConfig(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()

	cfg := DefaultConfig()
	cfg.Source.Token = "abc123"
	cfg.Feed.Debounce = 250 * time.Millisecond
	cfg.UI.GridColumns = 4

	require.NoError(t, saveConfig(viper.New(), cfg, dir))

	loaded, err := loadConfig(viper.New(), filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "abc123", loaded.Source.Token)
	assert.Equal(t, 250*time.Millisecond, loaded.Feed.Debounce)
	assert.Equal(t, 4, loaded.UI.GridColumns)
	assert.Equal(t, cfg.Cache.Dir, loaded.Cache.Dir)
}

func TestSourceID(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "tmdb:"+DefaultTMDBURL, cfg.SourceID())

	cfg.Source.Type = SourceTypeCatalog
	cfg.Source.CatalogFile = "movies.json"
	assert.Equal(t, "catalog:movies.json", cfg.SourceID())
}

func TestClearCache(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "abc"), 0755))

	require.NoError(t, ClearCache(dir))
	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, ClearCache(""))
}
