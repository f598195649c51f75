package source

import (
	"fmt"
	"log/slog"

	"github.com/mmcdole/reel/internal/adapter"
	"github.com/mmcdole/reel/internal/adapter/source/catalog"
	"github.com/mmcdole/reel/internal/adapter/source/rottentomatoes"
	"github.com/mmcdole/reel/internal/adapter/source/tmdb"
	"github.com/mmcdole/reel/internal/domain"
)

// SourceConfig contains the configuration needed to create a PageSource
type SourceConfig struct {
	Type        adapter.SourceType
	URL         string
	Token       string // TMDB only
	ImageURL    string // TMDB only
	CatalogFile string // catalog only
	PageSize    int    // catalog only
}

// NewClient creates a PageSource based on the source type
func NewClient(cfg *SourceConfig, logger *slog.Logger) (domain.PageSource, error) {
	if cfg == nil {
		return nil, fmt.Errorf("source config is nil")
	}

	switch cfg.Type {
	case adapter.SourceTypeTMDB:
		if cfg.URL == "" || cfg.Token == "" {
			return nil, fmt.Errorf("tmdb requires url and token: %w", domain.ErrNotConfigured)
		}
		return tmdb.NewClient(cfg.URL, cfg.ImageURL, cfg.Token, logger), nil

	case adapter.SourceTypeRottenTomatoes:
		if cfg.URL == "" {
			return nil, fmt.Errorf("rottentomatoes requires url: %w", domain.ErrNotConfigured)
		}
		return rottentomatoes.NewClient(cfg.URL, logger), nil

	case adapter.SourceTypeCatalog:
		if cfg.CatalogFile == "" {
			return nil, fmt.Errorf("catalog requires catalog_file: %w", domain.ErrNotConfigured)
		}
		c, err := catalog.Open(cfg.CatalogFile, cfg.PageSize, logger)
		if err != nil {
			return nil, err
		}
		return c, nil

	default:
		return nil, fmt.Errorf("unknown source type: %s", cfg.Type)
	}
}

// NewClientFromConfig creates a PageSource from the application config
func NewClientFromConfig(cfg *adapter.Config, logger *slog.Logger) (domain.PageSource, error) {
	return NewClient(&SourceConfig{
		Type:        cfg.Source.Type,
		URL:         cfg.Source.URL,
		Token:       cfg.Source.Token,
		ImageURL:    cfg.Source.ImageURL,
		CatalogFile: cfg.Source.CatalogFile,
		PageSize:    cfg.Source.PageSize,
	}, logger)
}
