package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/reel/internal/adapter"
	"github.com/mmcdole/reel/internal/adapter/source"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/feed"
	"github.com/mmcdole/reel/internal/shortlist"
	"github.com/mmcdole/reel/internal/store"
	"github.com/mmcdole/reel/internal/tui"
	"github.com/mmcdole/reel/internal/tui/styles"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

type flags struct {
	showVersion bool
	configPath  string
	sourceType  string
	clearCache  bool
}

func main() {
	var f flags
	flag.BoolVar(&f.showVersion, "v", false, "print version")
	flag.BoolVar(&f.showVersion, "version", false, "print version")
	flag.StringVar(&f.configPath, "config", "", "path to config file")
	flag.StringVar(&f.sourceType, "source", "", "movie source: tmdb, rottentomatoes or catalog")
	flag.BoolVar(&f.clearCache, "clear-cache", false, "remove cached pages and exit")
	flag.Parse()

	if f.showVersion {
		fmt.Printf("reel %s\n", Version)
		return
	}

	if err := run(f); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(f flags) error {
	cfg, err := adapter.LoadConfig(f.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if f.sourceType != "" {
		applySourceOverride(cfg, adapter.SourceType(f.sourceType))
	}

	logger, closer, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	} else {
		defer closer.Close()
	}
	slog.SetDefault(logger)

	logger.Info("starting reel", "version", Version, "source", cfg.Source.Type)

	if f.clearCache {
		if err := adapter.ClearCache(cfg.Cache.Dir); err != nil {
			return err
		}
		fmt.Println("✓ Cache cleared")
		return nil
	}

	if !cfg.IsConfigured() {
		return runSetupFlow(cfg, logger)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("reel needs an interactive terminal")
	}

	src, err := source.NewClientFromConfig(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create movie source: %w", err)
	}

	pages, err := store.NewPageStore(cfg.Cache.Dir, cfg.SourceID())
	if err != nil {
		// The cache is an optimization; run without persistence
		logger.Warn("page cache unavailable, using memory", "error", err)
		pages, _ = store.NewPageStore("", "")
	}
	defer pages.Close()

	svc := feed.NewService(src, pages, logger, feed.Options{
		FreshFor:   cfg.Feed.FreshFor,
		EvictAfter: cfg.Feed.EvictAfter,
	})
	list := shortlist.NewStore(logger)

	model := tui.NewModel(svc, list, tui.Options{
		Columns:           cfg.UI.GridColumns,
		Debounce:          cfg.Feed.Debounce,
		LoadMoreThreshold: cfg.Feed.LoadMoreThreshold,
		PruneInterval:     cfg.Feed.PruneInterval,
		ShowInspector:     cfg.UI.ShowOverview,
		SourceName:        sourceName(cfg.Source.Type),
		Launcher:          adapter.NewLauncher(cfg.UI.Browser, cfg.UI.BrowserArgs, logger),
		Logger:            logger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down", "shortlisted", list.Len())
	return nil
}

// applySourceOverride switches the source type, moving the URL to the new
// source's default when it still points at another source's default
func applySourceOverride(cfg *adapter.Config, t adapter.SourceType) {
	if cfg.Source.Type == t {
		return
	}
	cfg.Source.Type = t
	switch cfg.Source.URL {
	case "", adapter.DefaultTMDBURL, adapter.DefaultRottenTomatoesURL:
		switch t {
		case adapter.SourceTypeTMDB:
			cfg.Source.URL = adapter.DefaultTMDBURL
		case adapter.SourceTypeRottenTomatoes:
			cfg.Source.URL = adapter.DefaultRottenTomatoesURL
		}
	}
}

func sourceName(t adapter.SourceType) string {
	switch t {
	case adapter.SourceTypeTMDB:
		return "TMDB"
	case adapter.SourceTypeRottenTomatoes:
		return "Rotten Tomatoes"
	case adapter.SourceTypeCatalog:
		return "Local catalog"
	default:
		return string(t)
	}
}

// runSetupFlow handles the initial setup when not configured
func runSetupFlow(cfg *adapter.Config, logger *slog.Logger) error {
	fmt.Println()
	fmt.Println("Welcome to Reel!")
	fmt.Println()

	switch {
	case source.NeedsToken(cfg.Source.Type):
		fmt.Println("Reel browses TMDB with your API key or read access token.")
		fmt.Println("Create one at https://www.themoviedb.org/settings/api")
		fmt.Println("(Or run with -source rottentomatoes to browse without a key.)")
		fmt.Println()
	case cfg.Source.Type == adapter.SourceTypeCatalog:
		return fmt.Errorf("catalog source needs source.catalog_file in the config: %w", domain.ErrNotConfigured)
	case cfg.Source.URL == "":
		return fmt.Errorf("source %q needs source.url in the config: %w", cfg.Source.Type, domain.ErrNotConfigured)
	}

	for {
		token, err := readToken("Enter your TMDB API key or token: ")
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if token == "" {
			fmt.Println("Token cannot be empty. Please try again.")
			continue
		}
		cfg.Source.Token = token

		src, err := source.NewClientFromConfig(cfg, logger)
		if err != nil {
			return fmt.Errorf("failed to create movie source: %w", err)
		}

		if err := validateWithSpinner(src); err != nil {
			fmt.Printf("✗ %v\n", err)
			fmt.Println("Please check the token and try again.")
			fmt.Println()
			continue
		}
		break
	}

	if err := adapter.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	fmt.Println("Run reel again to start browsing.")

	return nil
}

// readToken reads a secret without echo when stdin is a terminal
func readToken(prompt string) (string, error) {
	fmt.Print(prompt)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}

	input, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// validateWithSpinner checks the credentials with a visual spinner
func validateWithSpinner(src domain.PageSource) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	resultCh := make(chan error, 1)
	go func() {
		resultCh <- source.Validate(ctx, src)
	}()

	frame := 0
	fmt.Printf("\r%s Checking token...", styles.SpinnerFrames[frame])

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case err := <-resultCh:
			fmt.Print(clearSpinnerLine)
			if err != nil {
				return err
			}
			fmt.Println("✓ Token accepted")
			return nil

		case <-ticker.C:
			frame++
			fmt.Printf("\r%s Checking token...", styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])

		case <-ctx.Done():
			fmt.Print(clearSpinnerLine)
			return fmt.Errorf("validation timed out")
		}
	}
}
