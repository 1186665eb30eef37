package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/five82/showcase/internal/cache"
	"github.com/five82/showcase/internal/config"
	"github.com/five82/showcase/internal/prefs"
	"github.com/five82/showcase/internal/site"
	"github.com/five82/showcase/internal/state"
	"github.com/five82/showcase/internal/ui"
)

// Options configure the showcase application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/showcase/prefs.toml
	APIURL     string // overrides api_url from the config file
	Debug      bool
	Start      site.Resource // empty opens the home page
}

// Env bundles the collaborators shared by the TUI and the one-shot commands.
type Env struct {
	Config  config.Config
	Client  *site.Client
	Details site.DetailFetcher
	Logger  *log.Logger

	closers []io.Closer
}

// Close releases the cache and log file.
func (e *Env) Close() error {
	var first error
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	e.closers = nil
	return first
}

// Setup loads configuration and builds the client, cache and logger. Logs go
// to logOut when it is non-nil and to the application log file otherwise.
func Setup(opts Options, logOut io.Writer) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.APIURL != "" {
		if err := config.ValidateAPIURL(opts.APIURL); err != nil {
			return nil, err
		}
		cfg.APIURL = opts.APIURL
	}

	env := &Env{Config: cfg}

	if logOut == nil {
		file, err := openLogFile(cfg.LogPath())
		if err != nil {
			return nil, err
		}
		env.closers = append(env.closers, file)
		logOut = file
	}
	env.Logger = NewLogger(logOut, opts.Debug)

	client, err := site.NewClient(cfg.APIURL)
	if err != nil {
		_ = env.Close()
		return nil, fmt.Errorf("init site client: %w", err)
	}
	env.Client = client

	store, err := cache.Open(cfg.CachePath)
	if err != nil {
		env.Logger.Warn("detail cache unavailable", "path", cfg.CachePath, "error", err)
		env.Details = cache.NewDetails(nil, client, cfg.CacheTTL, env.Logger)
	} else {
		env.closers = append(env.closers, store)
		env.Details = cache.NewDetails(store, client, cfg.CacheTTL, env.Logger)
		if n, err := store.Prune(context.Background(), 7*24*time.Hour); err == nil && n > 0 {
			env.Logger.Debug("pruned detail cache", "removed", n)
		}
	}

	env.Logger.Info("showcase starting", "api", client.BaseURL(), "page_size", cfg.PageSize)
	return env, nil
}

// NewLogger returns the application logger writing logfmt to w.
func NewLogger(w io.Writer, debug bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       log.LogfmtFormatter,
		Level:           log.InfoLevel,
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return file, nil
}

// Run boots the showcase TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	env, err := Setup(opts, nil)
	if err != nil {
		return err
	}
	defer env.Close()

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	store := &state.Store{}
	StartPoller(ctx, store, env.Client, PollOptions{
		Interval:      env.Config.RefreshEvery,
		FeaturedCount: env.Config.FeaturedCount,
		NewsCount:     env.Config.HomeNewsCount,
	}, env.Logger)

	uiOpts := ui.Options{
		Context:   ctx,
		Pages:     env.Client,
		Details:   env.Details,
		Store:     store,
		Config:    env.Config,
		Logger:    env.Logger,
		ThemeName: userPrefs.Theme,
		Autoplay:  userPrefs.Autoplay,
		PrefsPath: opts.PrefsPath,
		Start:     opts.Start,
	}
	err = ui.Run(uiOpts)
	env.Logger.Info("showcase exiting", "error", err)
	return err
}
