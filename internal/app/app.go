package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/bookshelf/internal/catalog"
	"github.com/five82/bookshelf/internal/config"
	"github.com/five82/bookshelf/internal/prefs"
	"github.com/five82/bookshelf/internal/ui"
)

// Options configure a bookshelf run. Empty values fall back to the config
// file and its defaults.
type Options struct {
	ConfigPath string
	PrefsPath  string
	APIURL     string
	LogPath    string
}

// Run boots the TUI and blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	uiOpts, closeLog, err := prepare(ctx, opts)
	if err != nil {
		return err
	}
	defer closeLog()

	uiOpts.Logger.Info("bookshelf starting", "api", uiOpts.APIURL)
	err = ui.Run(uiOpts)
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		err = nil
	}
	if err != nil {
		uiOpts.Logger.Error("bookshelf stopped", "error", err)
		return fmt.Errorf("run ui: %w", err)
	}
	uiOpts.Logger.Info("bookshelf stopped")
	return nil
}

// prepare loads configuration and builds everything the UI needs. The
// returned func closes the log file.
func prepare(ctx context.Context, opts Options) (ui.Options, func(), error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return ui.Options{}, nil, fmt.Errorf("load config: %w", err)
	}
	if v := strings.TrimSpace(opts.APIURL); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(opts.LogPath); v != "" {
		expanded, err := config.ExpandPath(v)
		if err != nil {
			return ui.Options{}, nil, fmt.Errorf("log path: %w", err)
		}
		cfg.LogPath = expanded
	}

	logger, closeLog, err := openLog(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return ui.Options{}, nil, err
	}

	client, err := catalog.NewClient(cfg.APIURL,
		catalog.WithTimeout(cfg.RequestTimeout),
		catalog.WithLogger(logger.With("component", "catalog")),
	)
	if err != nil {
		closeLog()
		return ui.Options{}, nil, fmt.Errorf("init catalog client: %w", err)
	}

	store, err := prefs.NewStore(opts.PrefsPath)
	if err != nil {
		closeLog()
		return ui.Options{}, nil, err
	}

	return ui.Options{
		Context:   ctx,
		Catalog:   client,
		Prefs:     store,
		ThemeName: store.Load().Theme,
		LogPath:   cfg.LogPath,
		APIURL:    client.BaseURL(),
		Logger:    logger.With("component", "ui"),
	}, closeLog, nil
}

// openLog opens path for appending. The terminal belongs to the TUI, so
// nothing is ever written to stderr once the program runs.
func openLog(path string, level slog.Level) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(file, &slog.HandlerOptions{Level: level}))
	return logger, func() { _ = file.Close() }, nil
}
