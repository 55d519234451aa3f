package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/five82/dreamline/internal/config"
	"github.com/five82/dreamline/internal/form"
	"github.com/five82/dreamline/internal/interpret"
	"github.com/five82/dreamline/internal/logging"
	"github.com/five82/dreamline/internal/prefs"
	"github.com/five82/dreamline/internal/state"
	"github.com/five82/dreamline/internal/ui"
)

// Options configure the dreamline terminal application.
type Options struct {
	ConfigPath string
	PrefsPath  string        // empty uses default ~/.config/dreamline/prefs.toml
	ProbeEvery time.Duration // zero uses default
}

// Session is a wired client-side form: the controller plus the store it
// renders into.
type Session struct {
	Config     config.Config
	Client     *interpret.Client
	Store      *state.Store
	Controller *form.Controller
	Logger     *zap.Logger
}

// NewSession loads configuration and wires client, store and controller.
// The caller owns logger and should Sync it when done.
func NewSession(configPath string, logger *zap.Logger) (*Session, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return newSession(cfg, logger)
}

func newSession(cfg config.Config, logger *zap.Logger) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := interpret.NewClient(cfg.APIURL, interpret.WithTimeout(cfg.RequestTimeout))
	if err != nil {
		return nil, fmt.Errorf("init interpret client: %w", err)
	}

	store := &state.Store{}
	ctrl, err := form.NewController(client, store, store,
		form.WithLogger(logger),
		form.WithTimeout(cfg.RequestTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("init form controller: %w", err)
	}

	return &Session{
		Config:     cfg,
		Client:     client,
		Store:      store,
		Controller: ctrl,
		Logger:     logger,
	}, nil
}

// Run boots the dreamline TUI until the user quits or the context is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logPath := cfg.ClientLogPath()
	logger, err := logging.New(logging.Config{
		Level:      "info",
		Encoding:   "console",
		OutputPath: logPath,
	})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		logger.Warn("prefs unreadable, using defaults", zap.Error(err))
	}

	session, err := newSession(cfg, logger)
	if err != nil {
		return err
	}
	logger.Info("dreamline starting",
		zap.String("api_url", session.Client.BaseURL()),
		zap.Duration("request_timeout", cfg.RequestTimeout),
	)

	StartProbe(ctx, session.Store, session.Client, opts.ProbeEvery, logger)

	err = ui.Run(ui.Options{
		Context:   ctx,
		Submitter: session.Controller,
		Store:     session.Store,
		APIURL:    session.Client.BaseURL(),
		LogPath:   logPath,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
		Logger:    logger,
	})
	logger.Info("dreamline stopped")
	return err
}
