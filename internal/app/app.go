package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/five82/contactdesk/internal/config"
	"github.com/five82/contactdesk/internal/contacts"
	"github.com/five82/contactdesk/internal/desk"
	"github.com/five82/contactdesk/internal/logging"
	"github.com/five82/contactdesk/internal/prefs"
	"github.com/five82/contactdesk/internal/state"
	"github.com/five82/contactdesk/internal/ui"
)

// Options configure a contactdesk session.
type Options struct {
	ConfigPath string
	PrefsPath  string        // empty uses ~/.config/contactdesk/prefs.toml
	BaseURL    string        // overrides config and environment
	PollEvery  time.Duration // zero uses the config value
	Verbose    bool
}

// Session holds the wired components shared by the TUI and the CLI
// subcommands.
type Session struct {
	Config config.Config
	Logger *zap.Logger
	Client *contacts.Client
	Store  *state.Store
	Desk   *desk.Desk
}

// Open loads configuration and builds the logger, client, cache, and desk.
// deskOpts are applied after the session logger.
func Open(opts Options, deskOpts ...desk.Option) (*Session, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	if opts.PollEvery > 0 {
		cfg.PollInterval = opts.PollEvery
	}

	logger, err := logging.New(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel, Verbose: opts.Verbose})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	client, err := contacts.NewClient(cfg.BaseURL,
		contacts.WithTimeout(cfg.RequestTimeout),
		contacts.WithLogger(logger),
	)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("init contacts client: %w", err)
	}

	store := &state.Store{}
	d := desk.New(client, store, append([]desk.Option{desk.WithLogger(logger)}, deskOpts...)...)

	logger.Debug("session opened",
		zap.String("base_url", client.BaseURL()),
		zap.Duration("poll", cfg.PollInterval),
	)
	return &Session{Config: cfg, Logger: logger, Client: client, Store: store, Desk: d}, nil
}

// Close flushes the logger.
func (s *Session) Close() {
	_ = s.Logger.Sync()
}

// Run boots the contactdesk TUI until the context is cancelled or the user
// quits.
func Run(ctx context.Context, opts Options) error {
	bridge := &ui.Bridge{}
	sess, err := Open(opts, desk.WithNotifier(bridge), desk.WithConfirmer(bridge))
	if err != nil {
		return err
	}
	defer sess.Close()

	userPrefs := prefs.Load(opts.PrefsPath)

	// Populate the cache before the first frame. A failure here leaves the
	// UI in its offline state rather than aborting.
	if err := sess.Desk.RefreshAll(ctx); err != nil {
		sess.Logger.Warn("initial refresh failed", zap.Error(err))
	}

	pollCtx, stopPoller := context.WithCancel(ctx)
	done := StartPoller(pollCtx, sess.Desk, sess.Config.PollInterval, bridge, sess.Logger)
	defer func() {
		stopPoller()
		<-done
	}()

	sess.Logger.Info("tui started", zap.String("base_url", sess.Client.BaseURL()))
	return ui.Run(ui.Options{
		Context:   ctx,
		Desk:      sess.Desk,
		Bridge:    bridge,
		BaseURL:   sess.Client.BaseURL(),
		LogFile:   sess.Config.LogFile,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
	})
}
