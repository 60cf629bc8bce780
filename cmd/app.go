package cmd

import (
	"context"
	"fmt"
	"io"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/pytutor/internal/catalog"
	"github.com/abhisek/pytutor/internal/config"
	"github.com/abhisek/pytutor/internal/llm"
	"github.com/abhisek/pytutor/internal/logging"
	"github.com/abhisek/pytutor/internal/session"
	"github.com/abhisek/pytutor/internal/store"
	"github.com/abhisek/pytutor/internal/ui/render"
)

// app holds the dependencies a command needs. Build one with openApp and
// release it with Close.
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	db       *store.Store
	progress *store.ProgressStore
	catalog  *catalog.Catalog
	session  *session.Service
}

// loadConfig resolves configuration from the command's flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configFile, _ := cmd.Flags().GetString("config")
	return config.Load(config.Options{
		ConfigFile: configFile,
		Flags:      cmd.Flags(),
	})
}

// openApp loads configuration and opens the progress file, event log and
// content catalog.
func openApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	for _, path := range []string{cfg.Progress, cfg.EventsDB} {
		if err := store.EnsureDir(path); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	db, err := store.Open(cfg.EventsDB)
	if err != nil {
		return nil, fmt.Errorf("open event log: %w", err)
	}

	cat, err := catalog.Open(cfg.ContentDir)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("load content: %w", err)
	}

	progress := store.NewProgressStore(cfg.Progress, store.WithLogger(log))
	a := &app{
		cfg:      cfg,
		log:      log,
		db:       db,
		progress: progress,
		catalog:  cat,
	}
	a.session = session.NewService(session.Deps{
		Store:   progress,
		Catalog: cat,
		Events:  db.EventRepo(),
		Logger:  log,
	})

	log.Debug("app ready",
		zap.String("progress", cfg.Progress),
		zap.String("events_db", cfg.EventsDB),
		zap.String("config_file", cfg.ConfigFile),
		zap.String("session_id", a.session.ID()))
	return a, nil
}

// Close releases the event log and flushes the logger.
func (a *app) Close() {
	a.db.Close()
	_ = a.log.Sync()
}

// provider builds the configured LLM provider with every call recorded in
// the event log.
func (a *app) provider(ctx context.Context) (llm.Provider, error) {
	cfg := a.cfg.LLM
	p, err := llm.NewProvider(ctx, cfg, a.db.EventRepo(), a.log)
	if err != nil {
		return nil, fmt.Errorf("LLM provider not configured: %w", err)
	}
	return p, nil
}

// withApp runs fn with an open app and closes it afterwards.
func withApp(cmd *cobra.Command, fn func(a *app) error) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

// withSession is withApp for commands that change progress. The session is
// started first so the day counts toward the streak.
func withSession(cmd *cobra.Command, fn func(a *app) error) error {
	return withApp(cmd, func(a *app) error {
		start, err := a.session.Start(cmd.Context())
		if err != nil {
			return err
		}
		announceStart(cmd.OutOrStdout(), start)
		return fn(a)
	})
}

// announceStart reports a streak change and badges earned on start. A
// repeat session on the same day prints nothing.
func announceStart(w io.Writer, start session.StartResult) {
	if start.Streak.Changed() {
		lipgloss.Fprintln(w, render.Streak(start.Streak))
	}
	if len(start.NewBadges) > 0 {
		lipgloss.Fprintln(w, render.NewBadges(start.NewBadges))
	}
}
