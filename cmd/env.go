package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/okian/steady/internal/adapters/eventlog"
	"github.com/okian/steady/internal/adapters/repository"
	app "github.com/okian/steady/internal/app"
	"github.com/okian/steady/internal/config"
	"github.com/okian/steady/pkg/logger"
	"github.com/okian/steady/pkg/metrics"
)

// cliEnv bundles everything a command needs: loaded config, the event
// log file and a service seeded from it.
type cliEnv struct {
	cfg *config.Config
	log *eventlog.File
	svc *app.Service
}

// openEnv initializes logging, loads configuration and builds a service
// over the persisted history.
func openEnv(ctx context.Context) (*cliEnv, error) {
	if err := logger.Init(os.Stderr); err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel))
		_ = logger.SetLevelString("info")
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	logFile := eventlog.New(cfg.EventLog)
	events, err := logFile.Load(ctx)
	if err != nil {
		return nil, err
	}

	store, err := repository.NewTreapStore(ctx, repository.WithEvents(events))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	svc, err := app.New(ctx,
		app.WithStore(store),
		app.WithLocation(loc),
		app.WithHistoryLimit(cfg.HistoryLimit),
	)
	if err != nil {
		return nil, err
	}

	return &cliEnv{cfg: cfg, log: logFile, svc: svc}, nil
}

// persist writes the current history back to the event log and, when
// configured, exports the metrics textfile.
func (e *cliEnv) persist(ctx context.Context) error {
	if err := e.log.Save(ctx, e.svc.Events(ctx)); err != nil {
		return err
	}
	if e.cfg.MetricsFile != "" {
		if err := metrics.WriteToFile(e.cfg.MetricsFile); err != nil {
			return fmt.Errorf("write metrics file: %w", err)
		}
	}
	return nil
}

// Accepted timestamp layouts for --at, tried in order.
var atLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseAt parses a user-entered timestamp. "now" (or empty) is the
// current time; date-only input lands at midnight in loc.
func parseAt(s string, loc *time.Location) (time.Time, error) {
	if s == "" || s == "now" {
		return time.Now(), nil
	}
	for _, layout := range atLayouts {
		if ts, err := time.ParseInLocation(layout, s, loc); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q (want RFC3339, \"2006-01-02 15:04\" or \"2006-01-02\")", s)
}
