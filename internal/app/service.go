// Package service provides the core business service tying the event
// store to the scoring engine and the level classifier.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/steady/internal/adapters/repository"
	"github.com/okian/steady/internal/domain/level"
	"github.com/okian/steady/internal/domain/model"
	"github.com/okian/steady/internal/domain/scoring"
	"github.com/okian/steady/internal/domain/types"
	"github.com/okian/steady/pkg/logger"
	"github.com/okian/steady/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultHistoryLimit = 20
)

// Service coordinates the event store, the scoring engine and the level
// classifier. Mutations are serialized; every edit or delete triggers a
// full delta recompute that is swapped into the store atomically, so the
// audit trail of deltas is never a mix of stale and fresh values.
type Service struct {
	mu sync.Mutex

	store  repository.Store
	engine *scoring.Engine

	historyLimit int
	loc          *time.Location

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the event store backing the service.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithLocation pins the scoring engine's calendar-day timezone.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithHistoryLimit bounds the recent-history view.
func WithHistoryLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.historyLimit = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service with default configuration. Without WithStore
// it starts on an empty in-memory store.
func New(ctx context.Context, opts ...Option) (*Service, error) {
	s := &Service{
		historyLimit: defaultHistoryLimit,
		loc:          time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	s.engine = scoring.NewEngine(scoring.WithLocation(s.loc))

	if s.store == nil {
		store, err := repository.NewTreapStore(ctx)
		if err != nil {
			return nil, fmt.Errorf("init store: %w", err)
		}
		s.store = store
	}

	s.refreshGauges(ctx)
	return s, nil
}

// Record validates, scores and appends a new activity event. The delta is
// attached immediately from the strictly earlier history; a backdated
// event additionally triggers a full recompute because later events'
// deltas can depend on it.
func (s *Service) Record(ctx context.Context, t model.EventType, at time.Time, value int) (model.ActivityEvent, error) {
	if !t.Valid() {
		return model.ActivityEvent{}, fmt.Errorf("%w: %q", ErrUnknownEventType, t)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ev := model.ActivityEvent{Type: t, TS: at, Value: value}
	ev, err := s.store.Append(ctx, ev)
	if err != nil {
		return model.ActivityEvent{}, fmt.Errorf("append event: %w", err)
	}
	metrics.RecordEventRecorded(string(t))
	metrics.RecordMutation("append")

	all := s.store.All(ctx)
	if backdated(all, ev) {
		if err := s.recomputeLocked(ctx, "backdated append"); err != nil {
			return model.ActivityEvent{}, err
		}
		ev, err = s.store.Get(ctx, ev.ID)
		if err != nil {
			return model.ActivityEvent{}, fmt.Errorf("reload event: %w", err)
		}
	} else {
		ev.ScoreDelta = s.engine.ComputeDelta(ctx, ev, all)
		if err := s.store.Update(ctx, ev); err != nil {
			return model.ActivityEvent{}, fmt.Errorf("attach delta: %w", err)
		}
	}

	s.logger.Debug(ctx, "event recorded",
		logger.Int64("id", ev.ID),
		logger.String("type", string(ev.Type)),
		logger.Time("ts", ev.TS),
		logger.Float64("delta", ev.ScoreDelta),
	)
	s.refreshGauges(ctx)
	return ev, nil
}

// backdated reports whether ev is not the chronological maximum of all.
func backdated(all []model.ActivityEvent, ev model.ActivityEvent) bool {
	for _, e := range all {
		if e.ID != ev.ID && ev.Before(e) {
			return true
		}
	}
	return false
}

// Edit replaces the event with ev's id and replays the whole history.
func (s *Service) Edit(ctx context.Context, ev model.ActivityEvent) (model.ActivityEvent, error) {
	if !ev.Type.Valid() {
		return model.ActivityEvent{}, fmt.Errorf("%w: %q", ErrUnknownEventType, ev.Type)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Update(ctx, ev); err != nil {
		return model.ActivityEvent{}, fmt.Errorf("update event: %w", err)
	}
	metrics.RecordMutation("update")

	if err := s.recomputeLocked(ctx, "edit"); err != nil {
		return model.ActivityEvent{}, err
	}
	s.refreshGauges(ctx)
	return s.store.Get(ctx, ev.ID)
}

// Remove deletes the event with the given id and replays the history.
func (s *Service) Remove(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	metrics.RecordMutation("delete")

	if err := s.recomputeLocked(ctx, "delete"); err != nil {
		return err
	}
	s.refreshGauges(ctx)
	return nil
}

// Recompute re-derives every stored delta from scratch. Safe to call on
// an unchanged history; the result is identical.
func (s *Service) Recompute(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.recomputeLocked(ctx, "explicit"); err != nil {
		return err
	}
	s.refreshGauges(ctx)
	return nil
}

// recomputeLocked performs one full replay and swaps the store contents
// in a single ReplaceAll. Caller must hold s.mu.
func (s *Service) recomputeLocked(ctx context.Context, reason string) error {
	passID := uuid.NewString()
	start := time.Now()

	refreshed := s.engine.RecomputeAll(ctx, s.store.All(ctx))
	if err := s.store.ReplaceAll(ctx, refreshed); err != nil {
		return fmt.Errorf("recompute pass %s: %w", passID, err)
	}

	ms := float64(time.Since(start).Milliseconds())
	metrics.RecordRecomputePass()
	metrics.RecordMutation("replay")
	metrics.ObserveRecomputeDuration(ms)
	s.logger.Info(ctx, "recompute pass complete",
		logger.String("pass", passID),
		logger.String("reason", reason),
		logger.Int("events", len(refreshed)),
		logger.Float64("duration_ms", ms),
	)
	return nil
}

// Summary returns the current aggregate score and severity band.
func (s *Service) Summary(ctx context.Context) types.Summary {
	events := s.store.All(ctx)
	score := s.engine.ComputeTotal(ctx, events)
	lv := level.Classify(score)
	return types.Summary{
		Score:  score,
		Level:  int(lv),
		Label:  lv.Label(),
		Events: len(events),
	}
}

// History returns up to n recent events with their stored deltas, oldest
// first. n <= 0 falls back to the configured history limit.
func (s *Service) History(ctx context.Context, n int) ([]types.HistoryEntry, error) {
	if n <= 0 {
		n = s.historyLimit
	}
	recent, err := s.store.Recent(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}

	entries := make([]types.HistoryEntry, len(recent))
	for i, ev := range recent {
		entries[i] = types.HistoryEntry{
			ID:        ev.ID,
			Type:      string(ev.Type),
			Timestamp: ev.TS,
			Value:     ev.Value,
			Delta:     ev.ScoreDelta,
		}
	}
	return entries, nil
}

// Get returns the stored event with the given id.
func (s *Service) Get(ctx context.Context, id int64) (model.ActivityEvent, error) {
	return s.store.Get(ctx, id)
}

// Events returns the full stored history in processing order, e.g. for
// persisting to the event log.
func (s *Service) Events(ctx context.Context) []model.ActivityEvent {
	return s.store.All(ctx)
}

// refreshGauges pushes the derived state to the metrics gauges.
func (s *Service) refreshGauges(ctx context.Context) {
	sum := s.Summary(ctx)
	metrics.UpdateScore(sum.Score)
	metrics.UpdateLevel(sum.Level)
}
