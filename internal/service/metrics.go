package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/fitdeck/internal/domain"
)

// MetricService records and reads body metrics
type MetricService struct {
	store  domain.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewMetricService creates a new metric service. A nil clock uses time.Now.
func NewMetricService(store domain.Store, logger *slog.Logger, now func() time.Time) *MetricService {
	if logger == nil {
		logger = slog.Default()
	}
	if now == nil {
		now = time.Now
	}
	return &MetricService{
		store:  store,
		logger: logger,
		now:    now,
	}
}

// List returns every catalog metric joined with its latest reading
func (s *MetricService) List(ctx context.Context) ([]domain.Metric, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	latest, err := s.store.LatestEntries()
	if err != nil {
		return nil, fmt.Errorf("reading latest metrics: %w", err)
	}

	defs := domain.Catalog()
	metrics := make([]domain.Metric, len(defs))
	for i, def := range defs {
		metrics[i] = withLatest(def, latest)
	}
	return metrics, nil
}

// Get returns one metric with its latest reading
func (s *MetricService) Get(ctx context.Context, id string) (domain.Metric, error) {
	def, ok := domain.LookupMetric(id)
	if !ok {
		return domain.Metric{}, fmt.Errorf("%w: %q", domain.ErrUnknownMetric, id)
	}
	if err := ctx.Err(); err != nil {
		return domain.Metric{}, err
	}
	latest, err := s.store.LatestEntries()
	if err != nil {
		return domain.Metric{}, fmt.Errorf("reading latest metrics: %w", err)
	}
	return withLatest(def, latest), nil
}

func withLatest(def domain.MetricDef, latest map[string]domain.MetricEntry) domain.Metric {
	m := domain.Metric{MetricDef: def}
	if e, ok := latest[def.ID]; ok {
		m.Value = e.Value
		m.UpdatedAt = e.RecordedAt
		m.HasData = true
	}
	return m
}

// History returns a metric's readings, newest first
func (s *MetricService) History(ctx context.Context, id string) ([]domain.MetricEntry, error) {
	if _, ok := domain.LookupMetric(id); !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownMetric, id)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := s.store.Entries(id)
	if err != nil {
		return nil, fmt.Errorf("reading %s history: %w", id, err)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].RecordedAt.After(entries[j].RecordedAt)
	})
	return entries, nil
}

// Add records a single reading. An empty unit falls back to the metric's own.
func (s *MetricService) Add(ctx context.Context, id, raw, unit string) (domain.MetricEntry, error) {
	entry, err := s.buildEntry(id, raw, unit, s.now())
	if err != nil {
		return domain.MetricEntry{}, err
	}
	if err := ctx.Err(); err != nil {
		return domain.MetricEntry{}, err
	}
	if err := s.store.AppendEntry(entry); err != nil {
		return domain.MetricEntry{}, err
	}
	s.syncProfile([]domain.MetricEntry{entry})

	s.logger.Info("metric added", "metric", entry.MetricID, "value", entry.Value, "unit", entry.Unit)
	return entry, nil
}

// LogInput is one row of the log-all form
type LogInput struct {
	MetricID string
	Value    string
}

// LogAll records every non-blank input. Inputs are validated before anything
// is written, so a bad row leaves the store untouched.
func (s *MetricService) LogAll(ctx context.Context, inputs []LogInput) ([]domain.MetricEntry, error) {
	at := s.now()
	var entries []domain.MetricEntry
	for _, in := range inputs {
		if strings.TrimSpace(in.Value) == "" {
			continue
		}
		entry, err := s.buildEntry(in.MetricID, in.Value, "", at)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if len(entries) == 0 {
		return nil, domain.ErrNothingToLog
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.store.AppendEntry(entry); err != nil {
			return nil, err
		}
	}
	s.syncProfile(entries)

	s.logger.Info("metrics logged", "count", len(entries))
	return entries, nil
}

func (s *MetricService) buildEntry(id, raw, unit string, at time.Time) (domain.MetricEntry, error) {
	def, ok := domain.LookupMetric(id)
	if !ok {
		return domain.MetricEntry{}, fmt.Errorf("%w: %q", domain.ErrUnknownMetric, id)
	}
	value, err := domain.ParseValue(raw)
	if err != nil {
		return domain.MetricEntry{}, fmt.Errorf("%s: %w", def.Name, err)
	}
	if unit == "" {
		unit = def.Unit
	}
	return domain.MetricEntry{
		ID:         uuid.NewString(),
		MetricID:   def.ID,
		Value:      value,
		Unit:       unit,
		RecordedAt: at,
	}, nil
}

// syncProfile mirrors weight and step readings onto the profile the
// dashboards read from.
func (s *MetricService) syncProfile(entries []domain.MetricEntry) {
	p, err := s.store.Profile()
	if err != nil {
		return
	}
	changed := false
	for _, e := range entries {
		switch e.MetricID {
		case "weight":
			p.CurrentWeight = e.Value
			changed = true
		case "steps":
			p.Steps = int(e.Value)
			changed = true
		}
	}
	if !changed {
		return
	}
	if err := s.store.SaveProfile(p); err != nil {
		s.logger.Warn("failed to update profile from metrics", "error", err)
	}
}

// Resolve finds the metric best matching a loose query ("bf", "water")
func (s *MetricService) Resolve(query string) (domain.MetricDef, error) {
	if def, ok := domain.LookupMetric(query); ok {
		return def, nil
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return domain.MetricDef{}, fmt.Errorf("%w: empty name", domain.ErrUnknownMetric)
	}

	// Two targets per metric: its ID and its display name
	defs := domain.Catalog()
	targets := make([]string, 0, len(defs)*2)
	for _, def := range defs {
		targets = append(targets, def.ID, def.Name)
	}

	ranks := fuzzy.RankFindFold(query, targets)
	if len(ranks) == 0 {
		return domain.MetricDef{}, fmt.Errorf("%w: %q", domain.ErrUnknownMetric, query)
	}
	sort.Sort(ranks)
	return defs[ranks[0].OriginalIndex/2], nil
}
