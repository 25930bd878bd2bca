package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/fitdeck/internal/domain"
)

// ErrRefreshFailed is returned by Reload when failure injection fires
var ErrRefreshFailed = errors.New("refresh failed")

// Dashboard is everything the Today and Profile screens render
type Dashboard struct {
	Profile  domain.Profile
	Summary  domain.ActivitySummary
	LoadedAt time.Time
}

// RefreshOptions shape the simulated round-trip behind Reload
type RefreshOptions struct {
	Latency   time.Duration // delay before the reload completes
	FailEvery int           // fail every Nth reload (0 = never)
}

// ActivityService derives dashboards from workouts, metrics and the profile
type ActivityService struct {
	store   domain.Store
	logger  *slog.Logger
	now     func() time.Time
	opts    RefreshOptions
	reloads atomic.Int64
}

// NewActivityService creates a new activity service. A nil clock uses time.Now.
func NewActivityService(store domain.Store, logger *slog.Logger, now func() time.Time, opts RefreshOptions) *ActivityService {
	if logger == nil {
		logger = slog.Default()
	}
	if now == nil {
		now = time.Now
	}
	return &ActivityService{
		store:  store,
		logger: logger,
		now:    now,
		opts:   opts,
	}
}

// Load reads the store and computes the dashboard numbers
func (s *ActivityService) Load(ctx context.Context) (Dashboard, error) {
	if err := ctx.Err(); err != nil {
		return Dashboard{}, err
	}
	now := s.now()

	profile, err := s.store.Profile()
	if err != nil {
		return Dashboard{}, fmt.Errorf("reading profile: %w", err)
	}
	sessions, err := s.store.Sessions()
	if err != nil {
		return Dashboard{}, fmt.Errorf("reading sessions: %w", err)
	}
	water, err := s.store.Entries("water")
	if err != nil {
		return Dashboard{}, fmt.Errorf("reading water intake: %w", err)
	}

	waterToday := 0.0
	for _, e := range water {
		if domain.SameDay(e.RecordedAt, now) {
			waterToday += e.Value
		}
	}

	return Dashboard{
		Profile: profile,
		Summary: domain.ActivitySummary{
			StreakDays:     domain.StreakDays(sessions, now),
			LongestStreak:  domain.LongestStreak(sessions, now.Location()),
			TotalMinutes:   domain.TotalMinutes(sessions),
			WeeklyMinutes:  domain.WeeklyMinutes(sessions, now),
			MonthlyMinutes: domain.MonthlyMinutes(sessions, now),
			WorkoutsToday:  domain.WorkoutsOn(sessions, now),
			Steps:          profile.Steps,
			StepGoal:       profile.StepGoal,
			StepProgress:   domain.StepProgress(profile.Steps, profile.StepGoal),
			WaterToday:     waterToday,
		},
		LoadedAt: now,
	}, nil
}

// Reload is the pull-to-refresh action: a simulated round-trip followed by
// a check that the store still answers. The caller reloads the dashboard
// once the refresh completes.
func (s *ActivityService) Reload(ctx context.Context) error {
	n := s.reloads.Add(1)

	if s.opts.Latency > 0 {
		timer := time.NewTimer(s.opts.Latency)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if s.opts.FailEvery > 0 && n%int64(s.opts.FailEvery) == 0 {
		return fmt.Errorf("%w: attempt %d", ErrRefreshFailed, n)
	}

	if _, err := s.store.Profile(); err != nil {
		return fmt.Errorf("checking store: %w", err)
	}
	return nil
}

// AddWorkout logs a completed session and clears the missed-workout banner
func (s *ActivityService) AddWorkout(ctx context.Context, minutes int, kind string) (domain.WorkoutSession, error) {
	if minutes <= 0 {
		return domain.WorkoutSession{}, fmt.Errorf("workout duration must be positive, got %d", minutes)
	}
	if err := ctx.Err(); err != nil {
		return domain.WorkoutSession{}, err
	}

	session := domain.WorkoutSession{
		ID:        uuid.NewString(),
		Date:      s.now(),
		Duration:  minutes,
		Type:      kind,
		Completed: true,
	}
	if err := s.store.SaveSession(session); err != nil {
		return domain.WorkoutSession{}, fmt.Errorf("saving workout: %w", err)
	}
	if err := s.DismissMissed(ctx); err != nil {
		s.logger.Warn("failed to clear missed-workout alert", "error", err)
	}

	s.logger.Info("workout added", "type", kind, "minutes", minutes)
	return session, nil
}

// DismissMissed hides the missed-workout alert
func (s *ActivityService) DismissMissed(ctx context.Context) error {
	return s.updateProfile(ctx, func(p *domain.Profile) { p.MissedAlert = false })
}

// Sessions returns completed and planned sessions, newest first
func (s *ActivityService) Sessions(ctx context.Context) ([]domain.WorkoutSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sessions, err := s.store.Sessions()
	if err != nil {
		return nil, fmt.Errorf("reading sessions: %w", err)
	}
	domain.SortSessionsNewest(sessions)
	return sessions, nil
}

func (s *ActivityService) updateProfile(ctx context.Context, fn func(p *domain.Profile)) error {
	return updateProfile(ctx, s.store, fn)
}
