package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/fitdeck/internal/domain"
)

// SeedOptions describes the profile written on first run
type SeedOptions struct {
	Name     string
	StepGoal int
}

// Seed fills an empty store with a demo profile, a short metric history and
// a few recent workouts. It does nothing once the store has been seeded.
func Seed(ctx context.Context, store domain.Store, opts SeedOptions, now time.Time, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	if store.Seeded() {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if opts.StepGoal <= 0 {
		opts.StepGoal = 10000
	}

	profile := domain.Profile{
		Name:          opts.Name,
		Initials:      domain.InitialsFor(opts.Name),
		Role:          "client",
		CurrentWeight: 69.5,
		GoalWeight:    68,
		Steps:         2847,
		StepGoal:      opts.StepGoal,
		MissedAlert:   true,
	}
	if err := store.SaveProfile(profile); err != nil {
		return fmt.Errorf("seeding profile: %w", err)
	}

	day := func(daysAgo, hour, minute int) time.Time {
		y, m, d := now.AddDate(0, 0, -daysAgo).Date()
		return time.Date(y, m, d, hour, minute, 0, 0, now.Location())
	}

	entries := []domain.MetricEntry{
		{MetricID: "weight", Value: 78, Unit: "kg", RecordedAt: day(136, 10, 31)},
		{MetricID: "chest", Value: 36, Unit: "in", RecordedAt: day(138, 9, 12)},
		{MetricID: "weight", Value: 72.4, Unit: "kg", RecordedAt: day(60, 7, 45)},
		{MetricID: "weight", Value: 69.5, Unit: "kg", RecordedAt: day(3, 7, 50)},
	}
	for _, e := range entries {
		e.ID = uuid.NewString()
		if err := store.AppendEntry(e); err != nil {
			return fmt.Errorf("seeding %s: %w", e.MetricID, err)
		}
	}

	// A three day streak ending yesterday, after a skipped session.
	sessions := []domain.WorkoutSession{
		{Date: day(1, 18, 0), Duration: 45, Type: "Strength Training", Completed: true},
		{Date: day(2, 7, 30), Duration: 30, Type: "Running", Completed: true},
		{Date: day(3, 18, 15), Duration: 60, Type: "Cycling", Completed: true},
		{Date: day(4, 18, 0), Duration: 45, Type: "Strength Training", Completed: false},
	}
	for _, ws := range sessions {
		ws.ID = uuid.NewString()
		if err := store.SaveSession(ws); err != nil {
			return fmt.Errorf("seeding workout: %w", err)
		}
	}

	if err := store.MarkSeeded(); err != nil {
		return err
	}
	logger.Info("seeded demo data", "profile", profile.Name, "entries", len(entries), "sessions", len(sessions))
	return nil
}
