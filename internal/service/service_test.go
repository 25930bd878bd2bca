package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mmcdole/fitdeck/internal/domain"
	"github.com/mmcdole/fitdeck/internal/log"
	"github.com/mmcdole/fitdeck/internal/store"
)

var testNow = time.Date(2026, time.October, 19, 10, 31, 0, 0, time.UTC)

func clock() time.Time { return testNow }

func seededStore(t *testing.T) *store.FitStore {
	t.Helper()
	s, err := store.Open("")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := Seed(context.Background(), s, SeedOptions{Name: "Vinay"}, testNow, log.NullLogger()); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	return s
}

func TestSeedIsIdempotent(t *testing.T) {
	s := seededStore(t)
	if err := Seed(context.Background(), s, SeedOptions{Name: "Other"}, testNow, log.NullLogger()); err != nil {
		t.Fatalf("second Seed: %v", err)
	}
	p, err := s.Profile()
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if p.Name != "Vinay" || p.StepGoal != 10000 || !p.MissedAlert {
		t.Fatalf("profile = %+v", p)
	}
	entries, _ := s.Entries("weight")
	if len(entries) != 3 {
		t.Fatalf("seeded %d weight entries, want 3", len(entries))
	}
}

func TestMetricListJoinsLatest(t *testing.T) {
	svc := NewMetricService(seededStore(t), log.NullLogger(), clock)

	metrics, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(metrics) != len(domain.Catalog()) {
		t.Fatalf("got %d metrics", len(metrics))
	}
	byID := map[string]domain.Metric{}
	for _, m := range metrics {
		byID[m.ID] = m
	}
	if w := byID["weight"]; !w.HasData || w.Value != 69.5 {
		t.Errorf("weight = %+v", w)
	}
	if byID["waist"].HasData {
		t.Errorf("waist should have no readings")
	}
}

func TestMetricAddAndHistory(t *testing.T) {
	st := seededStore(t)
	svc := NewMetricService(st, log.NullLogger(), clock)
	ctx := context.Background()

	entry, err := svc.Add(ctx, "weight", "68.9", "")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if entry.Unit != "kg" || entry.ID == "" || !entry.RecordedAt.Equal(testNow) {
		t.Fatalf("entry = %+v", entry)
	}

	history, err := svc.History(ctx, "weight")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 4 || history[0].Value != 68.9 {
		t.Fatalf("history = %+v", history)
	}

	p, _ := st.Profile()
	if p.CurrentWeight != 68.9 {
		t.Errorf("profile weight = %v, want 68.9", p.CurrentWeight)
	}
}

func TestMetricAddRejectsBadInput(t *testing.T) {
	svc := NewMetricService(seededStore(t), log.NullLogger(), clock)
	ctx := context.Background()

	for _, raw := range []string{"abc", "Inf", "NaN"} {
		if _, err := svc.Add(ctx, "weight", raw, ""); !errors.Is(err, domain.ErrInvalidValue) {
			t.Errorf("Add(%q): err = %v", raw, err)
		}
	}
	if _, err := svc.Add(ctx, "weight", "  ", ""); !errors.Is(err, domain.ErrEmptyValue) {
		t.Errorf("empty value: err = %v", err)
	}
	if _, err := svc.Add(ctx, "height", "180", ""); !errors.Is(err, domain.ErrUnknownMetric) {
		t.Errorf("unknown metric: err = %v", err)
	}
}

func TestLogAllIsAllOrNothing(t *testing.T) {
	st := seededStore(t)
	svc := NewMetricService(st, log.NullLogger(), clock)
	ctx := context.Background()

	for _, bad := range []string{"wide", "NaN", "Inf"} {
		_, err := svc.LogAll(ctx, []LogInput{
			{MetricID: "waist", Value: "32"},
			{MetricID: "hip", Value: bad},
		})
		if !errors.Is(err, domain.ErrInvalidValue) {
			t.Fatalf("hip %q: err = %v, want ErrInvalidValue", bad, err)
		}
		if waist, _ := st.Entries("waist"); len(waist) != 0 {
			t.Fatalf("hip %q: partial write: %+v", bad, waist)
		}
	}

	if _, err := svc.LogAll(ctx, []LogInput{{MetricID: "waist", Value: ""}}); !errors.Is(err, domain.ErrNothingToLog) {
		t.Fatalf("blank form: err = %v", err)
	}

	entries, err := svc.LogAll(ctx, []LogInput{
		{MetricID: "waist", Value: "32"},
		{MetricID: "steps", Value: "6120"},
		{MetricID: "hip", Value: ""},
	})
	if err != nil {
		t.Fatalf("LogAll: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("logged %d entries, want 2", len(entries))
	}
	if p, _ := st.Profile(); p.Steps != 6120 {
		t.Errorf("profile steps = %d, want 6120", p.Steps)
	}
}

func TestResolve(t *testing.T) {
	svc := NewMetricService(seededStore(t), log.NullLogger(), clock)

	tests := map[string]string{
		"weight":   "weight",
		"BODYFAT":  "bodyfat",
		"bicp":     "bicep",
		"wtr":      "water",
		"shoulder": "shoulders",
	}
	for query, want := range tests {
		def, err := svc.Resolve(query)
		if err != nil {
			t.Errorf("Resolve(%q): %v", query, err)
			continue
		}
		if def.ID != want {
			t.Errorf("Resolve(%q) = %s, want %s", query, def.ID, want)
		}
	}

	if _, err := svc.Resolve("zzz"); !errors.Is(err, domain.ErrUnknownMetric) {
		t.Errorf("Resolve(zzz): err = %v", err)
	}
}

func TestDashboard(t *testing.T) {
	svc := NewActivityService(seededStore(t), log.NullLogger(), clock, RefreshOptions{})

	d, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d.Summary.StreakDays != 3 || d.Summary.LongestStreak != 3 {
		t.Errorf("streak = %d/%d, want 3/3", d.Summary.StreakDays, d.Summary.LongestStreak)
	}
	if d.Summary.TotalMinutes != 135 {
		t.Errorf("total minutes = %d, want 135", d.Summary.TotalMinutes)
	}
	if d.Summary.Steps != 2847 || d.Summary.StepGoal != 10000 {
		t.Errorf("steps = %d/%d", d.Summary.Steps, d.Summary.StepGoal)
	}
	if d.Profile.Initials != "V" {
		t.Errorf("initials = %q", d.Profile.Initials)
	}
}

func TestAddWorkoutClearsAlert(t *testing.T) {
	st := seededStore(t)
	svc := NewActivityService(st, log.NullLogger(), clock, RefreshOptions{})
	ctx := context.Background()

	if _, err := svc.AddWorkout(ctx, 0, "Rest"); err == nil {
		t.Fatal("zero-minute workout accepted")
	}
	if _, err := svc.AddWorkout(ctx, 30, "Quick Workout"); err != nil {
		t.Fatalf("AddWorkout: %v", err)
	}

	d, err := svc.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d.Profile.MissedAlert {
		t.Error("missed alert still set")
	}
	if d.Summary.StreakDays != 4 || d.Summary.WorkoutsToday != 1 {
		t.Errorf("summary = %+v", d.Summary)
	}

	sessions, _ := svc.Sessions(ctx)
	if sessions[0].Type != "Quick Workout" {
		t.Errorf("newest session = %+v", sessions[0])
	}
}

func TestLogout(t *testing.T) {
	st := seededStore(t)
	svc := NewProfileService(st, log.NullLogger())
	ctx := context.Background()

	p, err := svc.Get(ctx)
	if err != nil || !p.SignedIn() {
		t.Fatalf("Get = %+v, %v", p, err)
	}
	if err := svc.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if p, _ := svc.Get(ctx); p.SignedIn() {
		t.Fatalf("still signed in: %+v", p)
	}
}

func TestReloadFailureInjection(t *testing.T) {
	svc := NewActivityService(seededStore(t), log.NullLogger(), clock, RefreshOptions{FailEvery: 2})
	ctx := context.Background()

	if err := svc.Reload(ctx); err != nil {
		t.Fatalf("first reload: %v", err)
	}
	if err := svc.Reload(ctx); !errors.Is(err, ErrRefreshFailed) {
		t.Fatalf("second reload: err = %v, want ErrRefreshFailed", err)
	}
	if err := svc.Reload(ctx); err != nil {
		t.Fatalf("third reload: %v", err)
	}
}

// sessionCounter counts full session scans
type sessionCounter struct {
	domain.Store
	scans int
}

func (c *sessionCounter) Sessions() ([]domain.WorkoutSession, error) {
	c.scans++
	return c.Store.Sessions()
}

func TestReloadSkipsDashboardRead(t *testing.T) {
	st := &sessionCounter{Store: seededStore(t)}
	svc := NewActivityService(st, log.NullLogger(), clock, RefreshOptions{})

	if err := svc.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if st.scans != 0 {
		t.Fatalf("Reload scanned sessions %d times, want 0", st.scans)
	}

	empty, err := store.Open("")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer empty.Close()
	unseeded := NewActivityService(empty, log.NullLogger(), clock, RefreshOptions{})
	if err := unseeded.Reload(context.Background()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unseeded Reload: err = %v, want ErrNotFound", err)
	}
}

func TestReloadHonoursContext(t *testing.T) {
	svc := NewActivityService(seededStore(t), log.NullLogger(), clock, RefreshOptions{Latency: time.Minute})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	if err := svc.Reload(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Fatal("Reload ignored cancellation")
	}
}
