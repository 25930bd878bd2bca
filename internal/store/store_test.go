package store

import (
	"testing"
	"time"

	"github.com/mmcdole/fitdeck/internal/domain"
)

func openStores(t *testing.T) map[string]*FitStore {
	t.Helper()
	disk, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { disk.Close() })

	mem, err := Open("")
	if err != nil {
		t.Fatalf("Open memory: %v", err)
	}
	return map[string]*FitStore{"bolt": disk, "memory": mem}
}

func TestEntriesOrderedAndLatest(t *testing.T) {
	base := time.Date(2026, time.June, 5, 9, 0, 0, 0, time.UTC)

	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			// Written out of order on purpose.
			for i, offset := range []int{2, 0, 1} {
				e := domain.MetricEntry{
					ID:         string(rune('a' + i)),
					MetricID:   "weight",
					Value:      float64(78 - offset),
					Unit:       "kg",
					RecordedAt: base.AddDate(0, 0, offset),
				}
				if err := s.AppendEntry(e); err != nil {
					t.Fatalf("AppendEntry: %v", err)
				}
			}
			if err := s.AppendEntry(domain.MetricEntry{ID: "z", MetricID: "chest", Value: 36, Unit: "in", RecordedAt: base}); err != nil {
				t.Fatalf("AppendEntry chest: %v", err)
			}

			entries, err := s.Entries("weight")
			if err != nil {
				t.Fatalf("Entries: %v", err)
			}
			if len(entries) != 3 {
				t.Fatalf("got %d weight entries, want 3", len(entries))
			}
			for i := 1; i < len(entries); i++ {
				if entries[i].RecordedAt.Before(entries[i-1].RecordedAt) {
					t.Fatalf("entries not chronological: %v", entries)
				}
			}

			latest, err := s.LatestEntries()
			if err != nil {
				t.Fatalf("LatestEntries: %v", err)
			}
			if got := latest["weight"].Value; got != 76 {
				t.Fatalf("latest weight = %v, want 76", got)
			}
			if _, ok := latest["chest"]; !ok || len(latest) != 2 {
				t.Fatalf("latest = %+v", latest)
			}
		})
	}
}

func TestSessionsAndProfile(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Profile(); !IsNotFound(err) {
				t.Fatalf("Profile before save: err = %v", err)
			}
			p := domain.Profile{Name: "Vinay", Initials: "VD", Role: "client", CurrentWeight: 69.5, GoalWeight: 68}
			if err := s.SaveProfile(p); err != nil {
				t.Fatalf("SaveProfile: %v", err)
			}
			got, err := s.Profile()
			if err != nil || got != p {
				t.Fatalf("Profile = %+v, %v", got, err)
			}

			now := time.Date(2026, time.October, 19, 8, 0, 0, 0, time.UTC)
			for i, id := range []string{"late", "early"} {
				ws := domain.WorkoutSession{ID: id, Date: now.AddDate(0, 0, -i), Duration: 30, Completed: true}
				if err := s.SaveSession(ws); err != nil {
					t.Fatalf("SaveSession: %v", err)
				}
			}
			sessions, err := s.Sessions()
			if err != nil {
				t.Fatalf("Sessions: %v", err)
			}
			if len(sessions) != 2 || sessions[0].ID != "early" {
				t.Fatalf("sessions = %+v", sessions)
			}

			if s.Seeded() {
				t.Fatal("fresh store reports seeded")
			}
			if err := s.MarkSeeded(); err != nil {
				t.Fatalf("MarkSeeded: %v", err)
			}
			if !s.Seeded() {
				t.Fatal("store not seeded after MarkSeeded")
			}
		})
	}
}

func TestReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	entry := domain.MetricEntry{ID: "1", MetricID: "water", Value: 2.5, Unit: "L", RecordedAt: time.Now()}
	if err := s.AppendEntry(entry); err != nil {
		t.Fatalf("AppendEntry: %v", err)
	}
	s.Close()

	s, err = Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	entries, err := s.Entries("water")
	if err != nil || len(entries) != 1 || entries[0].Value != 2.5 {
		t.Fatalf("entries after reopen = %+v, %v", entries, err)
	}
}
