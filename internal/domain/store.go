package domain

// Store persists readings, sessions and the profile (BoltDB + memory).
type Store interface {
	// === Metrics ===
	AppendEntry(entry MetricEntry) error
	Entries(metricID string) ([]MetricEntry, error) // oldest first
	LatestEntries() (map[string]MetricEntry, error)

	// === Workouts ===
	SaveSession(session WorkoutSession) error
	Sessions() ([]WorkoutSession, error)

	// === Profile ===
	Profile() (Profile, error) // ErrNotFound before the first save
	SaveProfile(p Profile) error

	// === Seeding ===
	Seeded() bool
	MarkSeeded() error

	Close() error
}
