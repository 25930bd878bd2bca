package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/fitdeck/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketEntries  = []byte("entries")
	bucketLatest   = []byte("latest")
	bucketSessions = []byte("sessions")
	bucketMeta     = []byte("meta")
)

const (
	keyProfile = "profile"
	keySeeded  = "seeded"
)

// keyTime is a fixed-width UTC stamp so keys sort chronologically.
const keyTime = "20060102T150405.000000000Z"

// FitStore implements domain.Store using BoltDB.
type FitStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory copy of values (promoted on access). In memory-only mode this
	// is the only copy.
	cache map[string][]byte
}

// Open opens (or creates) fitdeck.db under dir. An empty dir keeps everything
// in memory.
func Open(dir string) (*FitStore, error) {
	if dir == "" {
		return &FitStore{cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "fitdeck.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	// Create buckets
	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketEntries, bucketLatest, bucketSessions, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &FitStore{db: db, cache: make(map[string][]byte)}, nil
}

func (s *FitStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func cacheKey(bucket []byte, key string) string {
	return string(bucket) + ":" + key
}

func (s *FitStore) get(bucket []byte, key string, dest interface{}) (bool, error) {
	ck := cacheKey(bucket, key)

	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[ck]; ok {
		s.mu.RUnlock()
		return true, json.Unmarshal(data, dest)
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false, nil
	}

	// Read from BoltDB
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucket).Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil || data == nil {
		return false, err
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[ck] = data
	s.mu.Unlock()

	return true, json.Unmarshal(data, dest)
}

func (s *FitStore) set(bucket []byte, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	if s.db != nil {
		err := s.db.Update(func(tx *bolt.Tx) error {
			return tx.Bucket(bucket).Put([]byte(key), data)
		})
		if err != nil {
			return err
		}
	}

	s.mu.Lock()
	s.cache[cacheKey(bucket, key)] = data
	s.mu.Unlock()
	return nil
}

// scan calls fn for every value under prefix in key order.
func (s *FitStore) scan(bucket []byte, prefix string, fn func(data []byte) error) error {
	if s.db != nil {
		return s.db.View(func(tx *bolt.Tx) error {
			c := tx.Bucket(bucket).Cursor()
			for k, v := c.Seek([]byte(prefix)); k != nil && strings.HasPrefix(string(k), prefix); k, v = c.Next() {
				if err := fn(v); err != nil {
					return err
				}
			}
			return nil
		})
	}

	// Memory-only mode
	full := cacheKey(bucket, prefix)
	s.mu.RLock()
	keys := make([]string, 0)
	for k := range s.cache {
		if strings.HasPrefix(k, full) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	values := make([][]byte, len(keys))
	for i, k := range keys {
		values[i] = s.cache[k]
	}
	s.mu.RUnlock()

	for _, v := range values {
		if err := fn(v); err != nil {
			return err
		}
	}
	return nil
}

// === Metrics (key: {metricID}/{time}/{entryID}) ===

func entryKey(e domain.MetricEntry) string {
	return e.MetricID + "/" + e.RecordedAt.UTC().Format(keyTime) + "/" + e.ID
}

func (s *FitStore) AppendEntry(entry domain.MetricEntry) error {
	if err := s.set(bucketEntries, entryKey(entry), entry); err != nil {
		return fmt.Errorf("saving %s entry: %w", entry.MetricID, err)
	}

	var latest domain.MetricEntry
	found, err := s.get(bucketLatest, entry.MetricID, &latest)
	if err != nil {
		return err
	}
	if found && latest.RecordedAt.After(entry.RecordedAt) {
		return nil
	}
	return s.set(bucketLatest, entry.MetricID, entry)
}

func (s *FitStore) Entries(metricID string) ([]domain.MetricEntry, error) {
	var entries []domain.MetricEntry
	err := s.scan(bucketEntries, metricID+"/", func(data []byte) error {
		var e domain.MetricEntry
		if err := json.Unmarshal(data, &e); err != nil {
			return err
		}
		entries = append(entries, e)
		return nil
	})
	return entries, err
}

func (s *FitStore) LatestEntries() (map[string]domain.MetricEntry, error) {
	latest := make(map[string]domain.MetricEntry)
	err := s.scan(bucketLatest, "", func(data []byte) error {
		var e domain.MetricEntry
		if err := json.Unmarshal(data, &e); err != nil {
			return err
		}
		latest[e.MetricID] = e
		return nil
	})
	return latest, err
}

// === Workouts (key: {time}/{sessionID}) ===

func (s *FitStore) SaveSession(session domain.WorkoutSession) error {
	key := session.Date.UTC().Format(keyTime) + "/" + session.ID
	return s.set(bucketSessions, key, session)
}

func (s *FitStore) Sessions() ([]domain.WorkoutSession, error) {
	var sessions []domain.WorkoutSession
	err := s.scan(bucketSessions, "", func(data []byte) error {
		var ws domain.WorkoutSession
		if err := json.Unmarshal(data, &ws); err != nil {
			return err
		}
		sessions = append(sessions, ws)
		return nil
	})
	return sessions, err
}

// === Profile ===

func (s *FitStore) Profile() (domain.Profile, error) {
	var p domain.Profile
	found, err := s.get(bucketMeta, keyProfile, &p)
	if err != nil {
		return domain.Profile{}, err
	}
	if !found {
		return domain.Profile{}, domain.ErrNotFound
	}
	return p, nil
}

func (s *FitStore) SaveProfile(p domain.Profile) error {
	return s.set(bucketMeta, keyProfile, p)
}

// === Seeding ===

func (s *FitStore) Seeded() bool {
	var seeded bool
	found, err := s.get(bucketMeta, keySeeded, &seeded)
	return found && err == nil && seeded
}

func (s *FitStore) MarkSeeded() error {
	return s.set(bucketMeta, keySeeded, true)
}

// IsNotFound reports whether err is the store's missing-record error.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
