package localstore

import "time"

// MemoryStore is an in-memory implementation of Registry, AttemptLimiter,
// and SnapshotStore for tests and ephemeral sessions.
type MemoryStore struct {
	subscribers []string
	attempts    *attemptRecord
	snapshot    *Snapshot
	now         func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

// WithClock substitutes the time source. Used in tests.
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	s.now = now
	return s
}

func (s *MemoryStore) IsRegistered(email string) bool {
	for _, sub := range s.subscribers {
		if sub == email {
			return true
		}
	}
	return false
}

func (s *MemoryStore) Register(email string) error {
	if s.IsRegistered(email) {
		return nil
	}
	s.subscribers = append(s.subscribers, email)
	return nil
}

func (s *MemoryStore) CheckAndConsume() bool {
	now := s.now().UnixMilli()
	if s.attempts == nil || now-s.attempts.Timestamp > AttemptWindow.Milliseconds() {
		s.attempts = &attemptRecord{Attempts: 1, Timestamp: now}
		return true
	}
	if s.attempts.Attempts >= MaxAttempts {
		return false
	}
	s.attempts.Attempts++
	return true
}

func (s *MemoryStore) Load() (*Snapshot, error) {
	if s.snapshot == nil {
		return nil, nil
	}
	if s.snapshot.Version > SnapshotVersion ||
		s.now().UnixMilli()-s.snapshot.Timestamp > MaxSnapshotAge.Milliseconds() {
		s.snapshot = nil
		return nil, nil
	}
	snap := *s.snapshot
	normalize(&snap)
	return &snap, nil
}

func (s *MemoryStore) Save(snap Snapshot) error {
	snap.Version = SnapshotVersion
	snap.Timestamp = s.now().UnixMilli()
	s.snapshot = &snap
	return nil
}

func (s *MemoryStore) Clear() error {
	s.snapshot = nil
	return nil
}
