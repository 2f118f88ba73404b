package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Fixed state file names, mirroring the storage keys of the original flow.
const (
	subscribersFile = "anxonews_subscribers.json"
	rateLimitFile   = "anxonews_rate_limit.json"
	snapshotFile    = "anxonews_flow_v1.json"
)

// FileStore backs all three local stores with JSON files in a single
// directory.
type FileStore struct {
	dir string
	now func() time.Time
}

// NewFileStore creates the state directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	return &FileStore{dir: dir, now: time.Now}, nil
}

// WithClock substitutes the time source. Used in tests.
func (s *FileStore) WithClock(now func() time.Time) *FileStore {
	s.now = now
	return s
}

// writeJSON writes atomically: temp file in the same directory, then rename.
func (s *FileStore) writeJSON(name string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", name, err)
	}
	if err := os.Rename(tmpName, filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}

// readJSON reports ok=false when the file does not exist.
func (s *FileStore) readJSON(name string, v interface{}) (bool, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return true, nil
}

func (s *FileStore) remove(name string) error {
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", name, err)
	}
	return nil
}

// IsRegistered tests registry membership. The caller passes a normalized
// address; matching is exact against the stored lower-cased list.
func (s *FileStore) IsRegistered(email string) bool {
	var subscribers []string
	if ok, err := s.readJSON(subscribersFile, &subscribers); !ok || err != nil {
		// A corrupted registry reads as empty.
		return false
	}
	for _, sub := range subscribers {
		if sub == email {
			return true
		}
	}
	return false
}

// Register appends the address unless already present.
func (s *FileStore) Register(email string) error {
	var subscribers []string
	if _, err := s.readJSON(subscribersFile, &subscribers); err != nil {
		subscribers = nil
	}
	for _, sub := range subscribers {
		if sub == email {
			return nil
		}
	}
	subscribers = append(subscribers, email)
	return s.writeJSON(subscribersFile, subscribers)
}

// attemptRecord is the persisted rate-limit counter.
type attemptRecord struct {
	Attempts  int   `json:"attempts"`
	Timestamp int64 `json:"timestamp"`
}

// CheckAndConsume implements the client-side attempt heuristic: a fresh or
// expired window restarts the counter at one, a full window denies, and a
// corrupted record reads as allow.
func (s *FileStore) CheckAndConsume() bool {
	now := s.now().UnixMilli()

	var rec attemptRecord
	ok, err := s.readJSON(rateLimitFile, &rec)
	if err != nil {
		return true
	}
	if !ok || now-rec.Timestamp > AttemptWindow.Milliseconds() {
		rec = attemptRecord{Attempts: 1, Timestamp: now}
		_ = s.writeJSON(rateLimitFile, rec)
		return true
	}
	if rec.Attempts >= MaxAttempts {
		return false
	}
	rec.Attempts++
	_ = s.writeJSON(rateLimitFile, rec)
	return true
}

// Load restores the flow snapshot, discarding anything expired, malformed,
// or from a newer schema.
func (s *FileStore) Load() (*Snapshot, error) {
	var snap Snapshot
	ok, err := s.readJSON(snapshotFile, &snap)
	if err != nil {
		// Malformed snapshots are removed rather than trusted.
		_ = s.remove(snapshotFile)
		return nil, nil
	}
	if !ok {
		return nil, nil
	}
	if snap.Version > SnapshotVersion {
		_ = s.remove(snapshotFile)
		return nil, nil
	}
	if s.now().UnixMilli()-snap.Timestamp > MaxSnapshotAge.Milliseconds() {
		_ = s.remove(snapshotFile)
		return nil, nil
	}
	normalize(&snap)
	return &snap, nil
}

// Save overwrites the snapshot with a fresh timestamp.
func (s *FileStore) Save(snap Snapshot) error {
	snap.Version = SnapshotVersion
	snap.Timestamp = s.now().UnixMilli()
	return s.writeJSON(snapshotFile, snap)
}

// Clear removes the persisted snapshot.
func (s *FileStore) Clear() error {
	return s.remove(snapshotFile)
}
