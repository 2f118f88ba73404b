// Package localstore persists the subscription flow's client-side state:
// the resumable flow snapshot, the best-effort subscriber registry, and the
// signup attempt counter. The file-backed implementation keeps each value as
// a JSON document under a state directory; writes are atomic and two
// processes sharing a directory race last-write-wins.
package localstore

import "time"

// Step identifies a position in the subscription flow.
type Step string

const (
	StepEmail             Step = "email"
	StepDetails           Step = "details"
	StepSuccess           Step = "success"
	StepSetup             Step = "setup"
	StepCompleted         Step = "completed"
	StepAlreadySubscribed Step = "already-subscribed"
)

// ValidStep reports whether s is a known flow step.
func ValidStep(s Step) bool {
	switch s {
	case StepEmail, StepDetails, StepSuccess, StepSetup, StepCompleted, StepAlreadySubscribed:
		return true
	}
	return false
}

const (
	// SnapshotVersion tags the persisted snapshot schema. Snapshots from a
	// newer schema are discarded rather than guessed at.
	SnapshotVersion = 1

	// MaxSnapshotAge expires stale snapshots on load.
	MaxSnapshotAge = 24 * time.Hour

	// MaxAttempts caps signup attempts per AttemptWindow.
	MaxAttempts = 5

	// AttemptWindow is the client-side throttling window.
	AttemptWindow = time.Hour
)

// SetupChecks records the two inbox-setup acknowledgements.
type SetupChecks struct {
	Filter  bool `json:"filter"`
	Primary bool `json:"primary"`
}

// Snapshot is the persisted form of the flow state. Timestamp is Unix
// milliseconds of the last save.
type Snapshot struct {
	Version         int         `json:"version"`
	Step            Step        `json:"step"`
	Email           string      `json:"email"`
	Name            string      `json:"name"`
	Phone           string      `json:"phone,omitempty"`
	AcceptedPrivacy bool        `json:"acceptedPrivacy"`
	SavedName       string      `json:"savedName"`
	SetupChecks     SetupChecks `json:"setupChecks"`
	Timestamp       int64       `json:"timestamp"`
}

// Registry is the local duplicate-submission guard. It is best effort only:
// the upstream provider owns true deduplication.
type Registry interface {
	IsRegistered(email string) bool
	Register(email string) error
}

// AttemptLimiter throttles email-continue attempts client-side. Advisory
// only, never a security boundary.
type AttemptLimiter interface {
	// CheckAndConsume returns false when the current window's attempts have
	// reached the cap; otherwise it consumes one attempt and returns true.
	CheckAndConsume() bool
}

// SnapshotStore persists the flow snapshot between sessions.
type SnapshotStore interface {
	// Load returns nil when no usable snapshot exists. Expired or
	// malformed snapshots are removed as a side effect.
	Load() (*Snapshot, error)
	Save(snap Snapshot) error
	Clear() error
}

// normalize applies the defensive consistency rules to a loaded snapshot:
// unknown steps fall back to Email, and Details without an email is coerced
// back to Email.
func normalize(snap *Snapshot) {
	if !ValidStep(snap.Step) {
		snap.Step = StepEmail
	}
	if snap.Step == StepDetails && snap.Email == "" {
		snap.Step = StepEmail
	}
}
