// Package flow implements the multi-step subscription flow: a state machine
// over the steps Email, Details, Success, Setup, Completed, and
// AlreadySubscribed, with local persistence and a remote submission
// collaborator.
package flow

import (
	"context"
	"errors"
	"sync"
	"time"

	"anxonews-server/internal/localstore"
	"anxonews-server/internal/observability"
	"anxonews-server/internal/validation"
)

// CountdownSeconds is the confirmation-window timer value set on the first
// entry into the Success step.
const CountdownSeconds = 5 * 60

// DefaultPhoneRegion is the region phone numbers are validated against when
// entered without a country prefix.
const DefaultPhoneRegion = "ES"

// User-facing messages surfaced on the form.
const (
	msgInvalidEmail    = "Por favor ingresa un email válido"
	msgTooManyAttempts = "Demasiados intentos. Espera una hora."
	msgInvalidName     = "Por favor ingresa tu nombre"
	msgInvalidPhone    = "Por favor ingresa un teléfono válido"
	msgPrivacyRequired = "Debes aceptar la Política de Privacidad"
	msgConnectivity    = "Error de conexión. Verifica tu internet."
)

// ServerError is a submission rejection carrying a server-provided,
// human-readable message that is surfaced to the user verbatim.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string {
	return e.Message
}

// Submitter sends a validated signup to the remote subscription endpoint.
// The call suspends the Details transition until it settles; there is no
// client-side retry.
type Submitter interface {
	Submit(ctx context.Context, email, name string) error
}

// Flow holds the live state of one subscription session. Every mutation
// immediately overwrites the persisted snapshot. The zero value is not
// usable; construct with New.
type Flow struct {
	mu sync.Mutex

	step            localstore.Step
	email           string
	name            string
	phone           string
	acceptedPrivacy bool
	savedName       string
	setupChecks     localstore.SetupChecks
	countdown       int
	errMsg          string
	submitting      bool

	registry  localstore.Registry
	limiter   localstore.AttemptLimiter
	snapshots localstore.SnapshotStore
	submitter Submitter
	logger    *observability.Logger

	phoneRegion  string
	tickInterval time.Duration
	tickerStop   chan struct{}
	tickerDone   chan struct{}
}

// New builds a Flow and rehydrates it from the persisted snapshot when one
// is present and unexpired.
func New(registry localstore.Registry, limiter localstore.AttemptLimiter, snapshots localstore.SnapshotStore, submitter Submitter, logger *observability.Logger) *Flow {
	f := &Flow{
		step:         localstore.StepEmail,
		registry:     registry,
		limiter:      limiter,
		snapshots:    snapshots,
		submitter:    submitter,
		logger:       logger,
		phoneRegion:  DefaultPhoneRegion,
		tickInterval: time.Second,
	}
	f.restore()
	return f
}

// WithPhoneRegion overrides the default phone validation region.
func (f *Flow) WithPhoneRegion(region string) *Flow {
	f.phoneRegion = region
	return f
}

// WithTickInterval shortens the countdown tick. Used in tests.
func (f *Flow) WithTickInterval(d time.Duration) *Flow {
	f.tickInterval = d
	return f
}

func (f *Flow) restore() {
	snap, err := f.snapshots.Load()
	if err != nil {
		f.logger.Error(context.Background(), "failed to load flow snapshot", err)
		return
	}
	if snap == nil {
		return
	}
	f.step = snap.Step
	f.email = snap.Email
	f.name = snap.Name
	f.phone = snap.Phone
	f.acceptedPrivacy = snap.AcceptedPrivacy
	f.savedName = snap.SavedName
	f.setupChecks = snap.SetupChecks
	if f.step == localstore.StepSuccess || f.step == localstore.StepSetup {
		// The countdown itself is not persisted; a resumed session
		// restarts the full window.
		f.countdown = CountdownSeconds
	}
}

// persist overwrites the snapshot. Callers hold the mutex. Persistence
// failures are logged and never block a transition.
func (f *Flow) persist() {
	snap := localstore.Snapshot{
		Step:            f.step,
		Email:           f.email,
		Name:            f.name,
		Phone:           f.phone,
		AcceptedPrivacy: f.acceptedPrivacy,
		SavedName:       f.savedName,
		SetupChecks:     f.setupChecks,
	}
	if err := f.snapshots.Save(snap); err != nil {
		f.logger.Error(context.Background(), "failed to persist flow snapshot", err)
	}
}

// Step returns the current flow step.
func (f *Flow) Step() localstore.Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// Err returns the message for the last failed transition, empty when none.
func (f *Flow) Err() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errMsg
}

// SavedName returns the name snapshot taken at successful submission, used
// for personalized post-success copy.
func (f *Flow) SavedName() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.savedName
}

// Email returns the email currently entered on the form.
func (f *Flow) Email() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.email
}

// Countdown returns the remaining confirmation-window seconds.
func (f *Flow) Countdown() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.countdown
}

// SetupChecks returns the current inbox-setup acknowledgements.
func (f *Flow) SetupChecks() localstore.SetupChecks {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.setupChecks
}

// Submitting reports whether a remote submission is in flight. The UI
// disables the submit control while true.
func (f *Flow) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// SetEmail updates the form email and clears any pending error.
func (f *Flow) SetEmail(email string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.email = email
	f.errMsg = ""
	f.persist()
}

// SetName updates the form name and clears any pending error.
func (f *Flow) SetName(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.name = name
	f.errMsg = ""
	f.persist()
}

// SetPhone updates the form phone and clears any pending error.
func (f *Flow) SetPhone(phone string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.phone = phone
	f.errMsg = ""
	f.persist()
}

// SetAcceptedPrivacy updates the consent flag and clears any pending error.
func (f *Flow) SetAcceptedPrivacy(accepted bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.acceptedPrivacy = accepted
	f.errMsg = ""
	f.persist()
}

// ContinueEmail applies the Email step's continue transition: validate the
// address, consume a local attempt, check the local registry, and advance
// to Details or AlreadySubscribed.
func (f *Flow) ContinueEmail() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != localstore.StepEmail {
		return
	}

	normalized := validation.NormalizeEmail(f.email)
	if !validation.ValidateEmail(normalized) {
		f.errMsg = msgInvalidEmail
		f.persist()
		return
	}
	if !f.limiter.CheckAndConsume() {
		f.errMsg = msgTooManyAttempts
		f.persist()
		return
	}
	if f.registry.IsRegistered(normalized) {
		f.step = localstore.StepAlreadySubscribed
		f.persist()
		return
	}

	f.email = normalized
	f.errMsg = ""
	f.step = localstore.StepDetails
	f.persist()
}

// SubmitDetails applies the Details step's submit transition. Validation
// failures surface in guard order: name, phone, privacy consent. On remote
// success the email is registered locally, the sanitized name is
// snapshotted, live form fields are cleared, and the flow enters Success.
// On remote failure the flow stays on Details with the server's message
// when available. At most one submission is in flight at a time.
func (f *Flow) SubmitDetails(ctx context.Context) {
	f.mu.Lock()
	if f.step != localstore.StepDetails || f.submitting {
		f.mu.Unlock()
		return
	}

	sanitizedName := validation.SanitizeName(f.name)
	normalizedEmail := validation.NormalizeEmail(f.email)

	if len([]rune(sanitizedName)) < validation.MinNameLength {
		f.errMsg = msgInvalidName
		f.persist()
		f.mu.Unlock()
		return
	}
	if !validation.ValidatePhone(f.phone, f.phoneRegion) {
		f.errMsg = msgInvalidPhone
		f.persist()
		f.mu.Unlock()
		return
	}
	if !f.acceptedPrivacy {
		f.errMsg = msgPrivacyRequired
		f.persist()
		f.mu.Unlock()
		return
	}

	f.submitting = true
	f.errMsg = ""
	f.mu.Unlock()

	err := f.submitter.Submit(ctx, normalizedEmail, sanitizedName)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false

	if err != nil {
		var serverErr *ServerError
		if errors.As(err, &serverErr) && serverErr.Message != "" {
			f.errMsg = serverErr.Message
		} else {
			f.errMsg = msgConnectivity
		}
		f.persist()
		return
	}

	if regErr := f.registry.Register(normalizedEmail); regErr != nil {
		// Local registry is best effort; the upstream accepted the signup.
		f.logger.Error(ctx, "failed to register subscriber locally", regErr)
	}
	f.savedName = sanitizedName
	f.step = localstore.StepSuccess
	f.email = ""
	f.name = ""
	f.phone = ""
	f.acceptedPrivacy = false
	f.countdown = CountdownSeconds
	f.persist()
}

// AcknowledgeAlreadySubscribed resets the flow from AlreadySubscribed back
// to a clean Email step.
func (f *Flow) AcknowledgeAlreadySubscribed() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != localstore.StepAlreadySubscribed {
		return
	}
	f.step = localstore.StepEmail
	f.email = ""
	f.errMsg = ""
	f.persist()
}

// ContinueToSetup advances Success to Setup. The countdown keeps running
// from its current value.
func (f *Flow) ContinueToSetup() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != localstore.StepSuccess {
		return
	}
	f.step = localstore.StepSetup
	f.persist()
}

// SetupCheck selects one of the two inbox-setup acknowledgements.
type SetupCheck string

const (
	CheckFilter  SetupCheck = "filter"
	CheckPrimary SetupCheck = "primary"
)

// SetSetupCheck toggles one setup acknowledgement while in Setup. The two
// checks are independent; there is no ordering constraint.
func (f *Flow) SetSetupCheck(check SetupCheck, done bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != localstore.StepSetup {
		return
	}
	switch check {
	case CheckFilter:
		f.setupChecks.Filter = done
	case CheckPrimary:
		f.setupChecks.Primary = done
	}
	f.persist()
}

// FinishSetup completes the flow once both setup acknowledgements are set.
// This is the only state-clearing transition: the persisted snapshot is
// deleted and the next session starts clean.
func (f *Flow) FinishSetup() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != localstore.StepSetup {
		return
	}
	if !f.setupChecks.Filter || !f.setupChecks.Primary {
		return
	}
	f.step = localstore.StepCompleted
	f.stopCountdownLocked()
	if err := f.snapshots.Clear(); err != nil {
		f.logger.Error(context.Background(), "failed to clear flow snapshot", err)
	}
}
