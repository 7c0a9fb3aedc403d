// Package form holds one attendee's registration record together with the
// editing/submitting/submitted lifecycle around it.
//
// A Form has a single logical owner. The mutex only protects against the HTTP
// server delivering two requests for the same session at once; it is released
// while the webhook call is in flight and the loading flag rejects re-entry.
package form

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"workshop-registration/pkg/logger"
	"workshop-registration/pkg/metrics"
	"workshop-registration/pkg/models"
	"workshop-registration/pkg/services"
	"workshop-registration/pkg/utils"
)

var (
	ErrSubmitting = errors.New("a submission is already in progress")
	ErrSubmitted  = errors.New("registration has already been submitted")
)

const (
	// FallbackErrorMessage is shown when a failed submission carries no message
	FallbackErrorMessage = "An error occurred while submitting the form"
	// NetworkErrorMessage replaces transport failures, whose text names the webhook URL
	NetworkErrorMessage = "Network Error"
)

// Phase is the lifecycle stage derived from the UI flags
type Phase string

const (
	PhaseEditing    Phase = "editing"
	PhaseSubmitting Phase = "submitting"
	PhaseSubmitted  Phase = "submitted"
)

// Validator checks a record before submission
type Validator interface {
	Validate(record models.RegistrationRecord) error
}

// Snapshot is a copy of the form's state at one instant
type Snapshot struct {
	Record    models.RegistrationRecord `json:"record"`
	Loading   bool                      `json:"loading"`
	Submitted bool                      `json:"submitted"`
	Error     string                    `json:"error"`
}

// Phase derives the lifecycle stage
func (s Snapshot) Phase() Phase {
	switch {
	case s.Submitted:
		return PhaseSubmitted
	case s.Loading:
		return PhaseSubmitting
	default:
		return PhaseEditing
	}
}

// Form is the registration state store
type Form struct {
	validator Validator
	submitter services.RegistrationSubmitter
	metrics   *metrics.Metrics

	mu        sync.Mutex
	record    models.RegistrationRecord
	loading   bool
	submitted bool
	errMsg    string
}

// Option configures optional collaborators
type Option func(*Form)

// WithMetrics counts submit outcomes
func WithMetrics(m *metrics.Metrics) Option {
	return func(f *Form) {
		f.metrics = m
	}
}

// New creates a form holding a fresh record
func New(validator Validator, submitter services.RegistrationSubmitter, opts ...Option) *Form {
	f := &Form{
		validator: validator,
		submitter: submitter,
		record:    models.NewRegistrationRecord(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Snapshot returns the current record and UI state
func (f *Form) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

func (f *Form) snapshotLocked() Snapshot {
	return Snapshot{
		Record:    f.record,
		Loading:   f.loading,
		Submitted: f.submitted,
		Error:     f.errMsg,
	}
}

// Apply replaces the targeted fields. Either every update applies or none does.
func (f *Form) Apply(updates ...models.Update) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.editableLocked(); err != nil {
		return err
	}

	next, err := models.Apply(f.record, updates...)
	if err != nil {
		return err
	}
	f.record = next
	return nil
}

func (f *Form) editableLocked() error {
	if f.submitted {
		return ErrSubmitted
	}
	if f.loading {
		return ErrSubmitting
	}
	return nil
}

// Submit validates the record and, when valid, delivers it once.
//
// A *services.ValidationError or the delivery error is returned alongside the
// resulting snapshot; in both cases the form is editable again with its error set.
// ErrSubmitting and ErrSubmitted leave the state untouched.
//
// Once delivery starts it cannot be aborted: cancelling ctx does not reach the
// webhook call, only ctx's values do.
func (f *Form) Submit(ctx context.Context) (Snapshot, error) {
	log := logger.FromContext(ctx)

	f.mu.Lock()
	if err := f.editableLocked(); err != nil {
		snap := f.snapshotLocked()
		f.mu.Unlock()
		return snap, err
	}

	if err := f.validator.Validate(f.record); err != nil {
		f.errMsg = err.Error()
		snap := f.snapshotLocked()
		f.mu.Unlock()

		var validationErr *services.ValidationError
		if errors.As(err, &validationErr) {
			f.metrics.IncrementValidationFailure(validationErr.Rule)
		}
		f.metrics.IncrementSubmission(metrics.OutcomeInvalid)
		log.Debug("registration rejected", slog.String("error", err.Error()))
		return snap, err
	}

	f.loading = true
	f.errMsg = ""
	record := f.record
	f.mu.Unlock()

	delivered := false
	defer func() {
		if delivered {
			return
		}
		// the submitter panicked; leave the form editable
		f.mu.Lock()
		f.loading = false
		f.errMsg = FallbackErrorMessage
		f.mu.Unlock()
	}()

	err := f.submitter.Submit(context.WithoutCancel(ctx), record)
	delivered = true

	f.mu.Lock()
	defer f.mu.Unlock()
	f.loading = false

	if err != nil {
		f.errMsg = displayMessage(err)
		f.metrics.IncrementSubmission(metrics.OutcomeFailed)
		return f.snapshotLocked(), err
	}

	f.submitted = true
	f.metrics.IncrementSubmission(metrics.OutcomeSubmitted)
	log.Info("registration submitted", slog.String("email_hash", utils.HashEmail(record.Email)))
	return f.snapshotLocked(), nil
}

// displayMessage turns a submission failure into inline text.
// Transport errors are reduced to NetworkErrorMessage; the full error is only logged.
func displayMessage(err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return NetworkErrorMessage
	}

	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		return FallbackErrorMessage
	}
	first, size := utf8.DecodeRuneInString(msg)
	return string(unicode.ToUpper(first)) + msg[size:]
}
