package packing

import (
	"errors"
	"math"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ExpiredReason is recorded on sessions cancelled by the stale session expiry.
const ExpiredReason = "expired"

var (
	// ErrSessionIsNotConstructed is returned when a Session was not created through
	// NewSession or RestoreSession.
	ErrSessionIsNotConstructed = errors.New("Session must be created via NewSession or RestoreSession")
)

// Session records an admin physically scanning the items of one order into a box.
//
// Session follows these invariants:
//   - An order has at most one InProgress session at a time (enforced by the store)
//   - Scan progress only changes while the session is InProgress
//   - Completed sessions carry completed_at and a non-negative duration in minutes
//   - Completed and Cancelled sessions are immutable
//   - Version counts the writes a store accepted; a write based on an older
//     version is rejected so concurrent scans never overwrite each other
type Session struct {
	id         kernel.UUID
	orderID    kernel.UUID
	adminEmail string
	progress   ScanProgress
	status     Status
	startedAt  time.Time

	completedAt     *time.Time
	durationMinutes *int
	cancelledAt     *time.Time
	cancelReason    string

	version int64

	isConstructed bool
}

// NewSession opens an InProgress session with empty scan progress.
//
// Example:
//
//	s, err := packing.NewSession(kernel.NewUUID(), orderID, "packer@store.in", clock.Now())
func NewSession(id, orderID kernel.UUID, adminEmail string, startedAt time.Time) (*Session, error) {
	s := &Session{
		progress:      ScanProgress{},
		status:        InProgress,
		startedAt:     startedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setOrderID(orderID),
		s.setAdminEmail(adminEmail),
	); err != nil {
		return nil, err
	}
	return s, nil
}

// RestoreSessionParams carries the persisted state of a session.
type RestoreSessionParams struct {
	ID              kernel.UUID
	OrderID         kernel.UUID
	AdminEmail      string
	Progress        ScanProgress
	Status          Status
	StartedAt       time.Time
	CompletedAt     *time.Time
	DurationMinutes *int
	CancelledAt     *time.Time
	CancelReason    string
	Version         int64
}

func RestoreSession(p RestoreSessionParams) (*Session, error) {
	if err := errors.Join(p.ID.Validate(), p.OrderID.Validate(), p.Status.Validate()); err != nil {
		return nil, err
	}

	return &Session{
		id:              p.ID,
		orderID:         p.OrderID,
		adminEmail:      p.AdminEmail,
		progress:        p.Progress.Clone(),
		status:          p.Status,
		startedAt:       p.StartedAt,
		completedAt:     p.CompletedAt,
		durationMinutes: p.DurationMinutes,
		cancelledAt:     p.CancelledAt,
		cancelReason:    p.CancelReason,
		version:         p.Version,
		isConstructed:   true,
	}, nil
}

func (s *Session) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSessionIsNotConstructed
	}
	return nil
}

func (s *Session) ID() kernel.UUID {
	return s.id
}

func (s *Session) OrderID() kernel.UUID {
	return s.orderID
}

func (s *Session) AdminEmail() string {
	return s.adminEmail
}

// Progress returns a copy of the scan progress.
func (s *Session) Progress() ScanProgress {
	return s.progress.Clone()
}

func (s *Session) Status() Status {
	return s.status
}

func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

func (s *Session) CompletedAt() *time.Time {
	return s.completedAt
}

func (s *Session) DurationMinutes() *int {
	return s.durationMinutes
}

func (s *Session) CancelledAt() *time.Time {
	return s.cancelledAt
}

func (s *Session) CancelReason() string {
	return s.cancelReason
}

// Version is the stored revision this session was read at. New sessions start at 0.
func (s *Session) Version() int64 {
	return s.version
}

// SetVersion records the revision a store just wrote.
func (s *Session) SetVersion(version int64) {
	s.version = version
}

// UpdateProgress merges update into the scan progress. ordered bounds every
// count; see ScanProgress.Merge.
func (s *Session) UpdateProgress(update ScanProgress, ordered map[string]int) error {
	if err := s.requireActive(InProgress); err != nil {
		return err
	}

	merged, err := s.progress.Merge(update, ordered)
	if err != nil {
		return err
	}
	s.progress = merged
	return nil
}

// Complete closes the session at now and records the packing duration rounded
// to whole minutes.
func (s *Session) Complete(now time.Time) error {
	if err := s.requireActive(Completed); err != nil {
		return err
	}

	completedAt := kernel.LaterOf(now, s.startedAt)
	minutes := int(math.Round(completedAt.Sub(s.startedAt).Minutes()))

	s.completedAt = &completedAt
	s.durationMinutes = &minutes
	s.status = Completed
	return nil
}

// Cancel abandons the session. No duration is recorded.
func (s *Session) Cancel(reason string, now time.Time) error {
	if err := s.requireActive(Cancelled); err != nil {
		return err
	}

	cancelledAt := kernel.LaterOf(now, s.startedAt)
	s.cancelledAt = &cancelledAt
	s.cancelReason = strings.TrimSpace(reason)
	s.status = Cancelled
	return nil
}

// IsStale reports whether an active session was started before cutoff.
func (s *Session) IsStale(cutoff time.Time) bool {
	return s.status == InProgress && s.startedAt.Before(cutoff)
}

func (s *Session) requireActive(target Status) error {
	if s.status != InProgress {
		return errs.NewStateTransitionIsInvalidError("packing session", s.status.String(), target.String())
	}
	return nil
}

func (s *Session) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Session) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("order id", err)
	}
	s.orderID = orderID
	return nil
}

func (s *Session) setAdminEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errs.NewValueIsRequiredError("admin email")
	}
	if !strings.Contains(email, "@") {
		return errs.NewValueIsInvalidError("admin email")
	}
	s.adminEmail = email
	return nil
}
