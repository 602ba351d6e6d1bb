package session

import (
	"errors"
	"time"

	"arenahub-booking/internal/domain/booking"
	"arenahub-booking/internal/domain/stadium"

	"github.com/google/uuid"
)

var (
	ErrBookingFlowNotStarted = errors.New("booking flow not started")
	ErrInvalidSessionID      = errors.New("session id cannot be empty")
)

// Session is one browser tab's walk through stadium selection and the
// booking form.
type Session struct {
	id        uuid.UUID
	selection *stadium.Selection
	form      *booking.Form
	createdAt time.Time
	updatedAt time.Time
}

func New(now time.Time) *Session {
	return &Session{
		id:        uuid.New(),
		selection: stadium.NewSelection(),
		form:      booking.NewForm(),
		createdAt: now,
		updatedAt: now,
	}
}

func (s *Session) ID() uuid.UUID                 { return s.id }
func (s *Session) Selection() *stadium.Selection { return s.selection }
func (s *Session) Form() *booking.Form           { return s.form }
func (s *Session) CreatedAt() time.Time          { return s.createdAt }
func (s *Session) UpdatedAt() time.Time          { return s.updatedAt }

func (s *Session) Touch(now time.Time) {
	s.updatedAt = now
}

// SelectStadium resets the form whenever the stadium changes, since taken
// slots and dates belong to the previous stadium.
func (s *Session) SelectStadium(catalog *stadium.Catalog, id int64) (*stadium.Stadium, error) {
	if s.form.IsSubmitting() {
		return nil, booking.ErrSubmissionInProgress
	}
	st, changed, err := s.selection.Select(catalog, id)
	if err != nil {
		return nil, err
	}
	if changed {
		s.form.Reset()
	}
	return st, nil
}

func (s *Session) Proceed() error {
	return s.selection.Proceed()
}

// BookingStadiumID returns the stadium the form is bound to. The form is
// only reachable after the user proceeded from the selector.
func (s *Session) BookingStadiumID() (int64, error) {
	if !s.selection.HasSelection() {
		return 0, stadium.ErrNoStadiumSelected
	}
	if !s.selection.Proceeded() {
		return 0, ErrBookingFlowNotStarted
	}
	return s.selection.SelectedID(), nil
}

// Snapshot is the stored form of a session.
type Snapshot struct {
	ID        uuid.UUID            `json:"id"`
	StadiumID int64                `json:"stadiumID,omitempty"`
	Proceeded bool                 `json:"proceeded"`
	Form      booking.FormSnapshot `json:"form"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		ID:        s.id,
		StadiumID: s.selection.SelectedID(),
		Proceeded: s.selection.Proceeded(),
		Form:      s.form.Snapshot(),
		CreatedAt: s.createdAt,
		UpdatedAt: s.updatedAt,
	}
}

func Reconstruct(snap Snapshot) (*Session, error) {
	if snap.ID == uuid.Nil {
		return nil, ErrInvalidSessionID
	}
	form, err := booking.ReconstructForm(snap.Form)
	if err != nil {
		return nil, err
	}
	return &Session{
		id:        snap.ID,
		selection: stadium.ReconstructSelection(snap.StadiumID, snap.Proceeded),
		form:      form,
		createdAt: snap.CreatedAt,
		updatedAt: snap.UpdatedAt,
	}, nil
}
