package booking

import (
	"errors"
)

var (
	ErrPastDate             = errors.New("cannot book a past date")
	ErrNoDateSelected       = errors.New("no date selected")
	ErrSlotUnavailable      = errors.New("time slot already booked")
	ErrSubmissionInProgress = errors.New("submission in progress")
	ErrNotSubmitting        = errors.New("no submission in progress")
	ErrInvalidFormState     = errors.New("invalid form state")
)

type FormState string

const (
	FormIdle         FormState = "idle"
	FormDateSelected FormState = "date_selected"
	FormSlotChosen   FormState = "slot_chosen"
	FormSubmitting   FormState = "submitting"
)

func (s FormState) IsValid() bool {
	switch s {
	case FormIdle, FormDateSelected, FormSlotChosen, FormSubmitting:
		return true
	default:
		return false
	}
}

// Form is the booking form state machine:
// idle -> date_selected -> slot_chosen -> submitting -> idle on success,
// or back to slot_chosen on failure with every field kept.
type Form struct {
	state   FormState
	date    Date
	slot    TimeSlot
	contact Contact
}

func NewForm() *Form {
	return &Form{state: FormIdle}
}

func (f *Form) State() FormState   { return f.state }
func (f *Form) Date() Date         { return f.date }
func (f *Form) Slot() TimeSlot     { return f.slot }
func (f *Form) Contact() Contact   { return f.contact }
func (f *Form) IsSubmitting() bool { return f.state == FormSubmitting }

// SelectDate rejects past dates without touching the form.
func (f *Form) SelectDate(date, today Date) error {
	if f.state == FormSubmitting {
		return ErrSubmissionInProgress
	}
	if date.IsZero() {
		return ErrInvalidDate
	}
	if date.Before(today) {
		return ErrPastDate
	}

	f.date = date
	f.slot = TimeSlot{}
	f.state = FormDateSelected
	return nil
}

// ChooseSlot only accepts slots that are not in taken.
func (f *Form) ChooseSlot(slot TimeSlot, taken SlotSet) error {
	if f.state == FormSubmitting {
		return ErrSubmissionInProgress
	}
	if f.date.IsZero() {
		return ErrNoDateSelected
	}
	if _, err := ParseTimeSlot(slot.String()); err != nil {
		return err
	}
	if taken.Contains(slot) {
		return ErrSlotUnavailable
	}

	f.slot = slot
	f.state = FormSlotChosen
	return nil
}

func (f *Form) UpdateContact(contact Contact) error {
	if f.state == FormSubmitting {
		return ErrSubmissionInProgress
	}
	f.contact = contact
	return nil
}

// Validate reports every missing or malformed field at once.
func (f *Form) Validate() error {
	verr := &ValidationError{}
	if f.date.IsZero() {
		verr.add("date", "is required")
	}
	if f.slot.IsZero() {
		verr.add("slot", "is required")
	}
	verr.merge(f.contact.Validate())
	return verr.orNil()
}

func (f *Form) CanSubmit() bool {
	return f.state == FormSlotChosen && f.Validate() == nil
}

// BeginSubmit validates the form and moves it to submitting. Nothing changes
// when validation fails, so callers can short-circuit before any network call.
func (f *Form) BeginSubmit(stadiumID int64, today Date) (Submission, error) {
	if f.state == FormSubmitting {
		return Submission{}, ErrSubmissionInProgress
	}

	sub, err := NewSubmission(stadiumID, f.date, f.slot, f.contact, today)
	if err != nil {
		return Submission{}, err
	}
	if f.state != FormSlotChosen {
		return Submission{}, ErrInvalidFormState
	}

	f.state = FormSubmitting
	return sub, nil
}

// CompleteSubmit clears every field after a successful submission.
func (f *Form) CompleteSubmit() error {
	if f.state != FormSubmitting {
		return ErrNotSubmitting
	}
	f.Reset()
	return nil
}

// FailSubmit keeps all fields so the user can retry without re-entering data.
func (f *Form) FailSubmit() error {
	if f.state != FormSubmitting {
		return ErrNotSubmitting
	}
	f.state = FormSlotChosen
	return nil
}

func (f *Form) Reset() {
	f.state = FormIdle
	f.date = Date{}
	f.slot = TimeSlot{}
	f.contact = Contact{}
}

// FormSnapshot is the serialisable form state kept in the session store.
type FormSnapshot struct {
	State         FormState `json:"state"`
	Date          Date      `json:"date"`
	Slot          string    `json:"slot,omitempty"`
	Name          string    `json:"name,omitempty"`
	CountryPrefix string    `json:"countryPrefix,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Email         string    `json:"email,omitempty"`
}

func (f *Form) Snapshot() FormSnapshot {
	return FormSnapshot{
		State:         f.state,
		Date:          f.date,
		Slot:          f.slot.String(),
		Name:          f.contact.Name,
		CountryPrefix: f.contact.CountryPrefix,
		Phone:         f.contact.Phone,
		Email:         f.contact.Email,
	}
}

func ReconstructForm(snap FormSnapshot) (*Form, error) {
	state := snap.State
	if state == "" {
		state = FormIdle
	}
	if !state.IsValid() {
		return nil, ErrInvalidFormState
	}

	var slot TimeSlot
	if snap.Slot != "" {
		parsed, err := ParseTimeSlot(snap.Slot)
		if err != nil {
			return nil, err
		}
		slot = parsed
	}

	return &Form{
		state: state,
		date:  snap.Date,
		slot:  slot,
		contact: Contact{
			Name:          snap.Name,
			CountryPrefix: snap.CountryPrefix,
			Phone:         snap.Phone,
			Email:         snap.Email,
		},
	}, nil
}

// Submission is a validated booking request ready for the two backend calls.
type Submission struct {
	StadiumID int64
	Date      Date
	Slot      TimeSlot
	Contact   Contact
}

func NewSubmission(stadiumID int64, date Date, slot TimeSlot, contact Contact, today Date) (Submission, error) {
	verr := &ValidationError{}
	if stadiumID <= 0 {
		verr.add("stadiumID", "is required")
	}
	if date.IsZero() {
		verr.add("date", "is required")
	}
	if slot.IsZero() {
		verr.add("slot", "is required")
	} else if _, err := ParseTimeSlot(slot.String()); err != nil {
		verr.add("slot", "is not a bookable time slot")
	}
	verr.merge(contact.Validate())
	if err := verr.orNil(); err != nil {
		return Submission{}, err
	}

	if date.Before(today) {
		return Submission{}, ErrPastDate
	}

	return Submission{
		StadiumID: stadiumID,
		Date:      date,
		Slot:      slot,
		Contact:   contact,
	}, nil
}
