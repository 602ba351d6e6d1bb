//go:build unit

package booking_test

import (
	"errors"
	"testing"

	"arenahub-booking/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validContact() booking.Contact {
	return booking.NewContact("Asha Mwangi", "+255", "712345678", "asha@example.com")
}

func slot(t *testing.T, label string) booking.TimeSlot {
	t.Helper()
	s, err := booking.ParseTimeSlot(label)
	require.NoError(t, err)
	return s
}

// readyForm is a form one step away from submission.
func readyForm(t *testing.T) *booking.Form {
	t.Helper()
	f := booking.NewForm()
	require.NoError(t, f.SelectDate(today.AddDays(1), today))
	require.NoError(t, f.ChooseSlot(slot(t, "09:00 - 11:00"), booking.NewSlotSet()))
	require.NoError(t, f.UpdateContact(validContact()))
	return f
}

func TestForm_Selection(t *testing.T) {
	t.Run("starts idle", func(t *testing.T) {
		f := booking.NewForm()
		assert.Equal(t, booking.FormIdle, f.State())
		assert.True(t, f.Date().IsZero())
		assert.True(t, f.Slot().IsZero())
		assert.False(t, f.CanSubmit())
	})

	t.Run("past date is rejected and nothing changes", func(t *testing.T) {
		f := booking.NewForm()
		err := f.SelectDate(today.AddDays(-1), today)

		require.ErrorIs(t, err, booking.ErrPastDate)
		assert.Equal(t, booking.FormIdle, f.State())
		assert.True(t, f.Date().IsZero())
	})

	t.Run("today is selectable", func(t *testing.T) {
		f := booking.NewForm()
		require.NoError(t, f.SelectDate(today, today))
		assert.Equal(t, booking.FormDateSelected, f.State())
	})

	t.Run("changing the date clears the slot", func(t *testing.T) {
		f := readyForm(t)
		require.NoError(t, f.SelectDate(today.AddDays(2), today))

		assert.Equal(t, booking.FormDateSelected, f.State())
		assert.True(t, f.Slot().IsZero())
		assert.Equal(t, validContact(), f.Contact())
	})

	t.Run("slot needs a date", func(t *testing.T) {
		f := booking.NewForm()
		err := f.ChooseSlot(slot(t, "09:00 - 11:00"), booking.NewSlotSet())
		require.ErrorIs(t, err, booking.ErrNoDateSelected)
	})

	t.Run("taken slot cannot be chosen", func(t *testing.T) {
		f := booking.NewForm()
		require.NoError(t, f.SelectDate(today.AddDays(1), today))

		err := f.ChooseSlot(slot(t, "09:00 - 11:00"), booking.NewSlotSet("09:00 - 11:00"))
		require.ErrorIs(t, err, booking.ErrSlotUnavailable)
		assert.Equal(t, booking.FormDateSelected, f.State())
		assert.True(t, f.Slot().IsZero())
	})

	t.Run("non-canonical slot is rejected", func(t *testing.T) {
		f := booking.NewForm()
		require.NoError(t, f.SelectDate(today.AddDays(1), today))

		err := f.ChooseSlot(booking.TimeSlot{}, booking.NewSlotSet())
		require.ErrorIs(t, err, booking.ErrUnknownSlot)
	})
}

func TestForm_Submit(t *testing.T) {
	t.Run("validation failure leaves the form untouched", func(t *testing.T) {
		f := booking.NewForm()
		require.NoError(t, f.SelectDate(today.AddDays(1), today))
		require.NoError(t, f.ChooseSlot(slot(t, "11:00 - 13:00"), booking.NewSlotSet()))
		require.NoError(t, f.UpdateContact(booking.NewContact("Asha", "+255", "123", "")))

		_, err := f.BeginSubmit(stadiumID, today)
		require.ErrorIs(t, err, booking.ErrValidation)

		var verr *booking.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Contains(t, verr.Fields, "phone")
		assert.Contains(t, verr.Fields, "email")
		assert.Equal(t, booking.FormSlotChosen, f.State())
	})

	t.Run("missing slot is a validation error", func(t *testing.T) {
		f := booking.NewForm()
		require.NoError(t, f.SelectDate(today.AddDays(1), today))
		require.NoError(t, f.UpdateContact(validContact()))

		_, err := f.BeginSubmit(stadiumID, today)
		var verr *booking.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Contains(t, verr.Fields, "slot")
	})

	t.Run("date gone stale by submit time", func(t *testing.T) {
		f := readyForm(t)
		_, err := f.BeginSubmit(stadiumID, today.AddDays(2))
		require.ErrorIs(t, err, booking.ErrPastDate)
		assert.Equal(t, booking.FormSlotChosen, f.State())
	})

	t.Run("second submit while in flight is refused", func(t *testing.T) {
		f := readyForm(t)
		sub, err := f.BeginSubmit(stadiumID, today)
		require.NoError(t, err)
		assert.Equal(t, stadiumID, sub.StadiumID)
		assert.Equal(t, "09:00 - 11:00", sub.Slot.String())
		assert.True(t, f.IsSubmitting())

		_, err = f.BeginSubmit(stadiumID, today)
		require.ErrorIs(t, err, booking.ErrSubmissionInProgress)
		require.ErrorIs(t, f.UpdateContact(validContact()), booking.ErrSubmissionInProgress)
		require.ErrorIs(t, f.SelectDate(today, today), booking.ErrSubmissionInProgress)
	})

	t.Run("success clears every field", func(t *testing.T) {
		f := readyForm(t)
		_, err := f.BeginSubmit(stadiumID, today)
		require.NoError(t, err)

		require.NoError(t, f.CompleteSubmit())
		assert.Equal(t, booking.FormIdle, f.State())
		assert.True(t, f.Date().IsZero())
		assert.True(t, f.Slot().IsZero())
		assert.True(t, f.Contact().IsEmpty())
	})

	t.Run("failure keeps every field", func(t *testing.T) {
		f := readyForm(t)
		before := f.Snapshot()
		_, err := f.BeginSubmit(stadiumID, today)
		require.NoError(t, err)

		require.NoError(t, f.FailSubmit())
		assert.Equal(t, before, f.Snapshot())
		assert.True(t, f.CanSubmit())
	})

	t.Run("complete or fail without a submission", func(t *testing.T) {
		f := readyForm(t)
		require.ErrorIs(t, f.CompleteSubmit(), booking.ErrNotSubmitting)
		require.ErrorIs(t, f.FailSubmit(), booking.ErrNotSubmitting)
	})
}

func TestForm_Snapshot(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		f := readyForm(t)
		restored, err := booking.ReconstructForm(f.Snapshot())
		require.NoError(t, err)
		assert.Equal(t, f.Snapshot(), restored.Snapshot())
	})

	t.Run("empty snapshot is idle", func(t *testing.T) {
		restored, err := booking.ReconstructForm(booking.FormSnapshot{})
		require.NoError(t, err)
		assert.Equal(t, booking.FormIdle, restored.State())
	})

	t.Run("unknown state", func(t *testing.T) {
		_, err := booking.ReconstructForm(booking.FormSnapshot{State: "paid"})
		require.ErrorIs(t, err, booking.ErrInvalidFormState)
	})

	t.Run("unknown slot", func(t *testing.T) {
		_, err := booking.ReconstructForm(booking.FormSnapshot{State: booking.FormSlotChosen, Slot: "08:00 - 09:00"})
		require.ErrorIs(t, err, booking.ErrUnknownSlot)
	})
}

func TestNewSubmission(t *testing.T) {
	t.Run("missing stadium", func(t *testing.T) {
		_, err := booking.NewSubmission(0, today, slot(t, "09:00 - 11:00"), validContact(), today)

		var verr *booking.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Contains(t, verr.Fields, "stadiumID")
	})

	t.Run("past date", func(t *testing.T) {
		_, err := booking.NewSubmission(stadiumID, today.AddDays(-1), slot(t, "09:00 - 11:00"), validContact(), today)
		require.ErrorIs(t, err, booking.ErrPastDate)
	})

	t.Run("valid", func(t *testing.T) {
		sub, err := booking.NewSubmission(stadiumID, today, slot(t, "21:00 - 23:00"), validContact(), today)
		require.NoError(t, err)
		assert.Equal(t, today, sub.Date)
		assert.Equal(t, "+255712345678", sub.Contact.FullPhone())
	})
}
