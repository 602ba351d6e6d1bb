//go:build unit || e2e

package builder

import (
	"time"

	"arenahub-booking/internal/domain/booking"
	reqdto "arenahub-booking/internal/handler/dto/request"
	"arenahub-booking/internal/usecase/commands"
)

type BookingBuilder struct {
	StadiumID     int64
	Date          booking.Date
	Slot          string
	Name          string
	CountryPrefix string
	Phone         string
	Email         string
	Today         booking.Date
}

// NewBookingBuilder returns a valid booking for stadium 2 tomorrow at 09:00 - 11:00.
func NewBookingBuilder() *BookingBuilder {
	today := booking.DateOf(time.Now())
	return &BookingBuilder{
		StadiumID:     2,
		Date:          today.AddDays(1),
		Slot:          "09:00 - 11:00",
		Name:          "Asha Mwangi",
		CountryPrefix: "+255",
		Phone:         "712345678",
		Email:         "asha@example.com",
		Today:         today,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithToday(today booking.Date) *BookingBuilder {
	b.Today = today
	b.Date = today.AddDays(1)
	return b
}

func (b *BookingBuilder) BuildContact() booking.Contact {
	return booking.NewContact(b.Name, b.CountryPrefix, b.Phone, b.Email)
}

func (b *BookingBuilder) BuildSubmission() (booking.Submission, error) {
	slot, err := booking.ParseTimeSlot(b.Slot)
	if err != nil {
		return booking.Submission{}, err
	}
	return booking.NewSubmission(b.StadiumID, b.Date, slot, b.BuildContact(), b.Today)
}

// MustSubmission panics on invalid builder state; use only with valid defaults.
func (b *BookingBuilder) MustSubmission() booking.Submission {
	sub, err := b.BuildSubmission()
	if err != nil {
		panic(err)
	}
	return sub
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		StadiumID: b.StadiumID,
		Date:      b.Date.String(),
		Slot:      b.Slot,
		ContactRequest: reqdto.ContactRequest{
			Name:          b.Name,
			CountryPrefix: b.CountryPrefix,
			Phone:         b.Phone,
			Email:         b.Email,
		},
	}
}

func (b *BookingBuilder) BuildResult(customerID int64) *commands.BookingResult {
	return &commands.BookingResult{
		Message:     commands.SuccessMessage,
		CustomerID:  customerID,
		StadiumID:   b.StadiumID,
		BookingDate: b.Date,
		Slot:        b.Slot,
	}
}

// BuildRecord returns a backend booking occupying the builder's slot.
func (b *BookingBuilder) BuildRecord(id int64) booking.Record {
	slot, _ := booking.ParseTimeSlot(b.Slot)
	return booking.Record{
		ID:         id,
		CustomerID: 1,
		StadiumID:  b.StadiumID,
		Date:       b.Date,
		StartTime:  slot.StartTime(),
		EndTime:    slot.EndTime(),
		Status:     booking.StatusPending,
	}
}
