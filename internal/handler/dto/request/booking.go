package request

import (
	"arenahub-booking/internal/domain/booking"
)

type ContactRequest struct {
	Name          string `json:"name"`
	CountryPrefix string `json:"countryPrefix"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
}

// ToDomain falls back to defaultPrefix when the client omits the country prefix.
func (r ContactRequest) ToDomain(defaultPrefix string) booking.Contact {
	prefix := r.CountryPrefix
	if prefix == "" {
		prefix = defaultPrefix
	}
	return booking.NewContact(r.Name, prefix, r.Phone, r.Email)
}

type CreateBookingRequest struct {
	StadiumID int64  `json:"stadiumID" binding:"required,gt=0"`
	Date      string `json:"date" binding:"required"`
	Slot      string `json:"slot" binding:"required"`
	ContactRequest
}

// ToDomain parses the request into a validated submission. Field problems are
// reported together as a booking.ValidationError.
func (r CreateBookingRequest) ToDomain(defaultPrefix string, today booking.Date) (booking.Submission, error) {
	verr := &booking.ValidationError{Fields: map[string]string{}}

	date, err := booking.ParseDate(r.Date)
	if err != nil {
		verr.Fields["date"] = "must be a date in YYYY-MM-DD format"
	}
	slot, err := booking.ParseTimeSlot(r.Slot)
	if err != nil {
		verr.Fields["slot"] = "is not a bookable time slot"
	}
	if len(verr.Fields) > 0 {
		return booking.Submission{}, verr
	}

	return booking.NewSubmission(r.StadiumID, date, slot, r.ContactRequest.ToDomain(defaultPrefix), today)
}
