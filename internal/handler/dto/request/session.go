package request

import (
	"arenahub-booking/internal/domain/booking"
)

type SelectStadiumRequest struct {
	StadiumID int64 `json:"stadiumID" binding:"required,gt=0"`
}

type SelectDateRequest struct {
	Date string `json:"date" binding:"required"`
}

func (r SelectDateRequest) ToDomain() (booking.Date, error) {
	return booking.ParseDate(r.Date)
}

type ChooseSlotRequest struct {
	Slot string `json:"slot" binding:"required"`
}

func (r ChooseSlotRequest) ToDomain() (booking.TimeSlot, error) {
	return booking.ParseTimeSlot(r.Slot)
}

type UpdateContactRequest struct {
	ContactRequest
}
