package api

import (
	"errors"
	"net/http"

	"arenahub-booking/internal/domain/booking"
	"arenahub-booking/internal/domain/session"
	"arenahub-booking/internal/domain/stadium"
	"arenahub-booking/internal/handler/httperr"
	"arenahub-booking/internal/pkg/errs"
	"arenahub-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

const (
	MsgBookingFailed     = "Failed to make booking, please try again."
	MsgPastDate          = "You cannot book a past date."
	MsgNoStadiumSelected = "Please select a stadium first!"
)

type errorMapping struct {
	target  error
	status  int
	message string
}

// Order matters: submission failures are marked on top of backend errors.
var errorMappings = []errorMapping{
	{booking.ErrPastDate, http.StatusBadRequest, MsgPastDate},
	{booking.ErrInvalidDate, http.StatusBadRequest, "Invalid date"},
	{booking.ErrInvalidMonth, http.StatusBadRequest, "Invalid month"},
	{booking.ErrUnknownSlot, http.StatusBadRequest, "Unknown time slot"},
	{booking.ErrNoDateSelected, http.StatusBadRequest, "Please select a date first."},
	{booking.ErrSlotUnavailable, http.StatusConflict, "This time slot is already booked."},
	{booking.ErrSubmissionInProgress, http.StatusConflict, "A booking is already being submitted."},
	{booking.ErrInvalidFormState, http.StatusConflict, "The booking form is not ready to submit."},
	{stadium.ErrStadiumNotFound, http.StatusNotFound, "Stadium not found"},
	{stadium.ErrNoStadiumSelected, http.StatusBadRequest, MsgNoStadiumSelected},
	{session.ErrBookingFlowNotStarted, http.StatusConflict, "Proceed to booking first."},
	{errs.ErrSessionNotFound, http.StatusUnauthorized, "Session expired or not found"},
	{errs.ErrInvalidSession, http.StatusUnauthorized, "Invalid or expired session"},
	{commands.ErrIdempotencyKeyReused, http.StatusUnprocessableEntity, "Idempotency-Key was already used for a different booking."},
	{commands.ErrIdempotencyCheckFailed, http.StatusServiceUnavailable, MsgBookingFailed},
	{commands.ErrSubmissionFailed, http.StatusBadGateway, MsgBookingFailed},
	{errs.ErrBackendNotFound, http.StatusBadGateway, "Booking service unavailable"},
	{errs.ErrBackendRejected, http.StatusBadGateway, "Booking service unavailable"},
	{errs.ErrBackendUnavailable, http.StatusBadGateway, "Booking service unavailable"},
}

// abortWithDomainError maps usecase and domain errors onto HTTP responses.
func abortWithDomainError(c *gin.Context, err error) {
	var verr *booking.ValidationError
	if errors.As(err, &verr) {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Validation failed", verr.Fields)
		return
	}

	for _, m := range errorMappings {
		if errs.Is(err, m.target) {
			httperr.AbortWithError(c, m.status, err, m.message, nil)
			return
		}
	}

	httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
}
