package response

import (
	"time"

	"arenahub-booking/internal/usecase/commands"
	"arenahub-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	Message     string `json:"message"`
	CustomerID  int64  `json:"customerID"`
	StadiumID   int64  `json:"stadiumID"`
	BookingDate string `json:"bookingDate"`
	Slot        string `json:"slot"`
}

func FromBookingResult(r *commands.BookingResult) *BookingResponse {
	return &BookingResponse{
		Message:     r.Message,
		CustomerID:  r.CustomerID,
		StadiumID:   r.StadiumID,
		BookingDate: r.BookingDate.String(),
		Slot:        r.Slot,
	}
}

type SessionStartedResponse struct {
	SessionID uuid.UUID `json:"sessionID"`
	Token     string    `json:"token"`
	ExpiresIn int       `json:"expiresIn"`
}

func FromStartedSession(s *commands.StartedSession) *SessionStartedResponse {
	return &SessionStartedResponse{
		SessionID: s.ID,
		Token:     s.Token,
		ExpiresIn: int(s.ExpiresIn.Seconds()),
	}
}

type SessionResponse struct {
	ID        uuid.UUID            `json:"id"`
	Stadium   *StadiumResponse     `json:"stadium,omitempty"`
	Proceeded bool                 `json:"proceeded"`
	State     string               `json:"state"`
	Date      string               `json:"date,omitempty"`
	Heading   string               `json:"heading,omitempty"`
	Slot      string               `json:"slot,omitempty"`
	Contact   queries.ContactView  `json:"contact"`
	CanSubmit bool                 `json:"canSubmit"`
	Slots     []SlotOptionResponse `json:"slots,omitempty"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

func FromSessionView(v *queries.SessionView) *SessionResponse {
	resp := &SessionResponse{
		ID:        v.ID,
		Proceeded: v.Proceeded,
		State:     v.State,
		Date:      v.Date,
		Heading:   v.Heading,
		Slot:      v.Slot,
		Contact:   v.Contact,
		CanSubmit: v.CanSubmit,
		UpdatedAt: v.UpdatedAt,
	}
	if v.Stadium != nil {
		resp.Stadium = FromStadiumView(v.Stadium)
	}
	for _, s := range v.Slots {
		resp.Slots = append(resp.Slots, SlotOptionResponse(s))
	}
	return resp
}

type OrphanResponse struct {
	ID           uuid.UUID `json:"id"`
	CustomerID   int64     `json:"customerID"`
	StadiumID    int64     `json:"stadiumID"`
	BookingDate  string    `json:"bookingDate"`
	Slot         string    `json:"slot"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	ErrorMessage string    `json:"error,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func FromOrphanViews(views []queries.OrphanView) []OrphanResponse {
	out := make([]OrphanResponse, 0, len(views))
	for _, v := range views {
		out = append(out, OrphanResponse(v))
	}
	return out
}
