//go:generate mockgen -destination=../../../tests/mock/queries/queries.go -package=queriesmock arenahub-booking/internal/usecase/queries StadiumSource,BookingSource,Cache,SessionReader,OrphanReader,StadiumQueries,AvailabilityQueries,SessionQueries,SubmissionQueries

package queries

import (
	"context"
	"time"

	"arenahub-booking/internal/domain/booking"
	"arenahub-booking/internal/domain/session"
	"arenahub-booking/internal/domain/stadium"

	"github.com/google/uuid"
)

// StadiumView represents read-optimized stadium data
type StadiumView struct {
	ID             int64   `json:"stadiumID"`
	Name           string  `json:"name"`
	City           string  `json:"city"`
	Region         string  `json:"region"`
	PlayerCapacity int     `json:"playerCapacity"`
	Price          float64 `json:"price"`
	PriceLabel     string  `json:"priceLabel"`
}

type CalendarDayView struct {
	Date        string `json:"date"`
	State       string `json:"state"`
	Selectable  bool   `json:"selectable"`
	IsToday     bool   `json:"isToday"`
	BookedSlots int    `json:"bookedSlots"`
}

type CalendarView struct {
	StadiumID int64             `json:"stadiumID"`
	Month     string            `json:"month"`
	Today     string            `json:"today"`
	Days      []CalendarDayView `json:"days"`
}

type SlotOptionView struct {
	Slot     string `json:"slot"`
	Label    string `json:"label"`
	Booked   bool   `json:"booked"`
	Disabled bool   `json:"disabled"`
}

type SlotsView struct {
	StadiumID int64            `json:"stadiumID"`
	Date      string           `json:"date"`
	Heading   string           `json:"heading"`
	Slots     []SlotOptionView `json:"slots"`
}

type ContactView struct {
	Name          string `json:"name"`
	CountryPrefix string `json:"countryPrefix"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
}

type SessionView struct {
	ID        uuid.UUID        `json:"id"`
	Stadium   *StadiumView     `json:"stadium,omitempty"`
	Proceeded bool             `json:"proceeded"`
	State     string           `json:"state"`
	Date      string           `json:"date,omitempty"`
	Heading   string           `json:"heading,omitempty"`
	Slot      string           `json:"slot,omitempty"`
	Contact   ContactView      `json:"contact"`
	CanSubmit bool             `json:"canSubmit"`
	Slots     []SlotOptionView `json:"slots,omitempty"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// OrphanView is a customer resolved by check-or-create whose booking was never created.
type OrphanView struct {
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

type StadiumSource interface {
	ListStadiums(ctx context.Context) ([]*stadium.Stadium, error)
}

type BookingSource interface {
	ListBookings(ctx context.Context) ([]booking.Record, error)
}

// Cache stores JSON-encodable values under a key until ttl elapses.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

type SessionReader interface {
	Find(ctx context.Context, id uuid.UUID) (*session.Session, error)
}

type OrphanReader interface {
	ListOrphans(ctx context.Context, limit int) ([]OrphanView, error)
}
