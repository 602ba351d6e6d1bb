package queries

import (
	"context"

	"arenahub-booking/internal/domain/booking"
	"arenahub-booking/internal/pkg/clock"
	"arenahub-booking/internal/pkg/errs"

	"github.com/samber/lo"
)

type AvailabilityQueries interface {
	Today() booking.Date
	Calendar(ctx context.Context, stadiumID int64, month booking.Month) (*CalendarView, error)
	Slots(ctx context.Context, stadiumID int64, date booking.Date) (*SlotsView, error)
	TakenSlots(ctx context.Context, stadiumID int64, date booking.Date) (booking.SlotSet, error)
}

type availabilityQueriesImpl struct {
	bookings BookingSource
	stadiums StadiumQueries
	clock    clock.Clock
}

// NewAvailabilityQueries expects a clock that reports venue-local time.
func NewAvailabilityQueries(bookings BookingSource, stadiums StadiumQueries, clock clock.Clock) AvailabilityQueries {
	return &availabilityQueriesImpl{
		bookings: bookings,
		stadiums: stadiums,
		clock:    clock,
	}
}

func (q *availabilityQueriesImpl) Today() booking.Date {
	return booking.DateOf(q.clock.Now())
}

func (q *availabilityQueriesImpl) Calendar(ctx context.Context, stadiumID int64, month booking.Month) (*CalendarView, error) {
	if _, err := q.stadiums.Get(ctx, stadiumID); err != nil {
		return nil, err
	}
	availability, err := q.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	today := q.Today()
	days := lo.Map(availability.Calendar(stadiumID, month, today), func(d booking.DayAvailability, _ int) CalendarDayView {
		return CalendarDayView{
			Date:        d.Date.String(),
			State:       d.State.String(),
			Selectable:  d.Selectable,
			IsToday:     d.Date.Equal(today),
			BookedSlots: d.BookedSlots,
		}
	})

	return &CalendarView{
		StadiumID: stadiumID,
		Month:     month.String(),
		Today:     today.String(),
		Days:      days,
	}, nil
}

func (q *availabilityQueriesImpl) Slots(ctx context.Context, stadiumID int64, date booking.Date) (*SlotsView, error) {
	if _, err := q.stadiums.Get(ctx, stadiumID); err != nil {
		return nil, err
	}
	availability, err := q.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return &SlotsView{
		StadiumID: stadiumID,
		Date:      date.String(),
		Heading:   BookingHeading(date),
		Slots:     ToSlotOptionViews(availability.SlotOptions(stadiumID, date)),
	}, nil
}

func (q *availabilityQueriesImpl) TakenSlots(ctx context.Context, stadiumID int64, date booking.Date) (booking.SlotSet, error) {
	availability, err := q.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return availability.TakenSlots(stadiumID, date), nil
}

// snapshot always reads the backend; booking data is never cached.
func (q *availabilityQueriesImpl) snapshot(ctx context.Context) (*booking.Availability, error) {
	records, err := q.bookings.ListBookings(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list bookings")
	}
	return booking.NewAvailability(records), nil
}

func ToSlotOptionViews(options []booking.SlotOption) []SlotOptionView {
	return lo.Map(options, func(o booking.SlotOption, _ int) SlotOptionView {
		return SlotOptionView{
			Slot:     o.Slot.String(),
			Label:    o.Label(),
			Booked:   o.Booked,
			Disabled: o.Disabled(),
		}
	})
}

func BookingHeading(date booking.Date) string {
	if date.IsZero() {
		return ""
	}
	return "Booking for " + date.Heading()
}
