package queries

import (
	"context"

	"arenahub-booking/internal/domain/booking"
	"arenahub-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

type SessionQueries interface {
	View(ctx context.Context, id uuid.UUID) (*SessionView, error)
}

type sessionQueriesImpl struct {
	sessions     SessionReader
	stadiums     StadiumQueries
	availability AvailabilityQueries
}

func NewSessionQueries(sessions SessionReader, stadiums StadiumQueries, availability AvailabilityQueries) SessionQueries {
	return &sessionQueriesImpl{
		sessions:     sessions,
		stadiums:     stadiums,
		availability: availability,
	}
}

func (q *sessionQueriesImpl) View(ctx context.Context, id uuid.UUID) (*SessionView, error) {
	s, err := q.sessions.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	form := s.Form()
	contact := form.Contact()
	view := &SessionView{
		ID:        s.ID(),
		Proceeded: s.Selection().Proceeded(),
		State:     string(form.State()),
		Slot:      form.Slot().String(),
		Contact: ContactView{
			Name:          contact.Name,
			CountryPrefix: contact.CountryPrefix,
			Phone:         contact.Phone,
			Email:         contact.Email,
		},
		CanSubmit: form.CanSubmit(),
		UpdatedAt: s.UpdatedAt(),
	}

	if s.Selection().HasSelection() {
		stadiumView, err := q.stadiums.Get(ctx, s.Selection().SelectedID())
		if err != nil {
			return nil, errs.Wrap(err, "failed to load selected stadium")
		}
		view.Stadium = stadiumView
	}

	if date := form.Date(); !date.IsZero() {
		view.Date = date.String()
		view.Heading = BookingHeading(date)
		if view.Stadium != nil {
			taken, err := q.availability.TakenSlots(ctx, view.Stadium.ID, date)
			if err != nil {
				return nil, err
			}
			options := make([]booking.SlotOption, 0, booking.SlotsPerDay)
			for _, slot := range booking.CanonicalSlots() {
				options = append(options, booking.SlotOption{Slot: slot, Booked: taken.Contains(slot)})
			}
			view.Slots = ToSlotOptionViews(options)
		}
	}

	return view, nil
}
