package booking

import (
	"github.com/samber/lo"
)

// DateState classifies a calendar day for one stadium.
type DateState string

const (
	DatePast            DateState = "past"
	DateToday           DateState = "today"
	DateFullyBooked     DateState = "fully_booked"
	DatePartiallyBooked DateState = "partially_booked"
	DateAvailable       DateState = "available"
)

func (s DateState) String() string {
	return string(s)
}

type DayAvailability struct {
	Date        Date
	State       DateState
	Selectable  bool
	BookedSlots int
}

// Availability derives per-date and per-slot availability from one
// snapshot of the backend's booking list.
type Availability struct {
	records []Record
}

func NewAvailability(records []Record) *Availability {
	return &Availability{
		records: lo.Filter(records, func(r Record, _ int) bool {
			return r.Status.OccupiesSlot()
		}),
	}
}

func (a *Availability) forStadiumDate(stadiumID int64, date Date) []Record {
	return lo.Filter(a.records, func(r Record, _ int) bool {
		return r.matches(stadiumID, date)
	})
}

// TakenSlots is empty when either the stadium or the date is unset.
func (a *Availability) TakenSlots(stadiumID int64, date Date) SlotSet {
	if stadiumID == 0 || date.IsZero() {
		return NewSlotSet()
	}
	labels := lo.Map(a.forStadiumDate(stadiumID, date), func(r Record, _ int) string {
		return r.SlotLabel()
	})
	return NewSlotSet(lo.Uniq(labels)...)
}

func (a *Availability) ClassifyDate(stadiumID int64, date, today Date) DateState {
	if date.Before(today) {
		return DatePast
	}

	matches := a.forStadiumDate(stadiumID, date)
	if len(matches) == 0 {
		if date.Equal(today) {
			return DateToday
		}
		return DateAvailable
	}

	if a.TakenSlots(stadiumID, date).CanonicalCount() >= SlotsPerDay {
		return DateFullyBooked
	}
	return DatePartiallyBooked
}

func (a *Availability) Calendar(stadiumID int64, month Month, today Date) []DayAvailability {
	return lo.Map(month.Days(), func(d Date, _ int) DayAvailability {
		state := a.ClassifyDate(stadiumID, d, today)
		return DayAvailability{
			Date:        d,
			State:       state,
			Selectable:  state != DatePast,
			BookedSlots: a.TakenSlots(stadiumID, d).CanonicalCount(),
		}
	})
}

func (a *Availability) SlotOptions(stadiumID int64, date Date) []SlotOption {
	taken := a.TakenSlots(stadiumID, date)
	return lo.Map(CanonicalSlots(), func(s TimeSlot, _ int) SlotOption {
		return SlotOption{Slot: s, Booked: taken.Contains(s)}
	})
}
