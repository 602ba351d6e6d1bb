package booking

import (
	"errors"
	"sort"
	"strings"
)

var ErrUnknownSlot = errors.New("unknown time slot")

const (
	// SlotsPerDay is the number of bookable intervals per stadium per day.
	SlotsPerDay = 6

	slotSeparator = " - "
	bookedSuffix  = " (Booked)"
)

// TimeSlot is one of the fixed daily intervals. Bounds are "HH:MM" wall-clock strings.
type TimeSlot struct {
	start string
	end   string
}

var canonicalSlots = [SlotsPerDay]TimeSlot{
	{start: "09:00", end: "11:00"},
	{start: "11:00", end: "13:00"},
	{start: "14:00", end: "16:00"},
	{start: "16:00", end: "18:00"},
	{start: "19:00", end: "21:00"},
	{start: "21:00", end: "23:00"},
}

// CanonicalSlots returns the six daily slots in chronological order.
func CanonicalSlots() []TimeSlot {
	out := make([]TimeSlot, len(canonicalSlots))
	copy(out, canonicalSlots[:])
	return out
}

// ParseTimeSlot accepts only the canonical "HH:MM - HH:MM" labels.
func ParseTimeSlot(label string) (TimeSlot, error) {
	label = strings.TrimSpace(label)
	for _, s := range canonicalSlots {
		if s.String() == label {
			return s, nil
		}
	}
	return TimeSlot{}, ErrUnknownSlot
}

func (s TimeSlot) Start() string { return s.start }
func (s TimeSlot) End() string   { return s.end }

func (s TimeSlot) IsZero() bool {
	return s.start == "" && s.end == ""
}

func (s TimeSlot) String() string {
	if s.IsZero() {
		return ""
	}
	return s.start + slotSeparator + s.end
}

// StartTime is the start bound with seconds precision, as the backend expects.
func (s TimeSlot) StartTime() string {
	return s.start + ":00"
}

// EndTime is the end bound with seconds precision.
func (s TimeSlot) EndTime() string {
	return s.end + ":00"
}

// SlotLabel maps backend "HH:MM:SS" bounds onto the "HH:MM - HH:MM" form.
// Bounds off the canonical grid still produce a label; it just never
// matches a canonical slot.
func SlotLabel(startTime, endTime string) string {
	return clip(startTime) + slotSeparator + clip(endTime)
}

func clip(t string) string {
	t = strings.TrimSpace(t)
	if len(t) > 5 {
		return t[:5]
	}
	return t
}

// SlotSet holds taken slot labels for one stadium and date.
type SlotSet map[string]struct{}

func NewSlotSet(labels ...string) SlotSet {
	set := make(SlotSet, len(labels))
	for _, l := range labels {
		set[l] = struct{}{}
	}
	return set
}

func (s SlotSet) Contains(slot TimeSlot) bool {
	_, ok := s[slot.String()]
	return ok
}

func (s SlotSet) Len() int {
	return len(s)
}

// CanonicalCount counts how many of the six daily slots are in the set.
func (s SlotSet) CanonicalCount() int {
	n := 0
	for _, slot := range canonicalSlots {
		if s.Contains(slot) {
			n++
		}
	}
	return n
}

func (s SlotSet) Labels() []string {
	out := make([]string, 0, len(s))
	for l := range s {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// SlotOption is a slot as offered in the picker.
type SlotOption struct {
	Slot   TimeSlot
	Booked bool
}

// Disabled reports whether the option must not be selectable.
func (o SlotOption) Disabled() bool {
	return o.Booked
}

func (o SlotOption) Label() string {
	if o.Booked {
		return o.Slot.String() + bookedSuffix
	}
	return o.Slot.String()
}
