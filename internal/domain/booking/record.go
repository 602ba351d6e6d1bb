package booking

import (
	"errors"
	"strings"
)

var ErrInvalidStatus = errors.New("invalid booking status")

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return st, nil
	case "CANCELED":
		return StatusCancelled, nil
	default:
		return "", ErrInvalidStatus
	}
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	default:
		return false
	}
}

// OccupiesSlot reports whether a booking in this status holds its slot.
// Unknown statuses hold the slot so an unrecognised value never frees one up.
func (s Status) OccupiesSlot() bool {
	return s != StatusCancelled
}

// Record is a booking as listed by the backend. The client never mutates it.
type Record struct {
	ID         int64
	CustomerID int64
	StadiumID  int64
	Date       Date
	StartTime  string
	EndTime    string
	Status     Status
}

func (r Record) SlotLabel() string {
	return SlotLabel(r.StartTime, r.EndTime)
}

func (r Record) matches(stadiumID int64, date Date) bool {
	return r.StadiumID == stadiumID && r.Date.Equal(date)
}
