package clock

import "time"

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func NewRealClock() Clock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time {
	return time.Now()
}

type MockClock struct {
	currentTime time.Time
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{currentTime: t}
}

func (c *MockClock) Now() time.Time {
	return c.currentTime
}

func (c *MockClock) Set(t time.Time) {
	c.currentTime = t
}

func (c *MockClock) Add(d time.Duration) {
	c.currentTime = c.currentTime.Add(d)
}

// VenueClock reports wall-clock time in the venue's timezone.
type VenueClock struct {
	base     Clock
	location *time.Location
}

func NewVenueClock(base Clock, location *time.Location) *VenueClock {
	if location == nil {
		location = time.UTC
	}
	return &VenueClock{base: base, location: location}
}

func (c *VenueClock) Now() time.Time {
	return c.base.Now().In(c.location)
}

func (c *VenueClock) Location() *time.Location {
	return c.location
}
