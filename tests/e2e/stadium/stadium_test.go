//go:build e2e

package stadium_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"arenahub-booking/internal/domain/booking"
	resdto "arenahub-booking/internal/handler/dto/response"
	"arenahub-booking/tests/common/backendtest"
	"arenahub-booking/tests/common/httptest"
	"arenahub-booking/tests/e2e"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	stadiumsURL = "/api/stadiums"
	stadiumURL  = "/api/stadiums/%d"
	calendarURL = "/api/stadiums/%d/calendar?month=%s"
	slotsURL    = "/api/stadiums/%d/slots?date=%s"
)

type StadiumSuite struct {
	e2e.SharedSuite
}

func TestStadiumSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(StadiumSuite))
}

func (s *StadiumSuite) venueToday() booking.Date {
	loc, err := s.Config.Venue.Location()
	s.Require().NoError(err)
	return booking.DateOf(time.Now().In(loc))
}

func fullDay(stadiumID int64, date booking.Date) []backendtest.Booking {
	out := make([]backendtest.Booking, 0, booking.SlotsPerDay)
	for i, slot := range booking.CanonicalSlots() {
		out = append(out, backendtest.Booking{
			BookingID:   int64(100 + i),
			StadiumID:   stadiumID,
			BookingDate: date.String(),
			StartTime:   slot.StartTime(),
			EndTime:     slot.EndTime(),
			Status:      "CONFIRMED",
		})
	}
	return out
}

func (s *StadiumSuite) TestListStadiums() {
	s.Run("Normal case: catalog is served with location and price label", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, stadiumsURL, nil, "")
		var stadiums []resdto.StadiumResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &stadiums)
		require.Len(t, stadiums, 3)

		uhuru, ok := lo.Find(stadiums, func(st resdto.StadiumResponse) bool { return st.ID == 2 })
		require.True(t, ok)
		require.Equal(t, "Uhuru Arena", uhuru.Name)
		require.Equal(t, "Ilala", uhuru.Location.Region)
		require.Equal(t, 22, uhuru.PlayerCapacity)
		require.NotEmpty(t, uhuru.PriceLabel)
	})

	s.Run("Normal case: get one stadium", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(stadiumURL, 3), nil, "")
		var st resdto.StadiumResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &st)
		require.Equal(t, "Kinondoni Turf", st.Name)
	})

	s.Run("Abnormal case: unknown stadium", func() {
		t := s.T()
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(stadiumURL, 99), nil, "")
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Stadium not found")
	})

	s.Run("Abnormal case: non-numeric id", func() {
		t := s.T()
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, stadiumsURL+"/abc", nil, "")
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Invalid stadium id")
	})
}

func (s *StadiumSuite) TestCalendar() {
	s.Run("Normal case: days are classified against the backend bookings", func() {
		t := s.T()
		today := s.venueToday()
		month := booking.MonthOf(today)

		// pick two future days inside the current month when possible
		full := today.AddDays(1)
		partial := today.AddDays(2)
		if booking.MonthOf(partial) != month {
			month = booking.MonthOf(month.First().AddDays(32))
			full = month.First().AddDays(4)
			partial = month.First().AddDays(5)
		}

		s.Backend.SeedBookings(fullDay(2, full)...)
		s.Backend.SeedBookings(backendtest.Booking{
			BookingID: 1, StadiumID: 2, BookingDate: partial.String(),
			StartTime: "14:00:00", EndTime: "16:00:00", Status: "PENDING",
		})
		// cancelled and other-stadium bookings do not count
		s.Backend.SeedBookings(backendtest.Booking{
			BookingID: 2, StadiumID: 2, BookingDate: partial.String(),
			StartTime: "16:00:00", EndTime: "18:00:00", Status: "CANCELLED",
		}, backendtest.Booking{
			BookingID: 3, StadiumID: 1, BookingDate: partial.String(),
			StartTime: "09:00:00", EndTime: "11:00:00", Status: "PENDING",
		})

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(calendarURL, 2, month.String()), nil, "")
		var cal resdto.CalendarResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &cal)
		require.Equal(t, today.String(), cal.Today)
		require.Len(t, cal.Days, len(month.Days()))

		byDate := lo.KeyBy(cal.Days, func(d resdto.CalendarDayResponse) string { return d.Date })
		require.Equal(t, "fully_booked", byDate[full.String()].State)
		require.Equal(t, booking.SlotsPerDay, byDate[full.String()].BookedSlots)
		require.Equal(t, "partially_booked", byDate[partial.String()].State)
		require.Equal(t, 1, byDate[partial.String()].BookedSlots)
		require.True(t, byDate[partial.String()].Selectable)

		if day, ok := byDate[today.String()]; ok {
			require.Equal(t, "today", day.State)
			require.True(t, day.IsToday)
		}
		for _, d := range cal.Days {
			if strings.Compare(d.Date, today.String()) < 0 {
				require.Equal(t, "past", d.State, d.Date)
				require.False(t, d.Selectable, d.Date)
			}
		}
	})

	s.Run("Abnormal case: invalid month", func() {
		t := s.T()
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(calendarURL, 2, "2026-13"), nil, "")
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Invalid month")
	})

	s.Run("Abnormal case: backend down", func() {
		t := s.T()
		s.Backend.FailNext("GET /api/bookings", 1)
		w := httptest.PerformRequest(t, s.Router, http.MethodGet,
			fmt.Sprintf(calendarURL, 2, booking.MonthOf(s.venueToday()).String()), nil, "")
		httptest.AssertErrorResponse(t, w, http.StatusBadGateway, "Booking service unavailable")
	})
}

func (s *StadiumSuite) TestSlots() {
	s.Run("Normal case: six slots with taken ones disabled", func() {
		t := s.T()
		date := s.venueToday().AddDays(3)
		s.Backend.SeedBookings(backendtest.Booking{
			BookingID: 9, StadiumID: 2, BookingDate: date.String() + "T00:00:00.000Z",
			StartTime: "21:00:00", EndTime: "23:00:00", Status: "CONFIRMED",
		})

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(slotsURL, 2, date.String()), nil, "")
		var slots resdto.SlotsResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &slots)
		require.Len(t, slots.Slots, booking.SlotsPerDay)
		require.NotEmpty(t, slots.Heading)

		disabled := lo.Filter(slots.Slots, func(o resdto.SlotOptionResponse, _ int) bool { return o.Disabled })
		require.Len(t, disabled, 1)
		require.Equal(t, "21:00 - 23:00", disabled[0].Slot)
		require.Equal(t, "21:00 - 23:00 (Booked)", disabled[0].Label)
	})

	s.Run("Abnormal case: missing date", func() {
		t := s.T()
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf("/api/stadiums/%d/slots", 2), nil, "")
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Invalid date")
	})
}

func (s *StadiumSuite) TestCountriesAndHealth() {
	s.Run("Normal case: countries include Tanzania", func() {
		t := s.T()
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/countries", nil, "")
		var countries []resdto.CountryResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &countries)
		require.True(t, lo.ContainsBy(countries, func(c resdto.CountryResponse) bool { return c.Prefix == "+255" }))
	})

	s.Run("Normal case: health and metrics", func() {
		t := s.T()
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, "/health", nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, "/metrics", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), "http_requests_total")
	})
}
