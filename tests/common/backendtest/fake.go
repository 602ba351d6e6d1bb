//go:build unit || e2e

package backendtest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

type Stadium struct {
	StadiumID      int64    `json:"stadiumID"`
	Name           string   `json:"name"`
	Location       Location `json:"location"`
	PlayerCapacity int      `json:"playerCapacity"`
	Price          float64  `json:"price"`
}

type Location struct {
	City   string `json:"city"`
	Region string `json:"region"`
}

type Booking struct {
	BookingID   int64  `json:"bookingID,omitempty"`
	CustomerID  int64  `json:"customerID,omitempty"`
	StadiumID   int64  `json:"stadiumID"`
	BookingDate string `json:"bookingDate"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Status      string `json:"status"`
}

type Customer struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
	Name  string `json:"name"`
}

type Call struct {
	Method string
	Path   string
	Body   []byte
}

// Server is an in-process stand-in for the stadium booking REST backend.
// It serves under /api and keeps created bookings in memory.
type Server struct {
	*httptest.Server

	mu             sync.Mutex
	stadiums       []Stadium
	bookings       []Booking
	customers      map[string]int64
	calls          []Call
	failures       map[string]int
	nextCustomerID int64
	nextBookingID  int64
}

func NewServer(t *testing.T) *Server {
	t.Helper()

	s := &Server{
		stadiums:       DefaultStadiums(),
		customers:      map[string]int64{},
		failures:       map[string]int{},
		nextCustomerID: 100,
		nextBookingID:  1000,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/stadiums", s.listStadiums)
	mux.HandleFunc("GET /api/bookings", s.listBookings)
	mux.HandleFunc("POST /api/bookings", s.createBooking)
	mux.HandleFunc("POST /api/customers/check-or-create", s.checkOrCreate)

	s.Server = httptest.NewServer(s.record(mux))
	t.Cleanup(s.Close)
	return s
}

func DefaultStadiums() []Stadium {
	return []Stadium{
		{StadiumID: 1, Name: "Azam Complex", Location: Location{City: "Dar es Salaam", Region: "Temeke"}, PlayerCapacity: 22, Price: 80000},
		{StadiumID: 2, Name: "Uhuru Arena", Location: Location{City: "Dar es Salaam", Region: "Ilala"}, PlayerCapacity: 22, Price: 50000},
		{StadiumID: 3, Name: "Kinondoni Turf", Location: Location{City: "Dar es Salaam", Region: "Kinondoni"}, PlayerCapacity: 14, Price: 30000},
	}
}

// BaseURL is the value for BACKEND_BASE_URL.
func (s *Server) BaseURL() string {
	return s.URL + "/api"
}

func (s *Server) SeedBookings(bookings ...Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings = append(s.bookings, bookings...)
}

// FailNext makes the next n requests to "METHOD /path" answer with 500.
func (s *Server) FailNext(route string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = n
}

func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stadiums = DefaultStadiums()
	s.bookings = nil
	s.customers = map[string]int64{}
	s.calls = nil
	s.failures = map[string]int{}
}

func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// CallsTo returns the recorded calls for "METHOD /path".
func (s *Server) CallsTo(route string) []Call {
	var out []Call
	for _, c := range s.Calls() {
		if c.Method+" "+c.Path == route {
			out = append(out, c)
		}
	}
	return out
}

func (s *Server) Bookings() []Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Booking(nil), s.bookings...)
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(body))

		route := r.Method + " " + r.URL.Path
		s.mu.Lock()
		s.calls = append(s.calls, Call{Method: r.Method, Path: r.URL.Path, Body: body})
		fail := s.failures[route] > 0
		if fail {
			s.failures[route]--
		}
		s.mu.Unlock()

		if fail {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "injected failure"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) listStadiums(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.stadiums)
}

func (s *Server) listBookings(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.bookings
	if out == nil {
		out = []Booking{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) checkOrCreate(w http.ResponseWriter, r *http.Request) {
	var c Customer
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil || c.Phone == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid customer"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// same (email, phone) pair resolves to the same customer
	key := c.Email + "|" + c.Phone
	id, ok := s.customers[key]
	if !ok {
		s.nextCustomerID++
		id = s.nextCustomerID
		s.customers[key] = id
	}
	writeJSON(w, http.StatusOK, map[string]any{"customerID": id, "name": c.Name})
}

func (s *Server) createBooking(w http.ResponseWriter, r *http.Request) {
	var b Booking
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid booking"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextBookingID++
	b.BookingID = s.nextBookingID
	s.bookings = append(s.bookings, b)
	writeJSON(w, http.StatusCreated, b)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

