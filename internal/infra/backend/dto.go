package backend

// Wire shapes of the stadium booking REST backend.

type locationPayload struct {
	City   string `json:"city"`
	Region string `json:"region"`
}

type stadiumPayload struct {
	StadiumID      int64           `json:"stadiumID"`
	Name           string          `json:"name"`
	Location       locationPayload `json:"location"`
	PlayerCapacity int             `json:"playerCapacity"`
	Price          float64         `json:"price"`
}

type bookingPayload struct {
	BookingID   int64  `json:"bookingID,omitempty"`
	CustomerID  int64  `json:"customerID,omitempty"`
	StadiumID   int64  `json:"stadiumID"`
	BookingDate string `json:"bookingDate"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Status      string `json:"status"`
}

type customerRequest struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
	Name  string `json:"name"`
}

type customerResponse struct {
	CustomerID int64 `json:"customerID"`
}
