package response

import (
	"arenahub-booking/internal/domain/booking"
	"arenahub-booking/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type LocationResponse struct {
	City   string `json:"city"`
	Region string `json:"region"`
}

type StadiumResponse struct {
	ID             int64            `json:"stadiumID"`
	Name           string           `json:"name"`
	Location       LocationResponse `json:"location"`
	PlayerCapacity int              `json:"playerCapacity"`
	Price          float64          `json:"price"`
	PriceLabel     string           `json:"priceLabel"`
}

func FromStadiumView(v *queries.StadiumView) *StadiumResponse {
	resp := &StadiumResponse{}
	_ = copier.Copy(resp, v)
	resp.Location = LocationResponse{City: v.City, Region: v.Region}
	return resp
}

func FromStadiumViews(views []queries.StadiumView) []*StadiumResponse {
	out := make([]*StadiumResponse, 0, len(views))
	for i := range views {
		out = append(out, FromStadiumView(&views[i]))
	}
	return out
}

type CalendarDayResponse struct {
	Date        string `json:"date"`
	State       string `json:"state"`
	Selectable  bool   `json:"selectable"`
	IsToday     bool   `json:"isToday"`
	BookedSlots int    `json:"bookedSlots"`
}

type CalendarResponse struct {
	StadiumID int64                 `json:"stadiumID"`
	Month     string                `json:"month"`
	Today     string                `json:"today"`
	Days      []CalendarDayResponse `json:"days"`
}

func FromCalendarView(v *queries.CalendarView) *CalendarResponse {
	resp := &CalendarResponse{}
	_ = copier.CopyWithOption(resp, v, copier.Option{DeepCopy: true})
	return resp
}

type SlotOptionResponse struct {
	Slot     string `json:"slot"`
	Label    string `json:"label"`
	Booked   bool   `json:"booked"`
	Disabled bool   `json:"disabled"`
}

type SlotsResponse struct {
	StadiumID int64                `json:"stadiumID"`
	Date      string               `json:"date"`
	Heading   string               `json:"heading"`
	Slots     []SlotOptionResponse `json:"slots"`
}

func FromSlotsView(v *queries.SlotsView) *SlotsResponse {
	resp := &SlotsResponse{}
	_ = copier.CopyWithOption(resp, v, copier.Option{DeepCopy: true})
	return resp
}

type CountryResponse struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Prefix string `json:"prefix"`
}

func FromCountries(countries []booking.Country) []CountryResponse {
	out := make([]CountryResponse, 0, len(countries))
	_ = copier.Copy(&out, &countries)
	return out
}
