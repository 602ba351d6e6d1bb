package api

import (
	"net/http"
	"strconv"

	"arenahub-booking/internal/domain/booking"
	resdto "arenahub-booking/internal/handler/dto/response"
	"arenahub-booking/internal/handler/httperr"
	"arenahub-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type StadiumHandler struct {
	stadiums     queries.StadiumQueries
	availability queries.AvailabilityQueries
}

func NewStadiumHandler(stadiums queries.StadiumQueries, availability queries.AvailabilityQueries) *StadiumHandler {
	return &StadiumHandler{stadiums: stadiums, availability: availability}
}

// @Summary List stadiums
// @Description List the stadium catalog
// @Tags stadiums
// @Produce json
// @Success 200 {array} resdto.StadiumResponse
// @Failure 502 {object} httperr.Response
// @Router /stadiums [get]
func (h *StadiumHandler) List(c *gin.Context) {
	views, err := h.stadiums.List(c.Request.Context())
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromStadiumViews(views))
}

// @Summary Get stadium
// @Description Get one stadium from the catalog
// @Tags stadiums
// @Produce json
// @Param id path int true "Stadium ID"
// @Success 200 {object} resdto.StadiumResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /stadiums/{id} [get]
func (h *StadiumHandler) Get(c *gin.Context) {
	id, ok := stadiumIDParam(c)
	if !ok {
		return
	}
	view, err := h.stadiums.Get(c.Request.Context(), id)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromStadiumView(view))
}

// @Summary Stadium calendar
// @Description Classify every day of a month as past, today, fully_booked, partially_booked or available
// @Tags availability
// @Produce json
// @Param id path int true "Stadium ID"
// @Param month query string false "Month as YYYY-MM (defaults to the current venue month)"
// @Success 200 {object} resdto.CalendarResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /stadiums/{id}/calendar [get]
func (h *StadiumHandler) Calendar(c *gin.Context) {
	id, ok := stadiumIDParam(c)
	if !ok {
		return
	}

	month := booking.MonthOf(h.availability.Today())
	if raw := c.Query("month"); raw != "" {
		parsed, err := booking.ParseMonth(raw)
		if err != nil {
			abortWithDomainError(c, err)
			return
		}
		month = parsed
	}

	view, err := h.availability.Calendar(c.Request.Context(), id, month)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCalendarView(view))
}

// @Summary Slot options
// @Description The six daily slots for a stadium and date, with taken slots disabled
// @Tags availability
// @Produce json
// @Param id path int true "Stadium ID"
// @Param date query string true "Date as YYYY-MM-DD"
// @Success 200 {object} resdto.SlotsResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /stadiums/{id}/slots [get]
func (h *StadiumHandler) Slots(c *gin.Context) {
	id, ok := stadiumIDParam(c)
	if !ok {
		return
	}
	date, err := booking.ParseDate(c.Query("date"))
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	view, err := h.availability.Slots(c.Request.Context(), id, date)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSlotsView(view))
}

// @Summary List countries
// @Description Supported phone country prefixes
// @Tags countries
// @Produce json
// @Success 200 {array} resdto.CountryResponse
// @Router /countries [get]
func (h *StadiumHandler) Countries(c *gin.Context) {
	c.JSON(http.StatusOK, resdto.FromCountries(booking.Countries()))
}

func stadiumIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		if err == nil {
			err = booking.ErrValidation
		}
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid stadium id", nil)
		return 0, false
	}
	return id, true
}
