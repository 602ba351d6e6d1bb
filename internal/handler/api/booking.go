package api

import (
	"net/http"
	"strconv"

	reqdto "arenahub-booking/internal/handler/dto/request"
	resdto "arenahub-booking/internal/handler/dto/response"
	"arenahub-booking/internal/handler/httperr"
	"arenahub-booking/internal/usecase/commands"
	"arenahub-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const IdempotencyKeyHeader = "Idempotency-Key"

type BookingHandler struct {
	cmds        commands.BookingCommands
	submissions queries.SubmissionQueries
}

func NewBookingHandler(cmds commands.BookingCommands, submissions queries.SubmissionQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, submissions: submissions}
}

// @Summary Create booking
// @Description Validate and submit a booking in one call: check-or-create the customer, then create a PENDING booking
// @Tags bookings
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "UUID; a repeated key replays the first result"
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	key, ok := idempotencyKey(c)
	if !ok {
		return
	}

	result, err := h.cmds.CreateBooking(c.Request.Context(), req, key)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromBookingResult(result))
}

// idempotencyKey reads the optional Idempotency-Key header. A missing header
// yields uuid.Nil; a malformed one aborts with 400.
func idempotencyKey(c *gin.Context) (uuid.UUID, bool) {
	raw := c.GetHeader(IdempotencyKeyHeader)
	if raw == "" {
		return uuid.Nil, true
	}
	key, err := uuid.Parse(raw)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid Idempotency-Key header", nil)
		return uuid.Nil, false
	}
	return key, true
}

// @Summary List orphaned customers
// @Description Submissions whose customer was resolved but whose booking was never created
// @Tags bookings
// @Produce json
// @Security AdminToken
// @Param limit query int false "Maximum rows (default 50, max 500)"
// @Success 200 {array} resdto.OrphanResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /submissions/orphans [get]
func (h *BookingHandler) Orphans(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			if err == nil {
				err = strconv.ErrRange
			}
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid limit", nil)
			return
		}
		limit = parsed
	}

	orphans, err := h.submissions.Orphans(c.Request.Context(), limit)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOrphanViews(orphans))
}
