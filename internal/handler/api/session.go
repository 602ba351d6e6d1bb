package api

import (
	"net/http"

	reqdto "arenahub-booking/internal/handler/dto/request"
	resdto "arenahub-booking/internal/handler/dto/response"
	"arenahub-booking/internal/handler/httperr"
	"arenahub-booking/internal/handler/middleware"
	"arenahub-booking/internal/pkg/config"
	"arenahub-booking/internal/pkg/cookie"
	"arenahub-booking/internal/pkg/errs"
	"arenahub-booking/internal/usecase/commands"
	"arenahub-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SessionHandler struct {
	cmds      commands.SessionCommands
	q         queries.SessionQueries
	cookieCfg config.CookieConfig
}

func NewSessionHandler(cmds commands.SessionCommands, q queries.SessionQueries, cfg config.Config) *SessionHandler {
	return &SessionHandler{cmds: cmds, q: q, cookieCfg: cfg.Cookie}
}

// @Summary Start booking session
// @Description Create a session, set the session cookie and return the token for bearer use
// @Tags session
// @Produce json
// @Success 201 {object} resdto.SessionStartedResponse
// @Router /sessions [post]
func (h *SessionHandler) Start(c *gin.Context) {
	started, err := h.cmds.Start(c.Request.Context())
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	cookie.SetSessionCookie(c, h.cookieCfg, started.Token, started.ExpiresIn)
	c.JSON(http.StatusCreated, resdto.FromStartedSession(started))
}

// @Summary Get session
// @Description Current stadium selection, form state and slot options
// @Tags session
// @Produce json
// @Security SessionAuth
// @Success 200 {object} resdto.SessionResponse
// @Failure 401 {object} httperr.Response
// @Router /session [get]
func (h *SessionHandler) Get(c *gin.Context) {
	id, ok := requireSessionID(c)
	if !ok {
		return
	}
	h.respondWithView(c, id, http.StatusOK)
}

// @Summary Select stadium
// @Description Select a stadium; choosing a different one resets the booking form
// @Tags session
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param request body reqdto.SelectStadiumRequest true "Stadium selection"
// @Success 200 {object} resdto.SessionResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /session/stadium [put]
func (h *SessionHandler) SelectStadium(c *gin.Context) {
	id, ok := requireSessionID(c)
	if !ok {
		return
	}
	var req reqdto.SelectStadiumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if err := h.cmds.SelectStadium(c.Request.Context(), id, req); err != nil {
		abortWithDomainError(c, err)
		return
	}
	h.respondWithView(c, id, http.StatusOK)
}

// @Summary Proceed to booking
// @Description Enter the booking flow for the selected stadium
// @Tags session
// @Produce json
// @Security SessionAuth
// @Success 200 {object} resdto.SessionResponse
// @Failure 400 {object} httperr.Response "Please select a stadium first!"
// @Router /session/proceed [post]
func (h *SessionHandler) Proceed(c *gin.Context) {
	id, ok := requireSessionID(c)
	if !ok {
		return
	}
	if err := h.cmds.Proceed(c.Request.Context(), id); err != nil {
		abortWithDomainError(c, err)
		return
	}
	h.respondWithView(c, id, http.StatusOK)
}

// @Summary Select date
// @Description Select the booking date; past dates are rejected and the chosen slot is cleared
// @Tags session
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param request body reqdto.SelectDateRequest true "Date selection"
// @Success 200 {object} resdto.SessionResponse
// @Failure 400 {object} httperr.Response "You cannot book a past date."
// @Router /session/date [put]
func (h *SessionHandler) SelectDate(c *gin.Context) {
	id, ok := requireSessionID(c)
	if !ok {
		return
	}
	var req reqdto.SelectDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if err := h.cmds.SelectDate(c.Request.Context(), id, req); err != nil {
		abortWithDomainError(c, err)
		return
	}
	h.respondWithView(c, id, http.StatusOK)
}

// @Summary Choose slot
// @Description Choose one of the six daily slots; booked slots are refused
// @Tags session
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param request body reqdto.ChooseSlotRequest true "Slot choice"
// @Success 200 {object} resdto.SessionResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /session/slot [put]
func (h *SessionHandler) ChooseSlot(c *gin.Context) {
	id, ok := requireSessionID(c)
	if !ok {
		return
	}
	var req reqdto.ChooseSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if err := h.cmds.ChooseSlot(c.Request.Context(), id, req); err != nil {
		abortWithDomainError(c, err)
		return
	}
	h.respondWithView(c, id, http.StatusOK)
}

// @Summary Update contact
// @Description Store name, country prefix, national phone and email
// @Tags session
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param request body reqdto.UpdateContactRequest true "Contact fields"
// @Success 200 {object} resdto.SessionResponse
// @Failure 400 {object} httperr.Response
// @Router /session/contact [put]
func (h *SessionHandler) UpdateContact(c *gin.Context) {
	id, ok := requireSessionID(c)
	if !ok {
		return
	}
	var req reqdto.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if err := h.cmds.UpdateContact(c.Request.Context(), id, req); err != nil {
		abortWithDomainError(c, err)
		return
	}
	h.respondWithView(c, id, http.StatusOK)
}

// @Summary Submit booking
// @Description Submit the session's booking form; on success the form resets
// @Tags session
// @Produce json
// @Security SessionAuth
// @Param Idempotency-Key header string false "UUID; a repeated key replays the first result"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 502 {object} httperr.Response "Failed to make booking, please try again."
// @Router /session/submit [post]
func (h *SessionHandler) Submit(c *gin.Context) {
	id, ok := requireSessionID(c)
	if !ok {
		return
	}
	key, ok := idempotencyKey(c)
	if !ok {
		return
	}
	result, err := h.cmds.Submit(c.Request.Context(), id, key)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromBookingResult(result))
}

func (h *SessionHandler) respondWithView(c *gin.Context, id uuid.UUID, status int) {
	view, err := h.q.View(c.Request.Context(), id)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(status, resdto.FromSessionView(view))
}

func requireSessionID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.GetSessionID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.ErrInvalidSession, "Session token required", nil)
		return uuid.Nil, false
	}
	return id, true
}
