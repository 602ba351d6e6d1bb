package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"arenahub-booking/internal/handler/api"
	"arenahub-booking/internal/handler/middleware"
	"arenahub-booking/internal/infra/metrics"
	"arenahub-booking/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

type Handlers struct {
	Stadium *api.StadiumHandler
	Booking *api.BookingHandler
	Session *api.SessionHandler
}

func NewHandlers(stadium *api.StadiumHandler, booking *api.BookingHandler, session *api.SessionHandler) Handlers {
	return Handlers{Stadium: stadium, Booking: booking, Session: session}
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	logger *middleware.Logger,
	m *metrics.Metrics,
	handlers Handlers,
	sessionMiddleware *middleware.SessionMiddleware,
	adminMiddleware *middleware.AdminMiddleware,
) {
	setupMiddleware(engine, cfg, logger, m)
	setupRoutes(engine, m, handlers, sessionMiddleware, adminMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, m *metrics.Metrics) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.MetricsMiddleware(m))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	m *metrics.Metrics,
	h Handlers,
	sessionMiddleware *middleware.SessionMiddleware,
	adminMiddleware *middleware.AdminMiddleware,
) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(m.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/stadiums", Handler: h.Stadium.List},
			{Method: http.MethodGet, Path: "/stadiums/:id", Handler: h.Stadium.Get},
			{Method: http.MethodGet, Path: "/stadiums/:id/calendar", Handler: h.Stadium.Calendar},
			{Method: http.MethodGet, Path: "/stadiums/:id/slots", Handler: h.Stadium.Slots},
			{Method: http.MethodGet, Path: "/countries", Handler: h.Stadium.Countries},
			{Method: http.MethodPost, Path: "/bookings", Handler: h.Booking.Create},
			{Method: http.MethodPost, Path: "/sessions", Handler: h.Session.Start},
		})

		sessionGroup := apiGroup.Group("/session")
		sessionGroup.Use(sessionMiddleware.RequireSession())
		{
			addRoutes(sessionGroup, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Session.Get},
				{Method: http.MethodPut, Path: "/stadium", Handler: h.Session.SelectStadium},
				{Method: http.MethodPost, Path: "/proceed", Handler: h.Session.Proceed},
				{Method: http.MethodPut, Path: "/date", Handler: h.Session.SelectDate},
				{Method: http.MethodPut, Path: "/slot", Handler: h.Session.ChooseSlot},
				{Method: http.MethodPut, Path: "/contact", Handler: h.Session.UpdateContact},
				{Method: http.MethodPost, Path: "/submit", Handler: h.Session.Submit},
			})
		}

		// Operator-only: orphan rows carry customer contact details
		adminGroup := apiGroup.Group("/submissions")
		adminGroup.Use(adminMiddleware.RequireAdmin())
		{
			addRoutes(adminGroup, []route{
				{Method: http.MethodGet, Path: "/orphans", Handler: h.Booking.Orphans},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}
