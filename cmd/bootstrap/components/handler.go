package components

import (
	"arenahub-booking/internal/handler"
	"arenahub-booking/internal/handler/api"
	"arenahub-booking/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewStadiumHandler,
		api.NewBookingHandler,
		api.NewSessionHandler,
		handler.NewHandlers,
		middleware.NewSessionMiddleware,
		middleware.NewAdminMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
