package middleware

import (
	"log/slog"
	"net/http"

	"arenahub-booking/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

const internalErrorMessage = "Internal server error"

// ErrorHandler writes the last public error when a handler recorded one
// without writing a body itself.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		for i := len(c.Errors) - 1; i >= 0; i-- {
			err := c.Errors[i]

			switch {
			case err.IsType(gin.ErrorTypePublic):
				if resp, ok := err.Meta.(httperr.Response); ok {
					c.JSON(resp.Status, resp)
					return
				}
			case err.IsType(gin.ErrorTypeBind):
				resp := httperr.Response{Status: http.StatusBadRequest}
				resp.Error.Message = "Invalid request body"
				c.JSON(http.StatusBadRequest, resp)
				return
			}
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}
		if len(c.Errors) > 0 {
			resp := httperr.Response{Status: http.StatusInternalServerError}
			resp.Error.Message = internalErrorMessage
			c.JSON(http.StatusInternalServerError, resp)
		}
	}
}

func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				slog.Error("recovered from panic",
					"error", err,
					"path", c.Request.URL.Path,
					"request_id", GetRequestID(c),
				)

				resp := httperr.Response{Status: http.StatusInternalServerError}
				resp.Error.Message = internalErrorMessage

				c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
			}
		}()
		c.Next()
	}
}
