package httperr

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// Response is the error body shared by every endpoint:
// {"error":{"message"},"detail":{...},"requestId":"..."}.
type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail    any    `json:"detail,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// AbortWithError records err on the gin context for logging and writes the
// public response. A nil err is replaced by one carrying msg.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		err = errors.New(msg)
	}

	resp := Response{Status: status, RequestID: c.GetString("request_id")}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
