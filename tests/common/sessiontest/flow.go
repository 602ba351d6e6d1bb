//go:build unit || e2e

package sessiontest

import (
	"net/http"
	"testing"

	reqdto "arenahub-booking/internal/handler/dto/request"
	"arenahub-booking/internal/pkg/cookie"
	"arenahub-booking/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// Start opens a session and returns its token taken from the cookie.
func Start(t *testing.T, router *gin.Engine) string {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/sessions", nil, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	c := httptest.ExtractCookie(w, cookie.SessionCookieName)
	require.NotNil(t, c, "session cookie not set")
	require.NotEmpty(t, c.Value, "session cookie is empty")

	return c.Value
}

// StartBooking opens a session, selects the stadium and proceeds to the form.
func StartBooking(t *testing.T, router *gin.Engine, stadiumID int64) string {
	t.Helper()

	token := Start(t, router)

	w := httptest.PerformRequest(t, router, http.MethodPut, "/api/session/stadium",
		reqdto.SelectStadiumRequest{StadiumID: stadiumID}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = httptest.PerformRequest(t, router, http.MethodPost, "/api/session/proceed", nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	return token
}
