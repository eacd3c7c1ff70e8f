package echoServer

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	jwtutil "github.com/mawule-gabriel/TestingLibrary/util/jwt"
)

func TestSessionClaims_SetsStaffIdentity(t *testing.T) {
	token, err := jwtutil.Issue("s3cret", 9, "LIBRARIAN", 1)
	require.NoError(t, err)

	var gotID int64
	var gotRole string
	h := sessionClaims("s3cret")(func(c echo.Context) error {
		gotID = c.Get("staff_id").(int64)
		gotRole = c.Get("role").(string)
		return c.NoContent(http.StatusOK)
	})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()

	require.NoError(t, h(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)
	require.EqualValues(t, 9, gotID)
	require.Equal(t, "LIBRARIAN", gotRole)
}

func TestSessionClaims_RejectsBadToken(t *testing.T) {
	h := sessionClaims("s3cret")(func(c echo.Context) error {
		t.Fatal("handler must not run without a valid token")
		return nil
	})

	e := echo.New()
	for _, header := range []string{"", "Bearer not.a.token"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set(echo.HeaderAuthorization, header)
		}
		rec := httptest.NewRecorder()
		require.NoError(t, h(e.NewContext(req, rec)))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	}
}
