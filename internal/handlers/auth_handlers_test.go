package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apotekcloud/apotek-golang/internal/auth"
)

func loginCookie(t *testing.T, app *testApp, email, password string) *http.Cookie {
	t.Helper()

	w := app.doAs(t, http.MethodPost, "/v1/auth/session", map[string]interface{}{
		"email":    email,
		"password": password,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == auth.SessionCookieName {
			return cookie
		}
	}
	t.Fatal("expected a session cookie on the login response")
	return nil
}

func TestLogin_IssuesWorkingSession(t *testing.T) {
	app := newTestApp(t)

	cookie := loginCookie(t, app, "admin@apotek.test", "rahasia123")
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, auth.SessionMaxAgeSeconds, cookie.MaxAge)

	w := app.doAs(t, http.MethodGet, "/v1/medicines", nil, cookie)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogin_WrongPassword(t *testing.T) {
	app := newTestApp(t)

	w := app.doAs(t, http.MethodPost, "/v1/auth/session", map[string]interface{}{
		"email":    "admin@apotek.test",
		"password": "salah-total",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	var body struct {
		Error string `json:"error"`
	}
	decode(t, w, &body)
	assert.Equal(t, "Email atau password salah", body.Error)
}

func TestLogin_UnknownEmail(t *testing.T) {
	app := newTestApp(t)

	w := app.doAs(t, http.MethodPost, "/v1/auth/session", map[string]interface{}{
		"email":    "siapa@apotek.test",
		"password": "rahasia123",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogout_ClearsCookie(t *testing.T) {
	app := newTestApp(t)

	w := app.doAs(t, http.MethodDelete, "/v1/auth/session", nil, app.adminCookie)
	require.Equal(t, http.StatusOK, w.Code)

	var cleared bool
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == auth.SessionCookieName && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "expected the session cookie to be expired")
}

func TestProtectedRoutes_RequireSession(t *testing.T) {
	app := newTestApp(t)

	w := app.doAs(t, http.MethodGet, "/v1/medicines", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// Staff accounts can log in but no privileged endpoint accepts them yet.
func TestProtectedRoutes_RejectStaffRole(t *testing.T) {
	app := newTestApp(t)
	app.seedAccount(t, "kasir@apotek.test", "rahasia123", "staff")

	cookie := loginCookie(t, app, "kasir@apotek.test", "rahasia123")
	w := app.doAs(t, http.MethodGet, "/v1/medicines", nil, cookie)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestProtectedRoutes_AcceptBearerFallback(t *testing.T) {
	app := newTestApp(t)

	token, err := auth.GenerateToken([]byte(testSecret), app.adminID, "admin@apotek.test", "admin")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/v1/medicines", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
