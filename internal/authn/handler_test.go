package authn

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenRouter(t *testing.T) http.Handler {
	t.Helper()
	service, _ := newTestService(t)
	handler := NewHandler(slog.Default(), service)
	r := chi.NewRouter()
	handler.MountRoutes(r)
	return r
}

func TestIssueTokenEndpoint(t *testing.T) {
	router := newTokenRouter(t)

	body := `{"email":"teacher@school.test","password":"correct-horse"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"access_token"`)
	assert.Contains(t, rec.Body.String(), `"token_type":"bearer"`)
}

func TestIssueTokenBadCredentials(t *testing.T) {
	router := newTokenRouter(t)

	body := `{"email":"teacher@school.test","password":"wrong-password"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(body)))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestIssueTokenValidation(t *testing.T) {
	router := newTokenRouter(t)

	for name, body := range map[string]string{
		"malformed json": `{`,
		"missing email":  `{"password":"correct-horse"}`,
		"short password": `{"email":"teacher@school.test","password":"x"}`,
	} {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(body)))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestAuthenticateMiddleware(t *testing.T) {
	service, issuer := newTestService(t)
	mw := Middleware{Issuer: issuer, Logger: slog.Default()}

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate)
		r.Get("/protected-route", ProtectedMessage)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/protected-route", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code, "missing token")

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected-route", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code, "invalid token")

	raw, err := service.IssueToken(req.Context(), "teacher@school.test", "correct-horse")
	require.NoError(t, err)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected-route", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "protected route")
}
