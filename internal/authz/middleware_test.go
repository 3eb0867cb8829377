package authz

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuardedRouter(t *testing.T, route Route, owners OwnershipChecker, identity *Identity, handlerCalls *int) http.Handler {
	t.Helper()
	mw := Middleware{
		Evaluator: NewEvaluator(DefaultRegistry(), owners),
		Logger:    slog.Default(),
	}
	r := chi.NewRouter()
	if identity != nil {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				next.ServeHTTP(w, req.WithContext(ContextWithIdentity(req.Context(), *identity)))
			})
		})
	}
	r.With(mw.Require(route)).Post("/classrooms/{classroomID}/students", func(w http.ResponseWriter, req *http.Request) {
		*handlerCalls++
		w.WriteHeader(http.StatusCreated)
	})
	return r
}

func TestRequireDenyShortCircuits(t *testing.T) {
	calls := 0
	identity := Identity{UserID: 7, Role: RoleStudent}
	router := newGuardedRouter(t, RouteAddStudent, &stubOwnership{}, &identity, &calls)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/classrooms/1/students", nil))

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Zero(t, calls, "handler must not run on deny")
	assert.NotContains(t, rec.Body.String(), "no grant", "deny reason must not leak to the client")
}

func TestRequirePermitRunsHandler(t *testing.T) {
	calls := 0
	identity := Identity{UserID: 3, Role: RoleTeacher}
	owners := &stubOwnership{owned: map[[2]int64]bool{{3, 1}: true}}
	router := newGuardedRouter(t, RouteAddStudent, owners, &identity, &calls)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/classrooms/1/students", nil))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, calls)
}

func TestRequireWithoutIdentity(t *testing.T) {
	calls := 0
	router := newGuardedRouter(t, RouteAddStudent, &stubOwnership{}, nil, &calls)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/classrooms/1/students", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, calls)
}

func TestRequireMalformedClassroomID(t *testing.T) {
	calls := 0
	identity := Identity{UserID: 1, Role: RoleAdmin}
	router := newGuardedRouter(t, RouteAddStudent, &stubOwnership{}, &identity, &calls)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/classrooms/not-a-number/students", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, calls)
}

func TestRequireOwnershipFailureIsServerFault(t *testing.T) {
	calls := 0
	identity := Identity{UserID: 3, Role: RoleTeacher}
	owners := &stubOwnership{err: context.DeadlineExceeded}
	router := newGuardedRouter(t, RouteReadStudent, owners, &identity, &calls)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/classrooms/1/students", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Zero(t, calls, "infrastructure failure must not fall through to the handler")
}
