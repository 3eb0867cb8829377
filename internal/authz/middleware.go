package authz

import (
	"net/http"
	"strconv"

	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/rollcall-app/rollcall/internal/platform/httpx"
)

// Middleware wires the grant evaluator in front of HTTP handlers.
type Middleware struct {
	Evaluator *Evaluator
	Logger    *slog.Logger
}

// Require gates the wrapped handler behind an authorization check for
// route. The classroom id is taken from the request path, so a caller
// cannot steer the check with forged claims. Every deny variant maps to
// the same forbidden response; the reason tag stays in the logs.
func (m Middleware) Require(route Route) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok {
				httpx.RespondError(w, httpx.ErrUnauthorized)
				return
			}
			rc, err := resourceContextFromRequest(r)
			if err != nil {
				httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid resource id")
				return
			}
			decision, err := m.Evaluator.Authorize(r.Context(), identity, route, rc)
			if err != nil {
				if m.Logger != nil {
					m.Logger.Error("authorize", slog.String("route", route.String()), slog.Any("error", err))
				}
				httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
				return
			}
			if !decision.Allowed {
				if m.Logger != nil {
					m.Logger.Info("authorization denied",
						slog.Int64("user_id", identity.UserID),
						slog.String("role", string(identity.Role)),
						slog.String("route", route.String()),
						slog.Int64("classroom_id", rc.ClassroomID),
						slog.String("reason", string(decision.Reason)),
					)
				}
				httpx.RespondError(w, httpx.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func resourceContextFromRequest(r *http.Request) (ResourceContext, error) {
	classroomID, err := strconv.ParseInt(chi.URLParam(r, "classroomID"), 10, 64)
	if err != nil {
		return ResourceContext{}, err
	}
	rc := ResourceContext{ClassroomID: classroomID}
	if raw := chi.URLParam(r, "studentID"); raw != "" {
		studentID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return ResourceContext{}, err
		}
		rc.StudentID = studentID
	}
	return rc, nil
}
