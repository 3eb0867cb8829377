package app

import (
	"net/http"

	"log/slog"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/rollcall-app/rollcall/internal/authn"
	"github.com/rollcall-app/rollcall/internal/students"
	"github.com/rollcall-app/rollcall/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger          *slog.Logger
	Config          *Config
	AuthnHandler    *authn.Handler
	AuthnMiddleware authn.Middleware
	StudentsHandler *students.Handler
	JobsHandler     *jobs.Handler
}

// NewRouter constructs the chi.Router with Rollcall defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/v1", func(r chi.Router) {
		params.AuthnHandler.MountRoutes(r)

		// Everything below requires an authenticated caller.
		r.Group(func(r chi.Router) {
			r.Use(params.AuthnMiddleware.Authenticate)

			r.Get("/protected-route", authn.ProtectedMessage)
			params.StudentsHandler.MountRoutes(r)
			if params.JobsHandler != nil {
				r.Route("/jobs", params.JobsHandler.MountRoutes)
			}
		})
	})

	return r
}
