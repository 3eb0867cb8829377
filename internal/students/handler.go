package students

import (
	"context"
	"net/http"
	"strconv"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/rollcall-app/rollcall/internal/authz"
	"github.com/rollcall-app/rollcall/internal/platform/httpx"
)

// StudentService is the service surface the handler depends on.
type StudentService interface {
	Create(ctx context.Context, classroomID int64, req CreateStudentRequest, actorID int64) (*Student, error)
	Get(ctx context.Context, classroomID, studentID int64) (*Student, error)
	Update(ctx context.Context, classroomID, studentID int64, req UpdateStudentRequest, actorID int64) (*Student, error)
	Delete(ctx context.Context, classroomID, studentID int64, actorID int64) error
	Expel(ctx context.Context, classroomID, studentID int64, actorID int64) (*Student, error)
}

// Handler wires HTTP endpoints for student records.
type Handler struct {
	logger    *slog.Logger
	service   StudentService
	validator *validator.Validate
	authz     authz.Middleware
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service StudentService, authz authz.Middleware) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		validator: validator.New(),
		authz:     authz,
	}
}

// MountRoutes registers student routes. Every route is gated by the
// grant evaluator before the handler body runs, so a denied request
// never reaches the store.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/classrooms/{classroomID}/students", func(r chi.Router) {
		r.With(h.authz.Require(authz.RouteAddStudent)).Post("/", h.Create)
		r.With(h.authz.Require(authz.RouteReadStudent)).Get("/{studentID}", h.Show)
		r.With(h.authz.Require(authz.RouteUpdateStudent)).Put("/{studentID}", h.Update)
		r.With(h.authz.Require(authz.RouteDeleteStudent)).Delete("/{studentID}", h.Delete)
		r.With(h.authz.Require(authz.RouteExpelStudent)).Post("/{studentID}/expel", h.Expel)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	classroomID, ok := pathID(w, r, "classroomID")
	if !ok {
		return
	}
	var req CreateStudentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	student, err := h.service.Create(r.Context(), classroomID, req, h.actorID(r))
	if err != nil {
		h.logger.Error("create student", slog.Any("error", err), slog.Int64("classroom_id", classroomID))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, student)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	classroomID, studentID, ok := pathIDs(w, r)
	if !ok {
		return
	}
	student, err := h.service.Get(r.Context(), classroomID, studentID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, student)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	classroomID, studentID, ok := pathIDs(w, r)
	if !ok {
		return
	}
	var req UpdateStudentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	student, err := h.service.Update(r.Context(), classroomID, studentID, req, h.actorID(r))
	if err != nil {
		h.logger.Error("update student", slog.Any("error", err), slog.Int64("student_id", studentID))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, student)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	classroomID, studentID, ok := pathIDs(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), classroomID, studentID, h.actorID(r)); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Expel(w http.ResponseWriter, r *http.Request) {
	classroomID, studentID, ok := pathIDs(w, r)
	if !ok {
		return
	}
	student, err := h.service.Expel(r.Context(), classroomID, studentID, h.actorID(r))
	if err != nil {
		h.logger.Error("expel student", slog.Any("error", err), slog.Int64("student_id", studentID))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, student)
}

func (h *Handler) actorID(r *http.Request) int64 {
	identity, _ := authz.IdentityFromContext(r.Context())
	return identity.UserID
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid "+name)
		return 0, false
	}
	return id, true
}

func pathIDs(w http.ResponseWriter, r *http.Request) (classroomID, studentID int64, ok bool) {
	classroomID, ok = pathID(w, r, "classroomID")
	if !ok {
		return 0, 0, false
	}
	studentID, ok = pathID(w, r, "studentID")
	if !ok {
		return 0, 0, false
	}
	return classroomID, studentID, true
}
