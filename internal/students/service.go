package students

import (
	"context"
	"strconv"

	"log/slog"

	"github.com/rollcall-app/rollcall/internal/platform/httpx"
	"github.com/rollcall-app/rollcall/internal/shared"
)

// ClassroomDirectory answers whether the target classroom exists.
type ClassroomDirectory interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// Service holds business rules for student records. It runs strictly
// after authorization; nothing here re-checks permissions.
type Service struct {
	repo       Repository
	classrooms ClassroomDirectory
	audit      shared.AuditRecorder
	logger     *slog.Logger
}

// NewService constructs a Service.
func NewService(repo Repository, classrooms ClassroomDirectory, audit shared.AuditRecorder, logger *slog.Logger) *Service {
	return &Service{repo: repo, classrooms: classrooms, audit: audit, logger: logger}
}

// Create registers a new student in classroomID.
func (s *Service) Create(ctx context.Context, classroomID int64, req CreateStudentRequest, actorID int64) (*Student, error) {
	exists, err := s.classrooms.Exists(ctx, classroomID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, httpx.ErrNotFound
	}
	student, err := s.repo.Create(ctx, &Student{
		ClassroomID: classroomID,
		FullName:    req.FullName,
		Grade:       req.Grade,
		Status:      StatusActive,
	})
	if err != nil {
		return nil, err
	}
	s.recordAudit(ctx, actorID, "student.create", student)
	return student, nil
}

// Get returns the student if it belongs to classroomID. A student that
// exists under a different classroom is indistinguishable from absent.
func (s *Service) Get(ctx context.Context, classroomID, studentID int64) (*Student, error) {
	return s.repo.Get(ctx, classroomID, studentID)
}

// Update applies the provided fields to the student record.
func (s *Service) Update(ctx context.Context, classroomID, studentID int64, req UpdateStudentRequest, actorID int64) (*Student, error) {
	student, err := s.repo.Get(ctx, classroomID, studentID)
	if err != nil {
		return nil, err
	}
	if req.FullName != nil {
		student.FullName = *req.FullName
	}
	if req.Grade != nil {
		student.Grade = *req.Grade
	}
	updated, err := s.repo.Update(ctx, student)
	if err != nil {
		return nil, err
	}
	s.recordAudit(ctx, actorID, "student.update", updated)
	return updated, nil
}

// Delete removes the student record.
func (s *Service) Delete(ctx context.Context, classroomID, studentID int64, actorID int64) error {
	if err := s.repo.Delete(ctx, classroomID, studentID); err != nil {
		return err
	}
	s.recordAudit(ctx, actorID, "student.delete", &Student{ID: studentID, ClassroomID: classroomID})
	return nil
}

// Expel marks the student as expelled without deleting the record.
// Expulsion is granted independently from deletion.
func (s *Service) Expel(ctx context.Context, classroomID, studentID int64, actorID int64) (*Student, error) {
	student, err := s.repo.SetStatus(ctx, classroomID, studentID, StatusExpelled)
	if err != nil {
		return nil, err
	}
	s.recordAudit(ctx, actorID, "student.expel", student)
	return student, nil
}

func (s *Service) recordAudit(ctx context.Context, actorID int64, action string, student *Student) {
	if s.audit == nil {
		return
	}
	err := s.audit.Record(ctx, shared.AuditLog{
		ActorID:  actorID,
		Action:   action,
		Entity:   "student",
		EntityID: strconv.FormatInt(student.ID, 10),
		Meta: map[string]any{
			"classroom_id": student.ClassroomID,
		},
	})
	if err != nil && s.logger != nil {
		s.logger.Warn("audit record", slog.String("action", action), slog.Any("error", err))
	}
}
