package classrooms

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rollcall-app/rollcall/internal/platform/httpx"
)

// Repository provides PostgreSQL backed persistence for classrooms.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Get fetches a classroom by id.
func (r *Repository) Get(ctx context.Context, id int64) (*Classroom, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, name, teacher_id, created_at, updated_at FROM classrooms WHERE id = $1`,
		id,
	)
	var room Classroom
	if err := row.Scan(&room.ID, &room.Name, &room.TeacherID, &room.CreatedAt, &room.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &room, nil
}

// Exists reports whether a classroom with id is present.
func (r *Repository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM classrooms WHERE id = $1)`,
		id,
	).Scan(&exists)
	return exists, err
}

// OwnsClassroom reports whether teacherID owns the classroom. Pure
// read; safe to call from the grant evaluator.
func (r *Repository) OwnsClassroom(ctx context.Context, teacherID, classroomID int64) (bool, error) {
	var owns bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM classrooms WHERE id = $1 AND teacher_id = $2)`,
		classroomID, teacherID,
	).Scan(&owns)
	return owns, err
}
