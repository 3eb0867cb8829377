package students

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rollcall-app/rollcall/internal/platform/httpx"
)

// Repository defines persistence operations for student records. All
// reads and writes are scoped by classroom id so a record can never be
// reached through another classroom's path.
type Repository interface {
	Create(ctx context.Context, student *Student) (*Student, error)
	Get(ctx context.Context, classroomID, studentID int64) (*Student, error)
	Update(ctx context.Context, student *Student) (*Student, error)
	Delete(ctx context.Context, classroomID, studentID int64) error
	SetStatus(ctx context.Context, classroomID, studentID int64, status string) (*Student, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const uniqueViolation = "23505"

// Create inserts a new student row.
func (r *PGRepository) Create(ctx context.Context, student *Student) (*Student, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO students (classroom_id, full_name, grade, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, classroom_id, full_name, grade, status, created_at, updated_at`,
		student.ClassroomID, student.FullName, student.Grade, student.Status,
	)
	created, err := scanStudent(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, httpx.ErrDuplicate
		}
		return nil, err
	}
	return created, nil
}

// Get fetches a student within a classroom.
func (r *PGRepository) Get(ctx context.Context, classroomID, studentID int64) (*Student, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, classroom_id, full_name, grade, status, created_at, updated_at
		 FROM students WHERE id = $1 AND classroom_id = $2`,
		studentID, classroomID,
	)
	return scanStudent(row)
}

// Update persists mutable fields of a student.
func (r *PGRepository) Update(ctx context.Context, student *Student) (*Student, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE students SET full_name = $3, grade = $4, updated_at = NOW()
		 WHERE id = $1 AND classroom_id = $2
		 RETURNING id, classroom_id, full_name, grade, status, created_at, updated_at`,
		student.ID, student.ClassroomID, student.FullName, student.Grade,
	)
	return scanStudent(row)
}

// Delete removes a student row. Returns httpx.ErrNotFound when nothing
// was deleted.
func (r *PGRepository) Delete(ctx context.Context, classroomID, studentID int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM students WHERE id = $1 AND classroom_id = $2`,
		studentID, classroomID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// SetStatus transitions a student's status.
func (r *PGRepository) SetStatus(ctx context.Context, classroomID, studentID int64, status string) (*Student, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE students SET status = $3, updated_at = NOW()
		 WHERE id = $1 AND classroom_id = $2
		 RETURNING id, classroom_id, full_name, grade, status, created_at, updated_at`,
		studentID, classroomID, status,
	)
	return scanStudent(row)
}

func scanStudent(row pgx.Row) (*Student, error) {
	var s Student
	err := row.Scan(&s.ID, &s.ClassroomID, &s.FullName, &s.Grade, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

var _ Repository = (*PGRepository)(nil)
