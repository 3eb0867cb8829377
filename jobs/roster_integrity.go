package jobs

import (
	"context"
	"encoding/json"
	"fmt"

	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RosterIntegrityJob scans for student rows that violate roster
// invariants: records pointing at classrooms that no longer exist, and
// the overall count of expelled records kept around.
type RosterIntegrityJob struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewRosterIntegrityJob constructs the job.
func NewRosterIntegrityJob(pool *pgxpool.Pool, logger *slog.Logger) *RosterIntegrityJob {
	return &RosterIntegrityJob{pool: pool, logger: logger}
}

// Handle processes TaskRosterIntegrity tasks.
func (j *RosterIntegrityJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload RosterIntegrityPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	var orphans int64
	err := j.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM students s LEFT JOIN classrooms c ON c.id = s.classroom_id WHERE c.id IS NULL`,
	).Scan(&orphans)
	if err != nil {
		return fmt.Errorf("jobs: count orphaned students: %w", err)
	}

	var expelled int64
	err = j.pool.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM students WHERE status = 'expelled'`,
	).Scan(&expelled)
	if err != nil {
		return fmt.Errorf("jobs: count expelled students: %w", err)
	}

	j.logger.Info("roster integrity scan",
		slog.Int64("orphaned_students", orphans),
		slog.Int64("expelled_students", expelled),
	)

	if payload.MaxOrphans >= 0 && orphans > int64(payload.MaxOrphans) {
		return fmt.Errorf("jobs: %d orphaned students exceed threshold %d", orphans, payload.MaxOrphans)
	}
	return nil
}
