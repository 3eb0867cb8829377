package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskRosterIntegrity is the task type for the roster integrity scan.
	TaskRosterIntegrity = "roster:integrity"
)

// RosterIntegrityPayload configures a roster integrity scan.
type RosterIntegrityPayload struct {
	// MaxOrphans aborts with an error when more orphaned students are
	// found, so the failure shows up as a retried/failed task.
	MaxOrphans int `json:"max_orphans"`
}

// NewRosterIntegrityTask constructs an Asynq task.
func NewRosterIntegrityTask(payload RosterIntegrityPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskRosterIntegrity, data), nil
}
