package students

import "time"

// Student statuses.
const (
	StatusActive   = "active"
	StatusExpelled = "expelled"
)

// Student is a classroom-scoped student record.
type Student struct {
	ID          int64     `json:"id"`
	ClassroomID int64     `json:"classroom_id"`
	FullName    string    `json:"full_name"`
	Grade       int       `json:"grade"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
