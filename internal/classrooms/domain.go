package classrooms

import "time"

// Classroom groups students under one owning teacher.
type Classroom struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	TeacherID int64     `json:"teacher_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
