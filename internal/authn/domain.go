package authn

import (
	"time"

	"github.com/rollcall-app/rollcall/internal/authz"
)

// User represents an account that can request access tokens.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         authz.Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
