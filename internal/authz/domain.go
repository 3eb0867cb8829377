package authz

import "fmt"

// Role identifies a caller's class of privilege. Assigned at
// authentication time and immutable for the request.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// ParseRole validates a raw role string coming from a token claim.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return Role(raw), nil
	default:
		return "", fmt.Errorf("authz: unknown role %q", raw)
	}
}

// Route identifies a protected action. The set is closed and known at
// registry-build time.
type Route int

const (
	RouteAddStudent Route = iota
	RouteReadStudent
	RouteUpdateStudent
	RouteDeleteStudent
	RouteExpelStudent
)

// Routes lists every protected route.
func Routes() []Route {
	return []Route{
		RouteAddStudent,
		RouteReadStudent,
		RouteUpdateStudent,
		RouteDeleteStudent,
		RouteExpelStudent,
	}
}

func (r Route) String() string {
	switch r {
	case RouteAddStudent:
		return "add_student"
	case RouteReadStudent:
		return "read_student"
	case RouteUpdateStudent:
		return "update_student"
	case RouteDeleteStudent:
		return "delete_student"
	case RouteExpelStudent:
		return "expel_student"
	default:
		return fmt.Sprintf("route(%d)", int(r))
	}
}

// Scope is the breadth over which a grant applies.
type Scope int

const (
	// ScopeNone carries no reach; used together with Allowed=false for
	// explicit denials.
	ScopeNone Scope = iota
	// ScopeOwned restricts the grant to classrooms the caller owns.
	ScopeOwned
	// ScopeGlobal applies regardless of resource context.
	ScopeGlobal
)

// Grant states whether and under what scope a role may perform a
// route's action.
type Grant struct {
	Allowed bool
	Scope   Scope
}

// Identity is the result of authentication: who is calling and with
// what role. Created per-request, never persisted here.
type Identity struct {
	UserID int64
	Role   Role
}

// ResourceContext names the classroom (and student) an action targets.
// Handlers must fill it from the request path, never from caller claims.
type ResourceContext struct {
	ClassroomID int64
	StudentID   int64
}

// DenyReason tags why authorization failed. Kept for internal logging
// only; every variant surfaces as the same forbidden response.
type DenyReason string

const (
	ReasonNone              DenyReason = ""
	ReasonNoGrantDefined    DenyReason = "no grant defined"
	ReasonExplicitlyDenied  DenyReason = "explicitly denied"
	ReasonNotOwner          DenyReason = "not owner of resource"
	ReasonUnrecognizedScope DenyReason = "unrecognized scope"
)

// Decision is the outcome of an authorization check. Denial is a
// first-class value, not an error.
type Decision struct {
	Allowed bool
	Reason  DenyReason
}

// Permit returns an allowing decision.
func Permit() Decision {
	return Decision{Allowed: true}
}

// Deny returns a denying decision tagged with reason.
func Deny(reason DenyReason) Decision {
	return Decision{Allowed: false, Reason: reason}
}
