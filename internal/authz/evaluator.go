package authz

import "context"

// OwnershipChecker resolves whether a user owns (administers) a
// classroom. Implementations must be side-effect-free reads.
type OwnershipChecker interface {
	OwnsClassroom(ctx context.Context, userID, classroomID int64) (bool, error)
}

// Evaluator is the authorization decision function. It consults the
// registry for the static grant and the ownership checker for
// owned-scope grants. The evaluator holds no mutable state; for a fixed
// registry snapshot and checker verdict the outcome is deterministic.
type Evaluator struct {
	registry *Registry
	owners   OwnershipChecker
}

// NewEvaluator constructs an Evaluator over a frozen registry.
func NewEvaluator(registry *Registry, owners OwnershipChecker) *Evaluator {
	return &Evaluator{registry: registry, owners: owners}
}

// Authorize decides whether identity may perform route against rc.
// Denial is returned as a Decision, never as an error; the error return
// is reserved for ownership-checker infrastructure failures, which the
// caller must treat as a server fault rather than a verdict.
func (e *Evaluator) Authorize(ctx context.Context, identity Identity, route Route, rc ResourceContext) (Decision, error) {
	grant, ok := e.registry.Lookup(route, identity.Role)
	if !ok {
		return Deny(ReasonNoGrantDefined), nil
	}
	if !grant.Allowed {
		return Deny(ReasonExplicitlyDenied), nil
	}
	switch grant.Scope {
	case ScopeGlobal:
		return Permit(), nil
	case ScopeOwned:
		owns, err := e.owners.OwnsClassroom(ctx, identity.UserID, rc.ClassroomID)
		if err != nil {
			return Decision{}, err
		}
		if owns {
			return Permit(), nil
		}
		return Deny(ReasonNotOwner), nil
	default:
		// An allowed grant with an unknown scope is a table bug;
		// fail closed.
		return Deny(ReasonUnrecognizedScope), nil
	}
}
