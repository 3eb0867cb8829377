package authz

// Registry holds the static authorization table: route -> role -> grant.
// Built once at process start and read-only afterwards, so concurrent
// evaluations share it without locking. A missing entry is an implicit
// deny; the registry never answers "permit" for a pair it does not know.
type Registry struct {
	grants map[Route]map[Role]Grant
}

// NewRegistry builds a Registry from a declarative table. The input is
// copied so later mutation of the argument cannot affect the registry.
func NewRegistry(table map[Route]map[Role]Grant) *Registry {
	grants := make(map[Route]map[Role]Grant, len(table))
	for route, byRole := range table {
		entry := make(map[Role]Grant, len(byRole))
		for role, grant := range byRole {
			entry[role] = grant
		}
		grants[route] = entry
	}
	return &Registry{grants: grants}
}

// Lookup returns the grant for (route, role) and whether one exists.
func (r *Registry) Lookup(route Route, role Role) (Grant, bool) {
	byRole, ok := r.grants[route]
	if !ok {
		return Grant{}, false
	}
	grant, ok := byRole[role]
	return grant, ok
}

// DefaultRegistry is the compiled-in policy table. Admins operate on
// any classroom; teachers only on classrooms they own, and expulsion is
// explicitly withheld from them; students hold no grants at all.
func DefaultRegistry() *Registry {
	return NewRegistry(map[Route]map[Role]Grant{
		RouteAddStudent: {
			RoleAdmin:   {Allowed: true, Scope: ScopeGlobal},
			RoleTeacher: {Allowed: true, Scope: ScopeOwned},
		},
		RouteReadStudent: {
			RoleAdmin:   {Allowed: true, Scope: ScopeGlobal},
			RoleTeacher: {Allowed: true, Scope: ScopeOwned},
		},
		RouteUpdateStudent: {
			RoleAdmin:   {Allowed: true, Scope: ScopeGlobal},
			RoleTeacher: {Allowed: true, Scope: ScopeOwned},
		},
		RouteDeleteStudent: {
			RoleAdmin:   {Allowed: true, Scope: ScopeGlobal},
			RoleTeacher: {Allowed: true, Scope: ScopeOwned},
		},
		RouteExpelStudent: {
			RoleAdmin:   {Allowed: true, Scope: ScopeGlobal},
			RoleTeacher: {Allowed: false, Scope: ScopeNone},
		},
	})
}
