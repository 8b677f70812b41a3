package rbac

import "context"

// Checker answers whether a role may perform an action. The policy is
// a flat list of exact permission strings per role; "*" grants all.
type Checker struct {
	roles map[string][]string
}

func NewChecker(roles map[string][]string) *Checker {
	if roles == nil {
		roles = RolePermissions
	}
	return &Checker{roles: roles}
}

func (c *Checker) Has(role, perm string) bool {
	for _, p := range c.roles[role] {
		if p == "*" || p == perm {
			return true
		}
	}
	return false
}

func (c *Checker) Any(role string, perms ...string) bool {
	for _, p := range perms {
		if c.Has(role, p) {
			return true
		}
	}
	return false
}

// ---- role in context ----

type roleKey struct{}

func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, roleKey{}, role)
}

func RoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(roleKey{}).(string)
	return role
}
