package identity

import "github.com/google/uuid"

// Principal is the authenticated staff member a request acts for
type Principal struct {
	TenantID    uuid.UUID
	UserID      uuid.UUID
	Permissions []string
}

// Has reports whether the principal holds every given permission
func (p Principal) Has(perms ...Permission) bool {
	return HasPermissions(p.Permissions, Codes(perms...))
}
