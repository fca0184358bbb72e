package models

// Roles carried in access-token claims and checked by the route guards.
const (
	RoleSystemAdmin = "SYSTEM_ADMIN"
	RoleAdmin       = "ADMIN"
	RoleStaff       = "STAFF"
	RoleUser        = "USER"
)

// Principal is the authenticated actor attached to the request context by the
// auth middleware. InstitutionID is empty for system admins.
type Principal struct {
	ID            string   `json:"id"`
	Role          string   `json:"role"`
	InstitutionID string   `json:"institutionId,omitempty"`
	Authorities   []string `json:"authorities"`
}

func (p Principal) HasRole(roles ...string) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

// IsInstitutionStaff reports whether the principal is a tenant-bound admin or staff.
func (p Principal) IsInstitutionStaff() bool {
	return p.Role == RoleAdmin || p.Role == RoleStaff
}
