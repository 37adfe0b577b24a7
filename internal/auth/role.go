package auth

import "github.com/HRPortal/HRPortal/internal/db/models"

// ResolveRole returns the role of u. The second result is false for an
// absent user, whose role is empty and matches no required role.
func ResolveRole(u *models.User) (models.Role, bool) {
	if u == nil {
		return "", false
	}

	return u.Role, true
}
