package auth

import (
	"errors"

	"github.com/ali-azimo/house-aj/internal/models"
)

// ErrForbidden indicates an authenticated identity lacking permission.
var ErrForbidden = errors.New("forbidden")

// CanMutate decides the owner-or-admin rule: the acting identity may mutate a
// resource iff it owns the resource or holds the admin role. Total over all
// inputs; every other combination is ErrForbidden.
func CanMutate(identity Identity, ownerID int64) error {
	if identity.Role == models.RoleAdmin {
		return nil
	}
	if identity.ID == ownerID {
		return nil
	}
	return ErrForbidden
}

// RequireRole passes iff the identity's role is in the allowed set.
func RequireRole(identity Identity, allowed ...models.Role) error {
	for _, role := range allowed {
		if identity.Role == role {
			return nil
		}
	}
	return ErrForbidden
}
