package auth

import (
	"errors"

	"letly-be-svc/internal/models"
)

// ErrForbidden is returned when the actor's role may not perform an action.
var ErrForbidden = errors.New("access denied for this role")

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID   uint
	Role models.Role
}

// IsLandlord reports whether the actor acts as a landlord.
func (a Actor) IsLandlord() bool {
	return a.Role == models.RoleLandlord
}

// IsTenant reports whether the actor acts as a tenant.
func (a Actor) IsTenant() bool {
	return a.Role == models.RoleTenant
}

// Require fails unless the actor has one of the given roles.
func (a Actor) Require(roles ...models.Role) error {
	for _, r := range roles {
		switch r {
		case models.RoleLandlord:
			if a.IsLandlord() {
				return nil
			}
		case models.RoleTenant:
			if a.IsTenant() {
				return nil
			}
		}
	}
	return ErrForbidden
}
