package models

import (
	"fmt"
	"strings"
)

// Role is the kind of account. It is a closed set: landlord or tenant.
type Role string

const (
	RoleLandlord Role = "landlord"
	RoleTenant   Role = "rentee"
)

// ParseRole maps user input to a Role. "tenant" is accepted as an alias of "rentee".
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(RoleLandlord):
		return RoleLandlord, nil
	case string(RoleTenant), "tenant":
		return RoleTenant, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleLandlord, RoleTenant:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}
