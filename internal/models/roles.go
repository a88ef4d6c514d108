package models

import "fmt"

// Role is the closed set of account roles. Authorization decisions switch on
// it exhaustively; an unknown role never passes a check.
type Role string

const (
	RoleUser     Role = "user"
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// ParseRole validates a raw role string against the closed set.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleUser, RoleCustomer, RoleAdmin:
		return Role(raw), nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}

// Valid reports whether the role belongs to the closed set.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}
