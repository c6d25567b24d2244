package models

import "fmt"

// Role is the closed set of account roles carried by a session.
type Role int

const (
	RoleSeeker Role = iota + 1
	RoleProvider
	RoleAdmin
)

// ParseRole maps the session's role string to a Role.
// An empty role is treated as a seeker, matching the auth service default.
func ParseRole(s string) (Role, error) {
	switch s {
	case "", "user":
		return RoleSeeker, nil
	case "service_provider":
		return RoleProvider, nil
	case "admin":
		return RoleAdmin, nil
	default:
		return 0, fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) String() string {
	switch r {
	case RoleSeeker:
		return "user"
	case RoleProvider:
		return "service_provider"
	case RoleAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID string
	Email  string
	Role   Role
}

// IsZero reports whether the actor is unauthenticated.
func (a Actor) IsZero() bool {
	return a.UserID == ""
}
