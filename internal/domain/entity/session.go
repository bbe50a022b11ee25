package entity

import (
	"fmt"
	"strings"
)

// Role identifies which side of the workflow a user belongs to
type Role string

const (
	RoleEmployee Role = "Employee"
	RoleAdmin    Role = "Admin"
)

// SessionStatusConnected marks an authenticated session
const SessionStatusConnected = "connected"

// ParseRole validates a raw role string
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "employee":
		return RoleEmployee, nil
	case "admin":
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// HomeRoute returns the view a freshly authenticated user lands on
func (r Role) HomeRoute() string {
	if r == RoleAdmin {
		return RouteDashboard
	}
	return RouteBills
}

// Session is the persisted identity of the signed-in user.
// Field names match what is stored under the "user" key.
type Session struct {
	Role     Role   `json:"type"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Status   string `json:"status"`
	JWT      string `json:"jwt,omitempty"`
}

// IsConnected reports whether downstream views should treat the session as authenticated
func (s *Session) IsConnected() bool {
	return s != nil && s.Status == SessionStatusConnected
}

// Credentials is the payload sent to the login endpoint
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is returned by a successful login
type LoginResult struct {
	JWT string `json:"jwt"`
}

// NewUser is the payload sent to the user creation endpoint
type NewUser struct {
	Type     Role   `json:"type"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
