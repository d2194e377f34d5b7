package domain

import "fmt"

// Role of an authenticated caller
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole validates a raw role, empty means user
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case "", RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", fmt.Errorf("%w: unknown role %q", ErrInvalidInput, raw)
}

// User is read from the shared users table, owned by the auth service
type User struct {
	ID         int64
	Email      string
	ExternalID string // identity used in participant lists
	Role       Role
}

// Caller is the verified identity of whoever invokes an operation
type Caller struct {
	UserID int64
	Email  string
	Role   Role
}

// IsAdmin returns true for administrators
func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// AuthorizeAdmin allows only administrators
func AuthorizeAdmin(caller Caller) error {
	if !caller.IsAdmin() {
		return fmt.Errorf("%w: admin role required", ErrForbidden)
	}
	return nil
}

// AuthorizeOwnerOrAdmin allows the owner of a resource or any administrator
func AuthorizeOwnerOrAdmin(caller Caller, ownerID int64) error {
	if caller.UserID == ownerID || caller.IsAdmin() {
		return nil
	}
	return fmt.Errorf("%w: caller %d does not own the resource", ErrForbidden, caller.UserID)
}

// AuthorizeOwner allows only the owner, admins included
func AuthorizeOwner(caller Caller, ownerID int64) error {
	if caller.UserID != ownerID {
		return fmt.Errorf("%w: caller %d does not own the resource", ErrForbidden, caller.UserID)
	}
	return nil
}
