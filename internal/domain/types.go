package domain

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the stored privilege level of a user.
type Role string

const (
	// RoleNone is assigned to principals without a user record.
	RoleNone   Role = ""
	RoleUser   Role = "user"
	RoleVendor Role = "vendor"
	RoleAdmin  Role = "admin"
)

func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser, true
	case RoleVendor:
		return RoleVendor, true
	case RoleAdmin:
		return RoleAdmin, true
	default:
		return RoleNone, false
	}
}

// Principal is the verified caller of a request.
type Principal struct {
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// NewID returns a fresh 24-hex identifier.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// ParseID validates a 24-hex identifier taken from a path or body.
func ParseID(field, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	oid, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return "", ValidationError{Field: field, Msg: "invalid id", Err: err}
	}
	return oid.Hex(), nil
}

// NormalizeEmail lowercases and trims an address used as a lookup key.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
