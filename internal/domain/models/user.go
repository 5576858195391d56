package models

import (
	"time"

	"ticketzone/internal/domain"
)

// User maps an email to a role.
type User struct {
	ID        string      `json:"_id"`
	Email     string      `json:"email"`
	Name      string      `json:"name,omitempty"`
	PhotoURL  string      `json:"photoURL,omitempty"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
}

// CreateUserResult is the outcome of an upsert-or-noop user creation.
type CreateUserResult struct {
	Inserted   bool   `json:"inserted"`
	InsertedID string `json:"insertedId,omitempty"`
	Message    string `json:"message,omitempty"`
}
