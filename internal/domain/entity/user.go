package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a locally registered account. Accounts verified through the external
// identity provider never appear here; their provider UID is used directly as
// the cart owner ID.
type User struct {
	ID           uuid.UUID // Local account identifier; its string form scopes cart and orders.
	Email        string    // Login identifier, unique.
	FullName     string    // Display name captured at registration.
	PasswordHash string    // bcrypt hash; never serialized.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
