// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new shopper account.
type RegisterInput struct {
	Email    string
	Password string
	FullName string
}

// LoginInput defines the data required for a password login.
type LoginInput struct {
	Email    string
	Password string
}

// IDTokenLoginInput carries a provider-issued ID token to exchange for a
// storefront session.
type IDTokenLoginInput struct {
	IDToken string
}

// --- Output DTOs ---

// AuthOutput returns the session established after a successful login or
// registration.
type AuthOutput struct {
	UserID      string
	Email       string
	FullName    string
	AccessToken string
}

// AuthUsecase defines the interface for authentication operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	// Register creates a local shopper account and returns a session for it.
	Register(ctx context.Context, input RegisterInput) (*AuthOutput, error)

	// LoginWithPassword verifies email/password credentials and returns a
	// session. Credentials are checked against the local account store first
	// and then against the configured fallback credential set.
	LoginWithPassword(ctx context.Context, input LoginInput) (*AuthOutput, error)

	// LoginWithIDToken verifies a provider-issued ID token and returns a
	// session bound to the provider identity.
	LoginWithIDToken(ctx context.Context, input IDTokenLoginInput) (*AuthOutput, error)
}
