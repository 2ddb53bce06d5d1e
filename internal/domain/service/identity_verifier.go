package service

import "context"

// ExternalIdentity is the verified identity extracted from a provider-issued
// ID token.
type ExternalIdentity struct {
	UID           string // Provider UID; used directly as the cart owner ID.
	Email         string
	Name          string
	EmailVerified bool
}

// IdentityVerifier verifies ID tokens minted by the external auth provider
// (Firebase Auth in production). Clients that sign in against the provider
// exchange their ID token here for a storefront session.
type IdentityVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*ExternalIdentity, error)
}
