package service

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims defines the custom claims carried by storefront access tokens. The
// subject is the cart owner ID: a local account UUID or an external provider UID.
type Claims struct {
	Email string
	jwt.RegisteredClaims
}

// TokenService defines the interface for generating and validating JWTs.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// GenerateAccessToken creates a signed access token for a given user.
	GenerateAccessToken(userID, email string) (string, error)

	// ValidateToken checks the validity of a token string.
	ValidateToken(tokenString string) (*Claims, error)
}
