package middleware

import (
	"strings"

	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// ContextKeyUserID is the echo.Context key carrying the authenticated cart
// owner ID. Handlers read it through UserID.
const ContextKeyUserID = "userID"

// AuthMiddleware provides middleware for JWT authentication.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the bearer access token and resolves the cart owner
// ID. Every cart, checkout and order route sits behind it; requests without a
// valid token never reach a handler.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return domainerrors.ErrNotAuthenticated
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return domainerrors.ErrNotAuthenticated.WithDetails("authorization header must use the Bearer scheme")
		}

		claims, err := m.tokenSvc.ValidateToken(tokenString)
		if err != nil {
			return domainerrors.ErrNotAuthenticated.WithDetails("invalid or expired token")
		}

		c.Set(ContextKeyUserID, claims.Subject)

		return next(c)
	}
}

// UserID returns the authenticated cart owner ID set by Authenticate.
func UserID(c echo.Context) (string, error) {
	userID, ok := c.Get(ContextKeyUserID).(string)
	if !ok || userID == "" {
		return "", domainerrors.ErrNotAuthenticated
	}

	return userID, nil
}
