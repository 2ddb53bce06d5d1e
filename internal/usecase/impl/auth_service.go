package impl

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"strings"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	users    repository.UserRepository
	hasher   service.PasswordHasher
	tokens   service.TokenService
	verifier service.IdentityVerifier
	fallback *config.FallbackCredentials
	logger   *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	Users    repository.UserRepository
	Hasher   service.PasswordHasher
	Tokens   service.TokenService
	Verifier service.IdentityVerifier
	Config   *config.Config
	Logger   *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	var fallback *config.FallbackCredentials
	if params.Config != nil && params.Config.Auth != nil {
		fallback = params.Config.Auth.Fallback
	}

	return &authService{
		users:    params.Users,
		hasher:   params.Hasher,
		tokens:   params.Tokens,
		verifier: params.Verifier,
		fallback: fallback,
		logger:   params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a local shopper account and returns a session for it.
func (srv *authService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.AuthOutput, error) {
	email := normalizeEmail(input.Email)

	if _, err := srv.users.FindByEmail(ctx, email); err == nil {
		return nil, domainerrors.ErrUserAlreadyExists
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.NewDatabaseExecuteError(err, "find user by email")
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("failed to hash password", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New(),
		Email:        email,
		FullName:     input.FullName,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := srv.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return nil, domainerrors.ErrUserAlreadyExists
		}
		srv.log(ctx).Error("failed to create user", slog.Any("error", err))

		return nil, domainerrors.ErrUserCreationFailed
	}

	srv.log(ctx).Info("user registered", slog.String("userID", user.ID.String()))

	return srv.issueSession(user.ID.String(), user.Email, user.FullName)
}

// LoginWithPassword verifies email/password credentials. The local account
// store is consulted first; when it cannot vouch for the credentials, the
// config-defined fallback credential tier gets a chance before the login is
// rejected.
func (srv *authService) LoginWithPassword(ctx context.Context, input usecase.LoginInput) (*usecase.AuthOutput, error) {
	email := normalizeEmail(input.Email)

	user, err := srv.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if srv.hasher.Check(input.Password, user.PasswordHash) {
			return srv.issueSession(user.ID.String(), user.Email, user.FullName)
		}
	case !errors.Is(err, repository.ErrUserNotFound):
		srv.log(ctx).Error("user lookup failed during login", slog.Any("error", err))
	}

	if srv.matchesFallback(email, input.Password) {
		srv.log(ctx).Info("fallback credentials accepted", slog.String("email", email))

		return srv.issueSession(srv.fallback.UserID, srv.fallback.Email, "Demo Shopper")
	}

	return nil, domainerrors.ErrInvalidCredentials
}

// LoginWithIDToken verifies a provider-issued ID token and returns a session
// bound to the provider identity. The provider UID becomes the cart owner ID.
func (srv *authService) LoginWithIDToken(ctx context.Context, input usecase.IDTokenLoginInput) (*usecase.AuthOutput, error) {
	if srv.verifier == nil {
		return nil, domainerrors.ErrIdentityTokenInvalid.WithDetails("identity provider is not configured")
	}

	identity, err := srv.verifier.VerifyIDToken(ctx, input.IDToken)
	if err != nil {
		srv.log(ctx).Warn("ID token verification failed", slog.Any("error", err))

		return nil, domainerrors.ErrIdentityTokenInvalid
	}

	return srv.issueSession(identity.UID, identity.Email, identity.Name)
}

func (srv *authService) issueSession(userID, email, fullName string) (*usecase.AuthOutput, error) {
	token, err := srv.tokens.GenerateAccessToken(userID, email)
	if err != nil {
		srv.logger.Error("failed to generate access token", slog.Any("error", err))

		return nil, domainerrors.ErrInternalError.WithDetails("token generation failed")
	}

	return &usecase.AuthOutput{
		UserID:      userID,
		Email:       email,
		FullName:    fullName,
		AccessToken: token,
	}, nil
}

// matchesFallback compares against the configured demo credentials in
// constant time. An empty fallback email disables the tier.
func (srv *authService) matchesFallback(email, password string) bool {
	if srv.fallback == nil || srv.fallback.Email == "" {
		return false
	}

	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(strings.ToLower(srv.fallback.Email)))
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(srv.fallback.Password))

	return emailOK&passwordOK == 1
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
