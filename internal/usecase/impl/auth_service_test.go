package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	domainservice "storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type authServiceMocks struct {
	users    *mockUserRepository
	hasher   *mockPasswordHasher
	tokens   *mockTokenService
	verifier *mockIdentityVerifier
}

func newAuthService(fallback *config.FallbackCredentials) (usecase.AuthUsecase, *authServiceMocks) {
	mocks := &authServiceMocks{
		users:    new(mockUserRepository),
		hasher:   new(mockPasswordHasher),
		tokens:   new(mockTokenService),
		verifier: new(mockIdentityVerifier),
	}

	service := NewAuthService(AuthServiceParams{
		Users:    mocks.users,
		Hasher:   mocks.hasher,
		Tokens:   mocks.tokens,
		Verifier: mocks.verifier,
		Config:   &config.Config{Auth: &config.AuthConfig{Fallback: fallback}},
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return service, mocks
}

func TestAuthService_Register_Success(t *testing.T) {
	service, mocks := newAuthService(nil)
	ctx := context.Background()

	mocks.users.On("FindByEmail", ctx, "new@example.com").Return(nil, repository.ErrUserNotFound)
	mocks.hasher.On("Hash", "secret123").Return("hashed", nil)
	mocks.users.On("Create", ctx, mock.AnythingOfType("*entity.User")).Return(nil)
	mocks.tokens.On("GenerateAccessToken", mock.AnythingOfType("string"), "new@example.com").Return("token", nil)

	output, err := service.Register(ctx, usecase.RegisterInput{
		Email:    "New@Example.com",
		Password: "secret123",
		FullName: "New Shopper",
	})

	require.NoError(t, err)
	assert.Equal(t, "new@example.com", output.Email)
	assert.Equal(t, "token", output.AccessToken)
	assert.NotEmpty(t, output.UserID)
	mocks.users.AssertExpectations(t)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	service, mocks := newAuthService(nil)
	ctx := context.Background()

	existing := &entity.User{ID: uuid.New(), Email: "taken@example.com"}
	mocks.users.On("FindByEmail", ctx, "taken@example.com").Return(existing, nil)

	_, err := service.Register(ctx, usecase.RegisterInput{Email: "taken@example.com", Password: "pw"})

	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestAuthService_LoginWithPassword_LocalAccount(t *testing.T) {
	service, mocks := newAuthService(nil)
	ctx := context.Background()

	userID := uuid.New()
	user := &entity.User{ID: userID, Email: "shopper@example.com", FullName: "Shopper", PasswordHash: "hashed"}
	mocks.users.On("FindByEmail", ctx, "shopper@example.com").Return(user, nil)
	mocks.hasher.On("Check", "secret123", "hashed").Return(true)
	mocks.tokens.On("GenerateAccessToken", userID.String(), "shopper@example.com").Return("token", nil)

	output, err := service.LoginWithPassword(ctx, usecase.LoginInput{Email: "shopper@example.com", Password: "secret123"})

	require.NoError(t, err)
	assert.Equal(t, userID.String(), output.UserID)
	assert.Equal(t, "token", output.AccessToken)
}

func TestAuthService_LoginWithPassword_FallbackTier(t *testing.T) {
	fallback := &config.FallbackCredentials{
		Email:    "user@fashionhub.com",
		Password: "fashion123",
		UserID:   "demo-user",
	}
	service, mocks := newAuthService(fallback)
	ctx := context.Background()

	// Unknown to the local account store; the fallback tier vouches instead.
	mocks.users.On("FindByEmail", ctx, "user@fashionhub.com").Return(nil, repository.ErrUserNotFound)
	mocks.tokens.On("GenerateAccessToken", "demo-user", "user@fashionhub.com").Return("token", nil)

	output, err := service.LoginWithPassword(ctx, usecase.LoginInput{
		Email:    "user@fashionhub.com",
		Password: "fashion123",
	})

	require.NoError(t, err)
	assert.Equal(t, "demo-user", output.UserID)
}

func TestAuthService_LoginWithPassword_WrongPassword(t *testing.T) {
	service, mocks := newAuthService(nil)
	ctx := context.Background()

	user := &entity.User{ID: uuid.New(), Email: "shopper@example.com", PasswordHash: "hashed"}
	mocks.users.On("FindByEmail", ctx, "shopper@example.com").Return(user, nil)
	mocks.hasher.On("Check", "wrong", "hashed").Return(false)

	_, err := service.LoginWithPassword(ctx, usecase.LoginInput{Email: "shopper@example.com", Password: "wrong"})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_LoginWithPassword_FallbackDisabled(t *testing.T) {
	service, mocks := newAuthService(nil)
	ctx := context.Background()

	mocks.users.On("FindByEmail", ctx, "user@fashionhub.com").Return(nil, repository.ErrUserNotFound)

	_, err := service.LoginWithPassword(ctx, usecase.LoginInput{
		Email:    "user@fashionhub.com",
		Password: "fashion123",
	})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_LoginWithIDToken_Success(t *testing.T) {
	service, mocks := newAuthService(nil)
	ctx := context.Background()

	identity := &domainservice.ExternalIdentity{UID: "firebase-uid", Email: "provider@example.com", Name: "Provider User"}
	mocks.verifier.On("VerifyIDToken", ctx, "id-token").Return(identity, nil)
	mocks.tokens.On("GenerateAccessToken", "firebase-uid", "provider@example.com").Return("token", nil)

	output, err := service.LoginWithIDToken(ctx, usecase.IDTokenLoginInput{IDToken: "id-token"})

	require.NoError(t, err)
	assert.Equal(t, "firebase-uid", output.UserID)
	assert.Equal(t, "Provider User", output.FullName)
}

func TestAuthService_LoginWithIDToken_Invalid(t *testing.T) {
	service, mocks := newAuthService(nil)
	ctx := context.Background()

	mocks.verifier.On("VerifyIDToken", ctx, "bad-token").Return(nil, errors.New("expired"))

	_, err := service.LoginWithIDToken(ctx, usecase.IDTokenLoginInput{IDToken: "bad-token"})

	assert.ErrorIs(t, err, domainerrors.ErrIdentityTokenInvalid)
}
