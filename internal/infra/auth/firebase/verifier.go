// Package firebase verifies Firebase Auth ID tokens through the Admin SDK.
package firebase

import (
	"context"
	"log/slog"

	"storefront/config"
	"storefront/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

// Verifier implements service.IdentityVerifier against Firebase Auth.
type Verifier struct {
	client *auth.Client
	logger *slog.Logger
}

// NewVerifier initializes the Firebase Admin app and its auth client.
func NewVerifier(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.IdentityVerifier, error) {
	if cfg.Firebase == nil {
		return nil, errors.New("firebase configuration is required")
	}

	var opts []option.ClientOption
	if cfg.Firebase.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.Firebase.CredentialsPath))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.Firebase.ProjectID}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get Firebase auth client")
	}

	return &Verifier{
		client: client,
		logger: logger,
	}, nil
}

// VerifyIDToken checks the token's signature, audience and expiry against the
// Firebase project and extracts the identity claims.
func (v *Verifier) VerifyIDToken(ctx context.Context, idToken string) (*service.ExternalIdentity, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, errors.Wrap(err, "ID token verification failed")
	}

	identity := &service.ExternalIdentity{UID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := token.Claims["name"].(string); ok {
		identity.Name = name
	}
	if verified, ok := token.Claims["email_verified"].(bool); ok {
		identity.EmailVerified = verified
	}

	v.logger.Info("ID token verified",
		slog.String("uid", identity.UID),
		slog.String("email", identity.Email))

	return identity, nil
}
