// Package persistence selects the cart/order store backend.
package persistence

import (
	"context"
	"log/slog"

	"storefront/config"
	"storefront/internal/domain/constants"
	"storefront/internal/domain/repository"
	fsstore "storefront/internal/infra/persistence/firestore"
	"storefront/internal/infra/persistence/memory"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// CartBackendParams holds dependencies for the cart/order backend, injected by Fx.
type CartBackendParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// CartBackendResult bundles the two ports served by the selected backend.
type CartBackendResult struct {
	fx.Out

	CartStore repository.CartStore
	Orders    repository.OrderRepository
}

// NewCartBackend builds the CartStore and OrderRepository for the configured
// provider. Both ports always come from the same backend so the checkout
// transition reads and clears the same authoritative data.
func NewCartBackend(params CartBackendParams) (CartBackendResult, error) {
	cfg := params.Config.CartStore
	logger := params.Logger

	provider := constants.CartStoreProviderMemory
	if cfg != nil && cfg.Provider != "" {
		provider = cfg.Provider
	}

	switch provider {
	case constants.CartStoreProviderMemory:
		logger.Info("Using in-memory cart store")

		return CartBackendResult{
			CartStore: memory.NewCartStore(),
			Orders:    memory.NewOrderRepository(),
		}, nil

	case constants.CartStoreProviderFirestore:
		logger.Info("Using Firestore cart store",
			slog.String("project_id", cfg.ProjectID),
		)

		client, err := fsstore.NewClient(params.Ctx, params.Config)
		if err != nil {
			return CartBackendResult{}, err
		}

		params.Lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				logger.Info("Closing Firestore client")

				return client.Close()
			},
		})

		return CartBackendResult{
			CartStore: fsstore.NewCartStore(client, logger),
			Orders:    fsstore.NewOrderRepository(client),
		}, nil

	default:
		return CartBackendResult{}, errors.Errorf("unknown cart store provider: %s", provider)
	}
}
