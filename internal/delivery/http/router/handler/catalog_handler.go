package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CatalogHandler holds dependencies for product catalog handlers.
type CatalogHandler struct {
	uc     usecase.CatalogUsecase
	logger *slog.Logger
}

// NewCatalogHandler is the constructor for CatalogHandler, injected by Fx.
func NewCatalogHandler(uc usecase.CatalogUsecase, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		uc:     uc,
		logger: logger,
	}
}

// ListProducts returns catalog products, filtered and sorted per query
// parameters. Slice filters accept comma-separated values.
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	filter := repository.ProductFilter{
		Category: c.QueryParam("category"),
		Sizes:    splitParam(c.QueryParam("sizes")),
		Colors:   splitParam(c.QueryParam("colors")),
		Brands:   splitParam(c.QueryParam("brands")),
	}

	if raw := c.QueryParam("minPrice"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "minPrice must be a number")
		}
		filter.MinPrice = value
	}
	if raw := c.QueryParam("maxPrice"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "maxPrice must be a number")
		}
		filter.MaxPrice = value
	}

	products, err := h.uc.ListProducts(c.Request().Context(), usecase.ListProductsInput{
		Filter: filter,
		SortBy: c.QueryParam("sort"),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, products, "")
}

// GetProduct returns a single product by ID.
func (h *CatalogHandler) GetProduct(c echo.Context) error {
	product, err := h.uc.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "")
}

// ImportSeed loads the seed dataset into the catalog.
func (h *CatalogHandler) ImportSeed(c echo.Context) error {
	output, err := h.uc.ImportSeed(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Catalog seed imported")
}

func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}

	return out
}
