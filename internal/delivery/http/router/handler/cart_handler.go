package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/response"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CartHandler holds dependencies for cart and checkout handlers.
type CartHandler struct {
	cartUC     usecase.CartUsecase
	checkoutUC usecase.CheckoutUsecase
	catalogUC  usecase.CatalogUsecase
	logger     *slog.Logger
}

// NewCartHandler is the constructor for CartHandler, injected by Fx.
func NewCartHandler(cartUC usecase.CartUsecase, checkoutUC usecase.CheckoutUsecase, catalogUC usecase.CatalogUsecase, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		cartUC:     cartUC,
		checkoutUC: checkoutUC,
		catalogUC:  catalogUC,
		logger:     logger,
	}
}

type addItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// cartResponse is the JSON shape of a cart snapshot: the item list plus the
// totals derived from it.
type cartResponse struct {
	Items      any     `json:"items"`
	TotalItems int     `json:"totalItems"`
	Subtotal   float64 `json:"subtotal"`
}

func toCartResponse(snapshot *usecase.CartSnapshot) cartResponse {
	return cartResponse{
		Items:      snapshot.Items,
		TotalItems: snapshot.Totals.TotalItems,
		Subtotal:   snapshot.Totals.Subtotal,
	}
}

// GetCart returns the current cart with derived totals.
func (h *CartHandler) GetCart(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	snapshot, err := h.cartUC.Snapshot(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCartResponse(snapshot), "")
}

// AddItem resolves the product in the catalog and adds it to the cart. The
// cart stores a frozen copy of the product, so later catalog edits never
// rewrite carts.
func (h *CartHandler) AddItem(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid add-to-cart input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	product, err := h.catalogUC.GetProduct(c.Request().Context(), req.ProductID)
	if err != nil {
		return errors.WithStack(err)
	}

	if err := h.cartUC.AddItem(c.Request().Context(), userID, *product, req.Quantity); err != nil {
		return errors.WithStack(err)
	}

	return h.respondWithCart(c, userID, http.StatusOK, "Item added to cart")
}

// UpdateQuantity replaces the quantity of a cart line; quantities below 1
// remove it.
func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req updateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid quantity input")
	}

	if err := h.cartUC.UpdateQuantity(c.Request().Context(), userID, c.Param("productID"), req.Quantity); err != nil {
		return errors.WithStack(err)
	}

	return h.respondWithCart(c, userID, http.StatusOK, "Quantity updated")
}

// RemoveItem deletes a cart line.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	if err := h.cartUC.RemoveItem(c.Request().Context(), userID, c.Param("productID")); err != nil {
		return errors.WithStack(err)
	}

	return h.respondWithCart(c, userID, http.StatusOK, "Item removed")
}

// ClearCart removes every cart line.
func (h *CartHandler) ClearCart(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	if err := h.cartUC.Clear(c.Request().Context(), userID); err != nil {
		return errors.WithStack(err)
	}

	return h.respondWithCart(c, userID, http.StatusOK, "Cart cleared")
}

// Checkout converts the cart into an order. A partial failure (order created,
// cart not cleared) surfaces as its own error code so clients can retry the
// clear without re-submitting the order.
func (h *CartHandler) Checkout(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	output, err := h.checkoutUC.Checkout(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output.Order, "Order placed")
}

// Stream pushes a server-sent event with the full cart snapshot on every
// change, starting with the current state.
func (h *CartHandler) Stream(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	logger := deliverycontext.GetLoggerOrDefault(ctx, h.logger)
	snapshots, errs, err := h.cartUC.Watch(ctx, userID)
	if err != nil {
		return errors.WithStack(err)
	}

	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set("Cache-Control", "no-cache")
	resp.Header().Set("Connection", "keep-alive")
	resp.WriteHeader(http.StatusOK)

	for {
		select {
		case snapshot, ok := <-snapshots:
			if !ok {
				return nil
			}
			payload, err := json.Marshal(toCartResponse(snapshot))
			if err != nil {
				logger.Error("failed to encode cart event", slog.Any("error", err))

				return nil
			}
			fmt.Fprintf(resp, "event: cart\ndata: %s\n\n", payload)
			resp.Flush()

		case streamErr, ok := <-errs:
			if ok && streamErr != nil {
				logger.Warn("cart stream terminated",
					slog.String("userID", userID),
					slog.Any("error", streamErr))
				fmt.Fprintf(resp, "event: error\ndata: %q\n\n", streamErr.Error())
				resp.Flush()
			}

			return nil

		case <-ctx.Done():
			return nil
		}
	}
}

func (h *CartHandler) respondWithCart(c echo.Context, userID string, status int, message string) error {
	snapshot, err := h.cartUC.Snapshot(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, status, toCartResponse(snapshot), message)
}
