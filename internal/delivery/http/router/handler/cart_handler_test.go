package handler

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/delivery/http/middleware"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCartUsecase feeds Stream pre-built watch channels; the mutation methods
// are never reached by these tests.
type stubCartUsecase struct {
	snapshots <-chan *usecase.CartSnapshot
	errs      <-chan error
}

func (s *stubCartUsecase) AddItem(context.Context, string, entity.Product, int) error {
	return nil
}

func (s *stubCartUsecase) UpdateQuantity(context.Context, string, string, int) error {
	return nil
}

func (s *stubCartUsecase) RemoveItem(context.Context, string, string) error {
	return nil
}

func (s *stubCartUsecase) Clear(context.Context, string) error {
	return nil
}

func (s *stubCartUsecase) Snapshot(context.Context, string) (*usecase.CartSnapshot, error) {
	return &usecase.CartSnapshot{}, nil
}

func (s *stubCartUsecase) Watch(context.Context, string) (<-chan *usecase.CartSnapshot, <-chan error, error) {
	return s.snapshots, s.errs, nil
}

func TestCartStream_LogsThroughRequestScopedLogger(t *testing.T) {
	errs := make(chan error, 1)
	errs <- errors.New("listener detached")
	stub := &stubCartUsecase{
		snapshots: make(chan *usecase.CartSnapshot),
		errs:      errs,
	}

	var fallbackBuf, requestBuf bytes.Buffer
	fallback := slog.New(slog.NewTextHandler(&fallbackBuf, nil))
	requestLogger := slog.New(slog.NewTextHandler(&requestBuf, nil)).
		With(slog.String("request_id", "req-42"))

	h := NewCartHandler(stub, nil, nil, fallback)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/cart/stream", nil)
	req = req.WithContext(deliverycontext.WithLogger(req.Context(), requestLogger))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextKeyUserID, "u1")

	require.NoError(t, h.Stream(c))

	assert.Contains(t, requestBuf.String(), "cart stream terminated")
	assert.Contains(t, requestBuf.String(), "req-42")
	assert.Empty(t, fallbackBuf.String())
	assert.Contains(t, rec.Body.String(), "event: error")
}
