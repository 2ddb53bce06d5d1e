package entity

import "time"

// OrderStatus tracks an order through its lifecycle.
type OrderStatus string

const (
	// OrderStatusPending is the status of every freshly created order.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusConfirmed is set by the order-event worker after the
	// confirmation pipeline has run.
	OrderStatusConfirmed OrderStatus = "confirmed"
)

// OrderLineItem is a frozen per-product entry within an order, decoupled from
// any later product or cart mutation.
type OrderLineItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Brand     string  `json:"brand"`
	Price     float64 `json:"price"` // Unit price paid: sale price at checkout time if one was set.
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image"`
	Subtotal  float64 `json:"subtotal"` // Rounded line subtotal (Price x Quantity).
}

// Order is the immutable receipt produced by checkout. Line items and totals
// never change after creation; only Status and UpdatedAt may advance.
type Order struct {
	ID            string          `json:"id"`
	UserID        string          `json:"userId"`
	LineItems     []OrderLineItem `json:"lineItems"`
	TotalQuantity int             `json:"totalQuantity"`
	Subtotal      float64         `json:"subtotal"`
	Tax           float64         `json:"tax"`
	GrandTotal    float64         `json:"grandTotal"`
	Status        OrderStatus     `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}
