package domain

import (
	"context"
	"time"

	"github.com/connectchain/admin-api/pkg/listing"
)

// Order statuses, in lifecycle order
const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// ValidStatus reports whether s is a known order status
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Order represents a customer order
type Order struct {
	ID           uint
	OrderNumber  string
	CustomerID   uint
	CustomerName string
	Status       string
	TotalAmount  float64
	Items        []OrderItem
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OrderItem is one line of an order
type OrderItem struct {
	ID          uint
	OrderID     uint
	ProductID   uint
	ProductName string
	Quantity    int
	UnitPrice   float64
}

// OrderFilter is the structured predicate behind order listings
type OrderFilter struct {
	Search      string // order number or customer name
	Status      string
	CustomerID  *uint
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// OrderRepository defines the contract for order data access
type OrderRepository interface {
	FindByID(ctx context.Context, id uint) (*Order, error)
	List(ctx context.Context, filter OrderFilter, page listing.Page, sort listing.Sort) ([]Order, int64, error)
	// UpdateStatus moves the order to a new status. Repeating the current
	// status is a state conflict.
	UpdateStatus(ctx context.Context, id uint, status string) (*Order, error)
}
