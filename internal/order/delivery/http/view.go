package http

import (
	"strconv"
	"time"

	"github.com/connectchain/admin-api/internal/order/domain"
)

// OrderView is the outbound shape of an order
type OrderView struct {
	ID           uint            `json:"id"`
	OrderNumber  string          `json:"orderNumber"`
	CustomerID   uint            `json:"customerId"`
	CustomerName string          `json:"customerName"`
	Status       string          `json:"status"`
	TotalAmount  string          `json:"totalAmount"`
	Items        []OrderItemView `json:"items"`
	CreatedAt    string          `json:"createdAt"`
	UpdatedAt    string          `json:"updatedAt"`
}

// OrderItemView is one outbound order line
type OrderItemView struct {
	ID          uint   `json:"id"`
	ProductID   uint   `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unitPrice"`
	Subtotal    string `json:"subtotal"`
}

// NewOrderView maps an order to its response shape
func NewOrderView(o domain.Order) OrderView {
	items := make([]OrderItemView, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemView{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   formatAmount(item.UnitPrice),
			Subtotal:    formatAmount(item.UnitPrice * float64(item.Quantity)),
		})
	}
	return OrderView{
		ID:           o.ID,
		OrderNumber:  o.OrderNumber,
		CustomerID:   o.CustomerID,
		CustomerName: o.CustomerName,
		Status:       o.Status,
		TotalAmount:  formatAmount(o.TotalAmount),
		Items:        items,
		CreatedAt:    formatTime(o.CreatedAt),
		UpdatedAt:    formatTime(o.UpdatedAt),
	}
}

// NewOrderViews maps an order page
func NewOrderViews(orders []domain.Order) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, NewOrderView(o))
	}
	return views
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
