package http

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/connectchain/admin-api/internal/apperr"
	"github.com/connectchain/admin-api/internal/middleware"
	"github.com/connectchain/admin-api/internal/order/domain"
	"github.com/connectchain/admin-api/internal/order/usecase/command"
	"github.com/connectchain/admin-api/internal/order/usecase/query"
	"github.com/connectchain/admin-api/pkg/listing"
	"github.com/connectchain/admin-api/pkg/logger"
)

var orderListOptions = listing.Options{
	DefaultLimit: 10,
	DefaultSort:  "createdAt",
	AllowedSorts: map[string]string{
		"createdAt":   "created_at",
		"orderNumber": "order_number",
		"totalAmount": "total_amount",
		"status":      "status",
	},
}

// OrderHandler handles HTTP requests for orders
type OrderHandler struct {
	updateStatusHandler *command.UpdateOrderStatusHandler

	getHandler  *query.GetOrderHandler
	listHandler *query.ListOrdersHandler

	metrics *middleware.Metrics
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(
	updateStatusHandler *command.UpdateOrderStatusHandler,
	getHandler *query.GetOrderHandler,
	listHandler *query.ListOrdersHandler,
	metrics *middleware.Metrics,
) *OrderHandler {
	return &OrderHandler{
		updateStatusHandler: updateStatusHandler,
		getHandler:          getHandler,
		listHandler:         listHandler,
		metrics:             metrics,
	}
}

// Response is the JSON envelope every endpoint answers with
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// RegisterRoutes wires the order routes into the router
func (h *OrderHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/orders", h.metrics.Wrap("/api/orders", middleware.Auth(h.ListOrders))).Methods("GET")
	router.HandleFunc("/api/orders/{id}", h.metrics.Wrap("/api/orders/{id}", middleware.Auth(h.GetOrder))).Methods("GET")
	router.HandleFunc("/api/orders/{id}/status", h.metrics.Wrap("/api/orders/{id}/status", middleware.Admin(h.UpdateOrderStatus))).Methods("PATCH")
}

// ListOrders handles GET /api/orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()

	filter, err := parseOrderFilter(values)
	if err != nil {
		respondError(w, err)
		return
	}
	sort, err := listing.ParseSort(values, orderListOptions)
	if err != nil {
		respondError(w, err)
		return
	}
	page := listing.ParsePage(values, orderListOptions)

	result, err := h.listHandler.Handle(r.Context(), query.ListOrdersQuery{
		Filter: filter,
		Page:   page,
		Sort:   sort,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list orders")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"items": NewOrderViews(result.Items),
			"pagination": map[string]interface{}{
				"total": result.Total,
				"page":  page.Number,
				"limit": page.Limit,
				"pages": result.Pages(),
			},
		},
	})
}

// GetOrder handles GET /api/orders/{id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	order, err := h.getHandler.Handle(r.Context(), query.GetOrderQuery{ID: id})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    NewOrderView(*order),
	})
}

// UpdateOrderStatus handles PATCH /api/orders/{id}/status
func (h *OrderHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req struct {
		Status string `json:"Status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperr.Wrap(apperr.KindValidation, "invalid request body", err))
		return
	}

	order, err := h.updateStatusHandler.Handle(r.Context(), command.UpdateOrderStatusCommand{
		ID:      id,
		Status:  req.Status,
		ActorID: actorID(r),
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Uint("order_id", id).Msg("Failed to update order status")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Order status updated successfully",
		Data:    NewOrderView(*order),
	})
}

func parseOrderFilter(values url.Values) (domain.OrderFilter, error) {
	filter := domain.OrderFilter{
		Search: values.Get("search"),
	}

	if status := values.Get("status"); status != "" {
		if !domain.ValidStatus(status) {
			return domain.OrderFilter{}, apperr.Validation("invalid status %q", status)
		}
		filter.Status = status
	}

	var err error
	if filter.CustomerID, err = listing.ParseUint(values, "customer"); err != nil {
		return domain.OrderFilter{}, err
	}
	if filter.CreatedFrom, filter.CreatedTo, err = listing.ParseDateRange(values); err != nil {
		return domain.OrderFilter{}, err
	}
	return filter, nil
}

func pathID(r *http.Request) (uint, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, apperr.Validation("invalid order id %q", raw)
	}
	return uint(id), nil
}

func actorID(r *http.Request) uint {
	if id, ok := r.Context().Value(middleware.UserIDKey).(uint); ok {
		return id
	}
	return 0
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, err error) {
	respondJSON(w, apperr.HTTPStatus(err), Response{
		Success: false,
		Message: apperr.Message(err),
	})
}
