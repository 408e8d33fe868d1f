package http

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/connectchain/admin-api/internal/apperr"
	"github.com/connectchain/admin-api/internal/category/domain"
	"github.com/connectchain/admin-api/internal/category/usecase/command"
	"github.com/connectchain/admin-api/internal/category/usecase/query"
	"github.com/connectchain/admin-api/internal/middleware"
	"github.com/connectchain/admin-api/pkg/listing"
	"github.com/connectchain/admin-api/pkg/logger"
)

var categoryListOptions = listing.Options{
	DefaultLimit: 10,
	DefaultSort:  "createdAt",
	AllowedSorts: map[string]string{
		"createdAt": "created_at",
		"name":      "name",
	},
}

// CategoryHandler handles HTTP requests for categories
type CategoryHandler struct {
	createHandler    *command.CreateCategoryHandler
	updateHandler    *command.UpdateCategoryHandler
	setStatusHandler *command.SetCategoryStatusHandler
	deleteHandler    *command.DeleteCategoryHandler

	getHandler  *query.GetCategoryHandler
	listHandler *query.ListCategoriesHandler

	metrics *middleware.Metrics
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(
	createHandler *command.CreateCategoryHandler,
	updateHandler *command.UpdateCategoryHandler,
	setStatusHandler *command.SetCategoryStatusHandler,
	deleteHandler *command.DeleteCategoryHandler,
	getHandler *query.GetCategoryHandler,
	listHandler *query.ListCategoriesHandler,
	metrics *middleware.Metrics,
) *CategoryHandler {
	return &CategoryHandler{
		createHandler:    createHandler,
		updateHandler:    updateHandler,
		setStatusHandler: setStatusHandler,
		deleteHandler:    deleteHandler,
		getHandler:       getHandler,
		listHandler:      listHandler,
		metrics:          metrics,
	}
}

// Response is the JSON envelope every endpoint answers with
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// RegisterRoutes wires the category routes into the router
func (h *CategoryHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/categories", h.metrics.Wrap("/api/categories", middleware.Auth(h.ListCategories))).Methods("GET")
	router.HandleFunc("/api/categories/{id}", h.metrics.Wrap("/api/categories/{id}", middleware.Auth(h.GetCategory))).Methods("GET")

	router.HandleFunc("/api/categories", h.metrics.Wrap("/api/categories", middleware.Admin(h.CreateCategory))).Methods("POST")
	router.HandleFunc("/api/categories/{id}", h.metrics.Wrap("/api/categories/{id}", middleware.Admin(h.UpdateCategory))).Methods("PUT")
	router.HandleFunc("/api/categories/{id}/status", h.metrics.Wrap("/api/categories/{id}/status", middleware.Admin(h.SetCategoryStatus))).Methods("PATCH")
	router.HandleFunc("/api/categories/{id}", h.metrics.Wrap("/api/categories/{id}", middleware.Admin(h.DeleteCategory))).Methods("DELETE")
}

// ListCategories handles GET /api/categories
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()

	filter, err := parseCategoryFilter(values)
	if err != nil {
		respondError(w, err)
		return
	}
	sort, err := listing.ParseSort(values, categoryListOptions)
	if err != nil {
		respondError(w, err)
		return
	}
	page := listing.ParsePage(values, categoryListOptions)

	result, err := h.listHandler.Handle(r.Context(), query.ListCategoriesQuery{
		Filter: filter,
		Page:   page,
		Sort:   sort,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list categories")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"items": NewCategoryViews(result.Items),
			"pagination": map[string]interface{}{
				"total": result.Total,
				"page":  page.Number,
				"limit": page.Limit,
				"pages": result.Pages(),
			},
		},
	})
}

// GetCategory handles GET /api/categories/{id}
func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	category, err := h.getHandler.Handle(r.Context(), query.GetCategoryQuery{ID: id})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    NewCategoryView(*category, 0),
	})
}

type categoryRequest struct {
	Name        *string `json:"Name"`
	Description *string `json:"Description"`
}

// CreateCategory handles POST /api/categories
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperr.Wrap(apperr.KindValidation, "invalid request body", err))
		return
	}

	cmd := command.CreateCategoryCommand{}
	if req.Name != nil {
		cmd.Name = *req.Name
	}
	if req.Description != nil {
		cmd.Description = *req.Description
	}

	category, err := h.createHandler.Handle(r.Context(), cmd)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to create category")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Category created successfully",
		Data:    NewCategoryView(*category, 0),
	})
}

// UpdateCategory handles PUT /api/categories/{id}
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperr.Wrap(apperr.KindValidation, "invalid request body", err))
		return
	}

	category, err := h.updateHandler.Handle(r.Context(), command.UpdateCategoryCommand{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Uint("category_id", id).Msg("Failed to update category")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Category updated successfully",
		Data:    NewCategoryView(*category, 0),
	})
}

// SetCategoryStatus handles PATCH /api/categories/{id}/status
func (h *CategoryHandler) SetCategoryStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req struct {
		IsActive *bool `json:"IsActive"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperr.Wrap(apperr.KindValidation, "invalid request body", err))
		return
	}
	if req.IsActive == nil {
		respondError(w, apperr.Validation("IsActive is required"))
		return
	}

	category, err := h.setStatusHandler.Handle(r.Context(), command.SetCategoryStatusCommand{
		ID:      id,
		Active:  *req.IsActive,
		ActorID: actorID(r),
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Uint("category_id", id).Msg("Failed to change category status")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Category status updated successfully",
		Data:    NewCategoryView(*category, 0),
	})
}

// DeleteCategory handles DELETE /api/categories/{id}
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.deleteHandler.Handle(r.Context(), command.DeleteCategoryCommand{ID: id}); err != nil {
		logger.Error(r.Context()).Err(err).Uint("category_id", id).Msg("Failed to delete category")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Category deleted successfully",
	})
}

func parseCategoryFilter(values url.Values) (domain.CategoryFilter, error) {
	filter := domain.CategoryFilter{
		Search: values.Get("search"),
	}

	switch status := values.Get("status"); status {
	case "", "active", "inactive":
		filter.Status = status
	default:
		return domain.CategoryFilter{}, apperr.Validation("invalid status %q", status)
	}

	var err error
	if filter.CreatedFrom, filter.CreatedTo, err = listing.ParseDateRange(values); err != nil {
		return domain.CategoryFilter{}, err
	}
	return filter, nil
}

func pathID(r *http.Request) (uint, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, apperr.Validation("invalid category id %q", raw)
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
