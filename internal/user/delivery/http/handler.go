package http

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/connectchain/admin-api/internal/apperr"
	"github.com/connectchain/admin-api/internal/middleware"
	"github.com/connectchain/admin-api/internal/user/domain"
	"github.com/connectchain/admin-api/internal/user/usecase/command"
	"github.com/connectchain/admin-api/internal/user/usecase/query"
	"github.com/connectchain/admin-api/pkg/listing"
	"github.com/connectchain/admin-api/pkg/logger"
)

var userListOptions = listing.Options{
	DefaultLimit: 10,
	DefaultSort:  "createdAt",
	AllowedSorts: map[string]string{
		"createdAt": "created_at",
		"fullName":  "full_name",
		"email":     "email",
	},
}

// UserHandler handles HTTP requests for supplier and customer accounts. The
// same handler serves both surfaces; the route decides the role.
type UserHandler struct {
	createHandler *command.CreateUserHandler
	updateHandler *command.UpdateUserHandler
	toggleHandler *command.ToggleActiveHandler

	getHandler  *query.GetUserHandler
	listHandler *query.ListUsersHandler

	metrics *middleware.Metrics
}

// NewUserHandler creates a new user handler
func NewUserHandler(
	createHandler *command.CreateUserHandler,
	updateHandler *command.UpdateUserHandler,
	toggleHandler *command.ToggleActiveHandler,
	getHandler *query.GetUserHandler,
	listHandler *query.ListUsersHandler,
	metrics *middleware.Metrics,
) *UserHandler {
	return &UserHandler{
		createHandler: createHandler,
		updateHandler: updateHandler,
		toggleHandler: toggleHandler,
		getHandler:    getHandler,
		listHandler:   listHandler,
		metrics:       metrics,
	}
}

// Response is the JSON envelope every endpoint answers with
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// RegisterRoutes wires the supplier and customer routes into the router
func (h *UserHandler) RegisterRoutes(router *mux.Router) {
	h.registerRoleRoutes(router, "/api/suppliers", domain.RoleSupplier)
	h.registerRoleRoutes(router, "/api/customers", domain.RoleCustomer)
}

func (h *UserHandler) registerRoleRoutes(router *mux.Router, prefix, role string) {
	router.HandleFunc(prefix, h.metrics.Wrap(prefix, middleware.Auth(h.list(role)))).Methods("GET")
	router.HandleFunc(prefix+"/{id}", h.metrics.Wrap(prefix+"/{id}", middleware.Auth(h.get(role)))).Methods("GET")

	router.HandleFunc(prefix, h.metrics.Wrap(prefix, middleware.Admin(h.create(role)))).Methods("POST")
	router.HandleFunc(prefix+"/{id}", h.metrics.Wrap(prefix+"/{id}", middleware.Admin(h.update(role)))).Methods("PUT")
	router.HandleFunc(prefix+"/{id}/status", h.metrics.Wrap(prefix+"/{id}/status", middleware.Admin(h.toggleActive(role)))).Methods("PATCH")
}

func (h *UserHandler) list(role string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		values := r.URL.Query()

		filter, err := parseUserFilter(values, role)
		if err != nil {
			respondError(w, err)
			return
		}
		sort, err := listing.ParseSort(values, userListOptions)
		if err != nil {
			respondError(w, err)
			return
		}
		page := listing.ParsePage(values, userListOptions)

		result, err := h.listHandler.Handle(r.Context(), query.ListUsersQuery{
			Filter: filter,
			Page:   page,
			Sort:   sort,
		})
		if err != nil {
			logger.Error(r.Context()).Err(err).Str("role", role).Msg("Failed to list users")
			respondError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Data: map[string]interface{}{
				"items": NewUserViews(result.Items),
				"pagination": map[string]interface{}{
					"total": result.Total,
					"page":  page.Number,
					"limit": page.Limit,
					"pages": result.Pages(),
				},
			},
		})
	}
}

func (h *UserHandler) get(role string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			respondError(w, err)
			return
		}

		user, err := h.getHandler.Handle(r.Context(), query.GetUserQuery{ID: id})
		if err != nil {
			respondError(w, err)
			return
		}
		if user.Role != role {
			respondError(w, apperr.NotFound("user %d not found", id))
			return
		}

		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Data:    NewUserView(*user),
		})
	}
}

type createUserRequest struct {
	Username    string `json:"Username"`
	Email       string `json:"Email"`
	FullName    string `json:"FullName"`
	CompanyName string `json:"CompanyName"`
	Phone       string `json:"Phone"`
	Address     string `json:"Address"`
	Password    string `json:"Password"`
}

type updateUserRequest struct {
	FullName    *string `json:"FullName"`
	Email       *string `json:"Email"`
	CompanyName *string `json:"CompanyName"`
	Phone       *string `json:"Phone"`
	Address     *string `json:"Address"`
	IsVerified  *bool   `json:"IsVerified"`
}

func (h *UserHandler) create(role string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, apperr.Wrap(apperr.KindValidation, "invalid request body", err))
			return
		}

		user, err := h.createHandler.Handle(r.Context(), command.CreateUserCommand{
			Username:    req.Username,
			Email:       req.Email,
			FullName:    req.FullName,
			CompanyName: req.CompanyName,
			Phone:       req.Phone,
			Address:     req.Address,
			Role:        role,
			Password:    req.Password,
		})
		if err != nil {
			logger.Error(r.Context()).Err(err).Str("role", role).Msg("Failed to create user")
			respondError(w, err)
			return
		}

		respondJSON(w, http.StatusCreated, Response{
			Success: true,
			Message: "User created successfully",
			Data:    NewUserView(*user),
		})
	}
}

func (h *UserHandler) update(role string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			respondError(w, err)
			return
		}

		var req updateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, apperr.Wrap(apperr.KindValidation, "invalid request body", err))
			return
		}

		if err := h.requireRole(r, id, role); err != nil {
			respondError(w, err)
			return
		}

		user, err := h.updateHandler.Handle(r.Context(), command.UpdateUserCommand{
			ID:          id,
			FullName:    req.FullName,
			Email:       req.Email,
			CompanyName: req.CompanyName,
			Phone:       req.Phone,
			Address:     req.Address,
			IsVerified:  req.IsVerified,
		})
		if err != nil {
			logger.Error(r.Context()).Err(err).Uint("user_id", id).Msg("Failed to update user")
			respondError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "User updated successfully",
			Data:    NewUserView(*user),
		})
	}
}

func (h *UserHandler) toggleActive(role string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
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

		if err := h.requireRole(r, id, role); err != nil {
			respondError(w, err)
			return
		}

		user, err := h.toggleHandler.Handle(r.Context(), command.ToggleActiveCommand{
			UserID:   id,
			IsActive: *req.IsActive,
		})
		if err != nil {
			logger.Error(r.Context()).Err(err).Uint("user_id", id).Msg("Failed to change user status")
			respondError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "User status updated successfully",
			Data:    NewUserView(*user),
		})
	}
}

// requireRole verifies the target user belongs to the surface being used, so
// a supplier route can never touch a customer row.
func (h *UserHandler) requireRole(r *http.Request, id uint, role string) error {
	user, err := h.getHandler.Handle(r.Context(), query.GetUserQuery{ID: id})
	if err != nil {
		return err
	}
	if user.Role != role {
		return apperr.NotFound("user %d not found", id)
	}
	return nil
}

func parseUserFilter(values url.Values, role string) (domain.UserFilter, error) {
	filter := domain.UserFilter{
		Role:   role,
		Search: values.Get("search"),
	}

	switch status := values.Get("status"); status {
	case "", "active", "inactive":
		filter.Status = status
	default:
		return domain.UserFilter{}, apperr.Validation("invalid status %q", status)
	}

	filter.Verified = listing.ParseBool(values, "verified")

	var err error
	if filter.CreatedFrom, filter.CreatedTo, err = listing.ParseDateRange(values); err != nil {
		return domain.UserFilter{}, err
	}
	return filter, nil
}

func pathID(r *http.Request) (uint, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, apperr.Validation("invalid user id %q", raw)
	}
	return uint(id), nil
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
