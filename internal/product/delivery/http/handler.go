package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/connectchain/admin-api/internal/apperr"
	"github.com/connectchain/admin-api/internal/middleware"
	"github.com/connectchain/admin-api/internal/product/domain"
	"github.com/connectchain/admin-api/internal/product/usecase/command"
	"github.com/connectchain/admin-api/internal/product/usecase/query"
	"github.com/connectchain/admin-api/pkg/listing"
	"github.com/connectchain/admin-api/pkg/logger"
	"github.com/connectchain/admin-api/pkg/media"
)

const maxUploadBytes = 32 << 20 // 32 MB

var productListOptions = listing.Options{
	DefaultLimit: 10,
	DefaultSort:  "createdAt",
	AllowedSorts: map[string]string{
		"createdAt": "created_at",
		"name":      "name",
		"price":     "price",
		"stock":     "stock",
	},
}

// ProductHandler handles HTTP requests for the product aggregate
type ProductHandler struct {
	createHandler *command.CreateProductHandler
	updateHandler *command.UpdateProductHandler
	deleteHandler *command.DeleteProductHandler

	getHandler  *query.GetProductHandler
	listHandler *query.ListProductsHandler

	metrics *middleware.Metrics
}

// NewProductHandler creates a new product handler
func NewProductHandler(
	createHandler *command.CreateProductHandler,
	updateHandler *command.UpdateProductHandler,
	deleteHandler *command.DeleteProductHandler,
	getHandler *query.GetProductHandler,
	listHandler *query.ListProductsHandler,
	metrics *middleware.Metrics,
) *ProductHandler {
	return &ProductHandler{
		createHandler: createHandler,
		updateHandler: updateHandler,
		deleteHandler: deleteHandler,
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

// RegisterRoutes wires the product routes into the router
func (h *ProductHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/products", h.metrics.Wrap("/api/products", middleware.Auth(h.ListProducts))).Methods("GET")
	router.HandleFunc("/api/products/{id}", h.metrics.Wrap("/api/products/{id}", middleware.Auth(h.GetProduct))).Methods("GET")

	router.HandleFunc("/api/products", h.metrics.Wrap("/api/products", middleware.Admin(h.CreateProduct))).Methods("POST")
	router.HandleFunc("/api/products/{id}", h.metrics.Wrap("/api/products/{id}", middleware.Admin(h.UpdateProduct))).Methods("PUT")
	router.HandleFunc("/api/products/{id}", h.metrics.Wrap("/api/products/{id}", middleware.Admin(h.DeleteProduct))).Methods("DELETE")
}

// ListProducts handles GET /api/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()

	filter, err := parseProductFilter(values)
	if err != nil {
		respondError(w, err)
		return
	}

	sort, err := listing.ParseSort(values, productListOptions)
	if err != nil {
		respondError(w, err)
		return
	}
	page := listing.ParsePage(values, productListOptions)

	result, err := h.listHandler.Handle(r.Context(), query.ListProductsQuery{
		Filter: filter,
		Page:   page,
		Sort:   sort,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list products")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"items": NewProductViews(result.Items),
			"pagination": map[string]interface{}{
				"total": result.Total,
				"page":  page.Number,
				"limit": page.Limit,
				"pages": result.Pages(),
			},
		},
	})
}

// GetProduct handles GET /api/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	product, err := h.getHandler.Handle(r.Context(), query.GetProductQuery{ID: id})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    NewProductView(*product),
	})
}

// CreateProduct handles POST /api/products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	req, files, err := parseProductRequest(r)
	if err != nil {
		respondError(w, err)
		return
	}

	cmd := command.CreateProductCommand{
		Description: stringValue(req.Description),
		Images:      files,
		ActorID:     actorID(r),
	}
	if req.Name != nil {
		cmd.Name = *req.Name
	}
	if req.Price != nil {
		cmd.Price = float64(*req.Price)
	}
	if req.Stock != nil {
		cmd.Stock = int(*req.Stock)
	}
	if req.MinStock != nil {
		cmd.MinStock = int(*req.MinStock)
	}
	if req.CategoryID != nil {
		cmd.CategoryID = uint(*req.CategoryID)
	}
	cmd.SupplierID = uintPtr(req.SupplierID)
	cmd.CustomerID = uintPtr(req.CustomerID)
	for _, attr := range req.Attributes {
		cmd.Attributes = append(cmd.Attributes, domain.AttributeFields{Key: attr.Key, Value: attr.Value})
	}
	for _, v := range req.Variants {
		cmd.Variants = append(cmd.Variants, variantFields(v))
	}

	product, err := h.createHandler.Handle(r.Context(), cmd)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to create product")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Product created successfully",
		Data:    NewProductView(*product),
	})
}

// UpdateProduct handles PUT /api/products/{id}. The body carries a partial
// parent patch plus action-tagged attribute and variant operations and
// image additions/removals, applied as one unit of work.
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	req, files, err := parseProductRequest(r)
	if err != nil {
		respondError(w, err)
		return
	}

	cmd := command.UpdateProductCommand{
		ID: id,
		Patch: domain.ProductPatch{
			Name:        req.Name,
			Description: req.Description,
			Price:       floatPtr(req.Price),
			Stock:       intPtr(req.Stock),
			MinStock:    intPtr(req.MinStock),
			CategoryID:  uintPtr(req.CategoryID),
			SupplierID:  uintPtr(req.SupplierID),
			CustomerID:  uintPtr(req.CustomerID),
			IsActive:    req.IsActive,
		},
		NewImages: files,
		ActorID:   actorID(r),
	}
	for _, attr := range req.Attributes {
		cmd.AttributeOps = append(cmd.AttributeOps, domain.AttributeOp{
			Action: domain.Action(attr.Action),
			ID:     uint(attr.ID),
			Fields: domain.AttributeFields{Key: attr.Key, Value: attr.Value},
		})
	}
	for _, v := range req.Variants {
		cmd.VariantOps = append(cmd.VariantOps, domain.VariantOp{
			Action: domain.Action(v.Action),
			ID:     uint(v.ID),
			Fields: variantFields(v),
		})
	}
	for _, imageID := range req.RemoveImageIDs {
		cmd.RemoveImageIDs = append(cmd.RemoveImageIDs, uint(imageID))
	}

	product, err := h.updateHandler.Handle(r.Context(), cmd)
	if err != nil {
		logger.Error(r.Context()).Err(err).Uint("product_id", id).Msg("Failed to update product")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Product updated successfully",
		Data:    NewProductView(*product),
	})
}

// DeleteProduct handles DELETE /api/products/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.deleteHandler.Handle(r.Context(), command.DeleteProductCommand{ID: id, ActorID: actorID(r)}); err != nil {
		logger.Error(r.Context()).Err(err).Uint("product_id", id).Msg("Failed to delete product")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Product deleted successfully",
	})
}

// attributeOpPayload is one tagged attribute operation as received from the
// client; a missing _action means create
type attributeOpPayload struct {
	Action string   `json:"_action"`
	ID     FlexUint `json:"ID"`
	Key    string   `json:"Key"`
	Value  string   `json:"Value"`
}

// variantOpPayload is one tagged variant operation
type variantOpPayload struct {
	Action string    `json:"_action"`
	ID     FlexUint  `json:"ID"`
	Name   string    `json:"Name"`
	Type   string    `json:"Type"`
	Price  FlexFloat `json:"Price"`
	Stock  FlexInt   `json:"Stock"`
}

// productRequest is the inbound body for create and update. Field names
// follow the external contract; numerics accept strings because multipart
// forms deliver everything as text.
type productRequest struct {
	Name           *string              `json:"Name"`
	Description    *string              `json:"Description"`
	Price          *FlexFloat           `json:"Price"`
	Stock          *FlexInt             `json:"Stock"`
	MinStock       *FlexInt             `json:"MinStock"`
	CategoryID     *FlexUint            `json:"CategoryID"`
	SupplierID     *FlexUint            `json:"SupplierID"`
	CustomerID     *FlexUint            `json:"CustomerID"`
	IsActive       *bool                `json:"IsActive"`
	Attributes     []attributeOpPayload `json:"Attributes"`
	Variants       []variantOpPayload   `json:"Variants"`
	RemoveImageIDs []FlexUint           `json:"RemoveImageIDs"`
}

// parseProductRequest decodes a JSON or multipart product body plus any
// uploaded image files
func parseProductRequest(r *http.Request) (productRequest, []media.File, error) {
	contentType := r.Header.Get("Content-Type")
	if len(contentType) >= 19 && contentType[:19] == "multipart/form-data" {
		return parseMultipartProductRequest(r)
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return productRequest{}, nil, apperr.Wrap(apperr.KindValidation, "invalid request body", err)
	}
	return req, nil, nil
}

func parseMultipartProductRequest(r *http.Request) (productRequest, []media.File, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return productRequest{}, nil, apperr.Wrap(apperr.KindValidation, "invalid multipart body", err)
	}

	var req productRequest
	formString := func(key string) *string {
		if vs, ok := r.MultipartForm.Value[key]; ok && len(vs) > 0 {
			v := vs[0]
			return &v
		}
		return nil
	}

	req.Name = formString("Name")
	req.Description = formString("Description")

	var err error
	if req.Price, err = formFloat(formString("Price"), "Price"); err != nil {
		return productRequest{}, nil, err
	}
	if req.Stock, err = formInt(formString("Stock"), "Stock"); err != nil {
		return productRequest{}, nil, err
	}
	if req.MinStock, err = formInt(formString("MinStock"), "MinStock"); err != nil {
		return productRequest{}, nil, err
	}
	if req.CategoryID, err = formUint(formString("CategoryID"), "CategoryID"); err != nil {
		return productRequest{}, nil, err
	}
	if req.SupplierID, err = formUint(formString("SupplierID"), "SupplierID"); err != nil {
		return productRequest{}, nil, err
	}
	if req.CustomerID, err = formUint(formString("CustomerID"), "CustomerID"); err != nil {
		return productRequest{}, nil, err
	}
	if raw := formString("IsActive"); raw != nil {
		active := *raw == "true" || *raw == "1"
		req.IsActive = &active
	}

	// Child collections arrive as JSON-encoded form fields
	if raw := formString("Attributes"); raw != nil && *raw != "" {
		if err := json.Unmarshal([]byte(*raw), &req.Attributes); err != nil {
			return productRequest{}, nil, apperr.Wrap(apperr.KindValidation, "invalid Attributes field", err)
		}
	}
	if raw := formString("Variants"); raw != nil && *raw != "" {
		if err := json.Unmarshal([]byte(*raw), &req.Variants); err != nil {
			return productRequest{}, nil, apperr.Wrap(apperr.KindValidation, "invalid Variants field", err)
		}
	}
	if raw := formString("RemoveImageIDs"); raw != nil && *raw != "" {
		if err := json.Unmarshal([]byte(*raw), &req.RemoveImageIDs); err != nil {
			return productRequest{}, nil, apperr.Wrap(apperr.KindValidation, "invalid RemoveImageIDs field", err)
		}
	}

	var files []media.File
	for _, header := range r.MultipartForm.File["Images"] {
		file, err := header.Open()
		if err != nil {
			return productRequest{}, nil, apperr.Wrap(apperr.KindValidation, "failed to read uploaded file", err)
		}
		content, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return productRequest{}, nil, apperr.Wrap(apperr.KindValidation, "failed to read uploaded file", err)
		}
		files = append(files, media.File{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Content:     content,
		})
	}

	return req, files, nil
}

func formFloat(raw *string, field string) (*FlexFloat, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(*raw, 64)
	if err != nil {
		return nil, apperr.Validation("invalid numeric value %q for %s", *raw, field)
	}
	f := FlexFloat(v)
	return &f, nil
}

func formInt(raw *string, field string) (*FlexInt, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(*raw, 10, 64)
	if err != nil {
		return nil, apperr.Validation("invalid numeric value %q for %s", *raw, field)
	}
	i := FlexInt(v)
	return &i, nil
}

func formUint(raw *string, field string) (*FlexUint, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(*raw, 10, 32)
	if err != nil {
		return nil, apperr.Validation("invalid numeric value %q for %s", *raw, field)
	}
	u := FlexUint(v)
	return &u, nil
}

func variantFields(v variantOpPayload) domain.VariantFields {
	return domain.VariantFields{
		Name:  v.Name,
		Type:  v.Type,
		Price: float64(v.Price),
		Stock: int(v.Stock),
	}
}

// parseProductFilter builds the listing filter from the query string. The
// same filter feeds both the page query and the total count so the two can
// never disagree.
func parseProductFilter(values url.Values) (domain.ProductFilter, error) {
	filter := domain.ProductFilter{
		Search: values.Get("search"),
	}

	var err error
	if filter.CategoryID, err = listing.ParseUint(values, "category"); err != nil {
		return domain.ProductFilter{}, err
	}
	if filter.SupplierID, err = listing.ParseUint(values, "supplier"); err != nil {
		return domain.ProductFilter{}, err
	}
	filter.InStock = listing.ParseBool(values, "inStock")
	if filter.CreatedFrom, filter.CreatedTo, err = listing.ParseDateRange(values); err != nil {
		return domain.ProductFilter{}, err
	}

	switch status := values.Get("status"); status {
	case "", "active", "inactive":
		filter.Status = status
	default:
		return domain.ProductFilter{}, apperr.Validation("invalid status %q", status)
	}

	return filter, nil
}

func pathID(r *http.Request) (uint, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, apperr.Validation("invalid product id %q", raw)
	}
	return uint(id), nil
}

func actorID(r *http.Request) uint {
	if id, ok := r.Context().Value(middleware.UserIDKey).(uint); ok {
		return id
	}
	return 0
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func floatPtr(f *FlexFloat) *float64 {
	if f == nil {
		return nil
	}
	v := float64(*f)
	return &v
}

func intPtr(i *FlexInt) *int {
	if i == nil {
		return nil
	}
	v := int(*i)
	return &v
}

func uintPtr(u *FlexUint) *uint {
	if u == nil {
		return nil
	}
	v := uint(*u)
	return &v
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// respondError maps an application error to its HTTP status and envelope
func respondError(w http.ResponseWriter, err error) {
	respondJSON(w, apperr.HTTPStatus(err), Response{
		Success: false,
		Message: apperr.Message(err),
	})
}
