package http

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/connectchain/admin-api/internal/apperr"
)

func TestParseProductRequest_JSON(t *testing.T) {
	body := `{
		"Name": "Steel Widget",
		"Price": "19.99",
		"Stock": 3,
		"CategoryID": "2",
		"Attributes": [
			{"_action": "create", "Key": "Color", "Value": "Red"},
			{"_action": "delete", "ID": 7}
		],
		"Variants": [
			{"_action": "update", "ID": "3", "Name": "Large", "Type": "size", "Price": "24.50", "Stock": "5"}
		],
		"RemoveImageIDs": [10, "11"]
	}`

	r := httptest.NewRequest("PUT", "/api/products/7", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")

	req, files, err := parseProductRequest(r)
	require.NoError(t, err)
	assert.Empty(t, files)

	require.NotNil(t, req.Name)
	assert.Equal(t, "Steel Widget", *req.Name)
	require.NotNil(t, req.Price)
	assert.Equal(t, 19.99, float64(*req.Price))
	require.NotNil(t, req.Stock)
	assert.Equal(t, 3, int(*req.Stock))
	require.NotNil(t, req.CategoryID)
	assert.Equal(t, uint(2), uint(*req.CategoryID))
	assert.Nil(t, req.SupplierID)

	require.Len(t, req.Attributes, 2)
	assert.Equal(t, "create", req.Attributes[0].Action)
	assert.Equal(t, "delete", req.Attributes[1].Action)
	assert.Equal(t, uint(7), uint(req.Attributes[1].ID))

	require.Len(t, req.Variants, 1)
	assert.Equal(t, "update", req.Variants[0].Action)
	assert.Equal(t, 24.5, float64(req.Variants[0].Price))

	require.Len(t, req.RemoveImageIDs, 2)
	assert.Equal(t, uint(10), uint(req.RemoveImageIDs[0]))
	assert.Equal(t, uint(11), uint(req.RemoveImageIDs[1]))
}

func TestParseProductRequest_BadNumericValue(t *testing.T) {
	r := httptest.NewRequest("PUT", "/api/products/7", strings.NewReader(`{"Price": "cheap"}`))
	r.Header.Set("Content-Type", "application/json")

	_, _, err := parseProductRequest(r)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestParseProductRequest_Multipart(t *testing.T) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("Name", "Steel Widget"))
	require.NoError(t, w.WriteField("Price", "19.99"))
	require.NoError(t, w.WriteField("CategoryID", "2"))
	require.NoError(t, w.WriteField("IsActive", "true"))
	require.NoError(t, w.WriteField("Attributes", `[{"_action":"create","Key":"Color","Value":"Red"}]`))

	fw, err := w.CreateFormFile("Images", "a.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r := httptest.NewRequest("POST", "/api/products", &buf)
	r.Header.Set("Content-Type", w.FormDataContentType())

	req, files, err := parseProductRequest(r)
	require.NoError(t, err)

	require.NotNil(t, req.Name)
	assert.Equal(t, "Steel Widget", *req.Name)
	require.NotNil(t, req.Price)
	assert.Equal(t, 19.99, float64(*req.Price))
	require.NotNil(t, req.IsActive)
	assert.True(t, *req.IsActive)
	require.Len(t, req.Attributes, 1)
	assert.Equal(t, "Color", req.Attributes[0].Key)

	require.Len(t, files, 1)
	assert.Equal(t, "a.png", files[0].Name)
	assert.Equal(t, []byte("png-bytes"), files[0].Content)
}

func TestParseProductRequest_MultipartBadNumeric(t *testing.T) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("Stock", "plenty"))
	require.NoError(t, w.Close())

	r := httptest.NewRequest("POST", "/api/products", &buf)
	r.Header.Set("Content-Type", w.FormDataContentType())

	_, _, err := parseProductRequest(r)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestParseProductFilter(t *testing.T) {
	values, err := url.ParseQuery("search=widget&category=2&inStock=true&status=active&startDate=2026-01-01&endDate=2026-01-31")
	require.NoError(t, err)

	filter, err := parseProductFilter(values)
	require.NoError(t, err)

	assert.Equal(t, "widget", filter.Search)
	require.NotNil(t, filter.CategoryID)
	assert.Equal(t, uint(2), *filter.CategoryID)
	require.NotNil(t, filter.InStock)
	assert.True(t, *filter.InStock)
	assert.Equal(t, "active", filter.Status)
	require.NotNil(t, filter.CreatedFrom)
	require.NotNil(t, filter.CreatedTo)
}

func TestParseProductFilter_BadStatus(t *testing.T) {
	values, _ := url.ParseQuery("status=sold_out")
	_, err := parseProductFilter(values)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
