package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{NotFound("product 7 not found"), http.StatusNotFound},
		{Validation("name is required"), http.StatusBadRequest},
		{Conflict("sku taken"), http.StatusConflict},
		{StateConflict("already active"), http.StatusConflict},
		{E(KindUpload, "upload failed"), http.StatusBadGateway},
		{errors.New("driver: bad connection"), http.StatusInternalServerError},
		{nil, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err))
	}
}

func TestKindOfUnwraps(t *testing.T) {
	cause := NotFound("category 3 not found")
	wrapped := fmt.Errorf("checking references: %w", cause)
	assert.Equal(t, KindNotFound, KindOf(wrapped))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "product 7 not found", Message(NotFound("product %d not found", 7)))
	// Unclassified errors never leak internals to the client
	assert.Equal(t, "internal server error", Message(errors.New("pq: connection refused")))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("timeout")
	err := Wrap(KindUpload, "failed to upload image", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, KindUpload, KindOf(err))
	assert.Equal(t, "failed to upload image", Message(err))
}
