package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotFoundError_Is(t *testing.T) {
	err := fmt.Errorf("assemble: %w", NewNotFound("invoice", "inv_1"))

	assert.True(t, IsNotFound(err))
	assert.Equal(t, `assemble: invoice "inv_1" not found`, err.Error())
	assert.False(t, IsNotFound(stderrors.New("boom")))
}

func TestWriteDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", NewNotFound("proposal", "p1"), http.StatusNotFound, ErrCodeNotFound},
		{"validation", &ValidationError{Fields: map[string]string{"amount": "min"}}, http.StatusBadRequest, ErrCodeInvalidInput},
		{"upstream", fmt.Errorf("%w: generator returned 503", ErrUpstream), http.StatusBadGateway, ErrCodeUpstream},
		{"other", stderrors.New("db down"), http.StatusInternalServerError, ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			WriteDomainError(rr, tt.err)

			assert.Equal(t, tt.wantStatus, rr.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
		})
	}
}
