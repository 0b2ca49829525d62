package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetAppError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"not found", NewNotFoundError("Customer"), http.StatusNotFound, "Customer not found"},
		{"wrapped conflict", fmt.Errorf("create: %w", NewConflictError("SKU already exists")), http.StatusConflict, "SKU already exists"},
		{"transition", NewInvalidTransitionError("Transfer", "completed", "pending"), http.StatusConflict, "Transfer cannot move from completed to pending"},
		{"plain error hides internals", errors.New("pq: relation does not exist"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetAppError(tt.err)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.wantMsg, got.Message)
		})
	}
}

func TestAppErrorIsMatchesByCode(t *testing.T) {
	assert.True(t, errors.Is(NewNotFoundError("Warehouse"), ErrNotFound))
	assert.True(t, errors.Is(NewInsufficientStockError("Laptop", 1, 2), ErrConflict))
	assert.False(t, errors.Is(NewNotFoundError("Warehouse"), ErrConflict))
}

func TestNewFieldError(t *testing.T) {
	err := NewFieldError("amount", "must be greater than zero")
	assert.Equal(t, http.StatusUnprocessableEntity, err.Code)
	assert.Equal(t, []FieldError{{Field: "amount", Message: "must be greater than zero"}}, err.Errors)
}
