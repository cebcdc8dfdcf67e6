package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid interval", ErrInvalidInterval, http.StatusBadRequest},
		{"wrapped not found", NotFound("member %d", 7), http.StatusNotFound},
		{"no capacity", fmt.Errorf("%w: Suíte Pequena", ErrNoCapacity), http.StatusConflict},
		{"storage", Storage(errors.New("connection reset")), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, StatusOf(tt.err))
		})
	}
}

func TestStorage_KeepsDriverError(t *testing.T) {
	driverErr := &pq.Error{Code: "40001"}
	err := Storage(driverErr)

	assert.True(t, errors.Is(err, ErrStorage))

	var pqErr *pq.Error
	assert.True(t, errors.As(err, &pqErr))
	assert.Equal(t, pq.ErrorCode("40001"), pqErr.Code)
}

func TestStorage_DoesNotRewrapDomainErrors(t *testing.T) {
	err := Storage(NotFound("booking %d", 3))

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrStorage))
	assert.Nil(t, Storage(nil))
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "not found: member 9", PublicMessage(NotFound("member %d", 9)))
	assert.Equal(t, "storage failure", PublicMessage(Storage(errors.New("password authentication failed"))))
	assert.Equal(t, "storage failure", PublicMessage(errors.New("unexpected")))
}
