package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapToHTTP(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{"validation", Validation("bad date"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"authentication", Authentication("no token"), http.StatusUnauthorized, "UNAUTHENTICATED"},
		{"authorization", Authorization("not the owner"), http.StatusForbidden, "FORBIDDEN"},
		{"not found", NotFound("project not found"), http.StatusNotFound, "NOT_FOUND"},
		{"conflict", Conflict("email already registered"), http.StatusConflict, "CONFLICT"},
		{"internal", Internal(errors.New("connection refused")), http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"unclassified error", errors.New("surprise"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := MapToHTTP(tt.err)
			assert.Equal(t, tt.expectedStatus, status)
			assert.Equal(t, tt.expectedCode, body.Code)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestInternal_HidesCause(t *testing.T) {
	cause := errors.New("pq: connection refused")
	err := Internal(cause)

	_, body := MapToHTTP(err)
	assert.Equal(t, "internal server error", body.Error)
	assert.NotContains(t, body.Error, "connection refused")

	// the cause stays reachable for logging
	assert.ErrorIs(t, err, cause)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindConflict, KindOf(Conflict("dup")))
	assert.Equal(t, KindNotFound, KindOf(fmt.Errorf("wrapped: %w", NotFound("gone"))))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
}
