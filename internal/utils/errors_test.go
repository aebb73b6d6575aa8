package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	assert.True(t, IsNotFoundError(fmt.Errorf("get: %w", NewAPIError(http.StatusNotFound, "Case not found"))))
	assert.False(t, IsNotFoundError(NewAPIError(http.StatusBadRequest, "bad")))
}

func TestAuthError_UnwrapsTransportError(t *testing.T) {
	cause := errors.New("connection refused")
	err := &AuthError{Message: "Login failed", Err: cause}
	assert.Equal(t, "Login failed", err.Error())
	assert.ErrorIs(t, err, cause)
}
