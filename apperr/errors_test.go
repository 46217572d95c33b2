package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, BadRequest("meal required").StatusCode())
	assert.Equal(t, http.StatusNotFound, NotFound("Recipe not found").StatusCode())
	assert.Equal(t, http.StatusInternalServerError, Upstream(errors.New("dial tcp")).StatusCode())
	assert.Equal(t, http.StatusUnsupportedMediaType, New(CodeUnsupportedType, "gif").StatusCode())
	assert.Equal(t, http.StatusInternalServerError, New(CodeInternal, "boom").StatusCode())
}

func TestFromKeepsWrappedAppError(t *testing.T) {
	inner := NotFound("Recipe not found")
	err := fmt.Errorf("render page: %w", inner)

	assert.Same(t, inner, From(err))
}

func TestFromClassifiesPlainErrorsAsInternal(t *testing.T) {
	cause := errors.New("disk on fire")
	got := From(cause)

	assert.Equal(t, CodeInternal, got.Code)
	assert.ErrorIs(t, got, cause)
	assert.Equal(t, "INTERNAL_ERROR: Internal server error: disk on fire", got.Error())
}
