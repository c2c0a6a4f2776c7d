package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindHTTPStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindConflict, http.StatusBadRequest},
		{KindNotAuthenticated, http.StatusUnauthorized},
		{KindNotFound, http.StatusNotFound},
		{KindUnexpected, http.StatusInternalServerError},
		{Kind("other"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.HTTPStatus())
		})
	}
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("failed to load recipe: %w", NotFound("Recipe not found"))
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, KindUnexpected, KindOf(errors.New("boom")))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := Unexpected("failed to save", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestToResponse(t *testing.T) {
	status, body := ToResponse(Validation("title is required"))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Validation failed", body.Message)
	assert.Equal(t, []string{"title is required"}, body.Errors)

	status, body = ToResponse(Unexpected("db exploded", errors.New("secret detail")))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, UnexpectedMessage, body.Message)
	assert.Empty(t, body.Errors)

	status, body = ToResponse(errors.New("plain"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, UnexpectedMessage, body.Message)

	status, body = ToResponse(NotAuthenticated(""))
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "User is not authenticated", body.Message)
}
