package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_HasCode(t *testing.T) {
	err := New(CodeConflict, "active version moved")
	assert.True(t, HasCode(err, CodeConflict))
	assert.False(t, HasCode(err, CodeNotFound))
	assert.False(t, HasCode(nil, CodeConflict))
	assert.False(t, HasCode(errors.New("plain"), CodeConflict))
}

func Test_HasCode_Wrapped(t *testing.T) {
	cause := errors.New("row not found")
	err := Wrap(cause, CodeNotFound, "control SWIFT-2.8")

	assert.True(t, HasCode(err, CodeNotFound))
	require.ErrorIs(t, err, cause)

	// A further fmt wrap keeps the code reachable.
	outer := fmt.Errorf("loading control: %w", err)
	assert.True(t, HasCode(outer, CodeNotFound))
}

func Test_CodeOf(t *testing.T) {
	assert.Equal(t, CodeValidation, CodeOf(New(CodeValidation, "empty logic text")))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
}

func Test_ToHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeBadRequest, http.StatusBadRequest},
		{CodeEmptyScope, http.StatusBadRequest},
		{CodeInvariantViolation, http.StatusBadRequest},
		{CodeNotFound, http.StatusNotFound},
		{CodeConflict, http.StatusConflict},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeInternal, http.StatusInternalServerError},
		{Code("unknown"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToHTTPStatus(tt.code), "code %s", tt.code)
	}
}

func Test_Error_Message(t *testing.T) {
	err := Newf(CodeConflict, "expected %s, found %s", "v1.2", "v1.3")
	assert.Equal(t, "conflict: expected v1.2, found v1.3", err.Error())

	wrapped := Wrapf(errors.New("boom"), CodeInternal, "persist pack %s", "PACK-1")
	assert.Equal(t, "internal_error: persist pack PACK-1: boom", wrapped.Error())
}
