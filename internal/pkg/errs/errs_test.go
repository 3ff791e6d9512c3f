package errs

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewError_KnownCodes(t *testing.T) {
	req := require.New(t)

	cases := []struct {
		code   int
		status int
	}{
		{ErrInvalidParams, http.StatusBadRequest},
		{ErrRateLimitExceeded, http.StatusTooManyRequests},
		{ErrRoomSlugExists, http.StatusConflict},
		{ErrRoomNotFound, http.StatusNotFound},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrUserAlreadyExists, http.StatusConflict},
		{ErrUnauthorized, http.StatusForbidden},
		{ErrForbidden, http.StatusForbidden},
		{ErrUnknown, http.StatusInternalServerError},
		{ErrStorage, http.StatusServiceUnavailable},
	}

	for _, c := range cases {
		customErr := NewError(c.code)
		req.Equal(c.code, customErr.Code)
		req.Equal(c.status, customErr.Status)
		req.NotEmpty(customErr.Message)
	}
}

func TestNewError_UnknownCodeFallsBack(t *testing.T) {
	req := require.New(t)

	customErr := NewError(99999)

	req.Equal(ErrUnknown, customErr.Code)
}

func TestCustomError_Error(t *testing.T) {
	req := require.New(t)

	customErr := NewError(ErrRoomNotFound)

	req.Contains(customErr.Error(), "Error Code")
}
