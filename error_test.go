package ridewitus_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/ridewitus"
)

func TestCodedError(t *testing.T) {
	// Arrange
	err := ridewitus.NewCodedError(ridewitus.CodeEmailInUse, ridewitus.ErrExists, "email in use")
	wrapped := fmt.Errorf("updating account: %w", err)

	// Assert
	require.Equal(t, "email in use", err.Error())
	require.ErrorIs(t, wrapped, ridewitus.ErrExists)
	require.ErrorIs(t, wrapped, ridewitus.NewCodedError(ridewitus.CodeEmailInUse, ridewitus.ErrNotValid, "other message"))
	require.NotErrorIs(t, wrapped, ridewitus.NewCodedError(ridewitus.CodeUserExists, ridewitus.ErrExists, "email in use"))
}

func TestCodeOf(t *testing.T) {
	for _, tc := range []struct {
		name     string
		err      error
		expected ridewitus.ErrorCode
	}{
		{"coded", ridewitus.NewCodedError(ridewitus.CodeWeakPassword, ridewitus.ErrNotValid, ""), ridewitus.CodeWeakPassword},
		{"wrapped-coded", fmt.Errorf("x: %w", ridewitus.NewCodedError(ridewitus.CodeUserNotFound, ridewitus.ErrNotFound, "")), ridewitus.CodeUserNotFound},
		{"not-authenticated", ridewitus.ErrNotAuthenticated, ridewitus.CodeNotAuthenticated},
		{"forbidden", ridewitus.ErrForbidden, ridewitus.CodeUnauthorized},
		{"not-found", fmt.Errorf("%w: activity", ridewitus.ErrNotFound), ridewitus.CodeNotFound},
		{"not-valid", ridewitus.ErrNotValid, ridewitus.CodeInvalidInput},
		{"missing-data", ridewitus.ErrMissingData, ridewitus.CodeInvalidInput},
		{"other", errors.New("boom"), ridewitus.CodeUnknown},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, ridewitus.CodeOf(tc.err))
		})
	}
}

func TestStatusOf(t *testing.T) {
	for _, tc := range []struct {
		err      error
		expected int
	}{
		{nil, http.StatusOK},
		{ridewitus.ErrNotValid, http.StatusBadRequest},
		{ridewitus.ErrMissingData, http.StatusBadRequest},
		{ridewitus.ErrNotAuthenticated, http.StatusUnauthorized},
		{ridewitus.ErrForbidden, http.StatusForbidden},
		{ridewitus.ErrNotFound, http.StatusNotFound},
		{ridewitus.ErrExists, http.StatusConflict},
		{ridewitus.ErrUnexpected, http.StatusInternalServerError},
		{ridewitus.NewCodedError(ridewitus.CodeCannotDeleteSelf, ridewitus.ErrNotValid, ""), http.StatusBadRequest},
	} {
		require.Equal(t, tc.expected, ridewitus.StatusOf(tc.err), "%v", tc.err)
	}
}
