package ridewitus_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/ridewitus"
)

func TestKeyString(t *testing.T) {
	require.Equal(t, "ridewitus context key: RequestIDKey", ridewitus.RequestIDKey.String())
}

func TestCurrentAccount(t *testing.T) {
	// Arrange
	ctx := context.Background()

	// Act
	_, ok := ridewitus.CurrentAccount(ctx)

	// Assert
	require.False(t, ok)

	// Arrange
	ctx = ridewitus.NewAccountContext(ctx, nil)

	// Act
	_, ok = ridewitus.CurrentAccount(ctx)

	// Assert
	require.False(t, ok)

	// Arrange
	expected := &ridewitus.Account{ID: uuid.New(), Email: "a@example.com"}
	ctx = ridewitus.NewAccountContext(context.Background(), expected)

	// Act
	actual, ok := ridewitus.CurrentAccount(ctx)

	// Assert
	require.True(t, ok)
	require.Equal(t, expected, actual)
}

func TestRequestID(t *testing.T) {
	require.Empty(t, ridewitus.RequestID(context.Background()))

	ctx := ridewitus.NewRequestIDContext(context.Background())
	id := ridewitus.RequestID(ctx)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
}
