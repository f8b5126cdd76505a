package resp

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/ridewitus"
	"github.com/xy-planning-network/ridewitus/logger"
)

func TestResponderWithEnv(t *testing.T) {
	d := NewResponder(WithEnv(ridewitus.Development))
	require.True(t, d.env.IsDevelopment())
}

func TestResponderWithLogger(t *testing.T) {
	// Arrange
	b := new(bytes.Buffer)
	l := logger.New(slog.New(slog.NewTextHandler(b, nil)))

	// Act
	d := NewResponder(WithLogger(l))
	d.logger.Info("hello", nil)

	// Assert
	require.Equal(t, l, d.logger)
	require.Contains(t, b.String(), "hello")
}

func TestResponderWithRootUrl(t *testing.T) {
	tcs := []struct {
		name     string
		url      string
		expected string
	}{
		{"Zero-Value", "", "http://localhost:3000"},
		{"Not-A-Url", "nope", "http://localhost:3000"},
		{"Url", "https://ridewit.us", "https://ridewit.us"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			d := NewResponder(WithRootUrl(tc.url))
			require.Equal(t, tc.expected, d.rootUrl.String())
		})
	}
}

func TestNewResponderDefaults(t *testing.T) {
	d := NewResponder()
	require.NotNil(t, d.logger)
	require.Equal(t, "http://localhost:3000", d.rootUrl.String())
}
