package units_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/ridewitus"
	"github.com/xy-planning-network/ridewitus/units"
)

func TestConvert(t *testing.T) {
	for _, tc := range []struct {
		name     string
		value    float64
		from, to ridewitus.Unit
		expected float64
	}{
		{"identity-miles", 3, ridewitus.Miles, ridewitus.Miles, 3},
		{"identity-km", 3, ridewitus.Kilometers, ridewitus.Kilometers, 3},
		{"miles-to-km", 10, ridewitus.Miles, ridewitus.Kilometers, 16.0934},
		{"km-to-miles", 16.0934, ridewitus.Kilometers, ridewitus.Miles, 10},
		{"zero", 0, ridewitus.Miles, ridewitus.Kilometers, 0},
		{"unknown", 5, ridewitus.Unit("furlongs"), ridewitus.Miles, 5},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.InDelta(t, tc.expected, units.Convert(tc.value, tc.from, tc.to), 1e-9)
		})
	}
}

func TestConvertRoundTrip(t *testing.T) {
	for _, v := range []float64{0, 0.1, 1, 5.5, 26.2, 100, 12345.678} {
		there := units.Convert(v, ridewitus.Miles, ridewitus.Kilometers)
		back := units.Convert(there, ridewitus.Kilometers, ridewitus.Miles)
		require.InDelta(t, v, back, 1e-9)

		there = units.Convert(v, ridewitus.Kilometers, ridewitus.Miles)
		back = units.Convert(there, ridewitus.Miles, ridewitus.Kilometers)
		require.InDelta(t, v, back, 1e-9)
	}
}

func TestCanonical(t *testing.T) {
	require.Equal(t, ridewitus.Miles, units.Canonical(ridewitus.Driving))
	require.Equal(t, ridewitus.Kilometers, units.Canonical(ridewitus.Walking))
	require.Equal(t, ridewitus.Kilometers, units.Canonical(ridewitus.Running))
	require.Equal(t, ridewitus.Kilometers, units.Canonical(ridewitus.Biking))
}

func TestToCanonicalToDisplay(t *testing.T) {
	for _, typ := range ridewitus.ActivityTypes {
		for _, display := range []ridewitus.Unit{ridewitus.Miles, ridewitus.Kilometers} {
			t.Run(typ.String()+"-"+display.String(), func(t *testing.T) {
				// Arrange
				entered := 12.5

				// Act
				stored := units.ToCanonical(entered, display, typ)
				shown := units.ToDisplay(stored, display, typ)

				// Assert
				require.InDelta(t, entered, shown, 1e-9)
				if display == units.Canonical(typ) {
					require.Equal(t, entered, stored)
				}
			})
		}
	}

	require.InDelta(t, 16.0934, units.ToCanonical(10, ridewitus.Miles, ridewitus.Running), 1e-9)
	require.InDelta(t, 10, units.ToDisplay(16.0934, ridewitus.Miles, ridewitus.Running), 1e-9)
	require.InDelta(t, 16.0934, units.ToDisplay(10, ridewitus.Kilometers, ridewitus.Driving), 1e-9)
}

func TestDisplay(t *testing.T) {
	// Arrange
	records := []ridewitus.Activity{
		{ID: "a", Type: ridewitus.Running, Distance: 16.0934},
		{ID: "b", Type: ridewitus.Driving, Distance: 10},
	}

	// Act
	actual := units.Display(records, ridewitus.Miles)

	// Assert
	require.InDelta(t, 10, actual[0].Distance, 1e-9)
	require.InDelta(t, 10, actual[1].Distance, 1e-9)
	require.Equal(t, 16.0934, records[0].Distance)
}

func TestFormat(t *testing.T) {
	require.Equal(t, "5.0 miles", units.Format(5, ridewitus.Miles))
	require.Equal(t, "3.2 km", units.Format(3.24, ridewitus.Kilometers))
}
