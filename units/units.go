// Package units converts activity distances between miles and kilometers.
//
// Every stored distance is in the canonical unit for its activity type:
// miles for driving, kilometers for everything else.
// Values are converted to an account's preferred unit only for display,
// and converted back to canonical before they are stored.
package units

import (
	"fmt"

	"github.com/xy-planning-network/ridewitus"
)

// MilesToKm is the number of kilometers in one mile.
const MilesToKm = 1.60934

// Convert converts value from one unit to another.
// Unknown units pass value through unchanged.
func Convert(value float64, from, to ridewitus.Unit) float64 {
	switch {
	case from == to:
		return value
	case from == ridewitus.Miles && to == ridewitus.Kilometers:
		return value * MilesToKm
	case from == ridewitus.Kilometers && to == ridewitus.Miles:
		return value / MilesToKm
	default:
		return value
	}
}

// Canonical returns the unit distances of type t are stored in.
func Canonical(t ridewitus.ActivityType) ridewitus.Unit {
	if t == ridewitus.Driving {
		return ridewitus.Miles
	}

	return ridewitus.Kilometers
}

// ToCanonical converts value, entered in display, into the canonical unit for t.
func ToCanonical(value float64, display ridewitus.Unit, t ridewitus.ActivityType) float64 {
	return Convert(value, display, Canonical(t))
}

// ToDisplay converts value, stored in the canonical unit for t, into display.
func ToDisplay(value float64, display ridewitus.Unit, t ridewitus.ActivityType) float64 {
	return Convert(value, Canonical(t), display)
}

// Display copies records, converting each distance into display.
// records is left untouched.
func Display(records []ridewitus.Activity, display ridewitus.Unit) []ridewitus.Activity {
	out := make([]ridewitus.Activity, len(records))
	for i, r := range records {
		r.Distance = ToDisplay(r.Distance, display, r.Type)
		out[i] = r
	}

	return out
}

// Format renders distance to one decimal place followed by unit.
func Format(distance float64, unit ridewitus.Unit) string {
	return fmt.Sprintf("%.1f %s", distance, unit)
}
