// Package stats aggregates activities for charts and summaries.
//
// Every function is pure: inputs are never modified and no function returns an error.
package stats

import (
	"slices"
	"time"

	"github.com/xy-planning-network/ridewitus"
)

// DayLayout formats the calendar day keys used by GroupByDay.
const DayLayout = "2006-01-02"

// A DailyTotal sums the activities logged on one calendar day.
type DailyTotal struct {
	Day             string  `json:"day"`
	Distance        float64 `json:"distance"`
	Duration        float64 `json:"duration"`
	MaintenanceCost float64 `json:"maintenanceCost"`
}

// A Summary is the headline numbers for a set of activities.
type Summary struct {
	Count                int          `json:"count"`
	TotalDistance        float64      `json:"totalDistance"`
	TotalDuration        float64      `json:"totalDuration"`
	TotalMaintenanceCost float64      `json:"totalMaintenanceCost"`
	AverageSpeed         float64      `json:"averageSpeed"`
	Daily                []DailyTotal `json:"daily"`
}

// GroupByDay buckets records by calendar day.
//
// The day is read in the location each record's Date carries;
// no conversion between time zones happens.
func GroupByDay(records []ridewitus.Activity) map[string][]ridewitus.Activity {
	grouped := make(map[string][]ridewitus.Activity)
	for _, r := range records {
		day := r.Date.Format(DayLayout)
		grouped[day] = append(grouped[day], r)
	}

	return grouped
}

// DailyTotals sums each day in grouped, ordered by day ascending.
func DailyTotals(grouped map[string][]ridewitus.Activity) []DailyTotal {
	totals := make([]DailyTotal, 0, len(grouped))
	for day, records := range grouped {
		totals = append(totals, DailyTotal{
			Day:             day,
			Distance:        TotalDistance(records),
			Duration:        TotalDuration(records),
			MaintenanceCost: TotalMaintenanceCost(records),
		})
	}

	slices.SortFunc(totals, func(a, b DailyTotal) int {
		switch {
		case a.Day < b.Day:
			return -1
		case a.Day > b.Day:
			return 1
		default:
			return 0
		}
	})

	return totals
}

// TotalDistance sums the distance of records.
func TotalDistance(records []ridewitus.Activity) float64 {
	var sum float64
	for _, r := range records {
		sum += r.Distance
	}

	return sum
}

// TotalDuration sums the duration of records, in minutes.
func TotalDuration(records []ridewitus.Activity) float64 {
	var sum float64
	for _, r := range records {
		sum += r.Duration
	}

	return sum
}

// TotalMaintenanceCost sums the maintenance cost of records.
// An absent cost counts as 0.
func TotalMaintenanceCost(records []ridewitus.Activity) float64 {
	var sum float64
	for _, r := range records {
		sum += r.Cost()
	}

	return sum
}

// AverageSpeed is total distance per hour of total duration.
// It is 0 when records is empty or their durations sum to 0.
func AverageSpeed(records []ridewitus.Activity) float64 {
	minutes := TotalDuration(records)
	if len(records) == 0 || minutes == 0 {
		return 0
	}

	return TotalDistance(records) / (minutes / 60)
}

// FilterByType keeps records whose type is one of types.
// With no types, no record is kept.
func FilterByType(records []ridewitus.Activity, types ...ridewitus.ActivityType) []ridewitus.Activity {
	out := make([]ridewitus.Activity, 0, len(records))
	for _, r := range records {
		if slices.Contains(types, r.Type) {
			out = append(out, r)
		}
	}

	return out
}

// FilterByTimeRange keeps records dated on or after days before now.
// A non-positive days keeps every record.
func FilterByTimeRange(records []ridewitus.Activity, days int, now time.Time) []ridewitus.Activity {
	if days <= 0 {
		return slices.Clone(records)
	}

	cutoff := Cutoff(days, now)
	out := make([]ridewitus.Activity, 0, len(records))
	for _, r := range records {
		if !r.Date.Before(cutoff) {
			out = append(out, r)
		}
	}

	return out
}

// Cutoff is the earliest instant FilterByTimeRange keeps.
func Cutoff(days int, now time.Time) time.Time { return now.AddDate(0, 0, -days) }

// Summarize computes every headline number for records at once.
func Summarize(records []ridewitus.Activity) Summary {
	return Summary{
		Count:                len(records),
		TotalDistance:        TotalDistance(records),
		TotalDuration:        TotalDuration(records),
		TotalMaintenanceCost: TotalMaintenanceCost(records),
		AverageSpeed:         AverageSpeed(records),
		Daily:                DailyTotals(GroupByDay(records)),
	}
}
