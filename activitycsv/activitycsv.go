// Package activitycsv reads and writes activities as CSV.
//
// A file starts with a header row naming its columns.
// ID, Date, Type, Distance and Duration are required;
// Maintenance Cost and Notes are optional.
// Columns may appear in any order.
package activitycsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xy-planning-network/ridewitus"
)

const (
	HeaderID              = "ID"
	HeaderDate            = "Date"
	HeaderType            = "Type"
	HeaderDistance        = "Distance"
	HeaderDuration        = "Duration"
	HeaderMaintenanceCost = "Maintenance Cost"
	HeaderNotes           = "Notes"
)

// Headers is the header row Encode writes.
var Headers = []string{
	HeaderID,
	HeaderDate,
	HeaderType,
	HeaderDistance,
	HeaderDuration,
	HeaderMaintenanceCost,
	HeaderNotes,
}

var required = []string{HeaderID, HeaderDate, HeaderType, HeaderDistance, HeaderDuration}

// dateLayouts are tried in order when decoding the Date column.
var dateLayouts = []string{time.RFC3339, "2006-01-02", "1/2/2006"}

// ErrNoActivities is returned by Decode when no row describes a valid activity.
var ErrNoActivities = fmt.Errorf("%w: no valid activities", ridewitus.ErrNotValid)

// Encode writes records to w, header row first.
func Encode(w io.Writer, records []ridewitus.Activity) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Headers); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.ID,
			r.Date.Format(time.RFC3339),
			r.Type.String(),
			strconv.FormatFloat(r.Distance, 'f', -1, 64),
			strconv.FormatFloat(r.Duration, 'f', -1, 64),
			strconv.FormatFloat(r.Cost(), 'f', -1, 64),
			r.Note(),
		}

		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// Decode reads activities from r, also returning how many rows it skipped.
//
// A missing required header fails the whole decode.
// Rows that cannot be read as an activity are skipped,
// including those with a negative or non-finite distance, duration or maintenance cost.
// A row without an ID is assigned one derived from now and its row number.
func Decode(r io.Reader, now time.Time) ([]ridewitus.Activity, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, 0, ErrNoActivities
	}
	if err != nil {
		return nil, 0, fmt.Errorf("%w: reading header: %s", ridewitus.ErrNotValid, err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, ok := idx[h]; !ok {
			idx[h] = i
		}
	}

	var missing []string
	for _, h := range required {
		if _, ok := idx[h]; !ok {
			missing = append(missing, h)
		}
	}

	if len(missing) > 0 {
		return nil, 0, fmt.Errorf("%w: missing required headers: %s", ridewitus.ErrNotValid, strings.Join(missing, ", "))
	}

	var (
		out     []ridewitus.Activity
		row     int
		skipped int
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		row++
		if err != nil {
			skipped++
			continue
		}

		a, ok := decodeRow(rec, idx)
		if !ok {
			skipped++
			continue
		}

		if a.ID == "" {
			a.ID = fmt.Sprintf("imported-%d-%d", now.UnixMilli(), row)
		}

		out = append(out, a)
	}

	if len(out) == 0 {
		return nil, skipped, ErrNoActivities
	}

	return out, skipped, nil
}

func decodeRow(rec []string, idx map[string]int) (ridewitus.Activity, bool) {
	if len(rec) < len(required) {
		return ridewitus.Activity{}, false
	}

	field := func(h string) string {
		i, ok := idx[h]
		if !ok || i >= len(rec) {
			return ""
		}

		return strings.TrimSpace(rec[i])
	}

	date, ok := parseDate(field(HeaderDate))
	if !ok {
		return ridewitus.Activity{}, false
	}

	typ, err := ridewitus.ParseActivityType(field(HeaderType))
	if err != nil {
		return ridewitus.Activity{}, false
	}

	distance, ok := measure(field(HeaderDistance))
	if !ok {
		return ridewitus.Activity{}, false
	}

	duration, ok := measure(field(HeaderDuration))
	if !ok {
		return ridewitus.Activity{}, false
	}

	a := ridewitus.Activity{
		ID:       field(HeaderID),
		Date:     date,
		Type:     typ,
		Distance: distance,
		Duration: duration,
	}

	if v := field(HeaderMaintenanceCost); v != "" {
		if _, err := strconv.ParseFloat(v, 64); err == nil {
			c, ok := measure(v)
			if !ok {
				return ridewitus.Activity{}, false
			}

			a.MaintenanceCost = &c
		}
	}

	if v := field(HeaderNotes); v != "" {
		a.Notes = &v
	}

	return a, true
}

// measure parses s as a finite, non-negative number.
func measure(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}

	return v, true
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}
