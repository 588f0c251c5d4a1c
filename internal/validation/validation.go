package validation

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the only accepted calendar date format.
const DateLayout = "2006-01-02"

// ParseDate parses a strict YYYY-MM-DD date string. It returns nil for any
// input that is not exactly three numeric segments, or that names a day the
// calendar does not have. time.Date normalizes overflow (Feb 30 becomes
// Mar 1), so the parsed value is round-tripped against the input and rejected
// on mismatch rather than silently rolled over.
func ParseDate(s string) *time.Time {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return nil
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return nil
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return nil
	}
	return &t
}

// ValidDate reports whether s is a parseable strict calendar date.
func ValidDate(s string) bool {
	return ParseDate(s) != nil
}

// MeasurementValue parses a measurement input and rejects non-numeric or
// non-positive values.
func MeasurementValue(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid measurement value %q", s)
	}
	if v <= 0 {
		return 0, fmt.Errorf("measurement value must be positive, got %v", v)
	}
	return v, nil
}
