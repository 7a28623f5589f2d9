package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the layout of date fields submitted by forms.
const DateLayout = "2006-01-02"

// ParseID converts a path or form value to a positive id.
func ParseID(val string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", val, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be positive", val)
	}
	return id, nil
}

// ParseFloat converts a form value to a float. An empty value is zero.
func ParseFloat(val string) (float64, error) {
	val = strings.TrimSpace(val)
	if val == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", val, err)
	}
	return f, nil
}

// ParseDate converts a YYYY-MM-DD form value to a UTC date. An empty value
// is the zero time so that required-field validation reports it.
func ParseDate(val string) (time.Time, error) {
	val = strings.TrimSpace(val)
	if val == "" {
		return time.Time{}, nil
	}
	d, err := time.Parse(DateLayout, val)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected %s", val, DateLayout)
	}
	return d, nil
}
