// Package normalize converts the loosely typed values found in OCR-sourced
// catalog data into clean optional numbers. Everything numeric read from a
// recipe passes through here before any arithmetic, so downstream code only
// ever sees a float or an explicit "absent".
package normalize

import (
	"strconv"
	"strings"
)

// Marker prefixes embedded by the catalog extraction pipeline when a field
// could not be read.
const (
	MarkerMissing      = "__MISSING__"
	MarkerOCRUncertain = "__OCR_UNCERTAIN__"
)

// IsMissing reports whether a raw value is the null value or a string carrying
// one of the missing-markers.
func IsMissing(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return strings.HasPrefix(s, MarkerMissing) || strings.HasPrefix(s, MarkerOCRUncertain)
	}
	return false
}

// Float converts a raw value to a float64. Numbers pass through, numeric
// strings are parsed with thousands separators stripped, anything else
// (including missing values) is absent.
func Float(value any) (float64, bool) {
	if IsMissing(value) {
		return 0, false
	}
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Int converts a raw value to an int via the float path, truncating toward
// zero. Absent float means absent int.
func Int(value any) (int, bool) {
	f, ok := Float(value)
	if !ok {
		return 0, false
	}
	return int(f), true
}

// String returns the value as a string when it is one and not a
// missing-marker.
func String(value any) (string, bool) {
	if IsMissing(value) {
		return "", false
	}
	s, ok := value.(string)
	return s, ok
}
