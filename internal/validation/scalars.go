package validation

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/spf13/cast"
)

const dateLayout = "2006-01-02"

// isBlank treats JSON null and empty/whitespace strings as absent, the way the
// planner forms submit cleared inputs.
func isBlank(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// toInt coerces a loosely typed JSON scalar (number or numeric string) to an int.
// Strings are read as base 10, so "08" is 8. Numbers with a fractional part are
// rejected rather than truncated.
func toInt(v any) (int, bool) {
	switch x := v.(type) {
	case bool:
		return 0, false
	case string:
		s := strings.TrimSpace(x)
		if n, err := strconv.ParseInt(s, 10, 0); err == nil {
			return int(n), true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return wholeInt(f)
	case float64:
		return wholeInt(x)
	case float32:
		return wholeInt(float64(x))
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func wholeInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// toFloat coerces a number or numeric string. NaN and infinities are rejected.
func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case bool:
		return 0, false
	case string:
		v = strings.TrimSpace(x)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// parseDate accepts a calendar date or an RFC3339 timestamp and returns the civil
// date at UTC midnight.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

func parseUUID(s string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// optional trims s and maps an empty result to nil.
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

func tooLong(s string, max int) bool {
	return utf8.RuneCountInString(s) > max
}
