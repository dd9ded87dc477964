package utils

import (
	"math"
	"strconv"
	"strings"
)

// ToInt converts decoded document values to int.
// Integers of any width are accepted; floats only when they carry no fraction.
// The bool result reports whether the value was numeric at all.
func ToInt(val any) (int, bool) {
	switch v := val.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case int32:
		return int(v), true
	case int16:
		return int(v), true
	case int8:
		return int(v), true
	case uint:
		return int(v), true
	case uint64:
		return int(v), true
	case uint32:
		return int(v), true
	case uint16:
		return int(v), true
	case uint8:
		return int(v), true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	case float32:
		if float64(v) != math.Trunc(float64(v)) {
			return 0, false
		}
		return int(v), true
	default:
		return 0, false
	}
}

// ToFloat converts integers and floats to float64.
func ToFloat(val any) (float64, bool) {
	switch v := val.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	default:
		if i, ok := ToInt(v); ok {
			return float64(i), true
		}
		return 0, false
	}
}

// ToString returns val when it is a string (or byte slice).
func ToString(val any) (string, bool) {
	switch v := val.(type) {
	case string:
		return v, true
	case []byte:
		return string(v), true
	default:
		return "", false
	}
}

// ToBool returns val when it is a boolean.
// Strings are accepted in the "true"/"false"/"1"/"0" forms hand-edited
// override documents sometimes carry.
func ToBool(val any) (bool, bool) {
	switch v := val.(type) {
	case bool:
		return v, true
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true":
			return true, true
		case "0", "false":
			return false, true
		}
		return false, false
	default:
		return false, false
	}
}

// FormatFloat renders a number the shortest way that round-trips,
// so 20.0 becomes "20" and 1.50 becomes "1.5".
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
