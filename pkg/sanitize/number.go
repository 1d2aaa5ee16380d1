package sanitize

import (
	"math"
	"strconv"
	"strings"
)

// Bounds constrains a sanitized number. Nil fields mean unbounded.
type Bounds struct {
	Min *float64
	Max *float64
}

// SanitizeNumber coerces input to a float64 and clamps it into the given
// bounds. Numeric strings are accepted; empty or non-numeric strings,
// NaN, and infinities are rejected. Clamping is not an error - the
// adjusted value is returned and the adjustment logged.
func (s *Sanitizer) SanitizeNumber(input any, bounds Bounds) (float64, error) {
	var n float64

	switch v := input.(type) {
	case float64:
		n = v
	case float32:
		n = float64(v)
	case int:
		n = float64(v)
	case int32:
		n = float64(v)
	case int64:
		n = float64(v)
	case uint:
		n = float64(v)
	case uint64:
		n = float64(v)
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			rejectionsTotal.WithLabelValues(opNumber).Inc()
			return 0, validationErrorf(opNumber, "empty string is not a number")
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			rejectionsTotal.WithLabelValues(opNumber).Inc()
			return 0, validationErrorf(opNumber, "%q is not a number", v)
		}
		n = parsed
	default:
		rejectionsTotal.WithLabelValues(opNumber).Inc()
		return 0, validationErrorf(opNumber, "unsupported type %T", input)
	}

	if math.IsNaN(n) || math.IsInf(n, 0) {
		rejectionsTotal.WithLabelValues(opNumber).Inc()
		return 0, validationErrorf(opNumber, "value must be finite")
	}

	if bounds.Min != nil && n < *bounds.Min {
		s.logger.Debug("clamped number to lower bound", "value", n, "min", *bounds.Min)
		n = *bounds.Min
	}
	if bounds.Max != nil && n > *bounds.Max {
		s.logger.Debug("clamped number to upper bound", "value", n, "max", *bounds.Max)
		n = *bounds.Max
	}

	return n, nil
}
