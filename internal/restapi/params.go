package restapi

import (
	"math"
	"net/http"
	"strconv"
	"strings"
)

// pathName returns the {name} path segment with its ".json" suffix removed.
func pathName(r *http.Request) string {
	return strings.TrimSuffix(r.PathValue("name"), ".json")
}

// fieldErrors collects per-parameter validation messages.
type fieldErrors map[string][]string

func (fe fieldErrors) add(field, message string) {
	fe[field] = append(fe[field], message)
}

// requiredString reads a non-blank query parameter.
func (fe fieldErrors) requiredString(r *http.Request, field string) string {
	value := strings.TrimSpace(r.URL.Query().Get(field))
	if value == "" {
		fe.add(field, "is required")
	}
	return value
}

// float reads a float query parameter bounded by [lo, hi]. A missing
// parameter yields fallback, or an error when required.
func (fe fieldErrors) float(r *http.Request, field string, required bool, fallback, lo, hi float64) float64 {
	raw := strings.TrimSpace(r.URL.Query().Get(field))
	if raw == "" {
		if required {
			fe.add(field, "is required")
		}
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		fe.add(field, "must be a number")
		return fallback
	}
	if math.IsNaN(value) || value < lo || value > hi {
		fe.add(field, "must be between "+strconv.FormatFloat(lo, 'g', -1, 64)+" and "+strconv.FormatFloat(hi, 'g', -1, 64))
		return fallback
	}
	return value
}
