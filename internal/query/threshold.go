package query

import (
	"strconv"
	"strings"
)

// ParseThresholdString parses a comma-separated list of numeric
// tolerance thresholds, e.g. "0.5,1.0", as used for both the distance
// and angle threshold CLI flags. An empty string yields no thresholds.
func ParseThresholdString(s string) ([]float32, error) {
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float32, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(p, 32)
		if err != nil {
			return nil, err
		}
		out = append(out, float32(v))
	}
	return out, nil
}
