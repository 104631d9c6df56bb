package aggregate

import "strconv"

// FormatFloat is the number format of all text outputs: the shortest
// decimal form that round-trips.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
