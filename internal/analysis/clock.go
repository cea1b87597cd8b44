package analysis

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrUnparsedClock is returned by ParseClockStrict for text that is not MM:SS or H:MM:SS
var ErrUnparsedClock = errors.New("unparsed clock text")

// DefaultPace is used when no personal best is available (6:00 per km)
const DefaultPace = "6:00"

// ParseClock converts "MM:SS" or "H:MM:SS" to seconds.
// Anything else, including empty text and non-numeric parts, yields 0.
func ParseClock(text string) float64 {
	seconds, err := ParseClockStrict(text)
	if err != nil {
		return 0
	}
	return seconds
}

// ParseClockStrict is ParseClock with the failure reported instead of hidden
func ParseClockStrict(text string) (float64, error) {
	if !strings.Contains(text, ":") {
		return 0, fmt.Errorf("%w: %q", ErrUnparsedClock, text)
	}

	parts := strings.Split(text, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q has %d components", ErrUnparsedClock, text, len(parts))
	}

	values := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%w: %q", ErrUnparsedClock, text)
		}
		values[i] = v
	}

	if len(values) == 2 {
		return values[0]*60 + values[1], nil
	}
	return values[0]*3600 + values[1]*60 + values[2], nil
}

// FormatClock renders seconds as "M:SS", or "H:MM:SS" from one hour up
func FormatClock(seconds float64) string {
	total, ok := roundSeconds(seconds)
	if !ok {
		return "0:00"
	}

	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h == 0 {
		return fmt.Sprintf("%d:%02d", m, s)
	}
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

// FormatPace renders seconds (per km) as "M:SS" regardless of magnitude
func FormatPace(seconds float64) string {
	total, ok := roundSeconds(seconds)
	if !ok {
		return "0:00"
	}
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// PaceSeconds returns seconds per km for a total time over a distance.
// Returns 0 when either input is non-positive.
func PaceSeconds(totalSeconds, distanceKm float64) float64 {
	if totalSeconds <= 0 || distanceKm <= 0 {
		return 0
	}
	return totalSeconds / distanceKm
}

func roundSeconds(seconds float64) (int, bool) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds <= 0 {
		return 0, false
	}
	total := int(math.Round(seconds))
	if total <= 0 {
		return 0, false
	}
	return total, true
}
