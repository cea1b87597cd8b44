package tui

import (
	"fmt"

	"raceprep/internal/analysis"
	"raceprep/internal/config"
	"raceprep/internal/service"
)

// Units formats distances and paces in the runner's preferred unit.
// The analysis always works in kilometers.
type Units struct {
	cfg config.DisplayConfig
}

// NewUnits creates a new Units helper with the given display config
func NewUnits(cfg config.DisplayConfig) Units {
	return Units{cfg: cfg}
}

// IsMiles returns true if distance unit is miles
func (u Units) IsMiles() bool {
	return u.cfg.DistanceUnit == "mi"
}

// FormatDistance formats a distance in kilometers with its unit label
func (u Units) FormatDistance(km float64) string {
	if u.IsMiles() {
		return fmt.Sprintf("%.1f mi", km/service.KmPerMile)
	}
	return fmt.Sprintf("%.1f km", km)
}

// FormatPace converts a "M:SS" per km pace to the preferred unit, with label
func (u Units) FormatPace(pacePerKm string) string {
	seconds := analysis.ParseClock(pacePerKm)
	if seconds <= 0 {
		return "-"
	}
	if u.IsMiles() {
		seconds *= service.KmPerMile
	}
	return analysis.FormatPace(seconds) + "/" + u.DistanceLabel()
}

// FormatPaceSeconds formats seconds per km in the preferred unit, with label
func (u Units) FormatPaceSeconds(secondsPerKm float64) string {
	if secondsPerKm <= 0 {
		return "-"
	}
	return u.FormatPace(analysis.FormatPace(secondsPerKm))
}

// DistanceLabel returns the short unit label ("mi" or "km")
func (u Units) DistanceLabel() string {
	if u.IsMiles() {
		return "mi"
	}
	return "km"
}

// PaceLabel returns the pace unit label ("min/mi" or "min/km")
func (u Units) PaceLabel() string {
	return "min/" + u.DistanceLabel()
}

// ConvertPaceSeries converts minutes per km to the preferred unit for charts
func (u Units) ConvertPaceSeries(minPerKm []float64) []float64 {
	if !u.IsMiles() {
		return minPerKm
	}
	converted := make([]float64, len(minPerKm))
	for i, p := range minPerKm {
		converted[i] = p * service.KmPerMile
	}
	return converted
}
