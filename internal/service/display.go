package service

import (
	"raceprep/internal/analysis"
)

// ProjectionDisplay represents a formatted projection for display
type ProjectionDisplay struct {
	Label       string  // "5K", "21K", "15K"
	DistanceKm  float64
	Time        string  // "M:SS" or "H:MM:SS"
	PaceSeconds float64 // per km
	Confidence  string
	IsTarget    bool
}

// ProjectionRows formats a performance comparison for a table, marking the
// row at the target distance
func ProjectionRows(comparison analysis.PerformanceComparison, targetKm float64) []ProjectionDisplay {
	rows := make([]ProjectionDisplay, 0, len(comparison.Projections))
	for _, p := range comparison.Projections {
		rows = append(rows, ProjectionDisplay{
			Label:       p.Label,
			DistanceKm:  p.DistanceKm,
			Time:        p.ProjectedTime,
			PaceSeconds: analysis.PaceSeconds(p.ProjectedSeconds, p.DistanceKm),
			Confidence:  p.Confidence,
			IsTarget:    p.DistanceKm == targetKm,
		})
	}
	return rows
}

// SegmentPaceSeries returns each segment's pace in minutes per km, for charts
func SegmentPaceSeries(segments []analysis.Segment) []float64 {
	series := make([]float64, 0, len(segments))
	for _, s := range segments {
		series = append(series, analysis.ParseClock(s.Pace)/60)
	}
	return series
}
