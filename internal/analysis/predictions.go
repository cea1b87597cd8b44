package analysis

import (
	"math"
	"strconv"
	"strings"
)

// RiegelExponent is the fatigue exponent of the Riegel endurance model
const RiegelExponent = 1.06

// Standard race distances in kilometers
const (
	Distance5K       = 5.0
	Distance10K      = 10.0
	DistanceHalfMara = 21.0975
	DistanceMarathon = 42.195
)

// StandardDistance is a distance personal bests are recorded at
type StandardDistance struct {
	Key        string // form field holding the PB
	Label      string
	DistanceKm float64
}

// StandardDistances are the projected distances, shortest first
var StandardDistances = []StandardDistance{
	{FieldPB5K, "5K", Distance5K},
	{FieldPB10K, "10K", Distance10K},
	{FieldPB21K, "21K", DistanceHalfMara},
	{FieldPB42K, "42K", DistanceMarathon},
}

// Confidence tiers
const (
	ConfidenceHigh   = "High"
	ConfidenceMedium = "Medium"
	ConfidenceLow    = "Low"
)

// ProjectTimeRiegel projects a finish time at d2 from a time t1 at d1.
// T2 = T1 * (D2/D1)^1.06
func ProjectTimeRiegel(t1, d1, d2 float64) float64 {
	if t1 <= 0 || d1 <= 0 || d2 <= 0 {
		return 0
	}
	if d1 == d2 {
		return t1
	}
	return t1 * math.Pow(d2/d1, RiegelExponent)
}

// ConfidenceLevel grades a projection by how far it extrapolates
func ConfidenceLevel(baseDistance, targetDistance float64) string {
	ratio := math.Max(baseDistance, targetDistance) / math.Min(baseDistance, targetDistance)

	switch {
	case ratio <= 2:
		return ConfidenceHigh
	case ratio <= 4:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// SelectBaseRecord picks the personal best closest in distance to the target.
// The first record wins a tie. Returns nil when no usable record exists.
func SelectBaseRecord(pbs []PersonalBest, targetKm float64) *PersonalBest {
	var best *PersonalBest

	for i := range pbs {
		pb := &pbs[i]
		if !hasClockText(pb.Time) || pb.DistanceKm <= 0 {
			continue
		}
		if best == nil || math.Abs(pb.DistanceKm-targetKm) < math.Abs(best.DistanceKm-targetKm) {
			best = pb
		}
	}

	if best == nil {
		return nil
	}
	rec := *best
	return &rec
}

// GeneratePerformanceComparison projects finish times from the best-fitting
// personal best to every standard distance and the target distance
func GeneratePerformanceComparison(pbs []PersonalBest, targetKm float64) PerformanceComparison {
	comparison := PerformanceComparison{
		Projections:     []Projection{},
		Recommendations: []string{},
	}

	base := SelectBaseRecord(pbs, targetKm)
	if base == nil {
		comparison.Recommendations = append(comparison.Recommendations,
			"Enter at least one personal best for a more accurate performance analysis.")
		return comparison
	}

	comparison.HasData = true
	comparison.BaseRecord = base

	baseSeconds := ParseClock(base.Time)
	comparison.VDOT = CalculateVDOT(base.DistanceKm, int(math.Round(baseSeconds)))
	if comparison.VDOT > 0 {
		comparison.VDOTLabel = GetVDOTLabel(comparison.VDOT)
	}

	targets := make([]StandardDistance, 0, len(StandardDistances)+1)
	targets = append(targets, StandardDistances...)
	if !isStandardDistance(targetKm) {
		targets = append(targets, StandardDistance{Label: TargetLabel(targetKm), DistanceKm: targetKm})
	}

	for _, target := range targets {
		// Rounded to whole seconds so the stored text and number agree
		projected := math.Round(ProjectTimeRiegel(baseSeconds, base.DistanceKm, target.DistanceKm))
		comparison.Projections = append(comparison.Projections, Projection{
			DistanceKm:       target.DistanceKm,
			Label:            target.Label,
			ProjectedTime:    FormatClock(projected),
			ProjectedSeconds: projected,
			Confidence:       ConfidenceLevel(base.DistanceKm, target.DistanceKm),
		})
	}

	return comparison
}

// BasePace derives the per-km pace the rest of the plan is built on.
// Falls back to DefaultPace when there is nothing to derive it from.
func BasePace(comparison PerformanceComparison, targetKm float64) string {
	for _, p := range comparison.Projections {
		if p.DistanceKm == targetKm {
			return FormatPace(PaceSeconds(p.ProjectedSeconds, targetKm))
		}
	}

	if comparison.BaseRecord != nil {
		base := comparison.BaseRecord
		return FormatPace(PaceSeconds(ParseClock(base.Time), base.DistanceKm))
	}

	return DefaultPace
}

// TargetLabel returns a label like "15K" for a distance in km
func TargetLabel(distanceKm float64) string {
	return strconv.FormatFloat(distanceKm, 'f', -1, 64) + "K"
}

func isStandardDistance(distanceKm float64) bool {
	for _, d := range StandardDistances {
		if d.DistanceKm == distanceKm {
			return true
		}
	}
	return false
}

func hasClockText(s string) bool {
	return s != "" && strings.Contains(s, ":")
}
