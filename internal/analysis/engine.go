package analysis

import (
	"fmt"
	"math"
	"time"
)

// Engine generates race reports. It holds no state besides its clock, so a
// single Engine may be shared between goroutines.
type Engine struct {
	now func() time.Time
}

// NewEngine creates an Engine stamping reports with now.
// A nil now uses time.Now.
func NewEngine(now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{now: now}
}

// ValidateDistance checks the target distance is a number in (0, 200] km
func ValidateDistance(distanceKm float64) error {
	if math.IsNaN(distanceKm) || math.IsInf(distanceKm, 0) {
		return fmt.Errorf("%w: race distance is required and must be a number", ErrInvalidInput)
	}
	if distanceKm <= 0 || distanceKm > MaxDistanceKm {
		return fmt.Errorf("%w: race distance must be greater than 0 and at most %.0f km, got %v", ErrInvalidInput, MaxDistanceKm, distanceKm)
	}
	return nil
}

// GenerateReport runs the full pre-race analysis
func (e *Engine) GenerateReport(in Input) (*RaceReport, error) {
	distance := in.Race.DistanceKm
	if err := ValidateDistance(distance); err != nil {
		return nil, err
	}

	comparison := GeneratePerformanceComparison(in.PersonalBests, distance)
	basePace := BasePace(comparison, distance)
	health := GenerateHealthAnalysis(in.Profile, in.Race)
	temp := in.Race.Temperature()

	return &RaceReport{
		Input:                 cloneInput(in),
		HealthAnalysis:        health,
		TimeEstimate:          GenerateTimeEstimate(distance, basePace, &health),
		SegmentStrategy:       GenerateSegmentStrategy(distance, basePace),
		HydrationPlan:         GenerateHydrationPlan(distance, basePace, temp),
		Equipment:             GenerateEquipmentRecommendations(in.Race),
		PerformanceComparison: comparison,
		Metadata: ReportMetadata{
			GeneratedAt: e.now(),
			DistanceKm:  distance,
			BasePace:    basePace,
		},
	}, nil
}

// GeneratePostRaceResult compares an actual finish time with the report's
// realistic estimate
func (e *Engine) GeneratePostRaceResult(report *RaceReport, actualTime string) (*PostRaceResult, error) {
	if report == nil || report.TimeEstimate.Realistic == "" {
		return nil, fmt.Errorf("%w: pre-race report missing or incomplete", ErrInvalidInput)
	}

	estimated := ParseClock(report.TimeEstimate.Realistic)
	if estimated <= 0 {
		return nil, fmt.Errorf("%w: pre-race realistic estimate %q is not a time", ErrInvalidInput, report.TimeEstimate.Realistic)
	}

	actual := ParseClock(actualTime)
	if actual <= 0 {
		return nil, fmt.Errorf("%w: actual race time %q must be h:mm:ss or mm:ss and greater than zero", ErrInvalidInput, actualTime)
	}

	distance := report.Metadata.DistanceKm
	diff := actual - estimated
	pct := diff / estimated * 100

	return &PostRaceResult{
		EstimatedTime:        report.TimeEstimate.Realistic,
		ActualTime:           actualTime,
		Difference:           FormatClock(math.Abs(diff)),
		DifferenceSeconds:    diff,
		WasFaster:            diff < 0,
		DifferencePercentage: math.Round(pct*100) / 100,
		EstimatedPace:        FormatPace(PaceSeconds(estimated, distance)),
		ActualPace:           FormatPace(PaceSeconds(actual, distance)),
		Feedback:             PostRaceFeedback(pct),
		GeneratedAt:          e.now(),
	}, nil
}

// PostRaceFeedback returns the message for a percentage difference from the estimate
func PostRaceFeedback(pct float64) string {
	switch {
	case pct < -2:
		return "Exceptional performance! You beat the estimate by a wide margin."
	case pct <= 0:
		return "Congratulations! You met or beat your realistic goal time."
	case pct <= 5:
		return "Great result! You finished close to the estimate. Excellent effort."
	default:
		return "Race complete! Every race is a learning opportunity. Use the data to adjust your training for the next one."
	}
}

// cloneInput copies the input so the report shares no memory with the caller
func cloneInput(in Input) Input {
	out := in
	out.Profile.Age = cloneInt(in.Profile.Age)
	out.Profile.WeightKg = cloneFloat(in.Profile.WeightKg)
	out.Profile.HeightM = cloneFloat(in.Profile.HeightM)
	out.Race.TempMinC = cloneFloat(in.Race.TempMinC)
	out.Race.TempMaxC = cloneFloat(in.Race.TempMaxC)
	out.Race.HumidityPct = cloneFloat(in.Race.HumidityPct)
	out.Race.RainChance = cloneFloat(in.Race.RainChance)
	out.PersonalBests = append([]PersonalBest{}, in.PersonalBests...)
	return out
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
