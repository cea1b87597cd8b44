package analysis

import (
	"fmt"
	"math"
)

// Finish-time band multipliers
const (
	OptimisticFactor   = 0.97
	ConservativeFactor = 1.05
)

// Effort labels for pacing segments
const (
	EffortWarmUp     = "Warm-up"
	EffortControlled = "Controlled"
	EffortIntense    = "Intense"
)

// HydrationFluidML is the ACSM reference volume per hydration stop
const HydrationFluidML = 150

// GenerateTimeEstimate projects the four finish-time bands from the base pace.
// A pace that does not parse to a positive time yields an empty estimate.
func GenerateTimeEstimate(distanceKm float64, basePace string, health *HealthAnalysis) TimeEstimate {
	paceSeconds := ParseClock(basePace)
	if paceSeconds <= 0 {
		return TimeEstimate{}
	}

	adjustment := 1.0
	if health != nil && health.SafetyAdjustments.PaceAdjustment > 0 {
		adjustment = health.SafetyAdjustments.PaceAdjustment
	}

	total := distanceKm * paceSeconds
	return TimeEstimate{
		Optimistic:   FormatClock(total * OptimisticFactor),
		Realistic:    FormatClock(total),
		Conservative: FormatClock(total * ConservativeFactor),
		SafePace:     FormatClock(total * adjustment),
	}
}

// SegmentSize returns the segment length in km for a race distance
func SegmentSize(distanceKm float64) float64 {
	switch {
	case distanceKm <= 10:
		return 1
	case distanceKm <= 21.1:
		return 2
	default:
		return 5
	}
}

// GenerateSegmentStrategy splits the race into segments that start slower
// and finish faster (negative split)
func GenerateSegmentStrategy(distanceKm float64, basePace string) []Segment {
	segments := []Segment{}
	if distanceKm <= 0 {
		return segments
	}

	paceSeconds := ParseClock(basePace)
	size := SegmentSize(distanceKm)
	count := int(math.Ceil(distanceKm / size))

	for i := 0; i < count; i++ {
		start := float64(i) * size
		end := math.Min(float64(i+1)*size, distanceKm)
		multiplier, effort, notes := segmentEffort(i, count)

		segments = append(segments, Segment{
			Label:      fmt.Sprintf("%.1f-%.1fkm", start, end),
			StartKm:    start,
			EndKm:      end,
			Pace:       FormatPace(paceSeconds * multiplier),
			Multiplier: multiplier,
			Effort:     effort,
			Notes:      notes,
		})
	}

	return segments
}

// segmentEffort returns the pace multiplier, effort and note for segment i of n.
// The first segment is decided before the progress ratio so n=1 never divides by zero.
func segmentEffort(i, n int) (float64, string, string) {
	if i == 0 {
		return 1.05, EffortWarmUp, "Focus on form, not speed."
	}

	progress := float64(i) / float64(n-1)
	switch {
	case progress <= 0.5:
		return 1.02, EffortControlled, "Hold the pace and save energy."
	case progress <= 0.8:
		return 0.98, EffortIntense, "Build the effort progressively."
	default:
		return 0.96, EffortIntense, "Build the effort progressively."
	}
}

// HydrationInterval returns the seconds between drinks for a temperature
func HydrationInterval(tempC float64) float64 {
	if tempC > 25 {
		return 15 * 60
	}
	return 20 * 60
}

// GenerateHydrationPlan walks the race kilometer by kilometer and places a
// checkpoint whenever at least one interval has passed since the last one.
// A fractional distance gets a last check at the finish.
func GenerateHydrationPlan(distanceKm float64, basePace string, tempC float64) []Checkpoint {
	plan := []Checkpoint{}

	paceSeconds := ParseClock(basePace)
	if paceSeconds <= 0 || distanceKm <= 0 {
		return plan
	}

	interval := HydrationInterval(tempC)
	next := interval

	marks := make([]float64, 0, int(distanceKm)+1)
	for km := 1; float64(km) <= distanceKm; km++ {
		marks = append(marks, float64(km))
	}
	if distanceKm != math.Floor(distanceKm) {
		marks = append(marks, distanceKm)
	}

	for _, km := range marks {
		elapsed := km * paceSeconds
		if elapsed < next {
			continue
		}

		nutrition := "-"
		if distanceKm > 15 && elapsed > 3600 {
			nutrition = "Consider 1 carbohydrate gel"
		}

		plan = append(plan, Checkpoint{
			Km:             km,
			ElapsedSeconds: elapsed,
			Time:           FormatClock(elapsed),
			Fluid:          fmt.Sprintf("Drink %dml of water or sports drink", HydrationFluidML),
			Nutrition:      nutrition,
		})
		// Counted from this checkpoint, not the previous due time, so two
		// checkpoints are never closer than one interval.
		next = elapsed + interval
	}

	return plan
}

// GenerateEquipmentRecommendations maps surface, distance and temperature to gear
func GenerateEquipmentRecommendations(race RaceContext) EquipmentRecommendation {
	temp := race.Temperature()
	distance := race.DistanceKm

	rec := EquipmentRecommendation{}

	switch {
	case race.Surface == SurfaceTrail:
		rec.Shoes = "Trail shoes with good grip and protection."
	case distance > 21:
		rec.Shoes = "Maximum-cushioning shoes for long distances."
	default:
		rec.Shoes = "Versatile shoes with a good balance of cushioning and responsiveness."
	}

	switch {
	case temp > 25:
		rec.Clothing = "Light, light-colored, highly breathable clothing."
	case temp > 15:
		rec.Clothing = "Technical shirt and shorts."
	default:
		rec.Clothing = "Consider arm sleeves or a light long-sleeve shirt."
	}

	rec.Accessories = []string{"Cap or visor and sunglasses for UV protection."}
	if distance > 10 {
		rec.Accessories = append(rec.Accessories, "Hydration belt or vest if aid stations are sparse.")
	}
	rec.Accessories = append(rec.Accessories, "Wear sunscreen.")

	return rec
}
