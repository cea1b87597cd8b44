package analysis

import (
	"fmt"
	"math"
)

// BMI categories (WHO thresholds)
const (
	BMIUnderweight = "Underweight"
	BMINormal      = "Normal"
	BMIOverweight  = "Overweight"
	BMIObese       = "Obese"
)

// Heat index thresholds in °C
const (
	HeatCaution = 27.0
	HeatDanger  = 32.0

	heatIndexMinTempC = 26.7 // 80°F
)

// HRZoneBounds are the lower and upper percent of max HR for zones 1-5
var HRZoneBounds = [][2]int{
	{50, 60},
	{60, 70},
	{70, 80},
	{80, 90},
	{90, 100},
}

// General advice appended to every health analysis
var generalSafetyRecommendations = []string{
	"Always warm up properly before the race and cool down afterwards.",
	"Listen to your body. Stop immediately if you feel sharp pain, dizziness or chest pain.",
}

// GenerateHealthAnalysis scores the runner's risk for the given race.
// Each step may only raise the risk level.
func GenerateHealthAnalysis(profile RunnerProfile, race RaceContext) HealthAnalysis {
	temp := race.Temperature()
	humidity := race.Humidity()

	analysis := HealthAnalysis{
		RiskLevel:       RiskLow,
		Warnings:        []string{},
		Recommendations: []string{},
	}

	if age, ok := profileAge(profile); ok {
		maxHR := MaxHeartRate(age)
		analysis.MaxHeartRate = &maxHR
		analysis.HeartRateZones = HeartRateZones(maxHR)
	}

	if bmi, ok := CalculateBMI(profile.WeightKg, profile.HeightM); ok {
		rounded := math.Round(bmi*10) / 10
		analysis.BMI = &rounded
		analyzeBMI(bmi, &analysis)
	}

	if age, ok := profileAge(profile); ok {
		analyzeAge(age, &analysis)
	}

	analysis.HeatIndex = HeatIndex(temp, humidity)
	analyzeClimate(analysis.HeatIndex, &analysis)

	analyzeExperience(profile.Experience, race.DistanceKm, &analysis)

	analysis.SafetyAdjustments = CalculateSafetyAdjustments(analysis.RiskLevel, temp)
	analysis.Recommendations = append(analysis.Recommendations, generalSafetyRecommendations...)

	return analysis
}

// CalculateBMI returns weight / height² when both are usable
func CalculateBMI(weightKg, heightM *float64) (float64, bool) {
	if weightKg == nil || heightM == nil || *weightKg <= 0 || *heightM <= 0 {
		return 0, false
	}
	return *weightKg / (*heightM * *heightM), true
}

// BMICategory classifies a BMI value
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return BMIUnderweight
	case bmi < 25:
		return BMINormal
	case bmi < 30:
		return BMIOverweight
	default:
		return BMIObese
	}
}

// MaxHeartRate uses the Tanaka formula: 208 - 0.7 × age
func MaxHeartRate(age int) int {
	return int(math.Round(208 - 0.7*float64(age)))
}

// HeartRateZones splits max HR into five training zones.
// Each bound is rounded on its own.
func HeartRateZones(maxHR int) []HeartRateZone {
	zones := make([]HeartRateZone, 0, len(HRZoneBounds))
	for i, b := range HRZoneBounds {
		zones = append(zones, HeartRateZone{
			Zone:    i + 1,
			LowBPM:  int(math.Round(float64(maxHR) * float64(b[0]) / 100)),
			HighBPM: int(math.Round(float64(maxHR) * float64(b[1]) / 100)),
			LowPct:  b[0],
			HighPct: b[1],
		})
	}
	return zones
}

// HeatIndex estimates perceived temperature (°C) from air temperature (°C)
// and relative humidity (%) with the Rothfusz regression in metric units.
// The plain polynomial (c1 = -8.78, c2 = 1.61, ...) applied to every input
// is meaningless for ordinary weather: 10°C at 50% reads as about 37°C and
// would trigger the extreme heat warning. Below 26.7°C (80°F), where the
// regression is undefined, the air temperature is returned instead, and the
// result never drops below it.
func HeatIndex(tempC, humidityPct float64) float64 {
	if tempC < heatIndexMinTempC {
		return tempC
	}

	t, h := tempC, humidityPct
	hi := -8.78469475556 +
		1.61139411*t +
		2.33854883889*h -
		0.14611605*t*h -
		0.012308094*t*t -
		0.0164248277778*h*h +
		0.002211732*t*t*h +
		0.00072546*t*h*h -
		0.000003582*t*t*h*h

	if hi > t {
		return hi
	}
	return t
}

// CalculateSafetyAdjustments turns the final risk and temperature into a pace penalty
func CalculateSafetyAdjustments(risk RiskLevel, tempC float64) SafetyAdjustments {
	factor := 1.0

	switch risk {
	case RiskMedium:
		factor *= 1.05
	case RiskHigh:
		factor *= 1.12
	}

	if tempC > 28 {
		factor *= 1.05
	}

	return SafetyAdjustments{
		PaceAdjustment:          factor,
		RecommendedPaceIncrease: int(math.Round((factor - 1) * 100)),
	}
}

func analyzeBMI(bmi float64, a *HealthAnalysis) {
	a.BMICategory = BMICategory(bmi)

	switch a.BMICategory {
	case BMIUnderweight:
		a.RiskLevel = a.RiskLevel.Raise(RiskMedium)
		a.Warnings = append(a.Warnings, "BMI below normal may indicate a nutritional deficiency and raises the risk of stress fractures.")
		a.Recommendations = append(a.Recommendations, "See a health professional for a nutritional assessment.")
	case BMIOverweight:
		a.RiskLevel = a.RiskLevel.Raise(RiskMedium)
		a.Warnings = append(a.Warnings, "BMI indicates overweight, which increases stress on knees and ankles.")
		a.Recommendations = append(a.Recommendations, "Focus on strength training to protect your joints.")
	case BMIObese:
		a.RiskLevel = a.RiskLevel.Raise(RiskHigh)
		a.Warnings = append(a.Warnings, "Obesity significantly increases the risk of cardiovascular events and orthopedic injuries while running.")
		a.Recommendations = append(a.Recommendations, "CRITICAL: Medical consultation and clearance are essential before long races.")
	}
}

func analyzeAge(age int, a *HealthAnalysis) {
	if age < 40 {
		return
	}
	a.RiskLevel = a.RiskLevel.Raise(RiskMedium)
	a.Recommendations = append(a.Recommendations, "Over 40: regular medical check-ups are advised for people doing intense activity.")
}

func analyzeClimate(heatIndex float64, a *HealthAnalysis) {
	feelsLike := int(math.Round(heatIndex))

	if heatIndex > HeatCaution {
		a.Warnings = append(a.Warnings, fmt.Sprintf("Hot conditions (feels like ~%d°C). Increased risk of heat stress.", feelsLike))
		a.Recommendations = append(a.Recommendations, "Increase hydration and consider reducing intensity.")
	}

	if heatIndex > HeatDanger {
		a.RiskLevel = a.RiskLevel.Raise(RiskMedium)
		a.Warnings = append(a.Warnings, fmt.Sprintf("DANGER: Extreme heat (feels like ~%d°C). High risk of hyperthermia.", feelsLike))
		a.Recommendations = append(a.Recommendations, "Reduce intensity by 15-30%. Avoid racing if you are not acclimatized.")
	}
}

func analyzeExperience(experience string, distanceKm float64, a *HealthAnalysis) {
	if distanceKm <= 10 || experience != ExperienceBeginner {
		return
	}
	a.RiskLevel = a.RiskLevel.Raise(RiskHigh)
	a.Warnings = append(a.Warnings, "Long distance for a beginner. Elevated risk of overuse injury.")
	a.Recommendations = append(a.Recommendations, "Progression principle: increase weekly distance by no more than 10-15%.")
}

func profileAge(p RunnerProfile) (int, bool) {
	if p.Age == nil || *p.Age <= 0 {
		return 0, false
	}
	return *p.Age, true
}
