package service

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"raceprep/internal/analysis"
)

// ErrUnknownField is returned when a form field key is not registered
var ErrUnknownField = errors.New("unknown field")

// Form sections, in display order
const (
	SectionRace    = "Race"
	SectionWeather = "Weather"
	SectionRunner  = "Runner"
	SectionRecords = "Personal Bests"
	SectionGoal    = "Goal"
)

// Field describes one input of the race form
type Field struct {
	Key         string
	Label       string
	Section     string
	Placeholder string
}

// FormFields is the ordered registry of form inputs
var FormFields = []Field{
	{analysis.FieldRaceName, "Race name", SectionRace, "City Marathon"},
	{analysis.FieldRaceDate, "Race date", SectionRace, "2026-10-12"},
	{analysis.FieldDistance, "Distance (km)", SectionRace, "21.0975"},
	{analysis.FieldSurface, "Surface", SectionRace, "Road or Trail"},
	{analysis.FieldTempMin, "Min temperature (°C)", SectionWeather, "14"},
	{analysis.FieldTempMax, "Max temperature (°C)", SectionWeather, "22"},
	{analysis.FieldHumidity, "Humidity (%)", SectionWeather, "60"},
	{analysis.FieldRainChance, "Rain chance (%)", SectionWeather, "10"},
	{analysis.FieldAge, "Age", SectionRunner, "35"},
	{analysis.FieldGender, "Gender", SectionRunner, ""},
	{analysis.FieldExperience, "Experience", SectionRunner, "Beginner, Intermediate or Advanced"},
	{analysis.FieldWeight, "Weight (kg)", SectionRunner, "70"},
	{analysis.FieldHeight, "Height (m)", SectionRunner, "1.75"},
	{analysis.FieldPB5K, "5K best", SectionRecords, "22:30"},
	{analysis.FieldPB10K, "10K best", SectionRecords, "47:00"},
	{analysis.FieldPB21K, "Half marathon best", SectionRecords, "1:45:00"},
	{analysis.FieldPB42K, "Marathon best", SectionRecords, "3:45:00"},
	{analysis.FieldObjective, "Objective", SectionGoal, DefaultObjective},
	{analysis.FieldTargetTime, "Target time", SectionGoal, "1:50:00"},
}

// summaryFields are the inputs the completeness summary counts
var summaryFields = []string{
	analysis.FieldRaceName,
	analysis.FieldRaceDate,
	analysis.FieldDistance,
	analysis.FieldAge,
	analysis.FieldWeight,
	analysis.FieldHeight,
}

// InputSummary reports which key inputs are filled
type InputSummary struct {
	Filled       []string `json:"filled"`
	Empty        []string `json:"empty"`
	Completeness int      `json:"completeness"` // percent
}

// LookupField returns the registered field for key
func LookupField(key string) (Field, bool) {
	for _, f := range FormFields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// Validate checks the fields can produce a report.
// The distance is required and must be in (0, 200] km.
func Validate(fields map[string]string) error {
	for key := range fields {
		if _, ok := LookupField(key); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownField, key)
		}
	}

	if strings.TrimSpace(fields[analysis.FieldDistance]) == "" {
		return fmt.Errorf("%w: race distance is required", analysis.ErrInvalidInput)
	}

	in := analysis.InputFromFields(fields)
	return analysis.ValidateDistance(in.Race.DistanceKm)
}

// Summarize lists filled and empty key inputs with a completeness percentage
func Summarize(fields map[string]string) InputSummary {
	summary := InputSummary{
		Filled: []string{},
		Empty:  []string{},
	}

	for _, key := range summaryFields {
		f, _ := LookupField(key)
		if strings.TrimSpace(fields[key]) != "" {
			summary.Filled = append(summary.Filled, f.Label)
		} else {
			summary.Empty = append(summary.Empty, f.Label)
		}
	}

	summary.Completeness = int(math.Round(float64(len(summary.Filled)) / float64(len(summaryFields)) * 100))
	return summary
}
