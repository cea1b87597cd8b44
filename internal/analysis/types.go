package analysis

import (
	"errors"
	"time"
)

// ErrInvalidInput is returned when the input cannot produce a report
var ErrInvalidInput = errors.New("invalid input")

// Experience levels
const (
	ExperienceBeginner     = "Beginner"
	ExperienceIntermediate = "Intermediate"
	ExperienceAdvanced     = "Advanced"
)

// Surface types
const (
	SurfaceRoad  = "Road"
	SurfaceTrail = "Trail"
)

// Weather defaults when the runner leaves them blank
const (
	DefaultTempC       = 20.0
	DefaultHumidityPct = 50.0
	MaxDistanceKm      = 200.0
)

// RunnerProfile describes the athlete. Optional fields are nil when unknown.
type RunnerProfile struct {
	Age        *int     `json:"age,omitempty"`
	WeightKg   *float64 `json:"weight_kg,omitempty"`
	HeightM    *float64 `json:"height_m,omitempty"`
	Experience string   `json:"experience"`
	Gender     string   `json:"gender,omitempty"`
}

// RaceContext describes the target race and its expected weather
type RaceContext struct {
	Name        string   `json:"name,omitempty"`
	Date        string   `json:"date,omitempty"`
	DistanceKm  float64  `json:"distance_km"`
	Surface     string   `json:"surface"`
	TempMinC    *float64 `json:"temp_min_c,omitempty"`
	TempMaxC    *float64 `json:"temp_max_c,omitempty"`
	HumidityPct *float64 `json:"humidity_pct,omitempty"`
	RainChance  *float64 `json:"rain_chance,omitempty"`
	Objective   string   `json:"objective,omitempty"`
	TargetTime  string   `json:"target_time,omitempty"`
}

// Temperature returns the expected max temperature or the default
func (r RaceContext) Temperature() float64 {
	if r.TempMaxC == nil {
		return DefaultTempC
	}
	return *r.TempMaxC
}

// Humidity returns the expected humidity or the default
func (r RaceContext) Humidity() float64 {
	if r.HumidityPct == nil {
		return DefaultHumidityPct
	}
	return *r.HumidityPct
}

// PersonalBest is a best time at one of the standard distances
type PersonalBest struct {
	Key        string  `json:"key"`
	Label      string  `json:"label"`
	DistanceKm float64 `json:"distance_km"`
	Time       string  `json:"time"`
}

// Input is the full record a report is generated from
type Input struct {
	Profile       RunnerProfile  `json:"profile"`
	Race          RaceContext    `json:"race"`
	PersonalBests []PersonalBest `json:"personal_bests"`
}

// Projection is a Riegel-projected finish time at one distance
type Projection struct {
	DistanceKm       float64 `json:"distance_km"`
	Label            string  `json:"label"`
	ProjectedTime    string  `json:"projected_time"`
	ProjectedSeconds float64 `json:"projected_seconds"`
	Confidence       string  `json:"confidence"`
}

// PerformanceComparison is the projector's output
type PerformanceComparison struct {
	HasData         bool          `json:"has_data"`
	BaseRecord      *PersonalBest `json:"base_record,omitempty"`
	Projections     []Projection  `json:"projections"`
	Recommendations []string      `json:"recommendations"`
	VDOT            float64       `json:"vdot,omitempty"`
	VDOTLabel       string        `json:"vdot_label,omitempty"`
}

// HeartRateZone is a training band of max heart rate
type HeartRateZone struct {
	Zone    int `json:"zone"`
	LowBPM  int `json:"low_bpm"`
	HighBPM int `json:"high_bpm"`
	LowPct  int `json:"low_pct"`
	HighPct int `json:"high_pct"`
}

// SafetyAdjustments is the pace penalty derived from the risk profile
type SafetyAdjustments struct {
	PaceAdjustment          float64 `json:"pace_adjustment"`
	RecommendedPaceIncrease int     `json:"recommended_pace_increase"`
}

// HealthAnalysis is the risk analyzer's output
type HealthAnalysis struct {
	BMI               *float64          `json:"bmi,omitempty"`
	BMICategory       string            `json:"bmi_category,omitempty"`
	RiskLevel         RiskLevel         `json:"risk_level"`
	Warnings          []string          `json:"warnings"`
	Recommendations   []string          `json:"recommendations"`
	MaxHeartRate      *int              `json:"max_heart_rate,omitempty"`
	HeartRateZones    []HeartRateZone   `json:"heart_rate_zones,omitempty"`
	HeatIndex         float64           `json:"heat_index"`
	SafetyAdjustments SafetyAdjustments `json:"safety_adjustments"`
}

// TimeEstimate holds the four finish-time bands. All empty when no pace is known.
type TimeEstimate struct {
	Optimistic   string `json:"optimistic,omitempty"`
	Realistic    string `json:"realistic,omitempty"`
	Conservative string `json:"conservative,omitempty"`
	SafePace     string `json:"safe_pace,omitempty"`
}

// Segment is one stretch of the pacing plan
type Segment struct {
	Label      string  `json:"label"`
	StartKm    float64 `json:"start_km"`
	EndKm      float64 `json:"end_km"`
	Pace       string  `json:"pace"`
	Multiplier float64 `json:"multiplier"`
	Effort     string  `json:"effort"`
	Notes      string  `json:"notes"`
}

// Checkpoint is a hydration stop
type Checkpoint struct {
	Km             float64 `json:"km"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
	Time           string  `json:"time"`
	Fluid          string  `json:"fluid"`
	Nutrition      string  `json:"nutrition"`
}

// EquipmentRecommendation is categorical gear advice
type EquipmentRecommendation struct {
	Shoes       string   `json:"shoes"`
	Clothing    string   `json:"clothing"`
	Accessories []string `json:"accessories"`
}

// ReportMetadata records how and when a report was generated
type ReportMetadata struct {
	GeneratedAt time.Time `json:"generated_at"`
	DistanceKm  float64   `json:"distance_km"`
	BasePace    string    `json:"base_pace"`
}

// RaceReport is the complete pre-race analysis
type RaceReport struct {
	Input                 Input                   `json:"input"`
	HealthAnalysis        HealthAnalysis          `json:"health_analysis"`
	TimeEstimate          TimeEstimate            `json:"time_estimate"`
	SegmentStrategy       []Segment               `json:"segment_strategy"`
	HydrationPlan         []Checkpoint            `json:"hydration_plan"`
	Equipment             EquipmentRecommendation `json:"equipment"`
	PerformanceComparison PerformanceComparison   `json:"performance_comparison"`
	Metadata              ReportMetadata          `json:"metadata"`
}

// PostRaceResult compares an actual finish against the realistic estimate
type PostRaceResult struct {
	EstimatedTime        string    `json:"estimated_time"`
	ActualTime           string    `json:"actual_time"`
	Difference           string    `json:"difference"`
	DifferenceSeconds    float64   `json:"difference_seconds"`
	WasFaster            bool      `json:"was_faster"`
	DifferencePercentage float64   `json:"difference_percentage"`
	EstimatedPace        string    `json:"estimated_pace"`
	ActualPace           string    `json:"actual_pace"`
	Feedback             string    `json:"feedback"`
	GeneratedAt          time.Time `json:"generated_at"`
}
