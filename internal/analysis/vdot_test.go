package analysis

import (
	"math"
	"testing"
)

func TestCalculateVDOT(t *testing.T) {
	tests := []struct {
		name            string
		distanceKm      float64
		durationSeconds int
		wantVDOT        float64
		tolerance       float64
	}{
		{
			name:            "5K at 19:00 (VDOT ~50)",
			distanceKm:      Distance5K,
			durationSeconds: 1140,
			wantVDOT:        50.0,
			tolerance:       0.1,
		},
		{
			name:            "5K at 23:42 (VDOT ~40)",
			distanceKm:      Distance5K,
			durationSeconds: 1422,
			wantVDOT:        40.0,
			tolerance:       0.1,
		},
		{
			name:            "10K at 39:24 (VDOT ~50)",
			distanceKm:      Distance10K,
			durationSeconds: 2364,
			wantVDOT:        50.0,
			tolerance:       0.1,
		},
		{
			name:            "half marathon at 1:25:00 (VDOT ~50)",
			distanceKm:      DistanceHalfMara,
			durationSeconds: 5100,
			wantVDOT:        50.0,
			tolerance:       0.1,
		},
		{
			name:            "marathon at 2:24:24 (VDOT ~60)",
			distanceKm:      DistanceMarathon,
			durationSeconds: 8664,
			wantVDOT:        60.0,
			tolerance:       0.1,
		},
		{
			name:            "elite 5K at 13:06 (VDOT ~75)",
			distanceKm:      Distance5K,
			durationSeconds: 786,
			wantVDOT:        75.0,
			tolerance:       0.1,
		},
		{
			name:            "between rows interpolates",
			distanceKm:      Distance5K,
			durationSeconds: 1833, // halfway between VDOT 30 and 31
			wantVDOT:        30.5,
			tolerance:       0.1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateVDOT(tt.distanceKm, tt.durationSeconds)
			if math.Abs(got-tt.wantVDOT) > tt.tolerance {
				t.Errorf("CalculateVDOT() = %v, want %v (±%v)", got, tt.wantVDOT, tt.tolerance)
			}
		})
	}
}

func TestCalculateVDOT_EdgeCases(t *testing.T) {
	if got := CalculateVDOT(Distance5K, 0); got != 0 {
		t.Errorf("CalculateVDOT with zero duration = %v, want 0", got)
	}

	if got := CalculateVDOT(Distance5K, -100); got != 0 {
		t.Errorf("CalculateVDOT with negative duration = %v, want 0", got)
	}

	// Only the four table distances are supported
	if got := CalculateVDOT(15, 3600); got != 0 {
		t.Errorf("CalculateVDOT at 15km = %v, want 0", got)
	}

	// Clamped to the table
	if got := CalculateVDOT(Distance5K, 3600); got != 30 {
		t.Errorf("CalculateVDOT for very slow time = %v, want 30", got)
	}
	if got := CalculateVDOT(Distance5K, 600); got != 85 {
		t.Errorf("CalculateVDOT for very fast time = %v, want 85", got)
	}
}

func TestCalculateVDOT_Monotonic(t *testing.T) {
	prev := math.Inf(1)
	for seconds := 700; seconds <= 1900; seconds += 10 {
		got := CalculateVDOT(Distance5K, seconds)
		if got > prev {
			t.Fatalf("CalculateVDOT(5K, %d) = %v, higher than faster time's %v", seconds, got, prev)
		}
		prev = got
	}
}

func TestGetVDOTLabel(t *testing.T) {
	tests := []struct {
		vdot      float64
		wantLabel string
	}{
		{80, "Elite"},
		{75, "Elite"},
		{70, "Highly Competitive"},
		{65, "Highly Competitive"},
		{60, "Competitive"},
		{55, "Competitive"},
		{50, "Advanced Recreational"},
		{45, "Advanced Recreational"},
		{42, "Intermediate"},
		{38, "Intermediate"},
		{35, "Beginner"},
		{30, "Beginner"},
		{25, "Novice"},
	}

	for _, tt := range tests {
		t.Run(tt.wantLabel, func(t *testing.T) {
			got := GetVDOTLabel(tt.vdot)
			if got != tt.wantLabel {
				t.Errorf("GetVDOTLabel(%v) = %v, want %v", tt.vdot, got, tt.wantLabel)
			}
		})
	}
}
