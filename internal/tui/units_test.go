package tui

import (
	"math"
	"testing"

	"raceprep/internal/config"
)

func TestUnits(t *testing.T) {
	km := NewUnits(config.DisplayConfig{DistanceUnit: "km"})
	mi := NewUnits(config.DisplayConfig{DistanceUnit: "mi"})

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"km distance", km.FormatDistance(21.0975), "21.1 km"},
		{"mi distance", mi.FormatDistance(42.195), "26.2 mi"},
		{"km pace", km.FormatPace("5:00"), "5:00/km"},
		{"mi pace", mi.FormatPace("5:00"), "8:03/mi"},
		{"blank pace", km.FormatPace(""), "-"},
		{"pace seconds", km.FormatPaceSeconds(330), "5:30/km"},
		{"zero pace seconds", mi.FormatPaceSeconds(0), "-"},
		{"km label", km.PaceLabel(), "min/km"},
		{"mi label", mi.PaceLabel(), "min/mi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestConvertPaceSeries(t *testing.T) {
	series := []float64{5, 6}

	km := NewUnits(config.DisplayConfig{DistanceUnit: "km"})
	if got := km.ConvertPaceSeries(series); got[0] != 5 || got[1] != 6 {
		t.Errorf("km series = %v, want unchanged", got)
	}

	mi := NewUnits(config.DisplayConfig{DistanceUnit: "mi"})
	got := mi.ConvertPaceSeries(series)
	if math.Abs(got[0]-8.04672) > 1e-9 {
		t.Errorf("mi series[0] = %v, want 8.04672", got[0])
	}
	if series[0] != 5 {
		t.Error("ConvertPaceSeries modified its input")
	}
}
