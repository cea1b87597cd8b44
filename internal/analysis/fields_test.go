package analysis

import (
	"math"
	"testing"
)

func TestInputFromFields(t *testing.T) {
	in := InputFromFields(map[string]string{
		FieldRaceName:   " City Half ",
		FieldDistance:   "21,0975",
		FieldSurface:    "trail",
		FieldTempMax:    "27.5",
		FieldHumidity:   "",
		FieldAge:        "41.9",
		FieldExperience: "beginner",
		FieldWeight:     "68",
		FieldHeight:     "1.72",
		FieldPB5K:       "22:10",
		FieldPB10K:      "46",
		FieldPB42K:      "3:55:00",
		FieldTargetTime: "1:45:00",
	})

	if in.Race.Name != "City Half" {
		t.Errorf("Name = %q, want trimmed", in.Race.Name)
	}
	if in.Race.DistanceKm != 21.0975 {
		t.Errorf("DistanceKm = %v, want 21.0975", in.Race.DistanceKm)
	}
	if in.Race.Surface != SurfaceTrail {
		t.Errorf("Surface = %q, want %q", in.Race.Surface, SurfaceTrail)
	}
	if in.Race.TempMaxC == nil || *in.Race.TempMaxC != 27.5 {
		t.Errorf("TempMaxC = %v, want 27.5", in.Race.TempMaxC)
	}
	if in.Race.HumidityPct != nil {
		t.Errorf("HumidityPct = %v, want nil for blank", *in.Race.HumidityPct)
	}
	if in.Race.Humidity() != DefaultHumidityPct {
		t.Errorf("Humidity() = %v, want default", in.Race.Humidity())
	}
	if in.Profile.Age == nil || *in.Profile.Age != 41 {
		t.Errorf("Age = %v, want 41", in.Profile.Age)
	}
	if in.Profile.Experience != ExperienceBeginner {
		t.Errorf("Experience = %q, want %q", in.Profile.Experience, ExperienceBeginner)
	}

	// "46" has no clock separator and is ignored
	if len(in.PersonalBests) != 2 {
		t.Fatalf("PersonalBests = %+v, want 5K and 42K", in.PersonalBests)
	}
	if in.PersonalBests[0].Key != FieldPB5K || in.PersonalBests[1].Key != FieldPB42K {
		t.Errorf("PersonalBests order = %s, %s", in.PersonalBests[0].Key, in.PersonalBests[1].Key)
	}
	if in.PersonalBests[1].DistanceKm != DistanceMarathon {
		t.Errorf("42K distance = %v, want %v", in.PersonalBests[1].DistanceKm, DistanceMarathon)
	}
}

func TestInputFromFields_BadDistance(t *testing.T) {
	for _, text := range []string{"", "far", "ten"} {
		in := InputFromFields(map[string]string{FieldDistance: text})
		if !math.IsNaN(in.Race.DistanceKm) {
			t.Errorf("distance %q = %v, want NaN", text, in.Race.DistanceKm)
		}
		if err := ValidateDistance(in.Race.DistanceKm); err == nil {
			t.Errorf("ValidateDistance(%q) = nil, want error", text)
		}
	}
}

func TestInputFromFields_ExplicitZeroTemperature(t *testing.T) {
	in := InputFromFields(map[string]string{FieldDistance: "10", FieldTempMax: "0"})

	if in.Race.TempMaxC == nil {
		t.Fatal("TempMaxC = nil, want explicit 0")
	}
	if got := in.Race.Temperature(); got != 0 {
		t.Errorf("Temperature() = %v, want 0", got)
	}
}

func TestInputFromFields_NonPositiveAgeIgnored(t *testing.T) {
	for _, text := range []string{"0", "-3", "old"} {
		in := InputFromFields(map[string]string{FieldAge: text})
		if in.Profile.Age != nil {
			t.Errorf("age %q = %v, want nil", text, *in.Profile.Age)
		}
	}
}

func TestNormalizeSurface(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Trail", SurfaceTrail},
		{"TRAIL", SurfaceTrail},
		{"road", SurfaceRoad},
		{"", SurfaceRoad},
		{"track", SurfaceRoad},
	}

	for _, tt := range tests {
		if got := NormalizeSurface(tt.in); got != tt.want {
			t.Errorf("NormalizeSurface(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeExperience(t *testing.T) {
	if got := NormalizeExperience("ADVANCED"); got != ExperienceAdvanced {
		t.Errorf("NormalizeExperience(ADVANCED) = %q", got)
	}
	if got := NormalizeExperience("elite"); got != "elite" {
		t.Errorf("NormalizeExperience(elite) = %q, want unchanged", got)
	}
}
