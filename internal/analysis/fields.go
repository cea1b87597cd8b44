package analysis

import (
	"math"
	"strconv"
	"strings"
)

// Form field keys of the flat input record
const (
	FieldRaceName   = "race_name"
	FieldRaceDate   = "race_date"
	FieldDistance   = "race_distance"
	FieldSurface    = "race_surface"
	FieldTempMin    = "temp_min"
	FieldTempMax    = "temp_max"
	FieldHumidity   = "humidity"
	FieldRainChance = "rain_chance"
	FieldAge        = "runner_age"
	FieldGender     = "runner_gender"
	FieldExperience = "runner_experience"
	FieldWeight     = "runner_weight"
	FieldHeight     = "runner_height"
	FieldPB5K       = "pb5k"
	FieldPB10K      = "pb10k"
	FieldPB21K      = "pb21k"
	FieldPB42K      = "pb42k"
	FieldObjective  = "objective"
	FieldTargetTime = "target_time"
)

// InputFromFields builds an Input from form fields. Blank or unparseable
// optional numbers are treated as absent; an unparseable distance becomes
// NaN so GenerateReport rejects it.
func InputFromFields(fields map[string]string) Input {
	get := func(key string) string {
		return strings.TrimSpace(fields[key])
	}

	distance, ok := parseNumber(get(FieldDistance))
	if !ok {
		distance = math.NaN()
	}

	in := Input{
		Profile: RunnerProfile{
			WeightKg:   optionalNumber(get(FieldWeight)),
			HeightM:    optionalNumber(get(FieldHeight)),
			Experience: NormalizeExperience(get(FieldExperience)),
			Gender:     get(FieldGender),
		},
		Race: RaceContext{
			Name:        get(FieldRaceName),
			Date:        get(FieldRaceDate),
			DistanceKm:  distance,
			Surface:     NormalizeSurface(get(FieldSurface)),
			TempMinC:    optionalNumber(get(FieldTempMin)),
			TempMaxC:    optionalNumber(get(FieldTempMax)),
			HumidityPct: optionalNumber(get(FieldHumidity)),
			RainChance:  optionalNumber(get(FieldRainChance)),
			Objective:   get(FieldObjective),
			TargetTime:  get(FieldTargetTime),
		},
		PersonalBests: []PersonalBest{},
	}

	if age, ok := parseNumber(get(FieldAge)); ok && age > 0 {
		years := int(age)
		in.Profile.Age = &years
	}

	for _, d := range StandardDistances {
		t := get(d.Key)
		if !hasClockText(t) {
			continue
		}
		in.PersonalBests = append(in.PersonalBests, PersonalBest{
			Key:        d.Key,
			Label:      d.Label,
			DistanceKm: d.DistanceKm,
			Time:       t,
		})
	}

	return in
}

// NormalizeExperience maps free text onto a known experience level.
// Unknown text is returned unchanged.
func NormalizeExperience(s string) string {
	for _, level := range []string{ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced} {
		if strings.EqualFold(s, level) {
			return level
		}
	}
	return s
}

// NormalizeSurface maps free text onto Road or Trail. Anything but trail is road.
func NormalizeSurface(s string) string {
	if strings.EqualFold(s, SurfaceTrail) {
		return SurfaceTrail
	}
	return SurfaceRoad
}

func parseNumber(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func optionalNumber(s string) *float64 {
	v, ok := parseNumber(s)
	if !ok {
		return nil
	}
	return &v
}
