package store

import (
	"bytes"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"raceprep/internal/analysis"
)

// StoredReport is a generated report with its storage identifier
type StoredReport struct {
	ID     string               `json:"id"`
	Report *analysis.RaceReport `json:"report"`
}

// ReportSummary is one row of the report history
type ReportSummary struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generated_at"`
	RaceName    string    `json:"race_name"`
	DistanceKm  float64   `json:"distance_km"`
	Realistic   string    `json:"realistic"`
	RiskLevel   string    `json:"risk_level"`
	HasPostRace bool      `json:"has_post_race"`
}

// encodePayload serializes a value as msgpack keyed by its json tags
func encodePayload(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodePayload(data []byte, v any) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	return dec.Decode(v)
}
