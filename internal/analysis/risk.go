package analysis

// RiskLevel is an ordered health risk classification
type RiskLevel int

const (
	RiskLow RiskLevel = iota
	RiskMedium
	RiskHigh
)

// String returns the display name of the risk level
func (r RiskLevel) String() string {
	switch r {
	case RiskMedium:
		return "Medium"
	case RiskHigh:
		return "High"
	default:
		return "Low"
	}
}

// Raise returns the higher of r and floor. Risk never goes down.
func (r RiskLevel) Raise(floor RiskLevel) RiskLevel {
	if floor > r {
		return floor
	}
	return r
}

// MarshalText encodes the level by name so stored reports stay readable
func (r RiskLevel) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText decodes a level name; unknown names decode to Low
func (r *RiskLevel) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Medium":
		*r = RiskMedium
	case "High":
		*r = RiskHigh
	default:
		*r = RiskLow
	}
	return nil
}
