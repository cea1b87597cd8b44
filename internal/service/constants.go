package service

const (
	// HistoryLimit caps the report history shown to the runner
	HistoryLimit = 20

	// DefaultObjective is the goal assumed when none is chosen
	DefaultObjective = "Target Time"

	// Kilometers per mile, for display only
	KmPerMile = 1.609344
)
