package domain

// Concentration buckets how clustered activity is across hours of day.
type Concentration string

const (
	ConcentrationHigh   Concentration = "high"
	ConcentrationMedium Concentration = "medium"
	ConcentrationLow    Concentration = "low"
)

// InsufficientDataRange is the ActiveHourRange sentinel emitted when fewer
// than five timestamped transactions are available.
const InsufficientDataRange = "Insufficient data"

// TimeOfDayProfile is the Time-of-Day Analyzer output. Hours are UTC.
//
// The timezone fields are a coarse heuristic mapping the median peak hour
// into one of four fixed UTC-offset buckets. They are an advisory guess
// about the operator's likely region, not a measurement.
type TimeOfDayProfile struct {
	HourHistogram          [24]int       `json:"hourHistogram"`
	PeakHours              []int         `json:"peakHours"`
	ActiveHourRange        string        `json:"activeHourRange"`
	InferredTimezoneOffset *int          `json:"inferredTimezoneOffset,omitempty"`
	InferredTimezone       string        `json:"inferredTimezone,omitempty"`
	Concentration          Concentration `json:"concentration"`
}
