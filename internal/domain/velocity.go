package domain

// ActivityTrend compares first-half against second-half transaction rate.
type ActivityTrend string

const (
	TrendIncreasing ActivityTrend = "increasing"
	TrendDecreasing ActivityTrend = "decreasing"
	TrendStable     ActivityTrend = "stable"
)

// ActivityLevel buckets the trailing-7-day transaction count.
type ActivityLevel string

const (
	ActivityHigh    ActivityLevel = "high"
	ActivityMedium  ActivityLevel = "medium"
	ActivityLow     ActivityLevel = "low"
	ActivityDormant ActivityLevel = "dormant"
)

// VelocityProfile is the Transaction-Velocity Analyzer output.
type VelocityProfile struct {
	AvgTxPerDay         float64       `json:"avgTxPerDay"`
	AvgTxPerWeek        float64       `json:"avgTxPerWeek"`
	PeakActivityPeriod  string        `json:"peakActivityPeriod,omitempty"`
	Trend               ActivityTrend `json:"trend"`
	Bursty              bool          `json:"bursty"`
	LongestGapDays      int           `json:"longestGapDays"`
	RecentActivityLevel ActivityLevel `json:"recentActivityLevel"`
}
