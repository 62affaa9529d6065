package analyze

import (
	"fmt"
	"sort"
	"time"

	"solana-exposure/internal/domain"
)

// minTimestampedTxs is the minimum sample for a time-of-day profile.
const minTimestampedTxs = 5

// peakHourCount is how many top hours form the peak set.
const peakHourCount = 5

// TimeOfDay profiles when the wallet is active across UTC hours. Fewer than
// five timestamped transactions yield the insufficient-data sentinel.
//
// The timezone inference is a coarse four-bucket heuristic over the median
// peak hour and is advisory only.
func TimeOfDay(records []domain.TransactionRecord) domain.TimeOfDayProfile {
	profile := domain.TimeOfDayProfile{Concentration: domain.ConcentrationLow}

	timestamped := domain.Timestamped(records)
	if len(timestamped) < minTimestampedTxs {
		profile.ActiveHourRange = domain.InsufficientDataRange
		return profile
	}

	for _, r := range timestamped {
		hour := time.Unix(r.BlockTime, 0).UTC().Hour()
		profile.HourHistogram[hour]++
	}

	total := len(timestamped)
	avgPerHour := float64(total) / 24
	peakThreshold := avgPerHour * 1.5

	type hourCount struct{ hour, count int }
	counts := make([]hourCount, 24)
	for h, c := range profile.HourHistogram {
		counts[h] = hourCount{hour: h, count: c}
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].hour < counts[j].hour
	})

	top5Sum := 0
	for i := 0; i < peakHourCount; i++ {
		top5Sum += counts[i].count
		if counts[i].count > 0 {
			profile.PeakHours = append(profile.PeakHours, counts[i].hour)
		}
	}

	ratio := float64(top5Sum) / float64(total)
	switch {
	case ratio > 0.7:
		profile.Concentration = domain.ConcentrationHigh
	case ratio > 0.5:
		profile.Concentration = domain.ConcentrationMedium
	default:
		profile.Concentration = domain.ConcentrationLow
	}

	// Active range: longest contiguous (midnight-wrapping) run of hours at
	// or above the peak threshold; fall back to the span of peak hours.
	var activeHours []int
	for h, c := range profile.HourHistogram {
		if float64(c) >= peakThreshold {
			activeHours = append(activeHours, h)
		}
	}
	if len(activeHours) > 0 {
		start, length := longestWrappedRun(activeHours)
		profile.ActiveHourRange = fmt.Sprintf("%02d:00-%02d:00 UTC", start, (start+length)%24)
	} else if len(profile.PeakHours) > 0 {
		minHour, maxHour := profile.PeakHours[0], profile.PeakHours[0]
		for _, h := range profile.PeakHours {
			if h < minHour {
				minHour = h
			}
			if h > maxHour {
				maxHour = h
			}
		}
		profile.ActiveHourRange = fmt.Sprintf("%02d:00-%02d:00 UTC", minHour, maxHour)
	}

	if len(profile.PeakHours) > 0 {
		offset, name := inferTimezone(profile.PeakHours)
		profile.InferredTimezoneOffset = &offset
		profile.InferredTimezone = name
	}

	return profile
}

// inferTimezone maps the median peak hour into one of four fixed UTC-offset
// buckets, assuming activity during local waking hours.
func inferTimezone(peakHours []int) (int, string) {
	sorted := append([]int(nil), peakHours...)
	sort.Ints(sorted)
	median := sorted[len(sorted)/2]

	switch {
	case median >= 1 && median <= 7:
		return 8, "Asia/Pacific (UTC+8)"
	case median >= 8 && median <= 14:
		return 0, "Europe (UTC/GMT)"
	case median >= 15 && median <= 20:
		return -5, "US East Coast (EST/EDT)"
	default:
		return -8, "US West Coast (PST/PDT)"
	}
}
