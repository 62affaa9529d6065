package analyze

import (
	"sort"
	"time"

	"solana-exposure/internal/domain"
)

// Velocity derives transaction-rate metrics and burst/trend flags from the
// wallet's history. Age supplies the denominator for per-day averages.
func Velocity(records []domain.TransactionRecord, age domain.WalletAge, now time.Time) domain.VelocityProfile {
	result := domain.VelocityProfile{
		Trend:               domain.TrendStable,
		RecentActivityLevel: domain.ActivityDormant,
	}
	if len(records) == 0 {
		return result
	}

	timestamped := domain.Timestamped(records)
	if len(timestamped) < 2 {
		result.AvgTxPerDay = float64(len(records))
		result.AvgTxPerWeek = float64(len(records))
		result.RecentActivityLevel = domain.ActivityLow
		return result
	}

	effectiveDays := age.AgeInDays
	if effectiveDays < 1 {
		effectiveDays = 1
	}
	result.AvgTxPerDay = float64(len(records)) / float64(effectiveDays)
	result.AvgTxPerWeek = result.AvgTxPerDay * 7

	nowSec := now.Unix()
	weekAgo := nowSec - 7*24*60*60
	monthAgo := nowSec - 30*24*60*60

	recentCount, monthCount := 0, 0
	for _, r := range timestamped {
		if r.BlockTime > weekAgo {
			recentCount++
		}
		if r.BlockTime > monthAgo {
			monthCount++
		}
	}

	switch {
	case recentCount > 20:
		result.RecentActivityLevel = domain.ActivityHigh
	case recentCount > 5:
		result.RecentActivityLevel = domain.ActivityMedium
	case recentCount > 0:
		result.RecentActivityLevel = domain.ActivityLow
	}

	if recentCount > 5 && float64(recentCount) >= float64(monthCount)*0.5 {
		result.PeakActivityPeriod = "Last 7 days"
	} else if float64(monthCount) > float64(len(records))*0.5 {
		result.PeakActivityPeriod = "Last 30 days"
	}

	sorted := append([]domain.TransactionRecord(nil), timestamped...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].BlockTime < sorted[j].BlockTime
	})

	// Trend: compare transaction rate of the two halves.
	if len(sorted) >= 10 {
		half := len(sorted) / 2
		firstRate := spanRate(sorted[:half])
		secondRate := spanRate(sorted[half:])
		if secondRate > firstRate*1.5 {
			result.Trend = domain.TrendIncreasing
		} else if firstRate > secondRate*1.5 {
			result.Trend = domain.TrendDecreasing
		}
	}

	gaps := make([]float64, 0, len(sorted)-1)
	maxGap := int64(0)
	shortGaps := 0
	for i := 1; i < len(sorted); i++ {
		gap := sorted[i].BlockTime - sorted[i-1].BlockTime
		gaps = append(gaps, float64(gap))
		if gap > maxGap {
			maxGap = gap
		}
		if gap < 60*60 {
			shortGaps++
		}
	}

	if len(gaps) > 0 {
		result.LongestGapDays = int(maxGap / (24 * 60 * 60))

		avgGap := mean(gaps)
		if stddev(gaps, avgGap) > avgGap {
			result.Bursty = true
		}
		// Clusters of sub-hour activity separated by long silences.
		if float64(shortGaps) > float64(len(gaps))*0.3 && result.LongestGapDays > 7 {
			result.Bursty = true
		}
	}

	return result
}

// spanRate is transactions per second over the half's covered span.
func spanRate(half []domain.TransactionRecord) float64 {
	if len(half) == 0 {
		return 0
	}
	span := half[len(half)-1].BlockTime - half[0].BlockTime
	if span <= 0 {
		span = 1
	}
	return float64(len(half)) / float64(span)
}
