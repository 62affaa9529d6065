// Package analyze implements the heuristic analyzers. Each analyzer is a
// pure function of collected data (plus the label registry or a price feed
// where stated); an analyzer never fails, it returns its documented
// empty/insufficient-data result instead.
package analyze

import "math"

// mean returns the arithmetic mean, 0 for empty input.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stddev returns the population standard deviation around m.
func stddev(values []float64, m float64) float64 {
	if len(values) == 0 {
		return 0
	}
	variance := 0.0
	for _, v := range values {
		diff := v - m
		variance += diff * diff
	}
	return math.Sqrt(variance / float64(len(values)))
}

// normalizedEntropy computes Shannon entropy over a distribution of
// non-negative weights, normalized to [0,1] by the maximum log2(n).
// Returns 0 for fewer than two positive weights.
func normalizedEntropy(weights []float64) float64 {
	total := 0.0
	positive := 0
	for _, w := range weights {
		if w > 0 {
			total += w
			positive++
		}
	}
	if positive < 2 || total == 0 {
		return 0
	}

	entropy := 0.0
	for _, w := range weights {
		if w <= 0 {
			continue
		}
		p := w / total
		entropy -= p * math.Log2(p)
	}
	return entropy / math.Log2(float64(positive))
}

// longestWrappedRun finds the longest contiguous run within a set of hours
// 0-23, treating the range as circular so a run may cross midnight.
// Returns the run's start hour and length; length 0 for an empty set.
func longestWrappedRun(hours []int) (start, length int) {
	if len(hours) == 0 {
		return 0, 0
	}
	present := make(map[int]bool, len(hours))
	for _, h := range hours {
		present[h] = true
	}

	bestStart, bestLen := hours[0], 1
	for _, h := range hours {
		runLen := 1
		for step := 1; step < 24; step++ {
			if !present[(h+step)%24] {
				break
			}
			runLen++
		}
		if runLen > bestLen {
			bestStart, bestLen = h, runLen
		}
	}
	return bestStart, bestLen
}
