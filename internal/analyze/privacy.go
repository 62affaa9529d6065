package analyze

import (
	"math"

	"solana-exposure/internal/domain"
	"solana-exposure/internal/labels"
)

const (
	// privacyReuseWindow flags wallet reuse this close after touching a
	// privacy protocol.
	privacyReuseWindow = 600 // seconds

	// quickMovementDelay flags average receive-to-send turnaround under
	// this threshold.
	quickMovementDelay = 300 // seconds

	// repeatedAmountRatio flags any single rounded amount covering more
	// than this share of observed transfers.
	repeatedAmountRatio = 0.3

	minTransfersForAmounts = 3
)

// PrivacyHygiene detects behavior that undermines on-chain privacy: privacy
// protocol usage followed by immediate reuse, rapid fund turnover after
// receiving, and repeated round transfer amounts.
func PrivacyHygiene(subject domain.Address, parsed []domain.ParsedTransaction, reg *labels.Registry) domain.PrivacyHygieneProfile {
	result := domain.PrivacyHygieneProfile{RiskSignals: []string{}}
	if len(parsed) < 2 {
		return result
	}

	subjectStr := subject.String()

	var privacyTimes []int64
	var transferAmounts []float64
	var receiveTimes, sendTimes []int64

	for _, tx := range parsed {
		for _, key := range tx.AccountKeys {
			if reg.IsPrivacyProgram(key) {
				result.PrivacyProgramInteractions++
				result.HasPrivacyAttempts = true
				privacyTimes = append(privacyTimes, tx.BlockTime)
				result.RiskSignals = append(result.RiskSignals, "Privacy protocol interaction detected")
				break
			}
		}

		for _, inst := range tx.Instructions {
			t := inst.Transfer
			if t == nil || t.Mint != "" || t.Amount <= 0 {
				continue
			}
			transferAmounts = append(transferAmounts, t.Amount)
			if t.Destination == subjectStr {
				receiveTimes = append(receiveTimes, tx.BlockTime)
			} else if t.Source == subjectStr {
				sendTimes = append(sendTimes, tx.BlockTime)
			}
		}
	}

	if len(receiveTimes) > 0 && len(sendTimes) > 0 {
		var delays []float64
		for _, recv := range receiveTimes {
			if next, ok := nextAfter(sendTimes, recv); ok {
				delays = append(delays, float64(next-recv))
			}
		}
		if len(delays) > 0 {
			avg := mean(delays)
			result.AvgReceiveToSendDelay = &avg
			if avg < quickMovementDelay {
				result.RiskSignals = append(result.RiskSignals, "Very quick fund movement after receiving")
			}
		}
	}

	if len(privacyTimes) > 0 {
		all := timestampsOf(parsed)
		for _, pt := range privacyTimes {
			if pt == 0 {
				continue
			}
			for _, t := range all {
				if t == 0 || t == pt {
					continue
				}
				if abs64(t-pt) < privacyReuseWindow {
					result.ImmediateReuseAfterPrivacy = true
					break
				}
			}
			if result.ImmediateReuseAfterPrivacy {
				result.RiskSignals = append(result.RiskSignals, "Wallet reused immediately after privacy attempt")
				break
			}
		}
	}

	if len(transferAmounts) >= minTransfersForAmounts {
		counts := make(map[float64]int)
		for _, a := range transferAmounts {
			rounded := math.Round(a*100) / 100
			counts[rounded]++
		}
		for _, count := range counts {
			if float64(count)/float64(len(transferAmounts)) > repeatedAmountRatio {
				result.HasConsistentAmounts = true
				result.RiskSignals = append(result.RiskSignals, "Repeated transaction amounts detected")
				break
			}
		}
	}

	return result
}

// nextAfter returns the earliest value in times strictly after t.
func nextAfter(times []int64, t int64) (int64, bool) {
	best := int64(0)
	found := false
	for _, v := range times {
		if v > t && (!found || v < best) {
			best = v
			found = true
		}
	}
	return best, found
}

func timestampsOf(parsed []domain.ParsedTransaction) []int64 {
	out := make([]int64, 0, len(parsed))
	for _, tx := range parsed {
		out = append(out, tx.BlockTime)
	}
	return out
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
