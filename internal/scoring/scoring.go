// Package scoring converts analyzer outputs into weighted category scores
// and the overall exposure score. Each category applies an additive rule set
// clamped to [0,100]; a missing optional input degrades the category to a
// documented neutral default instead of failing the report.
package scoring

import (
	"fmt"
	"time"

	"solana-exposure/internal/domain"
)

// Category weights. They do not sum to 1; the overall score clamps the
// weighted sum before rounding.
const (
	weightWalletActivity      = 0.18
	weightAddressLinkability  = 0.22
	weightSocialExposure      = 0.15
	weightBehavioralProfiling = 0.17
	weightFinancialFootprint  = 0.18
	weightPrivacyHygiene      = 0.10
)

// Input carries everything the category scorers read. Optional analyzer
// outputs are nil when the analyzer could not run.
type Input struct {
	Records       []domain.TransactionRecord
	TokenBalances []domain.TokenBalance
	SOLBalance    float64
	WalletAge     domain.WalletAge
	Social        domain.SocialLinks

	Funding   *domain.FundingAnalysis
	TimeOfDay *domain.TimeOfDayProfile
	TokenRisk *domain.TokenRiskAnalysis
	Velocity  *domain.VelocityProfile
	Privacy   *domain.PrivacyHygieneProfile

	Now time.Time
}

// Compute runs all six category scorers and returns the categories in fixed
// order plus the rounded weighted overall score.
func Compute(in Input) ([]domain.CategoryScore, int) {
	categories := []domain.CategoryScore{
		WalletActivity(in),
		AddressLinkability(in),
		SocialExposure(in),
		BehavioralProfiling(in),
		FinancialFootprint(in),
		PrivacyHygiene(in),
	}
	return categories, domain.OverallScore(categories)
}

func finish(name string, score float64, weight float64, signals []string, description string) domain.CategoryScore {
	clamped := domain.Clamp(score)
	return domain.CategoryScore{
		Name:        name,
		Score:       clamped,
		Level:       domain.LevelForScore(clamped),
		Weight:      weight,
		Signals:     signals,
		Description: description,
	}
}

// WalletActivity scores transaction frequency, wallet age, and token
// diversity.
func WalletActivity(in Input) domain.CategoryScore {
	var signals []string
	score := 0.0

	if in.WalletAge.Known {
		switch {
		case in.WalletAge.IsNew:
			signals = append(signals, fmt.Sprintf("New wallet (%d days old)", in.WalletAge.AgeInDays))
		case in.WalletAge.AgeInDays > 365:
			score += 15
			signals = append(signals, fmt.Sprintf("Established wallet (%d+ years old)", in.WalletAge.AgeInDays/365))
		case in.WalletAge.AgeInDays > 90:
			score += 10
			signals = append(signals, fmt.Sprintf("Active wallet (%d days old)", in.WalletAge.AgeInDays))
		}
	} else {
		signals = append(signals, "No transaction history (brand new wallet)")
	}

	txCount := len(in.Records)
	switch {
	case txCount > 50:
		score += 35
		signals = append(signals, fmt.Sprintf("High transaction volume (%d+ txs)", txCount))
	case txCount > 20:
		score += 25
		signals = append(signals, fmt.Sprintf("Moderate transaction volume (%d txs)", txCount))
	case txCount > 5:
		score += 15
		signals = append(signals, fmt.Sprintf("Low transaction volume (%d txs)", txCount))
	case txCount > 0:
		signals = append(signals, fmt.Sprintf("Minimal activity (%d txs)", txCount))
	}

	tokenCount := len(in.TokenBalances)
	switch {
	case tokenCount > 10:
		score += 30
		signals = append(signals, fmt.Sprintf("Diverse token portfolio (%d tokens)", tokenCount))
	case tokenCount > 3:
		score += 20
		signals = append(signals, fmt.Sprintf("Moderate token diversity (%d tokens)", tokenCount))
	case tokenCount > 0:
		score += 10
		signals = append(signals, fmt.Sprintf("Few token holdings (%d tokens)", tokenCount))
	}

	recent := countRecent(in.Records, in.Now, 7*24*time.Hour)
	if recent > 10 {
		score += 20
		signals = append(signals, "Very active in past week")
	} else if recent > 3 {
		score += 10
		signals = append(signals, "Active in past week")
	}

	return finish("Wallet Activity", score, weightWalletActivity, signals,
		"Transaction frequency, wallet age, and token diversity create activity patterns")
}

// AddressLinkability scores how easily the wallet can be tied to other
// addresses: counterparty network size, funding provenance, and visible
// holdings.
func AddressLinkability(in Input) domain.CategoryScore {
	var signals []string
	score := 0.0

	txCount := len(in.Records)
	estimated := txCount * 7 / 10
	if estimated > txCount {
		estimated = txCount
	}
	switch {
	case estimated > 30:
		score += 35
		signals = append(signals, fmt.Sprintf("Many unique interactions (~%d addresses)", estimated))
	case estimated > 10:
		score += 25
		signals = append(signals, fmt.Sprintf("Moderate address network (~%d addresses)", estimated))
	case estimated > 0:
		score += 15
		signals = append(signals, "Limited address connections")
	}

	if f := in.Funding; f != nil {
		if f.HasCEXFunding {
			score += 30
			signals = append(signals, "Funded from centralized exchange (KYC-linked)")
		}
		if f.HasMultipleFundingSources {
			score += 15
			signals = append(signals, fmt.Sprintf("Multiple funding sources (%d addresses)", len(f.Sources)))
		}
		if f.PrimaryFundingType != "" && f.PrimaryFundingType != domain.CounterpartyWallet {
			signals = append(signals, fmt.Sprintf("Primary funding via %s", fundingTypeLabel(f.PrimaryFundingType)))
		}
		if f.TotalFundingReceived > 10 {
			score += 10
			signals = append(signals, fmt.Sprintf("%.2f SOL received from tracked sources", f.TotalFundingReceived))
		}
	}

	if len(in.TokenBalances) > 5 {
		score += 15
		signals = append(signals, "Multiple token communities linked")
	} else if len(in.TokenBalances) > 0 {
		score += 5
		signals = append(signals, "Some token community exposure")
	}

	if in.SOLBalance > 10 {
		score += 10
		signals = append(signals, "Significant SOL balance visible")
	} else if in.SOLBalance > 1 {
		score += 5
		signals = append(signals, "Moderate SOL balance")
	}

	return finish("Address Linkability", score, weightAddressLinkability, signals,
		"How easily this wallet can be linked to other addresses")
}

func fundingTypeLabel(t domain.CounterpartyType) string {
	switch t {
	case domain.CounterpartyCEX:
		return "CEX"
	case domain.CounterpartyDEX:
		return "DEX"
	case domain.CounterpartyNFT:
		return "NFT marketplace"
	case domain.CounterpartyContract:
		return "Smart contract"
	default:
		return string(t)
	}
}

// SocialExposure scores linked usernames, domains, and public identity
// surfaces.
func SocialExposure(in Input) domain.CategoryScore {
	var signals []string
	score := 0.0
	social := in.Social

	if social.Twitter != "" {
		score += 40
		signals = append(signals, fmt.Sprintf("X/Twitter linked: @%s", social.Twitter))
	}
	if social.Farcaster != "" {
		score += 35
		signals = append(signals, fmt.Sprintf("Farcaster: @%s", social.Farcaster))
	}
	if len(social.SNSNames) > 0 {
		score += 30
		signals = append(signals, fmt.Sprintf("SNS domain: %s", joinNames(social.SNSNames)))
	}
	if len(social.Domains) > 0 {
		score += 20
		signals = append(signals, fmt.Sprintf("Other domains: %s", joinNames(social.Domains)))
	}
	if social.Backpack != "" {
		score += 25
		signals = append(signals, fmt.Sprintf("Backpack username: %s", social.Backpack))
	}
	if social.Discord != "" {
		score += 20
		signals = append(signals, fmt.Sprintf("Discord linked: %s", social.Discord))
	}
	if social.Telegram != "" {
		score += 20
		signals = append(signals, fmt.Sprintf("Telegram linked: %s", social.Telegram))
	}
	if social.GitHub != "" {
		score += 15
		signals = append(signals, fmt.Sprintf("GitHub linked: %s", social.GitHub))
	}

	total := social.Count()
	if total == 0 {
		signals = append(signals, "No social accounts linked - low identity exposure")
	} else if total >= 5 {
		score += 15
		signals = append(signals, fmt.Sprintf("High social presence: %d linked accounts", total))
	}

	if in.SOLBalance > 100 {
		score += 10
		signals = append(signals, "High-value wallet likely indexed")
	}
	if len(in.TokenBalances) > 15 {
		score += 5
		signals = append(signals, "Extensive token activity may be tracked")
	}

	return finish("Social Exposure", score, weightSocialExposure, signals,
		"Social media links, usernames, and public identity exposure")
}

// BehavioralProfiling scores timing patterns and usage fingerprints.
func BehavioralProfiling(in Input) domain.CategoryScore {
	var signals []string
	score := 0.0

	if tod := in.TimeOfDay; tod != nil {
		switch tod.Concentration {
		case domain.ConcentrationHigh:
			score += 35
			signals = append(signals, "Highly concentrated activity pattern")
		case domain.ConcentrationMedium:
			score += 20
			signals = append(signals, "Moderately concentrated activity pattern")
		default:
			score += 10
			signals = append(signals, "Varied transaction timing")
		}

		if tod.ActiveHourRange != "" && tod.ActiveHourRange != domain.InsufficientDataRange {
			signals = append(signals, fmt.Sprintf("Peak activity: %s", tod.ActiveHourRange))
		}
		if tod.InferredTimezone != "" {
			score += 15
			signals = append(signals, fmt.Sprintf("Likely timezone: %s", tod.InferredTimezone))
		}
	} else if timestamped := domain.Timestamped(in.Records); len(timestamped) > 10 {
		unique := make(map[int]struct{})
		for _, r := range timestamped {
			unique[time.Unix(r.BlockTime, 0).UTC().Hour()] = struct{}{}
		}
		switch {
		case len(unique) < 8:
			score += 35
			signals = append(signals, "Consistent timezone pattern detected")
		case len(unique) < 16:
			score += 20
			signals = append(signals, "Some time-of-day patterns visible")
		default:
			score += 10
			signals = append(signals, "Varied transaction timing")
		}
	}

	mints := make(map[string]struct{})
	for _, t := range in.TokenBalances {
		mints[t.Mint] = struct{}{}
	}
	if len(mints) > 10 {
		score += 30
		signals = append(signals, "Diverse protocol usage fingerprint")
	} else if len(mints) > 3 {
		score += 15
		signals = append(signals, "Moderate protocol interaction")
	}

	if regularIntervals(in.Records) {
		score += 15
		signals = append(signals, "Regular transaction interval pattern")
	}

	if v := in.Velocity; v != nil {
		switch v.RecentActivityLevel {
		case domain.ActivityHigh:
			score += 15
			signals = append(signals, fmt.Sprintf("High recent activity (%.1f tx/day avg)", v.AvgTxPerDay))
		case domain.ActivityMedium:
			score += 10
			signals = append(signals, fmt.Sprintf("Moderate activity (%.1f tx/day avg)", v.AvgTxPerDay))
		case domain.ActivityDormant:
			signals = append(signals, "Dormant wallet (no recent activity)")
		}

		if v.Trend == domain.TrendIncreasing {
			score += 10
			signals = append(signals, "Increasing activity trend")
		} else if v.Trend == domain.TrendDecreasing {
			signals = append(signals, "Decreasing activity trend")
		}

		if v.Bursty {
			score += 15
			signals = append(signals, "Bursty transaction pattern (clustered activity)")
		}
		if v.PeakActivityPeriod != "" {
			signals = append(signals, fmt.Sprintf("Peak: %s", v.PeakActivityPeriod))
		}
		if v.LongestGapDays > 30 {
			signals = append(signals, fmt.Sprintf("Longest inactivity: %d days", v.LongestGapDays))
		}
	}

	return finish("Behavioral Profiling", score, weightBehavioralProfiling, signals,
		"Timing patterns and protocol usage that create behavioral fingerprints")
}

// regularIntervals reports whether the first 20 records show interval
// spacing with stddev under half the mean.
func regularIntervals(records []domain.TransactionRecord) bool {
	if len(records) <= 20 {
		return false
	}
	var intervals []float64
	limit := len(records)
	if limit > 20 {
		limit = 20
	}
	for i := 1; i < limit; i++ {
		t1, t2 := records[i-1].BlockTime, records[i].BlockTime
		if t1 > 0 && t2 > 0 {
			d := t1 - t2
			if d < 0 {
				d = -d
			}
			intervals = append(intervals, float64(d))
		}
	}
	if len(intervals) <= 5 {
		return false
	}
	avg := 0.0
	for _, v := range intervals {
		avg += v
	}
	avg /= float64(len(intervals))
	variance := 0.0
	for _, v := range intervals {
		variance += (v - avg) * (v - avg)
	}
	variance /= float64(len(intervals))
	return variance < (avg*0.5)*(avg*0.5)
}

// FinancialFootprint scores the value profile visible on-chain. Balances
// appear in the signals only as buckets.
func FinancialFootprint(in Input) domain.CategoryScore {
	var signals []string
	score := 0.0

	solRange := domain.SOLRange(in.SOLBalance)
	// Rough estimate pending a live quote: 1 SOL ~ $100.
	valueRange := domain.USDRange(in.SOLBalance * 100)

	switch {
	case in.SOLBalance > 100:
		score += 35
		signals = append(signals, fmt.Sprintf("Large holdings (%s, est. %s)", solRange, valueRange))
	case in.SOLBalance > 10:
		score += 20
		signals = append(signals, fmt.Sprintf("Moderate holdings (%s, est. %s)", solRange, valueRange))
	case in.SOLBalance > 1:
		score += 10
		signals = append(signals, fmt.Sprintf("Small holdings (%s, est. %s)", solRange, valueRange))
	default:
		signals = append(signals, fmt.Sprintf("Minimal balance (%s)", solRange))
	}

	if tr := in.TokenRisk; tr != nil {
		signals = append(signals, fmt.Sprintf("Token profile: %s", riskProfileLabel(tr.RiskProfile)))

		if tr.StablecoinCount > 0 {
			score += 10
			signals = append(signals, fmt.Sprintf("%d stablecoin(s) held", tr.StablecoinCount))
		}
		if tr.BluechipCount > 0 {
			score += 15
			signals = append(signals, fmt.Sprintf("%d blue-chip token(s)", tr.BluechipCount))
		}
		if tr.MemecoinCount > 0 {
			score += 20
			signals = append(signals, fmt.Sprintf("%d potential memecoin(s) detected", tr.MemecoinCount))
		}
		if tr.VolatileCount > 5 {
			score += 15
			signals = append(signals, "Diverse volatile token exposure")
		}
	} else {
		totalTokens := 0.0
		for _, t := range in.TokenBalances {
			totalTokens += t.UIAmount
		}
		if totalTokens > 10000 {
			score += 25
			signals = append(signals, "Large token positions visible")
		} else if totalTokens > 100 {
			score += 15
			signals = append(signals, "Moderate token positions")
		}
	}

	txCount := len(in.Records)
	if txCount > 50 {
		score += 20
		signals = append(signals, "High transaction volume trackable")
	} else if txCount > 20 {
		score += 10
		signals = append(signals, "Moderate financial activity")
	}

	return finish("Financial Footprint", score, weightFinancialFootprint, signals,
		"Value held and transaction volumes reveal financial profile")
}

func riskProfileLabel(p domain.RiskProfile) string {
	switch p {
	case domain.ProfileConservative:
		return "Conservative (mostly stablecoins)"
	case domain.ProfileBalanced:
		return "Balanced portfolio"
	case domain.ProfileAggressive:
		return "Aggressive (volatile assets)"
	case domain.ProfileSpeculative:
		return "Speculative (memecoins detected)"
	default:
		return string(p)
	}
}

// PrivacyHygiene scores privacy tool usage and fund-movement habits. With
// no analyzer data it returns a neutral 30.
func PrivacyHygiene(in Input) domain.CategoryScore {
	const description = "Privacy tool usage and transaction patterns affecting anonymity"

	privacy := in.Privacy
	if privacy == nil {
		return domain.CategoryScore{
			Name:        "Privacy Hygiene",
			Score:       30,
			Level:       domain.LevelLow,
			Weight:      weightPrivacyHygiene,
			Signals:     []string{"Privacy behavior analysis pending"},
			Description: description,
		}
	}

	var signals []string
	score := 0.0

	if privacy.HasPrivacyAttempts {
		if privacy.ImmediateReuseAfterPrivacy {
			score += 45
			signals = append(signals,
				"Privacy attempt detected but wallet reused immediately",
				"Immediate reuse negates privacy benefits")
		} else {
			score += 20
			signals = append(signals,
				fmt.Sprintf("Privacy protocol interactions: %d", privacy.PrivacyProgramInteractions),
				"Some privacy awareness detected")
		}
	}

	if delay := privacy.AvgReceiveToSendDelay; delay != nil {
		switch {
		case *delay < 60:
			score += 35
			signals = append(signals, "Funds moved within 1 minute of receiving")
		case *delay < 300:
			score += 25
			signals = append(signals, "Funds typically moved within 5 minutes")
		case *delay < 3600:
			score += 15
			signals = append(signals, "Some delay between receiving and sending")
		default:
			score += 5
			signals = append(signals, "Good timing separation between transactions")
		}
	}

	if privacy.HasConsistentAmounts {
		score += 30
		signals = append(signals, "Repeated transaction amounts create linkability")
	}

	for _, signal := range privacy.RiskSignals {
		if !containsString(signals, signal) {
			signals = append(signals, signal)
		}
	}

	if len(signals) == 0 || score == 0 {
		signals = append(signals, "No obvious privacy concerns detected")
		score = 15
	}

	return finish("Privacy Hygiene", score, weightPrivacyHygiene, signals, description)
}

func countRecent(records []domain.TransactionRecord, now time.Time, window time.Duration) int {
	cutoff := now.Add(-window).Unix()
	n := 0
	for _, r := range records {
		if r.BlockTime > 0 && r.BlockTime > cutoff {
			n++
		}
	}
	return n
}

func joinNames(names []string) string {
	out := ""
	limit := len(names)
	extra := 0
	if limit > 3 {
		extra = limit - 3
		limit = 3
	}
	for i := 0; i < limit; i++ {
		if i > 0 {
			out += ", "
		}
		out += names[i]
	}
	if extra > 0 {
		out += fmt.Sprintf(" (+%d more)", extra)
	}
	return out
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
