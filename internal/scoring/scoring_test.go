package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solana-exposure/internal/domain"
)

func recordsAged(n int, gap time.Duration, now time.Time) []domain.TransactionRecord {
	records := make([]domain.TransactionRecord, n)
	for i := range records {
		records[i] = domain.TransactionRecord{
			Signature: "sig",
			BlockTime: now.Add(-time.Duration(i) * gap).Unix(),
		}
	}
	return records
}

func TestCompute_EmptyWalletScoresLow(t *testing.T) {
	categories, overall := Compute(Input{
		WalletAge: domain.WalletAge{IsNew: true},
		Privacy:   &domain.PrivacyHygieneProfile{RiskSignals: []string{}},
		Now:       time.Now(),
	})

	require.Len(t, categories, 6)
	for _, c := range categories {
		assert.NotEmpty(t, c.Name)
		assert.NotEmpty(t, c.Description)
		assert.GreaterOrEqual(t, c.Score, 0.0)
		assert.LessOrEqual(t, c.Score, 100.0)
	}

	assert.Less(t, overall, 40)
	assert.Equal(t, domain.LevelLow, domain.LevelForScore(float64(overall)))
}

func TestWalletActivity_EstablishedBusyWallet(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	in := Input{
		Records:       recordsAged(60, 12*time.Hour, now),
		TokenBalances: make([]domain.TokenBalance, 12),
		WalletAge:     domain.WalletAge{Known: true, AgeInDays: 400},
		Now:           now,
	}

	c := WalletActivity(in)
	// 15 (age) + 35 (txs) + 30 (tokens) + 20 (recent) = 100.
	assert.Equal(t, 100.0, c.Score)
	assert.Equal(t, domain.LevelHigh, c.Level)
	assert.Contains(t, c.Signals, "Very active in past week")
	assert.Contains(t, c.Signals, "High transaction volume (60+ txs)")
}

func TestWalletActivity_NoHistory(t *testing.T) {
	c := WalletActivity(Input{Now: time.Now()})
	assert.Zero(t, c.Score)
	assert.Contains(t, c.Signals, "No transaction history (brand new wallet)")
}

func TestAddressLinkability_CEXFundingRaisesScore(t *testing.T) {
	base := Input{
		Records: make([]domain.TransactionRecord, 20),
		Now:     time.Now(),
	}
	without := AddressLinkability(base)

	funded := base
	funded.Funding = &domain.FundingAnalysis{
		HasCEXFunding:      true,
		PrimaryFundingType: domain.CounterpartyCEX,
		Sources: []domain.FundingSource{
			{Address: "cex", Type: domain.CounterpartyCEX, Amount: 5},
		},
		TotalFundingReceived: 5,
	}
	with := AddressLinkability(funded)

	assert.Equal(t, with.Score, without.Score+30)
	assert.Contains(t, with.Signals, "Funded from centralized exchange (KYC-linked)")
	assert.Contains(t, with.Signals, "Primary funding via CEX")
}

func TestSocialExposure_LinkedIdentities(t *testing.T) {
	in := Input{
		Social: domain.SocialLinks{
			Twitter:  "degen",
			SNSNames: []string{"degen.sol"},
		},
		Now: time.Now(),
	}

	c := SocialExposure(in)
	// 40 (twitter) + 30 (SNS) = 70.
	assert.Equal(t, 70.0, c.Score)
	assert.Equal(t, domain.LevelHigh, c.Level)
	assert.Contains(t, c.Signals, "X/Twitter linked: @degen")
	assert.Contains(t, c.Signals, "SNS domain: degen.sol")
}

func TestSocialExposure_NoAccounts(t *testing.T) {
	c := SocialExposure(Input{Now: time.Now()})
	assert.Zero(t, c.Score)
	assert.Contains(t, c.Signals, "No social accounts linked - low identity exposure")
}

func TestBehavioralProfiling_ConcentratedTimezone(t *testing.T) {
	offset := 0
	in := Input{
		TimeOfDay: &domain.TimeOfDayProfile{
			Concentration:          domain.ConcentrationHigh,
			ActiveHourRange:        "14:00-16:00 UTC",
			InferredTimezone:       "Europe (UTC/GMT)",
			InferredTimezoneOffset: &offset,
		},
		Now: time.Now(),
	}

	c := BehavioralProfiling(in)
	// 35 (concentration) + 15 (timezone) = 50.
	assert.Equal(t, 50.0, c.Score)
	assert.Contains(t, c.Signals, "Highly concentrated activity pattern")
	assert.Contains(t, c.Signals, "Peak activity: 14:00-16:00 UTC")
	assert.Contains(t, c.Signals, "Likely timezone: Europe (UTC/GMT)")
}

func TestBehavioralProfiling_InsufficientDataHidesPeakSignal(t *testing.T) {
	in := Input{
		TimeOfDay: &domain.TimeOfDayProfile{
			Concentration:   domain.ConcentrationLow,
			ActiveHourRange: domain.InsufficientDataRange,
		},
		Now: time.Now(),
	}

	c := BehavioralProfiling(in)
	assert.Equal(t, 10.0, c.Score)
	for _, s := range c.Signals {
		assert.NotContains(t, s, "Peak activity")
	}
}

func TestRegularIntervals(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, regularIntervals(recordsAged(25, time.Hour, now)))
	assert.False(t, regularIntervals(recordsAged(15, time.Hour, now)), "too few records")

	irregular := recordsAged(25, time.Hour, now)
	for i := range irregular {
		if i%2 == 0 {
			irregular[i].BlockTime -= int64(i * i * 600)
		}
	}
	assert.False(t, regularIntervals(irregular))
}

func TestFinancialFootprint_RangesNotRawBalances(t *testing.T) {
	in := Input{
		SOLBalance: 42,
		TokenRisk: &domain.TokenRiskAnalysis{
			RiskProfile:     domain.ProfileSpeculative,
			MemecoinCount:   2,
			StablecoinCount: 1,
		},
		Now: time.Now(),
	}

	c := FinancialFootprint(in)
	// 20 (balance) + 10 (stable) + 20 (meme) = 50.
	assert.Equal(t, 50.0, c.Score)
	assert.Contains(t, c.Signals, "Moderate holdings (10-50 SOL, est. $1K-$5K)")
	assert.Contains(t, c.Signals, "Token profile: Speculative (memecoins detected)")
	for _, s := range c.Signals {
		assert.NotContains(t, s, "42")
	}
}

func TestPrivacyHygiene_NeutralWithoutAnalyzer(t *testing.T) {
	c := PrivacyHygiene(Input{Now: time.Now()})
	assert.Equal(t, 30.0, c.Score)
	assert.Equal(t, domain.LevelLow, c.Level)
	assert.Contains(t, c.Signals, "Privacy behavior analysis pending")
}

func TestPrivacyHygiene_ReuseAndQuickMovement(t *testing.T) {
	delay := 30.0
	in := Input{
		Privacy: &domain.PrivacyHygieneProfile{
			HasPrivacyAttempts:         true,
			ImmediateReuseAfterPrivacy: true,
			AvgReceiveToSendDelay:      &delay,
			HasConsistentAmounts:       true,
			RiskSignals:                []string{"Repeated transaction amounts detected"},
		},
		Now: time.Now(),
	}

	c := PrivacyHygiene(in)
	// 45 (reuse) + 35 (delay) + 30 (amounts) clamps to 100.
	assert.Equal(t, 100.0, c.Score)
	assert.Equal(t, domain.LevelHigh, c.Level)
	assert.Contains(t, c.Signals, "Immediate reuse negates privacy benefits")
	assert.Contains(t, c.Signals, "Funds moved within 1 minute of receiving")
	assert.Contains(t, c.Signals, "Repeated transaction amounts detected")
}

func TestPrivacyHygiene_CleanWalletGetsFloor(t *testing.T) {
	c := PrivacyHygiene(Input{
		Privacy: &domain.PrivacyHygieneProfile{RiskSignals: []string{}},
		Now:     time.Now(),
	})
	assert.Equal(t, 15.0, c.Score)
	assert.Contains(t, c.Signals, "No obvious privacy concerns detected")
}

func TestCompute_OverallWeightedSum(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	delay := 30.0
	in := Input{
		Records:       recordsAged(60, 2*time.Hour, now),
		TokenBalances: make([]domain.TokenBalance, 12),
		SOLBalance:    50,
		WalletAge:     domain.WalletAge{Known: true, AgeInDays: 400},
		Social:        domain.SocialLinks{Twitter: "degen"},
		Funding: &domain.FundingAnalysis{
			HasCEXFunding:        true,
			TotalFundingReceived: 20,
		},
		Privacy: &domain.PrivacyHygieneProfile{
			HasPrivacyAttempts:         true,
			ImmediateReuseAfterPrivacy: true,
			AvgReceiveToSendDelay:      &delay,
		},
		Now: now,
	}

	categories, overall := Compute(in)
	require.Len(t, categories, 6)
	assert.Equal(t, domain.OverallScore(categories), overall)
	assert.GreaterOrEqual(t, overall, 40, "heavily exposed wallet must not score Low")
}
