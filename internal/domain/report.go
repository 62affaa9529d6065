package domain

import "time"

// WalletAge describes how long the wallet has been active.
type WalletAge struct {
	FirstTxTime int64 `json:"firstTxTime"` // Unix seconds, 0 if no history
	AgeInDays   int   `json:"ageInDays"`
	IsNew       bool  `json:"isNew"` // less than 30 days old
	Known       bool  `json:"known"` // false when no timestamped history exists
}

// SocialLinks is the identity surface resolved by external integrations.
// All fields are optional; an empty value means nothing was found.
type SocialLinks struct {
	Twitter   string   `json:"twitter,omitempty"`
	Discord   string   `json:"discord,omitempty"`
	Telegram  string   `json:"telegram,omitempty"`
	GitHub    string   `json:"github,omitempty"`
	Backpack  string   `json:"backpack,omitempty"`
	Farcaster string   `json:"farcaster,omitempty"`
	SNSNames  []string `json:"snsNames,omitempty"`
	Domains   []string `json:"domains,omitempty"`
}

// Count returns the number of linked identities.
func (s SocialLinks) Count() int {
	n := len(s.SNSNames) + len(s.Domains)
	for _, v := range []string{s.Twitter, s.Discord, s.Telegram, s.GitHub, s.Backpack, s.Farcaster} {
		if v != "" {
			n++
		}
	}
	return n
}

// ExposureReport is the single immutable result of one analysis run.
// Cached is set only by the report store when serving a stored copy.
type ExposureReport struct {
	Address      string          `json:"address"`
	OverallScore int             `json:"overallScore"`
	OverallLevel RiskLevel       `json:"overallLevel"`
	Categories   []CategoryScore `json:"categories"`
	AnalyzedAt   time.Time       `json:"analyzedAt"`

	TxCount    int       `json:"txCount"`
	TokenCount int       `json:"tokenCount"`
	SOLBalance float64   `json:"solBalance"`
	WalletAge  WalletAge `json:"walletAge"`

	SocialLinks    SocialLinks            `json:"socialLinks"`
	Counterparties []CounterpartyRecord   `json:"counterparties,omitempty"`
	Funding        *FundingAnalysis       `json:"fundingAnalysis,omitempty"`
	TimeOfDay      *TimeOfDayProfile      `json:"timeOfDayAnalysis,omitempty"`
	TokenRisk      *TokenRiskAnalysis     `json:"tokenRiskAnalysis,omitempty"`
	Velocity       *VelocityProfile       `json:"transactionVelocity,omitempty"`
	Income         *IncomeBreakdown       `json:"incomeAnalysis,omitempty"`
	NetWorth       *NetWorthEstimate      `json:"netWorth,omitempty"`
	PnL            *PnLEstimate           `json:"pnlAnalysis,omitempty"`
	PrivacyHygiene *PrivacyHygieneProfile `json:"privacyHygiene,omitempty"`

	Cached bool `json:"cached"`
}
