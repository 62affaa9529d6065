package domain

// FundingSource is one unique address that sent SOL to the wallet.
// Amount accumulates across transfers; Timestamp keeps the earliest seen.
type FundingSource struct {
	Address          string           `json:"address"`
	Type             CounterpartyType `json:"type"`
	Amount           float64          `json:"amount"` // cumulative SOL
	Timestamp        int64            `json:"timestamp"`
	IsInitialFunding bool             `json:"isInitialFunding"`
}

// FundingAnalysis is the Funding-Source Analyzer output.
// Sources are ordered by earliest timestamp and capped at 10 entries.
type FundingAnalysis struct {
	Sources                   []FundingSource  `json:"sources"`
	PrimaryFundingType        CounterpartyType `json:"primaryFundingType,omitempty"`
	HasCEXFunding             bool             `json:"hasCexFunding"`
	HasMultipleFundingSources bool             `json:"hasMultipleFundingSources"`
	TotalFundingReceived      float64          `json:"totalFundingReceived"`
}
