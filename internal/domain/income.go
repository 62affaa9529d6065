package domain

// IncomeSourceType categorizes the origin of an inbound transfer.
type IncomeSourceType string

const (
	IncomeCEXDeposit    IncomeSourceType = "cex_deposit"
	IncomeDEXSwap       IncomeSourceType = "dex_swap"
	IncomeAirdrop       IncomeSourceType = "airdrop"
	IncomeStakingReward IncomeSourceType = "staking_reward"
	IncomeNFTSale       IncomeSourceType = "nft_sale"
	IncomeTransfer      IncomeSourceType = "transfer"
	IncomeContract      IncomeSourceType = "contract"
	IncomeUnknown       IncomeSourceType = "unknown"
)

// IncomeSource is one income category with its share of total inbound value.
type IncomeSource struct {
	Type       IncomeSourceType `json:"type"`
	Amount     float64          `json:"amount"` // SOL
	Count      int              `json:"count"`
	Percentage float64          `json:"percentage"`
	Label      string           `json:"label"`
}

// IncomeBreakdown is the Income-Source Analyzer output. DiversityScore is
// Shannon entropy over source amounts, normalized to [0,1]; 0 when at most
// one source type contributed.
type IncomeBreakdown struct {
	Sources        []IncomeSource   `json:"sources"`
	TotalIncome    float64          `json:"totalIncome"`
	PrimarySource  IncomeSourceType `json:"primarySource,omitempty"`
	DiversityScore float64          `json:"diversityScore"`
}
