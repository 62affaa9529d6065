package domain

// TokenBalance is a positive SPL token holding of the analyzed wallet.
type TokenBalance struct {
	Mint      string  `json:"mint"`
	RawAmount uint64  `json:"rawAmount"`
	Decimals  int     `json:"decimals"`
	UIAmount  float64 `json:"uiAmount"`
}

// TokenCategory classifies a held token by risk.
type TokenCategory string

const (
	TokenStablecoin TokenCategory = "stablecoin"
	TokenBluechip   TokenCategory = "bluechip"
	TokenVolatile   TokenCategory = "volatile"
	TokenMemecoin   TokenCategory = "memecoin"
	TokenUnknown    TokenCategory = "unknown"
)

// TokenClassification assigns exactly one category to a held mint.
type TokenClassification struct {
	Mint     string        `json:"mint"`
	Category TokenCategory `json:"category"`
}

// RiskProfile summarizes the portfolio composition.
type RiskProfile string

const (
	ProfileConservative RiskProfile = "conservative"
	ProfileBalanced     RiskProfile = "balanced"
	ProfileAggressive   RiskProfile = "aggressive"
	ProfileSpeculative  RiskProfile = "speculative"
)

// TokenRiskAnalysis is the Token-Risk Classifier output. Category counts
// always sum to len(Classifications).
type TokenRiskAnalysis struct {
	Classifications []TokenClassification `json:"classifications"`
	StablecoinCount int                   `json:"stablecoinCount"`
	BluechipCount   int                   `json:"bluechipCount"`
	VolatileCount   int                   `json:"volatileCount"`
	MemecoinCount   int                   `json:"memecoinCount"`
	StablecoinRatio float64               `json:"stablecoinRatio"`
	RiskProfile     RiskProfile           `json:"riskProfile"`
}
