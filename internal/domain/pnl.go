package domain

// TokenPnL is the per-token profit/loss estimate for a traded mint.
//
// UnrealizedPnL values the current holding at spot price. RealizedPnL stays
// nil: a true realized figure needs per-trade cost basis, which cannot be
// reconstructed reliably from transfer instructions alone.
type TokenPnL struct {
	Mint           string        `json:"mint"`
	Symbol         string        `json:"symbol"`
	Category       TokenCategory `json:"category"`
	TotalBought    float64       `json:"totalBought"`
	TotalSold      float64       `json:"totalSold"`
	CurrentHolding float64       `json:"currentHolding"`
	CurrentPrice   *float64      `json:"currentPrice"`
	RealizedPnL    *float64      `json:"realizedPnL"`
	UnrealizedPnL  *float64      `json:"unrealizedPnL"`
	TotalPnL       *float64      `json:"totalPnL"`
}

// PnLEstimate is the P&L Analyzer output, restricted to memecoin and
// volatile holdings.
type PnLEstimate struct {
	Tokens             []TokenPnL `json:"tokens"`
	TotalRealizedPnL   *float64   `json:"totalRealizedPnL"`
	TotalUnrealizedPnL *float64   `json:"totalUnrealizedPnL"`
	TotalPnL           *float64   `json:"totalPnL"`
	WinCount           int        `json:"winCount"`
	LossCount          int        `json:"lossCount"`
	BiggestWin         *TokenPnL  `json:"biggestWin"`
	BiggestLoss        *TokenPnL  `json:"biggestLoss"`
}
