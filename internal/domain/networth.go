package domain

// TokenValue is the spot valuation of a single holding. ValueUSD is nil when
// no price was available for the mint.
type TokenValue struct {
	Mint     string        `json:"mint"`
	Symbol   string        `json:"symbol"`
	Amount   float64       `json:"amount"`
	PriceUSD *float64      `json:"priceUsd"`
	ValueUSD *float64      `json:"valueUsd"`
	Category TokenCategory `json:"category"`
}

// NetWorthEstimate is the Net-Worth Analyzer output. TotalValueUSD is nil
// when the SOL price fetch failed; the estimate degrades, it never errors.
type NetWorthEstimate struct {
	TotalValueUSD *float64     `json:"totalValueUsd"`
	ValueRange    string       `json:"valueRange"`
	SOLValueUSD   *float64     `json:"solValueUsd"`
	TokenValueUSD *float64     `json:"tokenValueUsd"`
	TokenValues   []TokenValue `json:"tokenValues"`
}

// USDRange maps a USD value into a human-readable bucket.
func USDRange(usd float64) string {
	switch {
	case usd < 10:
		return "<$10"
	case usd < 100:
		return "$10-$100"
	case usd < 500:
		return "$100-$500"
	case usd < 1000:
		return "$500-$1K"
	case usd < 5000:
		return "$1K-$5K"
	case usd < 10000:
		return "$5K-$10K"
	case usd < 50000:
		return "$10K-$50K"
	case usd < 100000:
		return "$50K-$100K"
	case usd < 500000:
		return "$100K-$500K"
	case usd < 1000000:
		return "$500K-$1M"
	default:
		return "$1M+"
	}
}

// SOLRange maps a SOL amount into a human-readable bucket.
func SOLRange(sol float64) string {
	switch {
	case sol < 0.1:
		return "<0.1 SOL"
	case sol < 1:
		return "0.1-1 SOL"
	case sol < 5:
		return "1-5 SOL"
	case sol < 10:
		return "5-10 SOL"
	case sol < 50:
		return "10-50 SOL"
	case sol < 100:
		return "50-100 SOL"
	case sol < 500:
		return "100-500 SOL"
	case sol < 1000:
		return "500-1K SOL"
	default:
		return "1K+ SOL"
	}
}
