package analyze

import (
	"solana-exposure/internal/domain"
	"solana-exposure/internal/labels"
)

// Memecoin heuristic bounds for tokens outside the known sets.
const (
	memecoinMinDecimals = 9
	memecoinMinAmount   = 1_000_000
)

// ClassifyTokens assigns exactly one risk category to every held token and
// derives the portfolio risk profile. Classification is total: unknown mints
// fall into memecoin or volatile by heuristic.
func ClassifyTokens(balances []domain.TokenBalance, reg *labels.Registry) domain.TokenRiskAnalysis {
	result := domain.TokenRiskAnalysis{
		Classifications: make([]domain.TokenClassification, 0, len(balances)),
	}

	for _, token := range balances {
		var category domain.TokenCategory
		switch {
		case reg.IsStablecoin(token.Mint):
			category = domain.TokenStablecoin
			result.StablecoinCount++
		case reg.IsBluechip(token.Mint):
			category = domain.TokenBluechip
			result.BluechipCount++
		case token.Decimals >= memecoinMinDecimals && token.UIAmount > memecoinMinAmount:
			// High decimals with a huge held quantity reads as a memecoin.
			category = domain.TokenMemecoin
			result.MemecoinCount++
		default:
			category = domain.TokenVolatile
			result.VolatileCount++
		}
		result.Classifications = append(result.Classifications, domain.TokenClassification{
			Mint:     token.Mint,
			Category: category,
		})
	}

	total := len(balances)
	if total == 0 {
		total = 1
	}
	result.StablecoinRatio = float64(result.StablecoinCount) / float64(total)

	switch {
	case result.StablecoinRatio > 0.5:
		result.RiskProfile = domain.ProfileConservative
	case result.StablecoinRatio > 0.2 || result.BluechipCount > result.MemecoinCount:
		result.RiskProfile = domain.ProfileBalanced
	case result.MemecoinCount > 0 && result.MemecoinCount >= result.VolatileCount:
		result.RiskProfile = domain.ProfileSpeculative
	default:
		result.RiskProfile = domain.ProfileAggressive
	}

	return result
}

// categoryFor looks up a mint's classification, defaulting to unknown.
func categoryFor(risk *domain.TokenRiskAnalysis, mint string) domain.TokenCategory {
	if risk == nil {
		return domain.TokenUnknown
	}
	for _, c := range risk.Classifications {
		if c.Mint == mint {
			return c.Category
		}
	}
	return domain.TokenUnknown
}
