package analyze

import (
	"context"
	"sort"

	"solana-exposure/internal/domain"
	"solana-exposure/internal/prices"
)

// NetWorth values the wallet's SOL balance and token holdings at spot
// prices. A failed SOL price lookup leaves TotalValueUSD nil; a mint with no
// quote keeps a nil ValueUSD without affecting the token aggregate.
func NetWorth(ctx context.Context, solBalance float64, balances []domain.TokenBalance, risk *domain.TokenRiskAnalysis, feed prices.Feed) domain.NetWorthEstimate {
	result := domain.NetWorthEstimate{
		ValueRange:  "Unknown",
		TokenValues: []domain.TokenValue{},
	}

	solPrice, solErr := feed.SolPrice(ctx)
	if solErr == nil && solPrice > 0 {
		v := solBalance * solPrice
		result.SOLValueUSD = &v
	}

	mints := make([]string, len(balances))
	for i, b := range balances {
		mints[i] = b.Mint
	}
	quotes, err := feed.TokenPrices(ctx, mints)
	if err != nil {
		quotes = nil
	}

	totalTokenValue := 0.0
	for _, b := range balances {
		tv := domain.TokenValue{
			Mint:     b.Mint,
			Symbol:   shortSymbol(b.Mint),
			Amount:   b.UIAmount,
			Category: categoryFor(risk, b.Mint),
		}
		if price, ok := quotes[b.Mint]; ok {
			p := price
			v := b.UIAmount * price
			tv.PriceUSD = &p
			tv.ValueUSD = &v
			totalTokenValue += v
		}
		result.TokenValues = append(result.TokenValues, tv)
	}
	result.TokenValueUSD = &totalTokenValue

	if result.SOLValueUSD != nil {
		total := *result.SOLValueUSD + totalTokenValue
		result.TotalValueUSD = &total
		result.ValueRange = domain.USDRange(total)
	}

	sort.SliceStable(result.TokenValues, func(i, j int) bool {
		return derefOrZero(result.TokenValues[i].ValueUSD) > derefOrZero(result.TokenValues[j].ValueUSD)
	})

	return result
}

// shortSymbol stands in for metadata-resolved symbols, which would need a
// separate registry lookup per mint.
func shortSymbol(mint string) string {
	if len(mint) <= 4 {
		return mint
	}
	return mint[:4] + "..."
}

func derefOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
