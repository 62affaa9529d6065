package analyze

import (
	"context"
	"sort"

	"solana-exposure/internal/domain"
	"solana-exposure/internal/prices"
)

// PnL estimates trading outcomes for memecoin and volatile holdings. The
// figures are an approximation: unrealized P&L values the current holding at
// spot, and realized P&L stays nil because per-trade cost basis cannot be
// reconstructed from transfer instructions alone.
func PnL(ctx context.Context, subject domain.Address, parsed []domain.ParsedTransaction, balances []domain.TokenBalance, risk *domain.TokenRiskAnalysis, feed prices.Feed) domain.PnLEstimate {
	result := domain.PnLEstimate{Tokens: []domain.TokenPnL{}}
	if len(parsed) == 0 || risk == nil {
		return result
	}

	classification := make(map[string]domain.TokenCategory, len(risk.Classifications))
	for _, c := range risk.Classifications {
		classification[c.Mint] = c.Category
	}

	targetMints := make(map[string]struct{})
	for _, b := range balances {
		switch classification[b.Mint] {
		case domain.TokenMemecoin, domain.TokenVolatile:
			targetMints[b.Mint] = struct{}{}
		}
	}
	if len(targetMints) == 0 {
		return result
	}

	subjectStr := subject.String()

	type tally struct {
		bought float64
		sold   float64
	}
	trades := make(map[string]*tally)

	for _, tx := range parsed {
		for _, inst := range tx.Instructions {
			t := inst.Transfer
			if t == nil || t.Mint == "" {
				continue
			}
			if _, ok := targetMints[t.Mint]; !ok {
				continue
			}
			if t.Amount <= 0 {
				continue
			}
			tl := trades[t.Mint]
			if tl == nil {
				tl = &tally{}
				trades[t.Mint] = tl
			}
			if t.Destination == subjectStr {
				tl.bought += t.Amount
			} else if t.Source == subjectStr || t.Authority == subjectStr {
				tl.sold += t.Amount
			}
		}
	}

	mints := make([]string, 0, len(targetMints))
	for mint := range targetMints {
		mints = append(mints, mint)
	}
	sort.Strings(mints)
	quotes, err := feed.TokenPrices(ctx, mints)
	if err != nil {
		quotes = nil
	}

	holdings := make(map[string]float64, len(balances))
	for _, b := range balances {
		holdings[b.Mint] = b.UIAmount
	}

	totalUnrealized := 0.0
	hasAny := false

	for _, mint := range mints {
		tl := trades[mint]
		if tl == nil {
			continue
		}
		token := domain.TokenPnL{
			Mint:           mint,
			Symbol:         shortSymbol(mint),
			Category:       categoryFor(risk, mint),
			TotalBought:    tl.bought,
			TotalSold:      tl.sold,
			CurrentHolding: holdings[mint],
		}
		if price, ok := quotes[mint]; ok {
			p := price
			unrealized := token.CurrentHolding * price
			token.CurrentPrice = &p
			token.UnrealizedPnL = &unrealized
			token.TotalPnL = &unrealized
			totalUnrealized += unrealized
			hasAny = true
		}

		result.Tokens = append(result.Tokens, token)

		if token.TotalPnL != nil {
			if *token.TotalPnL > 0 {
				result.WinCount++
				if result.BiggestWin == nil || *token.TotalPnL > derefOrZero(result.BiggestWin.TotalPnL) {
					win := token
					result.BiggestWin = &win
				}
			} else if *token.TotalPnL < 0 {
				result.LossCount++
				if result.BiggestLoss == nil || *token.TotalPnL < derefOrZero(result.BiggestLoss.TotalPnL) {
					loss := token
					result.BiggestLoss = &loss
				}
			}
		}
	}

	if hasAny {
		total := totalUnrealized
		result.TotalUnrealizedPnL = &total
		grand := totalUnrealized
		result.TotalPnL = &grand
	}

	sort.SliceStable(result.Tokens, func(i, j int) bool {
		return derefOrZero(result.Tokens[i].UnrealizedPnL) > derefOrZero(result.Tokens[j].UnrealizedPnL)
	})

	return result
}
