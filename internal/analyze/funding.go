package analyze

import (
	"sort"

	"solana-exposure/internal/domain"
	"solana-exposure/internal/labels"
)

// maxFundingSources caps the reported funding-source list.
const maxFundingSources = 10

// FundingSources attributes inbound SOL transfers to their originating
// addresses. Transactions must be oldest-first so the earliest funder can be
// tagged as the initial one. Amounts accumulate per unique source and each
// source keeps the earliest timestamp seen, so totals are independent of
// processing order.
func FundingSources(subject domain.Address, oldestFirst []domain.ParsedTransaction, reg *labels.Registry) domain.FundingAnalysis {
	result := domain.FundingAnalysis{}
	sources := make(map[string]*domain.FundingSource)
	firstFunding := true

	for _, tx := range oldestFirst {
		for _, inst := range tx.Instructions {
			t := inst.Transfer
			if t == nil || t.Mint != "" || t.Source == "" || t.Amount <= 0 {
				continue
			}
			if !subject.Equal(t.Destination) {
				continue
			}

			result.TotalFundingReceived += t.Amount

			sourceType := reg.ClassifyAccount(t.Source)
			if sourceType == domain.CounterpartyCEX {
				result.HasCEXFunding = true
			}

			existing, ok := sources[t.Source]
			if ok {
				existing.Amount += t.Amount
				if tx.BlockTime > 0 && (existing.Timestamp == 0 || tx.BlockTime < existing.Timestamp) {
					existing.Timestamp = tx.BlockTime
				}
			} else {
				sources[t.Source] = &domain.FundingSource{
					Address:          t.Source,
					Type:             sourceType,
					Amount:           t.Amount,
					Timestamp:        tx.BlockTime,
					IsInitialFunding: firstFunding,
				}
			}
			firstFunding = false
		}
	}

	if len(sources) == 0 {
		return result
	}

	ordered := make([]domain.FundingSource, 0, len(sources))
	for _, s := range sources {
		ordered = append(ordered, *s)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Timestamp != ordered[j].Timestamp {
			return ordered[i].Timestamp < ordered[j].Timestamp
		}
		return ordered[i].Address < ordered[j].Address
	})
	if len(ordered) > maxFundingSources {
		ordered = ordered[:maxFundingSources]
	}

	result.Sources = ordered
	result.HasMultipleFundingSources = len(ordered) > 1

	// Primary funding type holds the largest cumulative amount.
	amountByType := make(map[domain.CounterpartyType]float64)
	for _, s := range ordered {
		amountByType[s.Type] += s.Amount
	}
	best := 0.0
	for _, s := range ordered {
		if amt := amountByType[s.Type]; amt > best {
			best = amt
			result.PrimaryFundingType = s.Type
		}
	}

	return result
}
