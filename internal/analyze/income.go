package analyze

import (
	"sort"

	"solana-exposure/internal/domain"
	"solana-exposure/internal/labels"
)

var incomeLabels = map[domain.IncomeSourceType]string{
	domain.IncomeCEXDeposit:    "CEX Deposits",
	domain.IncomeDEXSwap:       "DEX Swaps",
	domain.IncomeAirdrop:       "Airdrops",
	domain.IncomeStakingReward: "Staking Rewards",
	domain.IncomeNFTSale:       "NFT Sales",
	domain.IncomeTransfer:      "Transfers",
	domain.IncomeContract:      "Contract Interactions",
	domain.IncomeUnknown:       "Other",
}

// IncomeSources attributes inbound SOL value to income categories. A
// transaction's category comes from the first matching account key in
// priority order (CEX, airdrop, staking, DEX, NFT, contract); an unmatched
// transaction with inbound value counts as a plain transfer.
func IncomeSources(subject domain.Address, parsed []domain.ParsedTransaction, reg *labels.Registry) domain.IncomeBreakdown {
	result := domain.IncomeBreakdown{Sources: []domain.IncomeSource{}}
	if len(parsed) == 0 {
		return result
	}

	subjectStr := subject.String()

	type bucket struct {
		amount float64
		count  int
	}
	byType := make(map[domain.IncomeSourceType]*bucket)

	for _, tx := range parsed {
		txType := classifyIncomeTx(tx.AccountKeys, reg)

		inbound := 0.0
		for _, inst := range tx.Instructions {
			t := inst.Transfer
			if t == nil || t.Mint != "" {
				continue
			}
			if t.Destination == subjectStr {
				inbound += t.Amount
			}
		}
		if inbound <= 0 {
			continue
		}
		if txType == domain.IncomeUnknown {
			txType = domain.IncomeTransfer
		}

		b := byType[txType]
		if b == nil {
			b = &bucket{}
			byType[txType] = b
		}
		b.amount += inbound
		b.count++
		result.TotalIncome += inbound
	}

	for t, b := range byType {
		pct := 0.0
		if result.TotalIncome > 0 {
			pct = b.amount / result.TotalIncome * 100
		}
		result.Sources = append(result.Sources, domain.IncomeSource{
			Type:       t,
			Amount:     b.amount,
			Count:      b.count,
			Percentage: pct,
			Label:      incomeLabels[t],
		})
	}

	sort.Slice(result.Sources, func(i, j int) bool {
		if result.Sources[i].Amount != result.Sources[j].Amount {
			return result.Sources[i].Amount > result.Sources[j].Amount
		}
		return result.Sources[i].Type < result.Sources[j].Type
	})

	if len(result.Sources) > 0 {
		result.PrimarySource = result.Sources[0].Type
	}

	if len(result.Sources) > 1 && result.TotalIncome > 0 {
		weights := make([]float64, len(result.Sources))
		for i, s := range result.Sources {
			weights[i] = s.Amount
		}
		result.DiversityScore = normalizedEntropy(weights)
	}

	return result
}

func classifyIncomeTx(accountKeys []string, reg *labels.Registry) domain.IncomeSourceType {
	for _, key := range accountKeys {
		if reg.IsCEX(key) {
			return domain.IncomeCEXDeposit
		}
		if reg.IsAirdrop(key) {
			return domain.IncomeAirdrop
		}
		if reg.IsStaking(key) {
			return domain.IncomeStakingReward
		}
		if t, ok := reg.ProgramType(key); ok {
			switch t {
			case domain.CounterpartyDEX:
				return domain.IncomeDEXSwap
			case domain.CounterpartyNFT:
				return domain.IncomeNFTSale
			case domain.CounterpartyContract:
				return domain.IncomeContract
			}
		}
	}
	return domain.IncomeUnknown
}
