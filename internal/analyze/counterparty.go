package analyze

import (
	"sort"

	"solana-exposure/internal/domain"
	"solana-exposure/internal/labels"
)

// maxCounterparties bounds the output for the downstream graph view.
const maxCounterparties = 20

// Counterparties aggregates every non-subject account key across the parsed
// transactions, classifies each via the label registry, and returns the top
// entries by interaction count.
func Counterparties(subject domain.Address, parsed []domain.ParsedTransaction, reg *labels.Registry) []domain.CounterpartyRecord {
	subjectStr := subject.String()

	type entry struct {
		txCount int
		lastAt  int64
		kind    domain.CounterpartyType
	}
	seen := make(map[string]*entry)

	for _, tx := range parsed {
		for _, key := range tx.AccountKeys {
			if key == subjectStr {
				continue
			}
			e := seen[key]
			if e == nil {
				e = &entry{kind: reg.ClassifyAccount(key)}
				seen[key] = e
			}
			e.txCount++
			if tx.BlockTime > e.lastAt {
				e.lastAt = tx.BlockTime
			}
		}
	}

	records := make([]domain.CounterpartyRecord, 0, len(seen))
	for addr, e := range seen {
		records = append(records, domain.CounterpartyRecord{
			Address:         addr,
			TxCount:         e.txCount,
			LastInteraction: e.lastAt,
			Type:            e.kind,
		})
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].TxCount != records[j].TxCount {
			return records[i].TxCount > records[j].TxCount
		}
		return records[i].Address < records[j].Address
	})

	if len(records) > maxCounterparties {
		records = records[:maxCounterparties]
	}
	return records
}
