// Package collect translates raw chain responses into the domain shapes the
// analyzers consume. Collectors for optional data degrade to empty values on
// upstream failure; only the balance and signature history, which the whole
// analysis depends on, propagate errors.
package collect

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"solana-exposure/internal/domain"
	"solana-exposure/internal/solana"
)

// DefaultTxLimit bounds how much signature history one analysis pulls.
const DefaultTxLimit = 100

// NewWalletThresholdDays is the age below which a wallet counts as new.
const NewWalletThresholdDays = 30

// ChainClient is the subset of the RPC client the collectors use. Satisfied
// by *solana.Client; tests substitute a fake.
type ChainClient interface {
	GetBalance(ctx context.Context, address string) (uint64, error)
	GetSignaturesForAddress(ctx context.Context, address string, opts *solana.SignaturesOpts) ([]solana.SignatureInfo, error)
	GetParsedTransactions(ctx context.Context, signatures []string) ([]*solana.ParsedTransaction, error)
	GetTokenAccountsByOwner(ctx context.Context, owner string) ([]solana.TokenAccount, error)
}

// Collector fetches and normalizes raw wallet data.
type Collector struct {
	client ChainClient
}

// New creates a Collector over a chain client.
func New(client ChainClient) *Collector {
	return &Collector{client: client}
}

// Balance returns the wallet's SOL balance. Load-bearing: failure propagates.
func (c *Collector) Balance(ctx context.Context, addr domain.Address) (float64, error) {
	lamports, err := c.client.GetBalance(ctx, addr.String())
	if err != nil {
		return 0, fmt.Errorf("balance for %s: %w", addr, err)
	}
	return float64(lamports) / domain.LamportsPerSOL, nil
}

// History returns the wallet's signature history, newest first.
// Load-bearing: failure propagates.
func (c *Collector) History(ctx context.Context, addr domain.Address, limit int) ([]domain.TransactionRecord, error) {
	if limit <= 0 {
		limit = DefaultTxLimit
	}
	sigs, err := c.client.GetSignaturesForAddress(ctx, addr.String(), &solana.SignaturesOpts{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("history for %s: %w", addr, err)
	}

	records := make([]domain.TransactionRecord, len(sigs))
	for i, s := range sigs {
		rec := domain.TransactionRecord{
			Signature: s.Signature,
			Slot:      s.Slot,
			Failed:    s.Err != nil,
		}
		if s.BlockTime != nil {
			rec.BlockTime = *s.BlockTime
		}
		records[i] = rec
	}
	return records, nil
}

// TokenBalances returns positive token holdings. Optional: degrades to
// an empty slice on failure.
func (c *Collector) TokenBalances(ctx context.Context, addr domain.Address) []domain.TokenBalance {
	accounts, err := c.client.GetTokenAccountsByOwner(ctx, addr.String())
	if err != nil {
		return nil
	}

	balances := make([]domain.TokenBalance, 0, len(accounts))
	for _, a := range accounts {
		if a.UIAmount <= 0 {
			continue
		}
		raw, _ := strconv.ParseUint(a.Amount, 10, 64)
		balances = append(balances, domain.TokenBalance{
			Mint:      a.Mint,
			RawAmount: raw,
			Decimals:  a.Decimals,
			UIAmount:  a.UIAmount,
		})
	}
	return balances
}

// ParsedTransactions expands records into parsed transaction bodies.
// Optional: per-transaction failures appear as skipped entries and a total
// failure degrades to an empty slice.
func (c *Collector) ParsedTransactions(ctx context.Context, records []domain.TransactionRecord) []domain.ParsedTransaction {
	if len(records) == 0 {
		return nil
	}
	sigs := make([]string, len(records))
	for i, r := range records {
		sigs[i] = r.Signature
	}

	raw, err := c.client.GetParsedTransactions(ctx, sigs)
	if err != nil {
		return nil
	}

	parsed := make([]domain.ParsedTransaction, 0, len(raw))
	for _, tx := range raw {
		if tx == nil {
			continue
		}
		parsed = append(parsed, convertParsed(tx))
	}
	return parsed
}

func convertParsed(tx *solana.ParsedTransaction) domain.ParsedTransaction {
	out := domain.ParsedTransaction{
		Signature:   tx.Signature,
		Slot:        tx.Slot,
		AccountKeys: tx.AccountKeys,
	}
	if tx.BlockTime != nil {
		out.BlockTime = *tx.BlockTime
	}
	for _, inst := range tx.Instructions {
		conv := domain.Instruction{
			Program: inst.ProgramID,
			Type:    inst.Type,
		}
		if t := inst.Transfer; t != nil {
			transfer := &domain.Transfer{
				Source:      t.Source,
				Destination: t.Destination,
				Authority:   t.Authority,
				Mint:        t.Mint,
			}
			if t.TokenAmount != nil {
				transfer.Amount = t.TokenAmount.UIAmount
			} else {
				transfer.Amount = float64(t.Lamports) / domain.LamportsPerSOL
			}
			conv.Transfer = transfer
		}
		out.Instructions = append(out.Instructions, conv)
	}
	return out
}

// WalletAge derives the wallet's age from its newest-first history.
// With no timestamped transactions the age is unknown and the wallet
// counts as new.
func WalletAge(records []domain.TransactionRecord, now time.Time) domain.WalletAge {
	timestamped := domain.Timestamped(records)
	if len(timestamped) == 0 {
		return domain.WalletAge{IsNew: true}
	}

	// History is newest-first; the last timestamped record is the oldest.
	first := timestamped[len(timestamped)-1].BlockTime
	ageDays := int(now.Unix()-first) / (24 * 60 * 60)
	if ageDays < 0 {
		ageDays = 0
	}
	return domain.WalletAge{
		FirstTxTime: first,
		AgeInDays:   ageDays,
		IsNew:       ageDays < NewWalletThresholdDays,
		Known:       true,
	}
}
