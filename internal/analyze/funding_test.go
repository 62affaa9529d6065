package analyze

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solana-exposure/internal/domain"
)

func TestFundingSources_AggregatesPerSource(t *testing.T) {
	subject := testAddr(t, subjectWallet)
	reg := testRegistry(t)

	oldestFirst := []domain.ParsedTransaction{
		parsedTx(100, []string{cexWallet, subjectWallet},
			nativeTransfer(cexWallet, subjectWallet, 2)),
		parsedTx(200, []string{"walletX", subjectWallet},
			nativeTransfer("walletX", subjectWallet, 1)),
		parsedTx(300, []string{"walletX", subjectWallet},
			nativeTransfer("walletX", subjectWallet, 0.5)),
	}

	result := FundingSources(subject, oldestFirst, reg)

	assert.InDelta(t, 3.5, result.TotalFundingReceived, 1e-9)
	assert.True(t, result.HasCEXFunding)
	assert.True(t, result.HasMultipleFundingSources)
	assert.Equal(t, domain.CounterpartyCEX, result.PrimaryFundingType)

	require.Len(t, result.Sources, 2)

	first := result.Sources[0]
	assert.Equal(t, cexWallet, first.Address)
	assert.Equal(t, domain.CounterpartyCEX, first.Type)
	assert.True(t, first.IsInitialFunding)
	assert.Equal(t, int64(100), first.Timestamp)

	second := result.Sources[1]
	assert.Equal(t, "walletX", second.Address)
	assert.InDelta(t, 1.5, second.Amount, 1e-9)
	assert.Equal(t, int64(200), second.Timestamp)
	assert.False(t, second.IsInitialFunding)
}

func TestFundingSources_TotalsIndependentOfOrder(t *testing.T) {
	subject := testAddr(t, subjectWallet)
	reg := testRegistry(t)

	txs := []domain.ParsedTransaction{
		parsedTx(100, nil, nativeTransfer(cexWallet, subjectWallet, 2)),
		parsedTx(200, nil, nativeTransfer("walletX", subjectWallet, 1)),
		parsedTx(300, nil, nativeTransfer("walletX", subjectWallet, 0.5)),
	}
	reversed := []domain.ParsedTransaction{txs[2], txs[1], txs[0]}

	forward := FundingSources(subject, txs, reg)
	backward := FundingSources(subject, reversed, reg)

	assert.Equal(t, forward.TotalFundingReceived, backward.TotalFundingReceived)
	assert.Equal(t, forward.HasCEXFunding, backward.HasCEXFunding)
	require.Equal(t, len(forward.Sources), len(backward.Sources))

	amounts := func(sources []domain.FundingSource) map[string]float64 {
		out := make(map[string]float64, len(sources))
		for _, s := range sources {
			out[s.Address] = s.Amount
		}
		return out
	}
	assert.Equal(t, amounts(forward.Sources), amounts(backward.Sources))
}

func TestFundingSources_IgnoresTokenAndOutbound(t *testing.T) {
	subject := testAddr(t, subjectWallet)
	reg := testRegistry(t)

	txs := []domain.ParsedTransaction{
		parsedTx(100, nil, tokenTransfer(usdcMint, cexWallet, subjectWallet, 50)),
		parsedTx(200, nil, nativeTransfer(subjectWallet, "walletX", 1)),
		parsedTx(300, nil, nativeTransfer("walletX", subjectWallet, 0)),
	}

	result := FundingSources(subject, txs, reg)
	assert.Zero(t, result.TotalFundingReceived)
	assert.Empty(t, result.Sources)
	assert.False(t, result.HasCEXFunding)
	assert.False(t, result.HasMultipleFundingSources)
}

func TestFundingSources_CapsSourceList(t *testing.T) {
	subject := testAddr(t, subjectWallet)
	reg := testRegistry(t)

	var txs []domain.ParsedTransaction
	for i := 0; i < 15; i++ {
		funder := fmt.Sprintf("funder%02d", i)
		txs = append(txs, parsedTx(int64(100+i), nil, nativeTransfer(funder, subjectWallet, 1)))
	}

	result := FundingSources(subject, txs, reg)
	assert.Len(t, result.Sources, maxFundingSources)
	assert.InDelta(t, 15, result.TotalFundingReceived, 1e-9)
	// Kept sources are the earliest funders.
	assert.Equal(t, "funder00", result.Sources[0].Address)
	assert.Equal(t, "funder09", result.Sources[len(result.Sources)-1].Address)
}
