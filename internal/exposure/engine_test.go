package exposure

import (
	"context"
	"errors"
	"io"
	"log"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solana-exposure/internal/domain"
	"solana-exposure/internal/prices"
	"solana-exposure/internal/solana"
	"solana-exposure/internal/storage/memory"
)

const (
	testWallet = "7vfCXTUXx5WJV5JADk17DUJ4ksgau7utNKj4b963voxs"
	cexWallet  = "H8sMJSCQxfKiFTCfDR3DUMLPwcRbM61LGFJ8N4dK3WjS"
)

// fakeChain serves canned chain data and counts history fetches.
type fakeChain struct {
	balance      uint64
	balanceErr   error
	sigs         []solana.SignatureInfo
	sigsErr      error
	parsed       []*solana.ParsedTransaction
	parsedErr    error
	accounts     []solana.TokenAccount
	accErr       error
	historyCalls atomic.Int64
}

func (f *fakeChain) GetBalance(context.Context, string) (uint64, error) {
	return f.balance, f.balanceErr
}

func (f *fakeChain) GetSignaturesForAddress(_ context.Context, _ string, _ *solana.SignaturesOpts) ([]solana.SignatureInfo, error) {
	f.historyCalls.Add(1)
	return f.sigs, f.sigsErr
}

func (f *fakeChain) GetParsedTransactions(context.Context, []string) ([]*solana.ParsedTransaction, error) {
	return f.parsed, f.parsedErr
}

func (f *fakeChain) GetTokenAccountsByOwner(context.Context, string) ([]solana.TokenAccount, error) {
	return f.accounts, f.accErr
}

type staticSocial struct {
	links domain.SocialLinks
	err   error
}

func (s *staticSocial) Resolve(context.Context, string) (domain.SocialLinks, error) {
	return s.links, s.err
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// populatedChain builds a wallet with a CEX deposit, a forward transfer, and
// one token holding.
func populatedChain(now time.Time) *fakeChain {
	t1 := now.Add(-48 * time.Hour).Unix()
	t2 := now.Add(-24 * time.Hour).Unix()

	return &fakeChain{
		balance: 5_000_000_000,
		sigs: []solana.SignatureInfo{
			{Signature: "sig2", Slot: 101, BlockTime: &t2},
			{Signature: "sig1", Slot: 100, BlockTime: &t1},
		},
		parsed: []*solana.ParsedTransaction{
			{
				Signature:   "sig2",
				Slot:        101,
				BlockTime:   &t2,
				AccountKeys: []string{testWallet, "walletX"},
				Instructions: []solana.ParsedInstruction{
					{
						ProgramID: "11111111111111111111111111111111",
						Type:      "transfer",
						Transfer: &solana.TransferInfo{
							Source:      testWallet,
							Destination: "walletX",
							Lamports:    1_000_000_000,
						},
					},
				},
			},
			{
				Signature:   "sig1",
				Slot:        100,
				BlockTime:   &t1,
				AccountKeys: []string{cexWallet, testWallet},
				Instructions: []solana.ParsedInstruction{
					{
						ProgramID: "11111111111111111111111111111111",
						Type:      "transfer",
						Transfer: &solana.TransferInfo{
							Source:      cexWallet,
							Destination: testWallet,
							Lamports:    3_000_000_000,
						},
					},
				},
			},
		},
		accounts: []solana.TokenAccount{
			{Mint: "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", Amount: "50000000", Decimals: 6, UIAmount: 50},
		},
	}
}

func TestAnalyze_FullReport(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	engine, err := New(Options{
		Client: populatedChain(now),
		Prices: &prices.StaticFeed{
			SOL:    100,
			Tokens: map[string]float64{"EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v": 1},
		},
		Social: &staticSocial{links: domain.SocialLinks{Twitter: "degen"}},
		Logger: quietLogger(),
		Now:    func() time.Time { return now },
	})
	require.NoError(t, err)

	report, err := engine.Analyze(context.Background(), testWallet)
	require.NoError(t, err)

	assert.Equal(t, testWallet, report.Address)
	assert.Equal(t, now, report.AnalyzedAt)
	assert.False(t, report.Cached)

	assert.Equal(t, 2, report.TxCount)
	assert.Equal(t, 1, report.TokenCount)
	assert.InDelta(t, 5, report.SOLBalance, 1e-9)
	assert.True(t, report.WalletAge.Known)
	assert.Equal(t, 2, report.WalletAge.AgeInDays)

	require.Len(t, report.Categories, 6)
	assert.Equal(t, domain.OverallScore(report.Categories), report.OverallScore)
	assert.Equal(t, domain.LevelForScore(float64(report.OverallScore)), report.OverallLevel)

	require.NotNil(t, report.Funding)
	assert.True(t, report.Funding.HasCEXFunding)
	assert.InDelta(t, 3, report.Funding.TotalFundingReceived, 1e-9)

	require.NotNil(t, report.Income)
	assert.Equal(t, domain.IncomeCEXDeposit, report.Income.PrimarySource)

	require.NotNil(t, report.NetWorth)
	require.NotNil(t, report.NetWorth.TotalValueUSD)
	assert.InDelta(t, 550, *report.NetWorth.TotalValueUSD, 1e-6)

	require.NotNil(t, report.TokenRisk)
	assert.Equal(t, 1, report.TokenRisk.StablecoinCount)

	assert.NotNil(t, report.TimeOfDay)
	assert.NotNil(t, report.Velocity)
	assert.NotNil(t, report.PnL)
	assert.NotNil(t, report.PrivacyHygiene)
	assert.NotEmpty(t, report.Counterparties)

	assert.Equal(t, "degen", report.SocialLinks.Twitter)
}

func TestAnalyze_InvalidAddress(t *testing.T) {
	engine, err := New(Options{Client: &fakeChain{}, Logger: quietLogger()})
	require.NoError(t, err)

	_, err = engine.Analyze(context.Background(), "not-base58!")
	assert.Error(t, err)
}

func TestAnalyze_CachedReportShortCircuits(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	chain := populatedChain(now)
	store := memory.NewReportStore()

	engine, err := New(Options{
		Client: chain,
		Store:  store,
		Prices: &prices.StaticFeed{SOL: 100},
		Logger: quietLogger(),
		Now:    func() time.Time { return now },
	})
	require.NoError(t, err)

	first, err := engine.Analyze(context.Background(), testWallet)
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := engine.Analyze(context.Background(), testWallet)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.OverallScore, second.OverallScore)

	assert.Equal(t, int64(1), chain.historyCalls.Load(), "cache hit must not refetch chain data")
}

func TestAnalyze_HistoryFailureIsFatal(t *testing.T) {
	wantErr := errors.New("pool exhausted")
	engine, err := New(Options{
		Client: &fakeChain{sigsErr: wantErr},
		Prices: &prices.StaticFeed{},
		Logger: quietLogger(),
	})
	require.NoError(t, err)

	_, err = engine.Analyze(context.Background(), testWallet)
	assert.ErrorIs(t, err, wantErr)
}

func TestAnalyze_BalanceFailureIsFatal(t *testing.T) {
	wantErr := errors.New("pool exhausted")
	engine, err := New(Options{
		Client: &fakeChain{balanceErr: wantErr},
		Prices: &prices.StaticFeed{},
		Logger: quietLogger(),
	})
	require.NoError(t, err)

	_, err = engine.Analyze(context.Background(), testWallet)
	assert.ErrorIs(t, err, wantErr)
}

func TestAnalyze_OptionalFailuresDegrade(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ts := now.Add(-24 * time.Hour).Unix()
	chain := &fakeChain{
		balance:   1_000_000_000,
		sigs:      []solana.SignatureInfo{{Signature: "sig1", Slot: 100, BlockTime: &ts}},
		parsedErr: errors.New("boom"),
		accErr:    errors.New("boom"),
	}

	engine, err := New(Options{
		Client: chain,
		Prices: &prices.StaticFeed{Err: errors.New("quotes down")},
		Social: &staticSocial{err: errors.New("resolver down")},
		Logger: quietLogger(),
		Now:    func() time.Time { return now },
	})
	require.NoError(t, err)

	report, err := engine.Analyze(context.Background(), testWallet)
	require.NoError(t, err, "optional input failures must not fail the analysis")

	assert.Equal(t, 1, report.TxCount)
	assert.Zero(t, report.TokenCount)
	assert.Zero(t, report.SocialLinks.Count())
	require.NotNil(t, report.NetWorth)
	assert.Nil(t, report.NetWorth.TotalValueUSD)
	assert.Equal(t, "Unknown", report.NetWorth.ValueRange)
	require.Len(t, report.Categories, 6)
}

func TestNew_RequiresClient(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}
