// Package exposure orchestrates one wallet analysis: collect raw chain data,
// fan the analyzers out, score the results, and assemble the final report.
package exposure

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"solana-exposure/internal/analyze"
	"solana-exposure/internal/collect"
	"solana-exposure/internal/domain"
	"solana-exposure/internal/labels"
	"solana-exposure/internal/observability"
	"solana-exposure/internal/prices"
	"solana-exposure/internal/scoring"
	"solana-exposure/internal/storage"
)

// SocialResolver looks up linked identities for a wallet. Implementations
// live outside this module; a nil resolver leaves the social surface empty.
type SocialResolver interface {
	Resolve(ctx context.Context, address string) (domain.SocialLinks, error)
}

// Options configures an Engine. Client is required; everything else has a
// working default.
type Options struct {
	Client collect.ChainClient

	// Store caches completed reports. Nil disables caching.
	Store storage.ReportStore

	// Prices supplies spot quotes. Nil uses the public Jupiter feed.
	Prices prices.Feed

	// Labels classifies known addresses. Nil uses the embedded defaults.
	Labels *labels.Registry

	// Social resolves linked identities. Nil skips social lookup.
	Social SocialResolver

	// Metrics instruments the engine. Nil disables instrumentation.
	Metrics *observability.Metrics

	// TxLimit bounds the signature history pull. Zero uses the default.
	TxLimit int

	// Logger receives degradation notices. Nil uses the standard logger.
	Logger *log.Logger

	// Now overrides the time source, for tests.
	Now func() time.Time
}

// Engine runs wallet exposure analyses.
type Engine struct {
	collector *collect.Collector
	store     storage.ReportStore
	prices    prices.Feed
	labels    *labels.Registry
	social    SocialResolver
	metrics   *observability.Metrics
	txLimit   int
	logger    *log.Logger
	now       func() time.Time
}

// New creates an Engine from options.
func New(opts Options) (*Engine, error) {
	if opts.Client == nil {
		return nil, errors.New("exposure: chain client is required")
	}

	e := &Engine{
		collector: collect.New(opts.Client),
		store:     opts.Store,
		prices:    opts.Prices,
		labels:    opts.Labels,
		social:    opts.Social,
		metrics:   opts.Metrics,
		txLimit:   opts.TxLimit,
		logger:    opts.Logger,
		now:       opts.Now,
	}
	if e.prices == nil {
		e.prices = prices.NewJupiterFeed()
	}
	if e.labels == nil {
		e.labels = labels.Default()
	}
	if e.txLimit <= 0 {
		e.txLimit = collect.DefaultTxLimit
	}
	if e.logger == nil {
		e.logger = log.Default()
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.metrics != nil {
		e.prices = &instrumentedFeed{feed: e.prices, metrics: e.metrics}
	}
	return e, nil
}

// instrumentedFeed times price lookups and counts failures.
type instrumentedFeed struct {
	feed    prices.Feed
	metrics *observability.Metrics
}

func (f *instrumentedFeed) SolPrice(ctx context.Context) (float64, error) {
	started := time.Now()
	price, err := f.feed.SolPrice(ctx)
	f.metrics.RecordPriceLookup(time.Since(started), err)
	return price, err
}

func (f *instrumentedFeed) TokenPrices(ctx context.Context, mints []string) (map[string]float64, error) {
	started := time.Now()
	quotes, err := f.feed.TokenPrices(ctx, mints)
	f.metrics.RecordPriceLookup(time.Since(started), err)
	return quotes, err
}

// Analyze produces the exposure report for one wallet address. The address
// is validated before any chain call; a cached report short-circuits the
// whole run. Only the balance and history fetches are fatal, every other
// input degrades to its documented default.
func (e *Engine) Analyze(ctx context.Context, address string) (*domain.ExposureReport, error) {
	addr, err := domain.ParseAddress(address)
	if err != nil {
		return nil, fmt.Errorf("validate address: %w", err)
	}

	if e.store != nil {
		cached, err := e.store.Get(ctx, addr.String())
		if err == nil {
			if e.metrics != nil {
				e.metrics.RecordCacheLookup(true)
			}
			return cached, nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			e.logger.Printf("report store get failed for %s: %v", addr, err)
			if e.metrics != nil {
				e.metrics.RecordStoreError("get")
			}
		}
		if e.metrics != nil {
			e.metrics.RecordCacheLookup(false)
		}
	}

	started := e.now()
	report, err := e.run(ctx, addr)
	if e.metrics != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		e.metrics.RecordAnalysis(status, e.now().Sub(started))
	}
	if err != nil {
		return nil, err
	}

	if e.store != nil {
		if err := e.store.Put(ctx, report); err != nil {
			e.logger.Printf("report store put failed for %s: %v", addr, err)
			if e.metrics != nil {
				e.metrics.RecordStoreError("put")
			}
		}
	}
	return report, nil
}

func (e *Engine) run(ctx context.Context, addr domain.Address) (*domain.ExposureReport, error) {
	var (
		balance    float64
		balanceErr error
		records    []domain.TransactionRecord
		historyErr error
	)

	// Balance and history are load-bearing; everything downstream keys
	// off them.
	var mandatory sync.WaitGroup
	mandatory.Add(2)
	go func() {
		defer mandatory.Done()
		balance, balanceErr = e.collector.Balance(ctx, addr)
	}()
	go func() {
		defer mandatory.Done()
		records, historyErr = e.collector.History(ctx, addr, e.txLimit)
	}()
	mandatory.Wait()

	if balanceErr != nil {
		return nil, balanceErr
	}
	if historyErr != nil {
		return nil, historyErr
	}

	var (
		tokens []domain.TokenBalance
		parsed []domain.ParsedTransaction
		social domain.SocialLinks
	)

	var optional sync.WaitGroup
	optional.Add(2)
	go func() {
		defer optional.Done()
		tokens = e.collector.TokenBalances(ctx, addr)
		if tokens == nil {
			e.degraded("token_balances")
		}
	}()
	go func() {
		defer optional.Done()
		parsed = e.collector.ParsedTransactions(ctx, records)
		if parsed == nil && len(records) > 0 {
			e.degraded("parsed_transactions")
		}
	}()
	if e.social != nil {
		optional.Add(1)
		go func() {
			defer optional.Done()
			links, err := e.social.Resolve(ctx, addr.String())
			if err != nil {
				e.degraded("social_links")
				return
			}
			social = links
		}()
	}
	optional.Wait()

	now := e.now()
	age := collect.WalletAge(records, now)

	// Token classification feeds net worth and P&L, so it runs before the
	// analyzer fan-out.
	tokenRisk := analyze.ClassifyTokens(tokens, e.labels)

	var (
		funding        domain.FundingAnalysis
		timeOfDay      domain.TimeOfDayProfile
		velocity       domain.VelocityProfile
		income         domain.IncomeBreakdown
		privacy        domain.PrivacyHygieneProfile
		counterparties []domain.CounterpartyRecord
		netWorth       domain.NetWorthEstimate
		pnl            domain.PnLEstimate
	)

	oldestFirst := oldestFirstParsed(parsed)

	var analyzers sync.WaitGroup
	analyzers.Add(8)
	go func() {
		defer analyzers.Done()
		funding = analyze.FundingSources(addr, oldestFirst, e.labels)
	}()
	go func() {
		defer analyzers.Done()
		timeOfDay = analyze.TimeOfDay(records)
	}()
	go func() {
		defer analyzers.Done()
		velocity = analyze.Velocity(records, age, now)
	}()
	go func() {
		defer analyzers.Done()
		income = analyze.IncomeSources(addr, parsed, e.labels)
	}()
	go func() {
		defer analyzers.Done()
		privacy = analyze.PrivacyHygiene(addr, parsed, e.labels)
	}()
	go func() {
		defer analyzers.Done()
		counterparties = analyze.Counterparties(addr, parsed, e.labels)
	}()
	go func() {
		defer analyzers.Done()
		netWorth = analyze.NetWorth(ctx, balance, tokens, &tokenRisk, e.prices)
	}()
	go func() {
		defer analyzers.Done()
		pnl = analyze.PnL(ctx, addr, parsed, tokens, &tokenRisk, e.prices)
	}()
	analyzers.Wait()

	categories, overall := scoring.Compute(scoring.Input{
		Records:       records,
		TokenBalances: tokens,
		SOLBalance:    balance,
		WalletAge:     age,
		Social:        social,
		Funding:       &funding,
		TimeOfDay:     &timeOfDay,
		TokenRisk:     &tokenRisk,
		Velocity:      &velocity,
		Privacy:       &privacy,
		Now:           now,
	})

	return &domain.ExposureReport{
		Address:        addr.String(),
		OverallScore:   overall,
		OverallLevel:   domain.LevelForScore(float64(overall)),
		Categories:     categories,
		AnalyzedAt:     now,
		TxCount:        len(records),
		TokenCount:     len(tokens),
		SOLBalance:     balance,
		WalletAge:      age,
		SocialLinks:    social,
		Counterparties: counterparties,
		Funding:        &funding,
		TimeOfDay:      &timeOfDay,
		TokenRisk:      &tokenRisk,
		Velocity:       &velocity,
		Income:         &income,
		NetWorth:       &netWorth,
		PnL:            &pnl,
		PrivacyHygiene: &privacy,
	}, nil
}

func (e *Engine) degraded(name string) {
	e.logger.Printf("optional input %s unavailable, using defaults", name)
	if e.metrics != nil {
		e.metrics.RecordDegraded(name)
	}
}

// oldestFirstParsed reverses a newest-first parsed slice.
func oldestFirstParsed(parsed []domain.ParsedTransaction) []domain.ParsedTransaction {
	out := make([]domain.ParsedTransaction, len(parsed))
	for i, tx := range parsed {
		out[len(parsed)-1-i] = tx
	}
	return out
}
