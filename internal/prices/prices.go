// Package prices provides spot USD prices for SOL and SPL token mints.
// Lookups are batched and bounded by a per-call timeout; they are never
// retried, and partial results are expected.
package prices

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// WrappedSOLMint prices native SOL through its wrapped mint.
const WrappedSOLMint = "So11111111111111111111111111111111111111112"

// DefaultEndpoint is the Jupiter price API.
const DefaultEndpoint = "https://price.jup.ag/v6/price"

// DefaultTimeout bounds one price lookup.
const DefaultTimeout = 10 * time.Second

// batchSize is the maximum mints per request the API accepts.
const batchSize = 100

// Feed returns spot USD prices. A missing mint in the result map means no
// price was available; that is not an error.
type Feed interface {
	SolPrice(ctx context.Context) (float64, error)
	TokenPrices(ctx context.Context, mints []string) (map[string]float64, error)
}

// JupiterFeed implements Feed against the Jupiter price API.
type JupiterFeed struct {
	endpoint string
	client   *http.Client
	timeout  time.Duration
}

// FeedOption configures JupiterFeed.
type FeedOption func(*JupiterFeed)

// WithEndpoint overrides the API endpoint.
func WithEndpoint(endpoint string) FeedOption {
	return func(f *JupiterFeed) {
		f.endpoint = endpoint
	}
}

// WithTimeout sets the per-lookup timeout.
func WithTimeout(d time.Duration) FeedOption {
	return func(f *JupiterFeed) {
		f.timeout = d
	}
}

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(client *http.Client) FeedOption {
	return func(f *JupiterFeed) {
		f.client = client
	}
}

// NewJupiterFeed creates a Jupiter price feed.
func NewJupiterFeed(opts ...FeedOption) *JupiterFeed {
	f := &JupiterFeed{
		endpoint: DefaultEndpoint,
		client:   &http.Client{},
		timeout:  DefaultTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// SolPrice returns the spot SOL price in USD.
func (f *JupiterFeed) SolPrice(ctx context.Context) (float64, error) {
	result, err := f.TokenPrices(ctx, []string{WrappedSOLMint})
	if err != nil {
		return 0, err
	}
	price, ok := result[WrappedSOLMint]
	if !ok {
		return 0, fmt.Errorf("no SOL price in response")
	}
	return price, nil
}

// TokenPrices returns spot prices for the given mints, batching the lookup.
// Mints without a price are absent from the result.
func (f *JupiterFeed) TokenPrices(ctx context.Context, mints []string) (map[string]float64, error) {
	result := make(map[string]float64, len(mints))
	for start := 0; start < len(mints); start += batchSize {
		end := start + batchSize
		if end > len(mints) {
			end = len(mints)
		}
		if err := f.fetchBatch(ctx, mints[start:end], result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

type priceResponse struct {
	Data map[string]struct {
		Price float64 `json:"price"`
	} `json:"data"`
}

func (f *JupiterFeed) fetchBatch(ctx context.Context, mints []string, out map[string]float64) error {
	callCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	reqURL := f.endpoint + "?ids=" + url.QueryEscape(strings.Join(mints, ","))
	req, err := http.NewRequestWithContext(callCtx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("price request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("price request: unexpected status %d", resp.StatusCode)
	}

	var body priceResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decode price response: %w", err)
	}
	for mint, entry := range body.Data {
		if entry.Price > 0 {
			out[mint] = entry.Price
		}
	}
	return nil
}

// StaticFeed is a fixed-price Feed for tests.
type StaticFeed struct {
	SOL    float64
	Tokens map[string]float64
	Err    error
}

// SolPrice returns the configured SOL price.
func (s *StaticFeed) SolPrice(_ context.Context) (float64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	return s.SOL, nil
}

// TokenPrices returns the configured prices for the requested mints.
func (s *StaticFeed) TokenPrices(_ context.Context, mints []string) (map[string]float64, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	out := make(map[string]float64)
	for _, m := range mints {
		if p, ok := s.Tokens[m]; ok {
			out[m] = p
		}
	}
	return out, nil
}
