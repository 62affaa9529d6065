// Package solana provides a JSON-RPC 2.0 client over a rotating pool of
// Solana-compatible endpoints. Retries with exponential backoff rotate to
// the next endpoint in the pool; retries are bounded here and must not be
// repeated by callers.
package solana

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"
)

// Default configuration values.
const (
	DefaultCallTimeout = 25 * time.Second
	DefaultMaxAttempts = 4
	DefaultRetryDelay  = 2 * time.Second
	DefaultMaxDelay    = 10 * time.Second
	DefaultBackoffMult = 1.5
)

// TokenProgramID is the SPL token program owning standard token accounts.
const TokenProgramID = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"

// Observer receives client-level events. Implemented by the observability
// package; a nil observer disables instrumentation.
type Observer interface {
	ObserveRPCCall(method string, duration time.Duration, err error)
	EndpointRotated(endpoint string)
}

// Client is a JSON-RPC client over an ordered pool of endpoints.
//
// The rotation cursor is shared by all concurrent calls and advanced
// atomically; a lost rotation only degrades failover quality, never
// result correctness.
type Client struct {
	endpoints   []string
	cursor      atomic.Uint64
	client      *http.Client
	callTimeout time.Duration
	maxAttempts int
	retryDelay  time.Duration
	maxDelay    time.Duration
	backoffMult float64
	requestID   atomic.Uint64
	observer    Observer
}

// ClientOption configures Client.
type ClientOption func(*Client)

// WithCallTimeout sets the per-network-call timeout, independent of backoff.
func WithCallTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.callTimeout = d
	}
}

// WithMaxAttempts sets how many attempts a call makes before failing.
func WithMaxAttempts(n int) ClientOption {
	return func(c *Client) {
		c.maxAttempts = n
	}
}

// WithRetryDelay sets the initial retry backoff delay.
func WithRetryDelay(d time.Duration) ClientOption {
	return func(c *Client) {
		c.retryDelay = d
	}
}

// WithBackoffMultiplier sets the backoff growth factor.
func WithBackoffMultiplier(m float64) ClientOption {
	return func(c *Client) {
		c.backoffMult = m
	}
}

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.client = client
	}
}

// WithObserver attaches client instrumentation.
func WithObserver(o Observer) ClientOption {
	return func(c *Client) {
		c.observer = o
	}
}

// NewClient creates a client over an ordered, non-empty endpoint pool.
func NewClient(endpoints []string, opts ...ClientOption) (*Client, error) {
	if len(endpoints) == 0 {
		return nil, fmt.Errorf("solana: endpoint pool is empty")
	}
	c := &Client{
		endpoints:   append([]string(nil), endpoints...),
		client:      &http.Client{},
		callTimeout: DefaultCallTimeout,
		maxAttempts: DefaultMaxAttempts,
		retryDelay:  DefaultRetryDelay,
		maxDelay:    DefaultMaxDelay,
		backoffMult: DefaultBackoffMult,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// currentEndpoint reads the endpoint the shared cursor points at.
func (c *Client) currentEndpoint() string {
	return c.endpoints[c.cursor.Load()%uint64(len(c.endpoints))]
}

// rotate advances the shared cursor to the next endpoint in the pool.
func (c *Client) rotate() {
	c.cursor.Add(1)
	if c.observer != nil {
		c.observer.EndpointRotated(c.currentEndpoint())
	}
}

// rpcRequest represents a JSON-RPC 2.0 request.
type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      uint64        `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params,omitempty"`
}

// rpcResponse represents a JSON-RPC 2.0 response.
type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

// RPCError represents a JSON-RPC 2.0 error.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("RPC error %d: %s", e.Code, e.Message)
}

// retryable reports whether the RPC error is worth another endpoint.
// Malformed requests fail the same way everywhere.
func (e *RPCError) retryable() bool {
	switch e.Code {
	case -32600, -32601, -32602:
		return false
	}
	return true
}

// AllAttemptsError is returned when a call exhausted every attempt across
// the pool. It carries the last endpoint and the attempt count for
// operational diagnosis.
type AllAttemptsError struct {
	Method       string
	LastEndpoint string
	Attempts     int
	Err          error
}

func (e *AllAttemptsError) Error() string {
	return fmt.Sprintf("%s: all %d attempts failed (last endpoint %s): %v",
		e.Method, e.Attempts, e.LastEndpoint, e.Err)
}

func (e *AllAttemptsError) Unwrap() error {
	return e.Err
}

// call performs a JSON-RPC call with retries, backoff, and endpoint rotation.
func (c *Client) call(ctx context.Context, method string, params []interface{}, result interface{}) error {
	start := time.Now()
	err := c.doCall(ctx, method, params, result)
	if c.observer != nil {
		c.observer.ObserveRPCCall(method, time.Since(start), err)
	}
	return err
}

func (c *Client) doCall(ctx context.Context, method string, params []interface{}, result interface{}) error {
	reqID := c.requestID.Add(1)
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      reqID,
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	delay := c.retryDelay
	var lastErr error
	var lastEndpoint string

	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		if attempt > 0 {
			c.rotate()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay = time.Duration(float64(delay) * c.backoffMult)
			if delay > c.maxDelay {
				delay = c.maxDelay
			}
		}

		lastEndpoint = c.currentEndpoint()
		err := c.attempt(ctx, lastEndpoint, body, result)
		if err == nil {
			return nil
		}
		if rpcErr, ok := err.(*RPCError); ok && !rpcErr.retryable() {
			return rpcErr
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		lastErr = err
	}

	return &AllAttemptsError{
		Method:       method,
		LastEndpoint: lastEndpoint,
		Attempts:     c.maxAttempts,
		Err:          lastErr,
	}
}

// attempt performs one HTTP round trip against a single endpoint. The
// per-call timeout bounds this attempt so a hung endpoint cannot stall the
// whole retry cycle.
func (c *Client) attempt(ctx context.Context, endpoint string, body []byte, result interface{}) error {
	callCtx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}

	respBody, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("rate limited (429)")
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(respBody, &rpcResp); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	if rpcResp.Error != nil {
		return rpcResp.Error
	}

	if result != nil && rpcResp.Result != nil {
		if err := json.Unmarshal(rpcResp.Result, result); err != nil {
			return fmt.Errorf("unmarshal result: %w", err)
		}
	}
	return nil
}

// GetBalance returns an address's balance in lamports.
func (c *Client) GetBalance(ctx context.Context, address string) (uint64, error) {
	params := []interface{}{
		address,
		map[string]interface{}{"commitment": "confirmed"},
	}

	var result struct {
		Value uint64 `json:"value"`
	}
	if err := c.call(ctx, "getBalance", params, &result); err != nil {
		return 0, err
	}
	return result.Value, nil
}

// GetSignaturesForAddress retrieves signature history for an address,
// newest first.
func (c *Client) GetSignaturesForAddress(ctx context.Context, address string, opts *SignaturesOpts) ([]SignatureInfo, error) {
	config := make(map[string]interface{})
	if opts != nil {
		if opts.Before != "" {
			config["before"] = opts.Before
		}
		if opts.Until != "" {
			config["until"] = opts.Until
		}
		if opts.Limit > 0 {
			config["limit"] = opts.Limit
		}
	}

	params := []interface{}{address}
	if len(config) > 0 {
		params = append(params, config)
	}

	var result []getSignaturesResult
	if err := c.call(ctx, "getSignaturesForAddress", params, &result); err != nil {
		return nil, err
	}

	sigs := make([]SignatureInfo, len(result))
	for i, r := range result {
		sigs[i] = SignatureInfo{
			Signature: r.Signature,
			Slot:      r.Slot,
			BlockTime: r.BlockTime,
			Err:       r.Err,
		}
	}
	return sigs, nil
}

type getSignaturesResult struct {
	Signature string      `json:"signature"`
	Slot      int64       `json:"slot"`
	BlockTime *int64      `json:"blockTime"`
	Err       interface{} `json:"err"`
}

// GetParsedTransaction retrieves a transaction by signature with jsonParsed
// encoding. Returns nil when the transaction is unknown to the node.
func (c *Client) GetParsedTransaction(ctx context.Context, signature string) (*ParsedTransaction, error) {
	params := []interface{}{
		signature,
		map[string]interface{}{
			"encoding":                       "jsonParsed",
			"maxSupportedTransactionVersion": 0,
		},
	}

	var result getParsedTxResult
	if err := c.call(ctx, "getTransaction", params, &result); err != nil {
		return nil, err
	}
	if result.Slot == 0 && result.BlockTime == nil {
		return nil, nil
	}

	tx := &ParsedTransaction{
		Signature: signature,
		Slot:      result.Slot,
		BlockTime: result.BlockTime,
	}
	if result.Transaction != nil && result.Transaction.Message != nil {
		msg := result.Transaction.Message
		for _, key := range msg.AccountKeys {
			tx.AccountKeys = append(tx.AccountKeys, key.Pubkey)
		}
		for _, inst := range msg.Instructions {
			tx.Instructions = append(tx.Instructions, flattenInstruction(inst))
		}
	}
	return tx, nil
}

// GetParsedTransactions retrieves a batch of transactions. The returned
// slice matches the input order; entries are nil for signatures that could
// not be fetched, mirroring the RPC batch contract.
func (c *Client) GetParsedTransactions(ctx context.Context, signatures []string) ([]*ParsedTransaction, error) {
	txs := make([]*ParsedTransaction, len(signatures))
	for i, sig := range signatures {
		tx, err := c.GetParsedTransaction(ctx, sig)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			// Single missing transaction degrades to a nil entry.
			continue
		}
		txs[i] = tx
	}
	return txs, nil
}

// GetTokenAccountsByOwner retrieves parsed SPL token accounts for an owner.
func (c *Client) GetTokenAccountsByOwner(ctx context.Context, owner string) ([]TokenAccount, error) {
	params := []interface{}{
		owner,
		map[string]interface{}{"programId": TokenProgramID},
		map[string]interface{}{"encoding": "jsonParsed"},
	}

	var result getTokenAccountsResult
	if err := c.call(ctx, "getTokenAccountsByOwner", params, &result); err != nil {
		return nil, err
	}

	accounts := make([]TokenAccount, 0, len(result.Value))
	for _, v := range result.Value {
		info := v.Account.Data.Parsed.Info
		accounts = append(accounts, TokenAccount{
			Mint:     info.Mint,
			Amount:   info.TokenAmount.Amount,
			Decimals: info.TokenAmount.Decimals,
			UIAmount: info.TokenAmount.UIAmount,
		})
	}
	return accounts, nil
}

// Raw jsonParsed response shapes.

type getParsedTxResult struct {
	Slot        int64             `json:"slot"`
	BlockTime   *int64            `json:"blockTime"`
	Transaction *getParsedTxInner `json:"transaction"`
}

type getParsedTxInner struct {
	Message *getParsedTxMessage `json:"message"`
}

type getParsedTxMessage struct {
	AccountKeys  []getParsedAccountKey  `json:"accountKeys"`
	Instructions []getParsedInstruction `json:"instructions"`
}

type getParsedAccountKey struct {
	Pubkey string `json:"pubkey"`
}

type getParsedInstruction struct {
	ProgramID string              `json:"programId"`
	Parsed    *getParsedInstrBody `json:"parsed"`
}

type getParsedInstrBody struct {
	Type string             `json:"type"`
	Info getParsedInstrInfo `json:"info"`
}

type getParsedInstrInfo struct {
	Source      string       `json:"source"`
	Destination string       `json:"destination"`
	Authority   string       `json:"authority"`
	Lamports    uint64       `json:"lamports"`
	Mint        string       `json:"mint"`
	TokenAmount *TokenAmount `json:"tokenAmount"`
}

func flattenInstruction(raw getParsedInstruction) ParsedInstruction {
	inst := ParsedInstruction{ProgramID: raw.ProgramID}
	if raw.Parsed == nil {
		return inst
	}
	inst.Type = raw.Parsed.Type
	switch raw.Parsed.Type {
	case "transfer", "transferChecked":
		info := raw.Parsed.Info
		inst.Transfer = &TransferInfo{
			Source:      info.Source,
			Destination: info.Destination,
			Authority:   info.Authority,
			Lamports:    info.Lamports,
			Mint:        info.Mint,
			TokenAmount: info.TokenAmount,
		}
	}
	return inst
}

type getTokenAccountsResult struct {
	Value []struct {
		Account struct {
			Data struct {
				Parsed struct {
					Info struct {
						Mint        string      `json:"mint"`
						TokenAmount TokenAmount `json:"tokenAmount"`
					} `json:"info"`
				} `json:"parsed"`
			} `json:"data"`
		} `json:"account"`
	} `json:"value"`
}
