package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"solana-exposure/internal/domain"
	"solana-exposure/internal/storage"
)

// DefaultTTL matches the in-memory store's entry lifetime.
const DefaultTTL = 10 * time.Minute

// ReportStore implements storage.ReportStore using PostgreSQL. Reports are
// stored as JSONB; expiry is evaluated on read against the stored_at column
// so stale rows need no background sweeper.
type ReportStore struct {
	pool *Pool
	ttl  time.Duration
	now  func() time.Time
}

// StoreOption configures a ReportStore.
type StoreOption func(*ReportStore)

// WithTTL overrides the default entry lifetime.
func WithTTL(ttl time.Duration) StoreOption {
	return func(s *ReportStore) {
		s.ttl = ttl
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) StoreOption {
	return func(s *ReportStore) {
		s.now = now
	}
}

// NewReportStore creates a new ReportStore.
func NewReportStore(pool *Pool, opts ...StoreOption) *ReportStore {
	s := &ReportStore{
		pool: pool,
		ttl:  DefaultTTL,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Compile-time interface check.
var _ storage.ReportStore = (*ReportStore)(nil)

// Get retrieves a non-expired report. Returns storage.ErrNotFound when the
// address has no row or the row is older than the TTL.
func (s *ReportStore) Get(ctx context.Context, address string) (*domain.ExposureReport, error) {
	if address == "" {
		return nil, storage.ErrInvalidInput
	}

	query := `
		SELECT report, stored_at
		FROM exposure_reports
		WHERE address = $1
	`

	var raw []byte
	var storedAt time.Time
	err := s.pool.QueryRow(ctx, query, strings.ToLower(address)).Scan(&raw, &storedAt)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get report: %w", err)
	}

	if s.now().Sub(storedAt) > s.ttl {
		return nil, storage.ErrNotFound
	}

	var report domain.ExposureReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	report.Cached = true
	return &report, nil
}

// Put upserts the report for its address.
func (s *ReportStore) Put(ctx context.Context, report *domain.ExposureReport) error {
	if report == nil || report.Address == "" {
		return storage.ErrInvalidInput
	}

	raw, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	query := `
		INSERT INTO exposure_reports (address, report, stored_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (address) DO UPDATE
		SET report = EXCLUDED.report, stored_at = EXCLUDED.stored_at
	`

	if _, err := s.pool.Exec(ctx, query, strings.ToLower(report.Address), raw, s.now()); err != nil {
		return fmt.Errorf("put report: %w", err)
	}
	return nil
}

// Delete removes a stored report if present.
func (s *ReportStore) Delete(ctx context.Context, address string) error {
	if address == "" {
		return storage.ErrInvalidInput
	}

	query := `DELETE FROM exposure_reports WHERE address = $1`
	if _, err := s.pool.Exec(ctx, query, strings.ToLower(address)); err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	return nil
}
