package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"solana-exposure/internal/domain"
	"solana-exposure/internal/storage"
)

// DefaultTTL is how long a stored report stays servable.
const DefaultTTL = 10 * time.Minute

// ReportStore is an in-memory TTL implementation of storage.ReportStore.
type ReportStore struct {
	mu   sync.RWMutex
	data map[string]entry // keyed by lower-cased address
	ttl  time.Duration
	now  func() time.Time
}

type entry struct {
	report   domain.ExposureReport
	storedAt time.Time
}

// Option configures a ReportStore.
type Option func(*ReportStore)

// WithTTL overrides the default entry lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(s *ReportStore) {
		s.ttl = ttl
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *ReportStore) {
		s.now = now
	}
}

// NewReportStore creates a new in-memory report store.
func NewReportStore(opts ...Option) *ReportStore {
	s := &ReportStore{
		data: make(map[string]entry),
		ttl:  DefaultTTL,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get retrieves a non-expired report. The returned report is a copy with
// Cached set; expired entries are dropped on access.
func (s *ReportStore) Get(_ context.Context, address string) (*domain.ExposureReport, error) {
	if address == "" {
		return nil, storage.ErrInvalidInput
	}
	key := strings.ToLower(address)

	s.mu.RLock()
	e, exists := s.data[key]
	s.mu.RUnlock()
	if !exists {
		return nil, storage.ErrNotFound
	}

	if s.now().Sub(e.storedAt) > s.ttl {
		s.mu.Lock()
		// Re-check under the write lock; a fresher Put may have replaced it.
		if cur, ok := s.data[key]; ok && cur.storedAt.Equal(e.storedAt) {
			delete(s.data, key)
		}
		s.mu.Unlock()
		return nil, storage.ErrNotFound
	}

	report := e.report
	report.Cached = true
	return &report, nil
}

// Put stores a copy of the report, replacing any previous entry.
func (s *ReportStore) Put(_ context.Context, report *domain.ExposureReport) error {
	if report == nil || report.Address == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[strings.ToLower(report.Address)] = entry{
		report:   *report,
		storedAt: s.now(),
	}
	return nil
}

// Delete removes a stored report if present.
func (s *ReportStore) Delete(_ context.Context, address string) error {
	if address == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, strings.ToLower(address))
	return nil
}

// Len reports the number of stored entries, including expired ones not yet
// dropped.
func (s *ReportStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Verify interface compliance at compile time.
var _ storage.ReportStore = (*ReportStore)(nil)
