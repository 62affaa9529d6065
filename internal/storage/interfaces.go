package storage

import (
	"context"

	"solana-exposure/internal/domain"
)

// ReportStore caches completed exposure reports keyed by lower-cased wallet
// address. Entries expire after the store's TTL; an expired entry behaves as
// if it never existed.
type ReportStore interface {
	// Get retrieves a non-expired report. Returns ErrNotFound if the
	// address has no report or the stored one has expired.
	Get(ctx context.Context, address string) (*domain.ExposureReport, error)

	// Put stores a report, replacing any previous one for the address.
	Put(ctx context.Context, report *domain.ExposureReport) error

	// Delete removes a stored report. Removing a missing entry is not an
	// error.
	Delete(ctx context.Context, address string) error
}
