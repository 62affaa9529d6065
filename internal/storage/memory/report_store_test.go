package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solana-exposure/internal/domain"
	"solana-exposure/internal/storage"
)

func sampleReport(address string) *domain.ExposureReport {
	return &domain.ExposureReport{
		Address:      address,
		OverallScore: 42,
		OverallLevel: domain.LevelMedium,
		SOLBalance:   1.5,
		AnalyzedAt:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestReportStore_PutGetRoundTrip(t *testing.T) {
	store := NewReportStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, sampleReport("WalletA")))

	got, err := store.Get(ctx, "WalletA")
	require.NoError(t, err)
	assert.Equal(t, "WalletA", got.Address)
	assert.Equal(t, 42, got.OverallScore)
	assert.True(t, got.Cached)
}

func TestReportStore_LookupIsCaseInsensitive(t *testing.T) {
	store := NewReportStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, sampleReport("WalletA")))

	got, err := store.Get(ctx, "WALLETA")
	require.NoError(t, err)
	assert.Equal(t, "WalletA", got.Address)
}

func TestReportStore_MissReturnsNotFound(t *testing.T) {
	store := NewReportStore()
	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestReportStore_ExpiredEntryIsDropped(t *testing.T) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := NewReportStore(
		WithTTL(10*time.Minute),
		WithClock(func() time.Time { return current }),
	)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, sampleReport("WalletA")))

	current = current.Add(5 * time.Minute)
	_, err := store.Get(ctx, "WalletA")
	require.NoError(t, err, "entry within TTL must be servable")

	current = current.Add(6 * time.Minute)
	_, err = store.Get(ctx, "WalletA")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.Zero(t, store.Len(), "expired entry must be evicted on access")
}

func TestReportStore_PutRefreshesTTL(t *testing.T) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := NewReportStore(
		WithTTL(10*time.Minute),
		WithClock(func() time.Time { return current }),
	)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, sampleReport("WalletA")))
	current = current.Add(9 * time.Minute)
	require.NoError(t, store.Put(ctx, sampleReport("WalletA")))

	current = current.Add(9 * time.Minute)
	_, err := store.Get(ctx, "WalletA")
	assert.NoError(t, err, "second Put must reset the entry lifetime")
}

func TestReportStore_GetReturnsCopy(t *testing.T) {
	store := NewReportStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, sampleReport("WalletA")))

	first, err := store.Get(ctx, "WalletA")
	require.NoError(t, err)
	first.OverallScore = 99

	second, err := store.Get(ctx, "WalletA")
	require.NoError(t, err)
	assert.Equal(t, 42, second.OverallScore, "mutating a returned report must not affect the store")
}

func TestReportStore_Delete(t *testing.T) {
	store := NewReportStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, sampleReport("WalletA")))
	require.NoError(t, store.Delete(ctx, "walleta"))

	_, err := store.Get(ctx, "WalletA")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// Deleting an absent key is not an error.
	assert.NoError(t, store.Delete(ctx, "missing"))
}

func TestReportStore_InvalidInput(t *testing.T) {
	store := NewReportStore()
	ctx := context.Background()

	_, err := store.Get(ctx, "")
	assert.ErrorIs(t, err, storage.ErrInvalidInput)
	assert.ErrorIs(t, store.Put(ctx, nil), storage.ErrInvalidInput)
	assert.ErrorIs(t, store.Put(ctx, &domain.ExposureReport{}), storage.ErrInvalidInput)
	assert.ErrorIs(t, store.Delete(ctx, ""), storage.ErrInvalidInput)
}
