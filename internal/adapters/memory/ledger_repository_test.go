package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TaniCatat/tani_catat_app/internal/adapters/memory"
	"github.com/TaniCatat/tani_catat_app/internal/apperrors"
	"github.com/TaniCatat/tani_catat_app/internal/core/domain"
)

func newPair(repo *memory.LedgerRepository, t *testing.T, recordedAt time.Time) (domain.ItemLedgerEntry, domain.CashLedgerEntry) {
	t.Helper()
	ctx := context.Background()

	itemID, err := repo.NextKey(ctx, domain.CollectionItemIn)
	require.NoError(t, err)
	cashID, err := repo.NextKey(ctx, domain.CollectionCashOut)
	require.NoError(t, err)

	amount := decimal.NewFromInt(750000)
	item := domain.ItemLedgerEntry{
		EntryID:     itemID,
		Name:        "pakan",
		Quantity:    decimal.NewFromInt(50),
		Unit:        "kg",
		TotalAmount: amount,
		UnitPrice:   decimal.NewFromInt(15000),
		RecordedAt:  recordedAt,
	}
	cash := domain.CashLedgerEntry{
		EntryID:           cashID,
		Amount:            &amount,
		Memo:              "Buy pakan (50 kg)",
		RecordedAt:        recordedAt,
		LinkedItemEntryID: itemID,
	}
	return item, cash
}

func TestSaveLedgerPairAndReadBack(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewLedgerRepository()
	item, cash := newPair(repo, t, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

	err := repo.SaveLedgerPair(ctx, domain.CollectionItemIn, item, domain.CollectionCashOut, cash)
	require.NoError(t, err)

	// Point read of the cash leg yields the linked amount
	got, err := repo.FindCashEntryByID(ctx, domain.CollectionCashOut, cash.EntryID)
	require.NoError(t, err)
	require.NotNil(t, got.Amount)
	assert.True(t, got.Amount.Equal(item.TotalAmount))
	assert.Equal(t, item.EntryID, got.LinkedItemEntryID)

	items, err := repo.ReadAllItemEntries(ctx, domain.CollectionItemIn)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, item.EntryID, items[0].EntryID)

	// The other two collections stay empty
	cashIn, err := repo.ReadAllCashEntries(ctx, domain.CollectionCashIn)
	require.NoError(t, err)
	assert.Empty(t, cashIn)
}

func TestNextKeysAreUniqueAndSortable(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewLedgerRepository()

	seen := make(map[string]struct{})
	prev := ""
	for i := 0; i < 100; i++ {
		key, err := repo.NextKey(ctx, domain.CollectionItemIn)
		require.NoError(t, err)
		_, dup := seen[key]
		require.False(t, dup, "key %s issued twice", key)
		seen[key] = struct{}{}
		if prev != "" {
			assert.LessOrEqual(t, prev[:8], key[:8], "v7 keys should not go backwards in their time prefix")
		}
		prev = key
	}
}

func TestReadAllOrdersByRecordingTime(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewLedgerRepository()

	later, laterCash := newPair(repo, t, time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC))
	earlier, earlierCash := newPair(repo, t, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

	require.NoError(t, repo.SaveLedgerPair(ctx, domain.CollectionItemIn, later, domain.CollectionCashOut, laterCash))
	require.NoError(t, repo.SaveLedgerPair(ctx, domain.CollectionItemIn, earlier, domain.CollectionCashOut, earlierCash))

	entries, err := repo.ReadAllCashEntries(ctx, domain.CollectionCashOut)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, earlierCash.EntryID, entries[0].EntryID)
	assert.Equal(t, laterCash.EntryID, entries[1].EntryID)
}

func TestFailNextCashLegReturnsPartialRecordError(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewLedgerRepository()
	item, cash := newPair(repo, t, time.Now().UTC())

	repo.FailNextCashLeg()
	err := repo.SaveLedgerPair(ctx, domain.CollectionItemIn, item, domain.CollectionCashOut, cash)

	var partial *apperrors.PartialRecordError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, item.EntryID, partial.ItemEntryID)

	// The orphaned item leg is persisted, the cash leg is not
	items, readErr := repo.ReadAllItemEntries(ctx, domain.CollectionItemIn)
	require.NoError(t, readErr)
	assert.Len(t, items, 1)
	_, findErr := repo.FindCashEntryByID(ctx, domain.CollectionCashOut, cash.EntryID)
	assert.ErrorIs(t, findErr, apperrors.ErrNotFound)

	// The fail point disarms after one use
	item2, cash2 := newPair(repo, t, time.Now().UTC())
	require.NoError(t, repo.SaveLedgerPair(ctx, domain.CollectionItemIn, item2, domain.CollectionCashOut, cash2))
}
