package repositories

import (
	"context"

	"github.com/TaniCatat/tani_catat_app/internal/core/domain"
)

// LedgerRepository is the keyed document store behind the four ledger
// collections. The store is the sole authority on entry identity; callers
// never invent ids.
type LedgerRepository interface {
	// NextKey reserves a new unique, time-sortable key for the collection.
	NextKey(ctx context.Context, collection domain.Collection) (string, error)

	// SaveLedgerPair writes an item entry and its linked cash entry as one
	// logical operation. A transactional store writes both or neither; a
	// store that cannot make the pair atomic must return
	// *apperrors.PartialRecordError when the cash leg fails after the item
	// leg was written, so the orphaned item id survives for reconciliation.
	SaveLedgerPair(ctx context.Context, itemCollection domain.Collection, item domain.ItemLedgerEntry, cashCollection domain.Collection, cash domain.CashLedgerEntry) error

	// ReadAllCashEntries returns every entry of a cash collection ordered by
	// recording time. Documents missing an amount are returned with a nil
	// amount rather than dropped; skipping is the aggregator's decision.
	ReadAllCashEntries(ctx context.Context, collection domain.Collection) ([]domain.CashLedgerEntry, error)

	// ReadAllItemEntries returns every entry of an item collection ordered by
	// recording time.
	ReadAllItemEntries(ctx context.Context, collection domain.Collection) ([]domain.ItemLedgerEntry, error)

	// FindCashEntryByID performs a point read on a cash collection,
	// returning apperrors.ErrNotFound when the key does not exist.
	FindCashEntryByID(ctx context.Context, collection domain.Collection, entryID string) (*domain.CashLedgerEntry, error)
}
