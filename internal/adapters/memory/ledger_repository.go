// Package memory provides an in-memory LedgerRepository for tests and for
// running the service without Postgres. Unlike the transactional pgsql
// adapter it writes the two legs of a pair independently, so it can also
// exercise the partial-record path.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/TaniCatat/tani_catat_app/internal/apperrors"
	"github.com/TaniCatat/tani_catat_app/internal/core/domain"
	portsrepo "github.com/TaniCatat/tani_catat_app/internal/core/ports/repositories"
)

type storedDocument struct {
	item *domain.ItemLedgerEntry
	cash *domain.CashLedgerEntry
}

// LedgerRepository is a mutex-guarded in-memory document store.
type LedgerRepository struct {
	mu          sync.Mutex
	collections map[domain.Collection]map[string]storedDocument

	// failCashLeg, when set, makes the next SaveLedgerPair fail after the
	// item leg was written.
	failCashLeg bool
}

// NewLedgerRepository creates an empty in-memory ledger store.
func NewLedgerRepository() *LedgerRepository {
	return &LedgerRepository{
		collections: make(map[domain.Collection]map[string]storedDocument),
	}
}

var _ portsrepo.LedgerRepository = (*LedgerRepository)(nil)

// FailNextCashLeg makes the next pair write lose its cash leg, simulating a
// non-transactional store dying between the two writes.
func (r *LedgerRepository) FailNextCashLeg() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failCashLeg = true
}

// NextKey reserves a new UUIDv7 key for the collection.
func (r *LedgerRepository) NextKey(ctx context.Context, collection domain.Collection) (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate key for collection %s: %w", collection, err)
	}
	return id.String(), nil
}

// SaveLedgerPair stores both entries, or returns a PartialRecordError when
// the simulated cash-leg failure is armed.
func (r *LedgerRepository) SaveLedgerPair(ctx context.Context, itemCollection domain.Collection, item domain.ItemLedgerEntry, cashCollection domain.Collection, cash domain.CashLedgerEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.collection(itemCollection)[item.EntryID] = storedDocument{item: &item}

	if r.failCashLeg {
		r.failCashLeg = false
		return &apperrors.PartialRecordError{
			ItemEntryID: item.EntryID,
			Err:         fmt.Errorf("simulated cash leg failure"),
		}
	}

	r.collection(cashCollection)[cash.EntryID] = storedDocument{cash: &cash}
	return nil
}

// ReadAllCashEntries returns the cash collection ordered by recording time,
// then key.
func (r *LedgerRepository) ReadAllCashEntries(ctx context.Context, collection domain.Collection) ([]domain.CashLedgerEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := make([]domain.CashLedgerEntry, 0, len(r.collection(collection)))
	for _, doc := range r.collection(collection) {
		if doc.cash != nil {
			entries = append(entries, *doc.cash)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].RecordedAt.Equal(entries[j].RecordedAt) {
			return entries[i].RecordedAt.Before(entries[j].RecordedAt)
		}
		return entries[i].EntryID < entries[j].EntryID
	})
	return entries, nil
}

// ReadAllItemEntries returns the item collection ordered by recording time,
// then key.
func (r *LedgerRepository) ReadAllItemEntries(ctx context.Context, collection domain.Collection) ([]domain.ItemLedgerEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := make([]domain.ItemLedgerEntry, 0, len(r.collection(collection)))
	for _, doc := range r.collection(collection) {
		if doc.item != nil {
			entries = append(entries, *doc.item)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].RecordedAt.Equal(entries[j].RecordedAt) {
			return entries[i].RecordedAt.Before(entries[j].RecordedAt)
		}
		return entries[i].EntryID < entries[j].EntryID
	})
	return entries, nil
}

// FindCashEntryByID performs a point read on a cash collection.
func (r *LedgerRepository) FindCashEntryByID(ctx context.Context, collection domain.Collection, entryID string) (*domain.CashLedgerEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := r.collection(collection)[entryID]
	if !ok || doc.cash == nil {
		return nil, apperrors.ErrNotFound
	}
	entry := *doc.cash
	return &entry, nil
}

// InsertCashEntry writes a single cash entry directly, bypassing the pair
// invariant. Intended for seeding historical data in tests.
func (r *LedgerRepository) InsertCashEntry(collection domain.Collection, entry domain.CashLedgerEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.collection(collection)[entry.EntryID] = storedDocument{cash: &entry}
}

func (r *LedgerRepository) collection(name domain.Collection) map[string]storedDocument {
	col, ok := r.collections[name]
	if !ok {
		col = make(map[string]storedDocument)
		r.collections[name] = col
	}
	return col
}
