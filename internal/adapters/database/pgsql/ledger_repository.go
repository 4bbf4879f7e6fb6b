package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/TaniCatat/tani_catat_app/internal/apperrors"
	"github.com/TaniCatat/tani_catat_app/internal/core/domain"
	portsrepo "github.com/TaniCatat/tani_catat_app/internal/core/ports/repositories"
	"github.com/TaniCatat/tani_catat_app/internal/models"
	"github.com/TaniCatat/tani_catat_app/internal/utils/mapping"
)

// PgxLedgerRepository stores ledger entries as jsonb documents keyed by
// (collection, entry_id), mirroring the keyed document store the ledgers
// were designed against while keeping the pair write transactional.
type PgxLedgerRepository struct {
	pool *pgxpool.Pool
}

// NewPgxLedgerRepository creates a new repository over the ledger document
// table.
func NewPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepository {
	return &PgxLedgerRepository{pool: pool}
}

var _ portsrepo.LedgerRepository = (*PgxLedgerRepository)(nil)

// NextKey reserves a new entry key. UUIDv7 keys are time-sortable, so entry
// order within a collection follows recording order without a sequence.
func (r *PgxLedgerRepository) NextKey(ctx context.Context, collection domain.Collection) (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate key for collection %s: %w", collection, err)
	}
	return id.String(), nil
}

const insertDocumentQuery = `
	INSERT INTO ledger_documents (collection, entry_id, document, recorded_at)
	VALUES ($1, $2, $3, $4);
`

// SaveLedgerPair writes the item entry and its linked cash entry in a single
// database transaction: both legs persist or neither does, so a partial
// record can never be observed from this store.
func (r *PgxLedgerRepository) SaveLedgerPair(ctx context.Context, itemCollection domain.Collection, item domain.ItemLedgerEntry, cashCollection domain.Collection, cash domain.CashLedgerEntry) error {
	itemDoc, err := json.Marshal(mapping.ToItemDocument(item))
	if err != nil {
		return fmt.Errorf("failed to marshal item entry %s: %w", item.EntryID, err)
	}
	cashDoc, err := json.Marshal(mapping.ToCashDocument(cash))
	if err != nil {
		return fmt.Errorf("failed to marshal cash entry %s: %w", cash.EntryID, err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %w", apperrors.ErrStoreUnavailable, err)
	}
	defer func() {
		_ = tx.Rollback(ctx) // Ignore rollback error
	}()

	if _, err := tx.Exec(ctx, insertDocumentQuery, itemCollection, item.EntryID, itemDoc, item.RecordedAt); err != nil {
		return fmt.Errorf("failed to insert item entry %s: %w", item.EntryID, err)
	}
	if _, err := tx.Exec(ctx, insertDocumentQuery, cashCollection, cash.EntryID, cashDoc, cash.RecordedAt); err != nil {
		return fmt.Errorf("failed to insert cash entry %s: %w", cash.EntryID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit ledger pair for item entry %s: %w", item.EntryID, err)
	}
	return nil
}

// ReadAllCashEntries returns every document of a cash collection in
// recording order.
func (r *PgxLedgerRepository) ReadAllCashEntries(ctx context.Context, collection domain.Collection) ([]domain.CashLedgerEntry, error) {
	rows, err := r.readCollection(ctx, collection)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.CashLedgerEntry, 0, len(rows))
	for _, row := range rows {
		var doc models.CashDocument
		if err := json.Unmarshal(row.document, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode cash entry %s in %s: %w", row.entryID, collection, err)
		}
		entries = append(entries, mapping.ToDomainCashEntry(row.entryID, doc))
	}
	return entries, nil
}

// ReadAllItemEntries returns every document of an item collection in
// recording order.
func (r *PgxLedgerRepository) ReadAllItemEntries(ctx context.Context, collection domain.Collection) ([]domain.ItemLedgerEntry, error) {
	rows, err := r.readCollection(ctx, collection)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.ItemLedgerEntry, 0, len(rows))
	for _, row := range rows {
		var doc models.ItemDocument
		if err := json.Unmarshal(row.document, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode item entry %s in %s: %w", row.entryID, collection, err)
		}
		entries = append(entries, mapping.ToDomainItemEntry(row.entryID, doc))
	}
	return entries, nil
}

type documentRow struct {
	entryID  string
	document []byte
}

func (r *PgxLedgerRepository) readCollection(ctx context.Context, collection domain.Collection) ([]documentRow, error) {
	query := `
		SELECT entry_id, document
		FROM ledger_documents
		WHERE collection = $1
		ORDER BY recorded_at, entry_id;
	`
	rows, err := r.pool.Query(ctx, query, collection)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query collection %s: %w", apperrors.ErrStoreUnavailable, collection, err)
	}
	defer rows.Close()

	var result []documentRow
	for rows.Next() {
		var row documentRow
		if err := rows.Scan(&row.entryID, &row.document); err != nil {
			return nil, fmt.Errorf("failed to scan document row in %s: %w", collection, err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate collection %s: %w", collection, err)
	}
	return result, nil
}

// FindCashEntryByID performs a point read on a cash collection.
func (r *PgxLedgerRepository) FindCashEntryByID(ctx context.Context, collection domain.Collection, entryID string) (*domain.CashLedgerEntry, error) {
	query := `
		SELECT document
		FROM ledger_documents
		WHERE collection = $1 AND entry_id = $2;
	`
	var raw []byte
	err := r.pool.QueryRow(ctx, query, collection, entryID).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find cash entry %s in %s: %w", entryID, collection, err)
	}

	var doc models.CashDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode cash entry %s in %s: %w", entryID, collection, err)
	}
	entry := mapping.ToDomainCashEntry(entryID, doc)
	return &entry, nil
}
