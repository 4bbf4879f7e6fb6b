package mapping

import (
	"github.com/TaniCatat/tani_catat_app/internal/core/domain"
	"github.com/TaniCatat/tani_catat_app/internal/models"
)

// ToItemDocument converts a domain item entry to its stored document shape.
func ToItemDocument(entry domain.ItemLedgerEntry) models.ItemDocument {
	return models.ItemDocument{
		Name:        entry.Name,
		Quantity:    entry.Quantity,
		Unit:        entry.Unit,
		TotalAmount: entry.TotalAmount,
		UnitPrice:   entry.UnitPrice,
		RecordedAt:  entry.RecordedAt,
	}
}

// ToDomainItemEntry converts a stored item document back to the domain type.
func ToDomainItemEntry(entryID string, doc models.ItemDocument) domain.ItemLedgerEntry {
	return domain.ItemLedgerEntry{
		EntryID:     entryID,
		Name:        doc.Name,
		Quantity:    doc.Quantity,
		Unit:        doc.Unit,
		TotalAmount: doc.TotalAmount,
		UnitPrice:   doc.UnitPrice,
		RecordedAt:  doc.RecordedAt,
	}
}

// ToCashDocument converts a domain cash entry to its stored document shape.
func ToCashDocument(entry domain.CashLedgerEntry) models.CashDocument {
	return models.CashDocument{
		Amount:            entry.Amount,
		Memo:              entry.Memo,
		RecordedAt:        entry.RecordedAt,
		LinkedItemEntryID: entry.LinkedItemEntryID,
	}
}

// ToDomainCashEntry converts a stored cash document back to the domain type.
func ToDomainCashEntry(entryID string, doc models.CashDocument) domain.CashLedgerEntry {
	return domain.CashLedgerEntry{
		EntryID:           entryID,
		Amount:            doc.Amount,
		Memo:              doc.Memo,
		RecordedAt:        doc.RecordedAt,
		LinkedItemEntryID: doc.LinkedItemEntryID,
	}
}
