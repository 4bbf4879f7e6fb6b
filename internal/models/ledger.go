package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemDocument is the stored shape of an item ledger entry. The entry id is
// the document key and lives outside the document itself.
type ItemDocument struct {
	Name        string          `json:"name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	RecordedAt  time.Time       `json:"recordedAt"`
}

// CashDocument is the stored shape of a cash ledger entry. Amount is a
// pointer so documents written before the amount field was mandatory still
// decode.
type CashDocument struct {
	Amount            *decimal.Decimal `json:"amount,omitempty"`
	Memo              string           `json:"memo"`
	RecordedAt        time.Time        `json:"recordedAt"`
	LinkedItemEntryID string           `json:"linkedItemEntryId,omitempty"`
}
