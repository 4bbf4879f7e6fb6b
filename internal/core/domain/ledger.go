package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemLedgerEntry records the physical goods side of a transaction. Entries
// are immutable once written and owned by the item collection they were
// written to.
type ItemLedgerEntry struct {
	EntryID     string          `json:"entryID"` // Store-generated, unique, time-sortable
	Name        string          `json:"name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	RecordedAt  time.Time       `json:"recordedAt"`
}

// CashLedgerEntry records the money side of a transaction. Each entry
// written by the recorder carries exactly one back-reference to the item
// entry that caused it; the reverse link does not exist. Amount is a pointer
// so that historical documents missing the field survive a read instead of
// failing it.
type CashLedgerEntry struct {
	EntryID           string           `json:"entryID"`
	Amount            *decimal.Decimal `json:"amount,omitempty"`
	Memo              string           `json:"memo"`
	RecordedAt        time.Time        `json:"recordedAt"`
	LinkedItemEntryID string           `json:"linkedItemEntryId"` // Lookup-only back-reference, not ownership
}

// ConfirmationAction names the action a confirmation reports.
type ConfirmationAction string

const (
	ActionBought ConfirmationAction = "bought"
	ActionSold   ConfirmationAction = "sold"
)

// Confirmation is returned to the caller after a successful ledger pair
// write.
type Confirmation struct {
	Action      ConfirmationAction `json:"action"`
	ItemName    string             `json:"itemName"`
	TotalAmount decimal.Decimal    `json:"totalAmount"`
	Reply       string             `json:"reply"` // Display string with the amount formatted as currency
}
