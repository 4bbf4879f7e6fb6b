package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// IntentKind tags the structured transaction intents produced by the
// external classifier.
type IntentKind string

const (
	InflowItem  IntentKind = "INFLOW_ITEM"
	OutflowItem IntentKind = "OUTFLOW_ITEM"
)

// Direction maps the intent kind onto the item flow direction.
func (k IntentKind) Direction() Direction {
	if k == OutflowItem {
		return Outflow
	}
	return Inflow
}

// TransactionIntent is a validated, typed transaction request. Quantity and
// TotalAmount must both be strictly positive before the recorder acts on it.
type TransactionIntent struct {
	Kind        IntentKind      `json:"kind" validate:"required,oneof=INFLOW_ITEM OUTFLOW_ITEM"`
	Name        string          `json:"name" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit" validate:"required"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// UnitPrice derives the per-unit price. The caller must reject a
// non-positive quantity before calling; unit price is never stored
// independently of its inputs.
func (i TransactionIntent) UnitPrice() decimal.Decimal {
	return i.TotalAmount.Div(i.Quantity)
}

// Memo renders the deterministic cash ledger memo for this intent,
// e.g. "Buy pakan (50 kg)".
func (i TransactionIntent) Memo() string {
	verb := "Buy"
	if i.Kind == OutflowItem {
		verb = "Sell"
	}
	return fmt.Sprintf("%s %s (%s %s)", verb, i.Name, i.Quantity.String(), i.Unit)
}
