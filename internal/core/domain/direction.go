package domain

// Direction indicates whether money or goods flow into or out of the farm.
type Direction string

const (
	Inflow  Direction = "IN"
	Outflow Direction = "OUT"
)

// Opposite returns the inverse flow direction. An item inflow (purchase)
// moves cash out, an item outflow (sale) moves cash in.
func (d Direction) Opposite() Direction {
	if d == Inflow {
		return Outflow
	}
	return Inflow
}

// Collection names one of the four ledger collections in the store.
type Collection string

const (
	CollectionItemIn  Collection = "item_in"
	CollectionItemOut Collection = "item_out"
	CollectionCashIn  Collection = "cash_in"
	CollectionCashOut Collection = "cash_out"
)

// ItemCollection selects the item ledger collection for a flow direction.
func ItemCollection(d Direction) Collection {
	if d == Inflow {
		return CollectionItemIn
	}
	return CollectionItemOut
}

// CashCollection selects the cash ledger collection for a flow direction.
func CashCollection(d Direction) Collection {
	if d == Inflow {
		return CollectionCashIn
	}
	return CollectionCashOut
}
