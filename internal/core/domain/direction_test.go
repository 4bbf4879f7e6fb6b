package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TaniCatat/tani_catat_app/internal/core/domain"
)

func TestOpposite(t *testing.T) {
	assert.Equal(t, domain.Outflow, domain.Inflow.Opposite())
	assert.Equal(t, domain.Inflow, domain.Outflow.Opposite())
}

func TestCollectionSelection(t *testing.T) {
	assert.Equal(t, domain.CollectionItemIn, domain.ItemCollection(domain.Inflow))
	assert.Equal(t, domain.CollectionItemOut, domain.ItemCollection(domain.Outflow))
	assert.Equal(t, domain.CollectionCashIn, domain.CashCollection(domain.Inflow))
	assert.Equal(t, domain.CollectionCashOut, domain.CashCollection(domain.Outflow))
}

// A purchase books goods in and cash out; a sale books goods out and cash
// in. The pairing below is the inversion rule the recorder relies on.
func TestDirectionInversionLaw(t *testing.T) {
	purchase := domain.InflowItem.Direction()
	assert.Equal(t, domain.CollectionItemIn, domain.ItemCollection(purchase))
	assert.Equal(t, domain.CollectionCashOut, domain.CashCollection(purchase.Opposite()))

	sale := domain.OutflowItem.Direction()
	assert.Equal(t, domain.CollectionItemOut, domain.ItemCollection(sale))
	assert.Equal(t, domain.CollectionCashIn, domain.CashCollection(sale.Opposite()))
}
