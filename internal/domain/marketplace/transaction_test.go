package marketplace

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransaction_ComputeSettlement(t *testing.T) {
	tx := Transaction{
		Revenue:     decimal.RequireFromString("900.50"),
		Fees:        decimal.RequireFromString("-10.25"),
		Adjustments: decimal.RequireFromString("-0.25"),
	}
	assert.True(t, decimal.RequireFromString("890").Equal(tx.ComputeSettlement()))
	assert.True(t, Transaction{}.ComputeSettlement().IsZero())
}

func TestRawRow_Clone(t *testing.T) {
	assert.Nil(t, RawRow(nil).Clone())

	orig := RawRow{"Order ID": "1"}
	c := orig.Clone()
	c["Order ID"] = "2"
	assert.Equal(t, "1", orig["Order ID"])
	assert.Equal(t, RawRow{}, RawRow{}.Clone())
}
