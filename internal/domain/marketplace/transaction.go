package marketplace

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// RawRow preserves the original cell text of a spreadsheet row keyed by header, for audit
type RawRow map[string]string

// Clone returns a copy of the row so that callers cannot mutate a shared map
func (r RawRow) Clone() RawRow {
	if r == nil {
		return nil
	}
	out := make(RawRow, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// RecordTypeOrder is the record type used by platforms that do not distinguish adjustment rows
const RecordTypeOrder = "Order"

// Transaction is a platform-level financial ledger row.
// It is created once per spreadsheet row and never merged with other rows.
type Transaction struct {
	Platform    Platform        `json:"platform"`
	ExternalID  string          `json:"external_id"`
	SKU         string          `json:"sku"`
	RecordType  string          `json:"record_type"`
	OrderDate   *civil.Date     `json:"order_date,omitempty"`
	PaymentDate *civil.Date     `json:"payment_date,omitempty"`
	Revenue     decimal.Decimal `json:"revenue"`
	Fees        decimal.Decimal `json:"fees"`
	Adjustments decimal.Decimal `json:"adjustments"`
	Settlement  decimal.Decimal `json:"settlement"`
	RowNumber   int             `json:"row_number"`
	RawRow      RawRow          `json:"raw_row,omitempty"`
}

// ComputeSettlement returns revenue + fees + adjustments
func (t Transaction) ComputeSettlement() decimal.Decimal {
	return t.Revenue.Add(t.Fees).Add(t.Adjustments)
}
