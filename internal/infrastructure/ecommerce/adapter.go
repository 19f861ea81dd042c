// Package ecommerce declares how each marketplace export lays out its columns.
//
// Every platform has a finance adapter (settlement/income reports) and a product-sales adapter
// (order exports). An adapter is a table of semantic fields to ordered header synonyms; the first
// synonym present in a sheet's header row wins. Unbound fields read as the scalar default.
package ecommerce

import (
	"strings"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/erp/salesnorm/internal/domain/marketplace"
	"github.com/erp/salesnorm/internal/infrastructure/normalize"
)

// Field is a semantic column understood by the parsers
type Field string

// Finance fields
const (
	FieldExternalID       Field = "external_id"
	FieldSKU              Field = "sku"
	FieldRecordType       Field = "record_type"
	FieldOrderDate        Field = "order_date"
	FieldPaymentDate      Field = "payment_date"
	FieldSubtotal         Field = "subtotal_before_discounts"
	FieldSellerDiscount   Field = "seller_discount"
	FieldRefundSubtotal   Field = "refund_subtotal"
	FieldShippingIncome   Field = "shipping_income"
	FieldFeeTotal         Field = "fee_total"
	FieldTransactionFee   Field = "transaction_fee"
	FieldCommissionFee    Field = "commission_fee"
	FieldServiceFee       Field = "service_fee"
	FieldAffiliateFee     Field = "affiliate_commission"
	FieldShippingFee      Field = "shipping_fee"
	FieldAdjustmentAmount Field = "adjustment_amount"
	FieldSettlementAmount Field = "settlement"
)

// Product sales fields
const (
	FieldOrderID          Field = "order_id"
	FieldVariantCode      Field = "variant_code"
	FieldProductName      Field = "product_name"
	FieldVariantName      Field = "variant_name"
	FieldQuantity         Field = "quantity"
	FieldReturnedQuantity Field = "returned_quantity"
	FieldRevenue          Field = "revenue"
	FieldProvince         Field = "province"
)

// Kind distinguishes the two export families of a platform
type Kind string

const (
	KindFinance      Kind = "finance"
	KindProductSales Kind = "product_sales"
)

// Column lists the header synonyms probed for one field, in priority order
type Column struct {
	Field    Field
	Synonyms []string
}

// ColumnAdapter is the declarative header table for one platform and export kind
type ColumnAdapter struct {
	Platform marketplace.Platform
	Kind     Kind
	Columns  []Column
}

// Synonyms returns the header synonyms declared for field
func (a *ColumnAdapter) Synonyms(field Field) []string {
	for _, c := range a.Columns {
		if c.Field == field {
			return c.Synonyms
		}
	}
	return nil
}

// Bind resolves every declared field against a sheet's header row.
// Header comparison is case-insensitive and ignores surrounding whitespace.
func (a *ColumnAdapter) Bind(headers []string) *Binding {
	byKey := make(map[string]string, len(headers))
	for _, h := range headers {
		key := headerKey(h)
		if key == "" {
			continue
		}
		if _, exists := byKey[key]; !exists {
			byKey[key] = h
		}
	}

	b := &Binding{
		adapter: a,
		headers: make(map[Field]string, len(a.Columns)),
	}
	for _, c := range a.Columns {
		for _, syn := range c.Synonyms {
			if h, ok := byKey[headerKey(syn)]; ok {
				b.headers[c.Field] = h
				break
			}
		}
	}
	return b
}

// Binding is an adapter resolved against one sheet. It is read-only after Bind.
type Binding struct {
	adapter *ColumnAdapter
	headers map[Field]string
}

// Header returns the sheet header bound to field
func (b *Binding) Header(field Field) (string, bool) {
	h, ok := b.headers[field]
	return h, ok
}

// Bound reports whether any synonym of field was present in the header row
func (b *Binding) Bound(field Field) bool {
	_, ok := b.headers[field]
	return ok
}

// Recognized returns the number of declared fields found in the header row
func (b *Binding) Recognized() int {
	return len(b.headers)
}

// Missing returns the declared fields that were not found, in declaration order
func (b *Binding) Missing() []Field {
	var missing []Field
	for _, c := range b.adapter.Columns {
		if !b.Bound(c.Field) {
			missing = append(missing, c.Field)
		}
	}
	return missing
}

// Cell returns the raw cell text for field, or "" when unbound
func (b *Binding) Cell(row map[string]string, field Field) string {
	h, ok := b.headers[field]
	if !ok {
		return ""
	}
	return row[h]
}

// Text returns the cleaned text of field
func (b *Binding) Text(row map[string]string, field Field) string {
	return normalize.CleanText(b.Cell(row, field))
}

// Amount returns the decimal value of field, zero when unbound or unparsable
func (b *Binding) Amount(row map[string]string, field Field) decimal.Decimal {
	return normalize.ParseAmount(b.Cell(row, field))
}

// LookupAmount is Amount that also reports whether a non-blank cell failed to parse
func (b *Binding) LookupAmount(row map[string]string, field Field) (decimal.Decimal, bool) {
	return normalize.LookupAmount(b.Cell(row, field))
}

// Quantity returns the non-negative unit count of field
func (b *Binding) Quantity(row map[string]string, field Field) int64 {
	return normalize.ParseQuantity(b.Cell(row, field))
}

// Date returns the calendar date of field, nil when unbound, blank or unparsable
func (b *Binding) Date(row map[string]string, field Field) *civil.Date {
	return normalize.ParseCalendarDate(b.Cell(row, field))
}

func headerKey(h string) string {
	return strings.Join(strings.Fields(cases.Lower(language.Und).String(normalize.CleanText(h))), " ")
}
