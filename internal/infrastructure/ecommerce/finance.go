package ecommerce

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/erp/salesnorm/internal/infrastructure/normalize"
)

// Sign is the direction a term contributes to a total
type Sign int

const (
	Plus  Sign = 1
	Minus Sign = -1
)

// Term is one signed input of a linear combination.
// When Magnitude is set the absolute cell value is used, so the term's direction does not
// depend on how the export signs the number.
type Term struct {
	Field     Field
	Sign      Sign
	Magnitude bool
}

func (t Term) apply(v decimal.Decimal) decimal.Decimal {
	if t.Magnitude {
		v = v.Abs()
	}
	if t.Sign == Minus {
		return v.Neg()
	}
	return v
}

// FeeSign describes how an export signs fee amounts
type FeeSign int

const (
	// FeeAsReported keeps the export's sign (fees already negative)
	FeeAsReported FeeSign = iota
	// FeeAsDebit treats every fee cell as a debit and stores -|v|
	FeeAsDebit
)

// BreakdownKind is the side of the ledger a breakdown group belongs to
type BreakdownKind string

const (
	BreakdownRevenue BreakdownKind = "revenue"
	BreakdownFee     BreakdownKind = "fee"
)

// Component is one labelled input of a breakdown group
type Component struct {
	Label string
	Term  Term
}

// BreakdownGroup is a labelled category in the revenue or fee breakdown tree
type BreakdownGroup struct {
	Name       string
	Kind       BreakdownKind
	Components []Component
}

// FinanceAdapter is the column table plus money model of a platform's settlement export
type FinanceAdapter struct {
	ColumnAdapter

	// Revenue is the signed linear combination producing net revenue
	Revenue []Term
	// FeeTotal is used when bound, otherwise Fees are summed
	FeeTotal Field
	Fees     []Field
	FeeSign  FeeSign
	// AdjustmentRecordTypes mark rows that carry only an adjustment amount
	AdjustmentRecordTypes []string
	Breakdown             []BreakdownGroup
}

// BindFinance resolves the adapter against a sheet's header row
func (a *FinanceAdapter) BindFinance(headers []string) *FinanceBinding {
	return &FinanceBinding{
		Binding: a.Bind(headers),
		finance: a,
	}
}

// FinanceBinding evaluates the money model of a FinanceAdapter against rows of one sheet
type FinanceBinding struct {
	*Binding
	finance *FinanceAdapter
}

// Adapter returns the finance adapter this binding was built from
func (b *FinanceBinding) Adapter() *FinanceAdapter {
	return b.finance
}

// RevenueBound reports whether at least one revenue input was found
func (b *FinanceBinding) RevenueBound() bool {
	for _, t := range b.finance.Revenue {
		if b.Bound(t.Field) {
			return true
		}
	}
	return false
}

// FeesBound reports whether the fee total or at least one fee component was found
func (b *FinanceBinding) FeesBound() bool {
	if b.finance.FeeTotal != "" && b.Bound(b.finance.FeeTotal) {
		return true
	}
	for _, f := range b.finance.Fees {
		if b.Bound(f) {
			return true
		}
	}
	return false
}

// IsAdjustment reports whether the row's record type marks it as an adjustment row
func (b *FinanceBinding) IsAdjustment(row map[string]string) bool {
	if len(b.finance.AdjustmentRecordTypes) == 0 {
		return false
	}
	recordType := b.Text(row, FieldRecordType)
	for _, t := range b.finance.AdjustmentRecordTypes {
		if strings.EqualFold(recordType, t) {
			return true
		}
	}
	return false
}

// Revenue returns the row's net revenue
func (b *FinanceBinding) Revenue(row map[string]string) decimal.Decimal {
	total := decimal.Zero
	for _, t := range b.finance.Revenue {
		total = total.Add(t.apply(b.Amount(row, t.Field)))
	}
	return total
}

// Fee returns one fee cell with the platform's sign policy applied
func (b *FinanceBinding) Fee(row map[string]string, field Field) decimal.Decimal {
	v := b.Amount(row, field)
	if b.finance.FeeSign == FeeAsDebit {
		return v.Abs().Neg()
	}
	return v
}

// Fees returns the row's total fees
func (b *FinanceBinding) Fees(row map[string]string) decimal.Decimal {
	if b.finance.FeeTotal != "" && b.Bound(b.finance.FeeTotal) {
		return b.Fee(row, b.finance.FeeTotal)
	}
	total := decimal.Zero
	for _, f := range b.finance.Fees {
		total = total.Add(b.Fee(row, f))
	}
	return total
}

// Adjustment returns the adjustment amount of an adjustment row, falling back to the
// settlement column when the adjustment column is absent or blank
func (b *FinanceBinding) Adjustment(row map[string]string) decimal.Decimal {
	if normalize.CleanText(b.Cell(row, FieldAdjustmentAmount)) != "" {
		return b.Amount(row, FieldAdjustmentAmount)
	}
	return b.Amount(row, FieldSettlementAmount)
}

// Component returns the value one breakdown component contributes for the row
func (b *FinanceBinding) Component(row map[string]string, kind BreakdownKind, c Component) decimal.Decimal {
	if kind == BreakdownFee {
		return c.Term.apply(b.Fee(row, c.Term.Field))
	}
	return c.Term.apply(b.Amount(row, c.Term.Field))
}
