package ecommerce

// ProductSalesAdapter is the column table of a platform's order export
type ProductSalesAdapter struct {
	ColumnAdapter

	// UnitPerRow counts each row as one unit when no quantity column is present
	UnitPerRow bool
}

// Quantity returns the confirmed unit count of a row
func (a *ProductSalesAdapter) Quantity(b *Binding, row map[string]string) int64 {
	if !b.Bound(FieldQuantity) {
		if a.UnitPerRow {
			return 1
		}
		return 0
	}
	return b.Quantity(row, FieldQuantity)
}
