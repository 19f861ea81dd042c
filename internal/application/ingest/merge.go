package ingest

import "github.com/erp/salesnorm/internal/domain/marketplace"

// Merge collapses product sale lines that share a LineKey.
//
// Quantities and revenue are summed. Provenance (row number, raw row, upload and observation
// time) follows the incoming line unless it was observed strictly earlier than the held one.
// Descriptive fields are only filled when the held line lacks them. The output keeps the order
// in which keys first appear, and the input slices are left untouched.
func Merge(batches ...[]marketplace.ProductSaleLine) []marketplace.ProductSaleLine {
	size := 0
	for _, b := range batches {
		size += len(b)
	}

	index := make(map[marketplace.LineKey]int, size)
	out := make([]marketplace.ProductSaleLine, 0, size)
	for _, batch := range batches {
		for _, line := range batch {
			key := line.Key()
			i, ok := index[key]
			if !ok {
				line.RawRow = line.RawRow.Clone()
				index[key] = len(out)
				out = append(out, line)
				continue
			}
			mergeLine(&out[i], line)
		}
	}
	return out
}

func mergeLine(held *marketplace.ProductSaleLine, in marketplace.ProductSaleLine) {
	held.QuantityConfirmed += in.QuantityConfirmed
	held.QuantityReturned += in.QuantityReturned
	held.RevenueConfirmed = held.RevenueConfirmed.Add(in.RevenueConfirmed)

	if !in.ObservedAt.Before(held.ObservedAt) {
		held.RowNumber = in.RowNumber
		held.RawRow = in.RawRow.Clone()
		held.UploadID = in.UploadID
		held.ObservedAt = in.ObservedAt
	}

	if held.ProductName == "" {
		held.ProductName = in.ProductName
	}
	if held.VariantName == "" {
		held.VariantName = in.VariantName
	}
	if held.OrderDate == nil {
		held.OrderDate = in.OrderDate
	}
	// raw and normalized province move together
	if (held.ProvinceNormalized == nil && in.ProvinceNormalized != nil) || held.ProvinceRaw == nil {
		if in.ProvinceRaw != nil {
			held.ProvinceRaw = in.ProvinceRaw
			held.ProvinceNormalized = in.ProvinceNormalized
		}
	}
}
