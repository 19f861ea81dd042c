package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/erp/salesnorm/internal/domain/marketplace"
	"github.com/erp/salesnorm/internal/infrastructure/ecommerce"
	sheetimport "github.com/erp/salesnorm/internal/infrastructure/import"
	"github.com/erp/salesnorm/internal/infrastructure/logger"
	"github.com/erp/salesnorm/internal/infrastructure/province"
	"github.com/erp/salesnorm/internal/infrastructure/telemetry"
)

// Lookups are the caller-supplied tables and provenance for one product sales parse.
// The tables are read, never modified.
type Lookups struct {
	// CodeNames maps the platform's product code to the canonical product name
	CodeNames map[string]string
	// ProvinceAliases maps standard province names to their aliases
	ProvinceAliases marketplace.ProvinceAliasMap
	// UploadID and ObservedAt are stamped on every produced line
	UploadID   uuid.UUID
	ObservedAt time.Time
}

// ProductSalesSummary totals one parsed order export
type ProductSalesSummary struct {
	TotalRows         int             `json:"total_rows"`
	TotalLines        int             `json:"total_lines"`
	TotalProducts     int             `json:"total_products"`
	TotalVariants     int             `json:"total_variants"`
	TotalQty          int64           `json:"total_qty"`
	TotalReturned     int64           `json:"total_returned"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	UnmappedProvinces map[string]int  `json:"unmapped_provinces"`
}

// ProductSalesResult is the output of an order export parse
type ProductSalesResult struct {
	Rows              []marketplace.ProductSaleLine `json:"rows"`
	Summary           ProductSalesSummary           `json:"summary"`
	MissingCodes      []string                      `json:"missing_codes"`
	UnmappedProvinces []string                      `json:"unmapped_provinces"`
	Warnings          []string                      `json:"warnings"`
}

// ProductSalesParser converts platform order exports into product sale lines
type ProductSalesParser struct {
	opts options
}

// NewProductSalesParser creates a new ProductSalesParser
func NewProductSalesParser(opts ...Option) *ProductSalesParser {
	return &ProductSalesParser{opts: newOptions(opts)}
}

// Parse reads one order export, resolves product names and provinces, and merges lines that
// share a key within the file. Unknown codes and provinces are reported, not rejected.
func (p *ProductSalesParser) Parse(ctx context.Context, platform marketplace.Platform, data []byte, lookups Lookups) (result *ProductSalesResult, err error) {
	start := time.Now()
	ctx, span := telemetry.StartSpan(ctx, p.opts.tracer, "ingest.product_sales.parse",
		telemetry.WithAttribute(telemetry.SpanAttrPlatform, platform.String()),
		telemetry.WithAttribute(telemetry.SpanAttrKind, string(telemetry.IngestKindProductSales)),
		telemetry.WithAttribute(telemetry.SpanAttrUploadID, lookups.UploadID.String()),
	)
	defer span.End()

	stats := telemetry.ParseStats{Platform: platform.String(), Kind: telemetry.IngestKindProductSales}
	defer func() {
		if err != nil {
			logFailure(ctx, p.opts.logger, platform, telemetry.IngestKindProductSales, err)
		}
		p.opts.finish(ctx, span, stats, start, err)
	}()

	adapter, err := ecommerce.ProductSalesAdapterFor(platform)
	if err != nil {
		return nil, err
	}

	sheet, err := p.opts.readSheet(data)
	if err != nil {
		return nil, err
	}
	stats.Format, stats.Encoding = string(sheet.Format), sheet.Encoding
	telemetry.Event(span, "sheet.read",
		telemetry.SpanAttrFormat, string(sheet.Format),
		telemetry.SpanAttrEncoding, sheet.Encoding,
	)

	binding := adapter.Bind(sheet.Headers)
	issues := sheetimport.NewIssueCollection(p.opts.maxIssues)
	checkProductColumns(ctx, p.opts.logger, platform, adapter, binding, issues)
	if len(sheet.Rows) == 0 {
		issues.AddSheetIssue(sheetimport.ErrCodeImportNoDataRows, "sheet has no data rows")
	}

	resolver := province.NewResolver(lookups.ProvinceAliases)
	if conflicts := resolver.Conflicts(); len(conflicts) > 0 {
		logger.WithLogger(ctx, p.opts.logger).Warn("province alias claimed by more than one province",
			zap.String("platform", platform.String()),
			zap.Any("conflicts", conflicts),
		)
	}
	missing := newOrderedSet()
	unmapped := newOrderedSet()
	unmappedCounts := make(map[string]int)

	lines := make([]marketplace.ProductSaleLine, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		if err := checkCancelled(ctx); err != nil {
			return nil, err
		}

		line := marketplace.ProductSaleLine{
			Platform:          platform,
			VariantCode:       binding.Text(row.Data, ecommerce.FieldVariantCode),
			VariantName:       binding.Text(row.Data, ecommerce.FieldVariantName),
			QuantityConfirmed: adapter.Quantity(binding, row.Data),
			QuantityReturned:  binding.Quantity(row.Data, ecommerce.FieldReturnedQuantity),
			RevenueConfirmed:  binding.Amount(row.Data, ecommerce.FieldRevenue),
			RowNumber:         row.LineNumber,
			OrderID:           optionalText(binding.Text(row.Data, ecommerce.FieldOrderID)),
			OrderDate:         checkedDate(binding, row, ecommerce.FieldOrderDate, issues),
			RawRow:            marketplace.RawRow(row.Data).Clone(),
			UploadID:          lookups.UploadID,
			ObservedAt:        lookups.ObservedAt,
		}
		checkAmounts(binding, row, issues, ecommerce.FieldRevenue, ecommerce.FieldQuantity, ecommerce.FieldReturnedQuantity)

		label := binding.Text(row.Data, ecommerce.FieldProductName)
		if name, ok := lookups.CodeNames[line.VariantCode]; ok && line.VariantCode != "" {
			line.ProductName = name
		} else {
			line.ProductName = label
			if line.VariantCode != "" {
				missing.add(line.VariantCode)
			}
		}

		if raw := binding.Text(row.Data, ecommerce.FieldProvince); raw != "" {
			line.ProvinceRaw = &raw
			if standard, ok := resolver.Resolve(raw); ok {
				line.ProvinceNormalized = &standard
			} else {
				unmappedCounts[raw]++
				unmapped.add(raw)
			}
		}

		lines = append(lines, line)
	}

	merged := Merge(lines)
	summary := summarizeLines(merged)
	summary.TotalRows = len(sheet.Rows)
	summary.UnmappedProvinces = unmappedCounts

	result = &ProductSalesResult{
		Rows:              merged,
		Summary:           summary,
		MissingCodes:      missing.values(),
		UnmappedProvinces: unmapped.values(),
		Warnings:          issues.Warnings(),
	}

	stats.Rows = len(sheet.Rows)
	stats.Warnings = issues.TotalCount()
	stats.MissingCodes = len(result.MissingCodes)
	for _, n := range unmappedCounts {
		stats.UnmappedProvinces += n
	}
	telemetry.Annotate(span, telemetry.SpanAttrOutputRows, len(merged))

	logger.WithLogger(ctx, p.opts.logger).Info("order export parsed",
		zap.String("platform", platform.String()),
		zap.String("upload_id", lookups.UploadID.String()),
		zap.String("format", string(sheet.Format)),
		zap.String("encoding", sheet.Encoding),
		zap.Int("rows", summary.TotalRows),
		zap.Int("lines", summary.TotalLines),
		zap.Int("missing_codes", len(result.MissingCodes)),
		zap.Int("unmapped_provinces", len(result.UnmappedProvinces)),
		zap.Int("warnings", issues.TotalCount()),
	)

	return result, nil
}

// checkProductColumns warns about unusable header rows and logs the fields left at defaults
func checkProductColumns(ctx context.Context, l *zap.Logger, platform marketplace.Platform, a *ecommerce.ProductSalesAdapter, b *ecommerce.Binding, issues *sheetimport.IssueCollection) {
	if b.Recognized() == 0 {
		issues.AddSheetIssue(sheetimport.ErrCodeImportMissingColumn,
			fmt.Sprintf("no %s order columns recognized, is this the right platform?", platform.DisplayName()))
		return
	}
	if !b.Bound(ecommerce.FieldVariantCode) {
		issues.AddMissingColumn(string(ecommerce.FieldVariantCode))
	}
	if !b.Bound(ecommerce.FieldQuantity) && !a.UnitPerRow {
		issues.AddMissingColumn(string(ecommerce.FieldQuantity))
	}
	if missing := b.Missing(); len(missing) > 0 {
		logger.WithLogger(ctx, l).Debug("unbound order columns",
			zap.String("platform", platform.String()),
			zap.Any("fields", missing),
		)
	}
}

// summarizeLines totals merged lines; distinct counts ignore empty names and codes
func summarizeLines(lines []marketplace.ProductSaleLine) ProductSalesSummary {
	s := ProductSalesSummary{
		TotalLines:   len(lines),
		TotalRevenue: decimal.Zero,
	}
	products := make(map[string]struct{})
	variants := make(map[string]struct{})
	for _, l := range lines {
		s.TotalQty += l.QuantityConfirmed
		s.TotalReturned += l.QuantityReturned
		s.TotalRevenue = s.TotalRevenue.Add(l.RevenueConfirmed)
		if l.ProductName != "" {
			products[l.ProductName] = struct{}{}
		}
		if l.VariantCode != "" {
			variants[l.VariantCode] = struct{}{}
		}
	}
	s.TotalProducts = len(products)
	s.TotalVariants = len(variants)
	return s
}

func optionalText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// orderedSet keeps distinct strings in first-seen order
type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{}), items: make([]string, 0)}
}

func (s *orderedSet) add(v string) {
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
}

func (s *orderedSet) values() []string {
	return s.items
}
