package ingest

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/erp/salesnorm/internal/application/report"
	"github.com/erp/salesnorm/internal/domain/marketplace"
	"github.com/erp/salesnorm/internal/infrastructure/ecommerce"
	sheetimport "github.com/erp/salesnorm/internal/infrastructure/import"
	"github.com/erp/salesnorm/internal/infrastructure/logger"
	"github.com/erp/salesnorm/internal/infrastructure/telemetry"
)

// TransactionResult is the output of a settlement report parse
type TransactionResult struct {
	Transactions []marketplace.Transaction    `json:"transactions"`
	Summary      marketplace.AggregatedMetrics `json:"summary"`
	Breakdown    marketplace.Breakdown         `json:"breakdown"`
	Warnings     []string                      `json:"warnings"`
}

// TransactionParser converts platform settlement reports into ledger transactions
type TransactionParser struct {
	opts options
}

// NewTransactionParser creates a new TransactionParser
func NewTransactionParser(opts ...Option) *TransactionParser {
	return &TransactionParser{opts: newOptions(opts)}
}

// Parse reads one settlement report and returns a transaction per non-blank row.
// Unreadable files fail the call; row defects become warnings.
func (p *TransactionParser) Parse(ctx context.Context, platform marketplace.Platform, data []byte) (result *TransactionResult, err error) {
	start := time.Now()
	ctx, span := telemetry.StartSpan(ctx, p.opts.tracer, "ingest.transactions.parse",
		telemetry.WithAttribute(telemetry.SpanAttrPlatform, platform.String()),
		telemetry.WithAttribute(telemetry.SpanAttrKind, string(telemetry.IngestKindTransactions)),
	)
	defer span.End()

	stats := telemetry.ParseStats{Platform: platform.String(), Kind: telemetry.IngestKindTransactions}
	defer func() {
		if err != nil {
			logFailure(ctx, p.opts.logger, platform, telemetry.IngestKindTransactions, err)
		}
		p.opts.finish(ctx, span, stats, start, err)
	}()

	adapter, err := ecommerce.FinanceAdapterFor(platform)
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

	binding := adapter.BindFinance(sheet.Headers)
	issues := sheetimport.NewIssueCollection(p.opts.maxIssues)
	checkFinanceColumns(ctx, p.opts.logger, platform, binding, issues)
	if len(sheet.Rows) == 0 {
		issues.AddSheetIssue(sheetimport.ErrCodeImportNoDataRows, "sheet has no data rows")
	}

	breakdown := newBreakdownAccumulator(adapter.Breakdown)
	txs := make([]marketplace.Transaction, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		if err := checkCancelled(ctx); err != nil {
			return nil, err
		}

		tx := buildTransaction(platform, binding, row, issues)
		if !binding.IsAdjustment(row.Data) {
			breakdown.add(binding, row.Data)
		}
		txs = append(txs, tx)
	}

	summary := report.Aggregate(txs, report.ByOrderDate, report.ByPaymentDate)
	result = &TransactionResult{
		Transactions: txs,
		Summary:      summary,
		Breakdown:    breakdown.tree(),
		Warnings:     issues.Warnings(),
	}

	stats.Rows = len(txs)
	stats.Warnings = issues.TotalCount()

	logger.WithLogger(ctx, p.opts.logger).Info("settlement report parsed",
		zap.String("platform", platform.String()),
		zap.String("format", string(sheet.Format)),
		zap.String("encoding", sheet.Encoding),
		zap.Int("rows", len(txs)),
		zap.Int("warnings", issues.TotalCount()),
		zap.String("total_revenue", summary.TotalRevenue.String()),
		zap.String("total_settlement", summary.TotalSettlement.String()),
	)

	return result, nil
}

// checkFinanceColumns warns about unusable header rows and logs the fields left at defaults
func checkFinanceColumns(ctx context.Context, l *zap.Logger, platform marketplace.Platform, b *ecommerce.FinanceBinding, issues *sheetimport.IssueCollection) {
	if b.Recognized() == 0 {
		issues.AddSheetIssue(sheetimport.ErrCodeImportMissingColumn,
			fmt.Sprintf("no %s settlement columns recognized, is this the right platform?", platform.DisplayName()))
		return
	}
	if !b.RevenueBound() {
		issues.AddMissingColumn("revenue")
	}
	if !b.FeesBound() {
		issues.AddMissingColumn("fees")
	}
	if missing := b.Missing(); len(missing) > 0 {
		logger.WithLogger(ctx, l).Debug("unbound settlement columns",
			zap.String("platform", platform.String()),
			zap.Any("fields", missing),
		)
	}
}

// buildTransaction maps one row through the finance adapter
func buildTransaction(platform marketplace.Platform, b *ecommerce.FinanceBinding, row *sheetimport.Row, issues *sheetimport.IssueCollection) marketplace.Transaction {
	recordType := b.Text(row.Data, ecommerce.FieldRecordType)
	if recordType == "" {
		recordType = marketplace.RecordTypeOrder
	}

	tx := marketplace.Transaction{
		Platform:    platform,
		ExternalID:  b.Text(row.Data, ecommerce.FieldExternalID),
		SKU:         b.Text(row.Data, ecommerce.FieldSKU),
		RecordType:  recordType,
		OrderDate:   checkedDate(b.Binding, row, ecommerce.FieldOrderDate, issues),
		PaymentDate: checkedDate(b.Binding, row, ecommerce.FieldPaymentDate, issues),
		Revenue:     decimal.Zero,
		Fees:        decimal.Zero,
		Adjustments: decimal.Zero,
		RowNumber:   row.LineNumber,
		RawRow:      marketplace.RawRow(row.Data).Clone(),
	}

	if b.IsAdjustment(row.Data) {
		checkAmounts(b.Binding, row, issues, ecommerce.FieldAdjustmentAmount, ecommerce.FieldSettlementAmount)
		tx.Adjustments = b.Adjustment(row.Data)
	} else {
		fa := b.Adapter()
		for _, t := range fa.Revenue {
			checkAmounts(b.Binding, row, issues, t.Field)
		}
		checkAmounts(b.Binding, row, issues, fa.FeeTotal)
		checkAmounts(b.Binding, row, issues, fa.Fees...)
		tx.Revenue = b.Revenue(row.Data)
		tx.Fees = b.Fees(row.Data)
	}
	tx.Settlement = tx.ComputeSettlement()

	return tx
}

// checkedDate parses a date field and warns when a non-blank cell is not a date
func checkedDate(b *ecommerce.Binding, row *sheetimport.Row, field ecommerce.Field, issues *sheetimport.IssueCollection) *civil.Date {
	d := b.Date(row.Data, field)
	if d == nil {
		if raw := b.Text(row.Data, field); raw != "" {
			header, _ := b.Header(field)
			issues.AddInvalidDate(row.LineNumber, header, raw)
		}
	}
	return d
}

// checkAmounts warns about bound amount cells holding something that is not a number
func checkAmounts(b *ecommerce.Binding, row *sheetimport.Row, issues *sheetimport.IssueCollection, fields ...ecommerce.Field) {
	for _, f := range fields {
		if f == "" || !b.Bound(f) {
			continue
		}
		if _, ok := b.LookupAmount(row.Data, f); !ok {
			header, _ := b.Header(f)
			issues.AddInvalidAmount(row.LineNumber, header, b.Text(row.Data, f))
		}
	}
}

// breakdownAccumulator sums breakdown components across rows
type breakdownAccumulator struct {
	groups []ecommerce.BreakdownGroup
	sums   [][]decimal.Decimal
}

func newBreakdownAccumulator(groups []ecommerce.BreakdownGroup) *breakdownAccumulator {
	sums := make([][]decimal.Decimal, len(groups))
	for i, g := range groups {
		sums[i] = make([]decimal.Decimal, len(g.Components))
		for j := range sums[i] {
			sums[i][j] = decimal.Zero
		}
	}
	return &breakdownAccumulator{groups: groups, sums: sums}
}

func (a *breakdownAccumulator) add(b *ecommerce.FinanceBinding, row map[string]string) {
	for i, g := range a.groups {
		for j, c := range g.Components {
			a.sums[i][j] = a.sums[i][j].Add(b.Component(row, g.Kind, c))
		}
	}
}

// tree renders the sums. Zero groups are kept so the shape is stable across files.
func (a *breakdownAccumulator) tree() marketplace.Breakdown {
	out := marketplace.Breakdown{
		Revenue: make([]marketplace.BreakdownNode, 0),
		Fees:    make([]marketplace.BreakdownNode, 0),
	}
	for i, g := range a.groups {
		node := marketplace.BreakdownNode{Name: g.Name, Amount: decimal.Zero}
		for j, c := range g.Components {
			node.Amount = node.Amount.Add(a.sums[i][j])
			if len(g.Components) > 1 {
				node.Children = append(node.Children, marketplace.BreakdownNode{Name: c.Label, Amount: a.sums[i][j]})
			}
		}
		if g.Kind == ecommerce.BreakdownFee {
			out.Fees = append(out.Fees, node)
		} else {
			out.Revenue = append(out.Revenue, node)
		}
	}
	return out
}
