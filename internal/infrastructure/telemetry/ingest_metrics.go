package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// IngestKind labels which parser produced a metric
type IngestKind string

const (
	IngestKindTransactions IngestKind = "transactions"
	IngestKindProductSales IngestKind = "product_sales"
)

// IngestOutcome labels how a parse call ended
type IngestOutcome string

const (
	OutcomeSuccess IngestOutcome = "success"
	OutcomeFailed  IngestOutcome = "failed"
)

// IngestMetrics records spreadsheet ingest activity.
// Instruments are safe for concurrent use by multiple parsers.
type IngestMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	filesTotal        *Counter
	rowsTotal         *Counter
	warningsTotal     *Counter
	unmappedProvinces *Counter
	missingCodes      *Counter
	parseDuration     *Histogram
}

// IngestMetricsConfig holds configuration for ingest metrics.
type IngestMetricsConfig struct {
	Meter  metric.Meter
	Logger *zap.Logger
}

// NewIngestMetrics creates the ingest instruments on the given meter.
func NewIngestMetrics(cfg IngestMetricsConfig) (*IngestMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	im := &IngestMetrics{
		meter:  cfg.Meter,
		logger: logger,
	}

	var err error

	im.filesTotal, err = NewCounter(
		cfg.Meter,
		"salesnorm_files_parsed_total",
		"Total number of export files parsed",
		"{files}",
	)
	if err != nil {
		return nil, err
	}

	im.rowsTotal, err = NewCounter(
		cfg.Meter,
		"salesnorm_rows_parsed_total",
		"Total number of non-blank source rows parsed",
		"{rows}",
	)
	if err != nil {
		return nil, err
	}

	im.warningsTotal, err = NewCounter(
		cfg.Meter,
		"salesnorm_warnings_total",
		"Total number of recoverable row or sheet issues reported",
		"{warnings}",
	)
	if err != nil {
		return nil, err
	}

	im.unmappedProvinces, err = NewCounter(
		cfg.Meter,
		"salesnorm_unmapped_province_rows_total",
		"Rows whose province text matched no alias",
		"{rows}",
	)
	if err != nil {
		return nil, err
	}

	im.missingCodes, err = NewCounter(
		cfg.Meter,
		"salesnorm_missing_codes_total",
		"Distinct variant codes per file with no product name mapping",
		"{codes}",
	)
	if err != nil {
		return nil, err
	}

	im.parseDuration, err = NewHistogram(cfg.Meter, HistogramOpts{
		Name:        "salesnorm_parse_duration_seconds",
		Description: "Wall time of one parse call",
		Unit:        "s",
		Boundaries:  ParseDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	return im, nil
}

// ParseStats is what one parse call reports to RecordParse
type ParseStats struct {
	Platform          string
	Kind              IngestKind
	Outcome           IngestOutcome
	Format            string // sheet container, empty when the file was unreadable
	Encoding          string
	Rows              int
	Warnings          int
	UnmappedProvinces int
	MissingCodes      int
	Duration          time.Duration
}

// RecordParse records the outcome of one parse call. A nil receiver is a no-op.
func (im *IngestMetrics) RecordParse(ctx context.Context, s ParseStats) {
	if im == nil {
		return
	}

	platform := AttrPlatform.String(s.Platform)
	kind := AttrKind.String(string(s.Kind))

	fileAttrs := []attribute.KeyValue{platform, kind, AttrOutcome.String(string(s.Outcome))}
	if s.Format != "" {
		fileAttrs = append(fileAttrs, AttrFormat.String(s.Format), AttrEncoding.String(s.Encoding))
	}
	im.filesTotal.Inc(ctx, fileAttrs...)
	im.parseDuration.RecordDuration(ctx, s.Duration, platform, kind)

	if s.Outcome != OutcomeSuccess {
		return
	}
	if s.Rows > 0 {
		im.rowsTotal.Add(ctx, int64(s.Rows), platform, kind)
	}
	if s.Warnings > 0 {
		im.warningsTotal.Add(ctx, int64(s.Warnings), platform, kind)
	}
	if s.UnmappedProvinces > 0 {
		im.unmappedProvinces.Add(ctx, int64(s.UnmappedProvinces), platform)
	}
	if s.MissingCodes > 0 {
		im.missingCodes.Add(ctx, int64(s.MissingCodes), platform)
	}
}

// =============================================================================
// Error Types
// =============================================================================

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewIngestMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
