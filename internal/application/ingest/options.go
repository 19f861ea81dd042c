// Package ingest turns marketplace export files into canonical transactions and product sale lines.
//
// Parsers are pure: file bytes and lookup tables come in as arguments and nothing is persisted.
// A parser holds only its logger, instruments and limits, so one instance may serve concurrent calls.
package ingest

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/erp/salesnorm/internal/domain/marketplace"
	sheetimport "github.com/erp/salesnorm/internal/infrastructure/import"
	"github.com/erp/salesnorm/internal/infrastructure/logger"
	"github.com/erp/salesnorm/internal/infrastructure/telemetry"
)

// DefaultMaxIssues is the number of warnings kept per parse when no limit is configured
const DefaultMaxIssues = 100

// Option configures a parser
type Option func(*options)

type options struct {
	logger      *zap.Logger
	metrics     *telemetry.IngestMetrics
	tracer      trace.Tracer
	maxIssues   int
	maxFileSize int64
}

// WithLogger sets the logger used for per-parse summaries
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithMetrics records parse counters on the given instruments
func WithMetrics(m *telemetry.IngestMetrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithTracer sets the tracer for parse spans
func WithTracer(t trace.Tracer) Option {
	return func(o *options) {
		o.tracer = t
	}
}

// WithMaxIssues caps the number of warnings kept per parse
func WithMaxIssues(n int) Option {
	return func(o *options) {
		o.maxIssues = n
	}
}

// WithMaxFileSize rejects files larger than n bytes (0 disables the check)
func WithMaxFileSize(n int64) Option {
	return func(o *options) {
		o.maxFileSize = n
	}
}

func newOptions(opts []Option) options {
	o := options{maxIssues: DefaultMaxIssues}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = logger.OrNop(o.logger)
	o.tracer = telemetry.Tracer(o.tracer)
	if o.maxIssues <= 0 {
		o.maxIssues = DefaultMaxIssues
	}
	return o
}

// readSheet reads the file bytes with the configured size limit
func (o *options) readSheet(data []byte) (*sheetimport.Sheet, error) {
	return sheetimport.Read(data, sheetimport.WithMaxSize(o.maxFileSize))
}

// finish sets the span status and records metrics for a parse call
func (o *options) finish(ctx context.Context, span trace.Span, stats telemetry.ParseStats, start time.Time, err error) {
	stats.Duration = time.Since(start)
	stats.Outcome = telemetry.OutcomeSuccess
	if err != nil {
		stats.Outcome = telemetry.OutcomeFailed
	}
	telemetry.Finish(span, stats, err)
	o.metrics.RecordParse(ctx, stats)
}

// logFailure writes the error line for a failed parse
func logFailure(ctx context.Context, l *zap.Logger, platform marketplace.Platform, kind telemetry.IngestKind, err error) {
	logger.WithLogger(ctx, l).Warn("parse failed",
		zap.String("platform", platform.String()),
		zap.String("kind", string(kind)),
		zap.String("code", sheetimport.Code(err)),
		zap.Error(err),
	)
}

// checkCancelled returns ctx.Err() once the context is done
func checkCancelled(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
