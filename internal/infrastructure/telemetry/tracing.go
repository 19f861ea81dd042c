package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName names the global tracer used when a parser has none injected
const TracerName = "salesnorm"

// Span attribute keys used by the ingest pipeline
const (
	SpanAttrPlatform     = "platform"
	SpanAttrKind         = "kind"
	SpanAttrFormat       = "sheet.format"
	SpanAttrEncoding     = "sheet.encoding"
	SpanAttrSourceRows   = "rows.source"
	SpanAttrOutputRows   = "rows.output"
	SpanAttrWarnings     = "warnings"
	SpanAttrMissingCodes = "missing_codes"
	SpanAttrUnmapped     = "unmapped_provinces"
	SpanAttrUploadID     = "upload_id"
)

// SpanOption adds start-time attributes to a span
type SpanOption func(*[]attribute.KeyValue)

// WithAttribute sets key on the span when it starts
func WithAttribute(key string, value any) SpanOption {
	return func(attrs *[]attribute.KeyValue) {
		*attrs = append(*attrs, toAttribute(key, value))
	}
}

// Tracer returns t, or the global tracer when t is nil
func Tracer(t trace.Tracer) trace.Tracer {
	if t != nil {
		return t
	}
	return otel.GetTracerProvider().Tracer(TracerName)
}

// StartSpan starts an internal span on tracer (nil means the global tracer).
// The caller ends it.
//
//	ctx, span := telemetry.StartSpan(ctx, p.tracer, "ingest.transactions.parse")
//	defer span.End()
func StartSpan(ctx context.Context, tracer trace.Tracer, name string, opts ...SpanOption) (context.Context, trace.Span) {
	var attrs []attribute.KeyValue
	for _, opt := range opts {
		opt(&attrs)
	}
	return Tracer(tracer).Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// Annotate sets alternating key/value pairs on span. Pairs with a non-string key are skipped.
func Annotate(span trace.Span, kv ...any) {
	if span == nil {
		return
	}
	span.SetAttributes(pairs(kv)...)
}

// Event adds a named event carrying alternating key/value pairs
func Event(span trace.Span, name string, kv ...any) {
	if span == nil {
		return
	}
	span.AddEvent(name, trace.WithAttributes(pairs(kv)...))
}

// Finish sets the span status from the outcome of a parse. A non-nil err is also
// recorded as an exception event. It does not end the span.
func Finish(span trace.Span, stats ParseStats, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	Annotate(span,
		SpanAttrSourceRows, stats.Rows,
		SpanAttrWarnings, stats.Warnings,
		SpanAttrMissingCodes, stats.MissingCodes,
		SpanAttrUnmapped, stats.UnmappedProvinces,
	)
	span.SetStatus(codes.Ok, "")
}

func pairs(kv []any) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		if key, ok := kv[i].(string); ok {
			attrs = append(attrs, toAttribute(key, kv[i+1]))
		}
	}
	return attrs
}

func toAttribute(key string, value any) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case float64:
		return attribute.Float64(key, v)
	case bool:
		return attribute.Bool(key, v)
	case time.Duration:
		return attribute.Float64(key, v.Seconds())
	case []string:
		return attribute.StringSlice(key, v)
	case fmt.Stringer:
		return attribute.String(key, v.String())
	default:
		return attribute.String(key, fmt.Sprint(v))
	}
}
