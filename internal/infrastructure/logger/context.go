package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey int

const (
	loggerKey ctxKey = iota
	uploadIDKey
	platformKey
)

// WithContext returns a new context carrying logger
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger carried by ctx, or a no-op logger
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// WithUploadID tags ctx and logger with the upload being parsed
func WithUploadID(ctx context.Context, logger *zap.Logger, uploadID string) (context.Context, *zap.Logger) {
	return withField(ctx, logger, uploadIDKey, "upload_id", uploadID)
}

// WithPlatform tags ctx and logger with the source marketplace
func WithPlatform(ctx context.Context, logger *zap.Logger, platform string) (context.Context, *zap.Logger) {
	return withField(ctx, logger, platformKey, "platform", platform)
}

// GetUploadID returns the upload ID set by WithUploadID
func GetUploadID(ctx context.Context) string {
	id, _ := ctx.Value(uploadIDKey).(string)
	return id
}

// GetPlatform returns the platform set by WithPlatform
func GetPlatform(ctx context.Context) string {
	p, _ := ctx.Value(platformKey).(string)
	return p
}

func withField(ctx context.Context, logger *zap.Logger, key ctxKey, field, value string) (context.Context, *zap.Logger) {
	enriched := OrNop(logger).With(zap.String(field, value))
	ctx = context.WithValue(ctx, key, value)
	return WithContext(ctx, enriched), enriched
}

// WithTraceContext adds trace_id and span_id of the span in ctx.
// logger is returned unchanged when ctx has no valid span.
func WithTraceContext(ctx context.Context, logger *zap.Logger) *zap.Logger {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return logger
	}
	return logger.With(
		zap.String("trace_id", sc.TraceID().String()),
		zap.String("span_id", sc.SpanID().String()),
	)
}

// ContextLogger writes entries correlated with the span in its context.
//
//	logger.L(ctx).Info("settlement report parsed", zap.Int("rows", n))
type ContextLogger struct {
	ctx    context.Context
	logger *zap.Logger
}

// L returns a ContextLogger over the logger carried by ctx
func L(ctx context.Context) *ContextLogger {
	return &ContextLogger{ctx: ctx, logger: FromContext(ctx)}
}

// WithLogger returns a ContextLogger over logger (nil means no-op)
func WithLogger(ctx context.Context, logger *zap.Logger) *ContextLogger {
	return &ContextLogger{ctx: ctx, logger: OrNop(logger)}
}

// With returns a child ContextLogger with extra fields
func (cl *ContextLogger) With(fields ...zap.Field) *ContextLogger {
	return &ContextLogger{ctx: cl.ctx, logger: cl.logger.With(fields...)}
}

func (cl *ContextLogger) Debug(msg string, fields ...zap.Field) { cl.log(zapcore.DebugLevel, msg, fields) }
func (cl *ContextLogger) Info(msg string, fields ...zap.Field)  { cl.log(zapcore.InfoLevel, msg, fields) }
func (cl *ContextLogger) Warn(msg string, fields ...zap.Field)  { cl.log(zapcore.WarnLevel, msg, fields) }
func (cl *ContextLogger) Error(msg string, fields ...zap.Field) { cl.log(zapcore.ErrorLevel, msg, fields) }

// Zap returns the underlying logger with trace fields attached
func (cl *ContextLogger) Zap() *zap.Logger {
	return WithTraceContext(cl.ctx, cl.logger)
}

// log skips building the trace fields when the level is disabled
func (cl *ContextLogger) log(lvl zapcore.Level, msg string, fields []zap.Field) {
	if !cl.logger.Core().Enabled(lvl) {
		return
	}
	cl.Zap().WithOptions(zap.AddCallerSkip(2)).Log(lvl, msg, fields...)
}
