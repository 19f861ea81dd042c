package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/erp/salesnorm/internal/infrastructure/telemetry"
)

func TestSetup_Disabled(t *testing.T) {
	ctx := context.Background()

	p, err := telemetry.Setup(ctx, telemetry.Config{
		Enabled:           false,
		CollectorEndpoint: "localhost:4317",
		ServiceName:       "salesnorm-test",
		SamplingRatio:     1.0,
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NotNil(t, p)

	assert.False(t, p.Enabled())
	assert.Equal(t, telemetry.DefaultExportInterval, p.Config().ExportInterval)
	assert.Equal(t, "salesnorm-test", p.Config().ServiceName)

	_, span := p.Tracer("test").Start(ctx, "noop")
	assert.False(t, span.SpanContext().IsValid())
	span.End()

	im, err := telemetry.NewIngestMetrics(telemetry.IngestMetricsConfig{Meter: p.Meter("test")})
	require.NoError(t, err)
	im.RecordParse(ctx, telemetry.ParseStats{Outcome: telemetry.OutcomeSuccess, Rows: 1})

	assert.NoError(t, p.ForceFlush(ctx))
	assert.NoError(t, p.Shutdown(ctx))
}

func TestSetup_NilLogger(t *testing.T) {
	p, err := telemetry.Setup(context.Background(), telemetry.Config{ExportInterval: time.Second}, nil)
	require.NoError(t, err)
	assert.Equal(t, time.Second, p.Config().ExportInterval)
}
