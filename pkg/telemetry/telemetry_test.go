package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func disabledConfig() *Config {
	return &Config{
		Enabled:        false,
		ServiceName:    "housemate-test",
		ServiceVersion: "0.0.0",
		Environment:    "test",
	}
}

func TestInitDisabled(t *testing.T) {
	ctx := context.Background()

	t.Run("nil config", func(t *testing.T) {
		tel, err := Init(ctx, nil)
		require.NoError(t, err)
		assert.NotNil(t, tel)
		assert.NotNil(t, tel.tracer)
		assert.NotNil(t, tel.meter)
	})

	t.Run("disabled config", func(t *testing.T) {
		cfg := disabledConfig()
		tel, err := Init(ctx, cfg)
		require.NoError(t, err)
		assert.Equal(t, cfg, tel.config)
		assert.Equal(t, tel, Get())
	})

	t.Run("accessors", func(t *testing.T) {
		cfg := disabledConfig()
		tel, err := Init(ctx, cfg)
		require.NoError(t, err)

		assert.NotNil(t, tel.Tracer())
		assert.NotNil(t, tel.Meter())
		assert.Nil(t, tel.Resource())
		assert.Equal(t, cfg, tel.Config())
	})
}

func TestInitEnabled(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping collector test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	cfg := &Config{
		Enabled:        true,
		ServiceName:    "housemate-test",
		ServiceVersion: "0.0.0",
		Environment:    "test",
		CollectorAddr:  "localhost:4317",
	}

	tel, err := Init(ctx, cfg)
	require.NoError(t, err)
	assert.NotNil(t, tel.tracerProvider)
	assert.NotNil(t, tel.meterProvider)
	assert.NotNil(t, tel.resource)

	// Zero values fall back to defaults
	assert.Equal(t, 15*time.Second, cfg.MetricInterval)
	assert.Equal(t, 1.0, cfg.SampleRatio)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer shutdownCancel()
	_ = Shutdown(shutdownCtx)
}

func TestShutdownWithoutInit(t *testing.T) {
	globalTelemetry = nil
	assert.NoError(t, Shutdown(context.Background()))
}

func TestStartSpan(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled telemetry yields noop span", func(t *testing.T) {
		_, err := Init(ctx, disabledConfig())
		require.NoError(t, err)

		newCtx, span := StartSpan(ctx, "bill.pay")
		assert.NotNil(t, newCtx)
		assert.NotNil(t, span)
		span.End()
	})

	t.Run("nil global yields noop span", func(t *testing.T) {
		globalTelemetry = nil

		newCtx, span := StartSpan(ctx, "bill.pay")
		assert.Equal(t, ctx, newCtx)
		assert.NotNil(t, span)
	})
}

func TestSpanHelpersWithoutSpan(t *testing.T) {
	ctx := context.Background()

	_, err := Init(ctx, disabledConfig())
	require.NoError(t, err)

	assert.NotNil(t, SpanFromContext(ctx))
	assert.Empty(t, GetTraceID(ctx))
	assert.Empty(t, GetSpanID(ctx))

	// None of these may panic on a bare context
	AddSpanEvent(ctx, "bill.paid", attribute.String("bill.id", "b-1"))
	SetSpanError(ctx, assert.AnError)
	SetSpanAttributes(ctx, attribute.String("flat.id", "f-1"), attribute.Int("page", 2))
}

func TestGetMeter(t *testing.T) {
	ctx := context.Background()

	tel, err := Init(ctx, disabledConfig())
	require.NoError(t, err)
	assert.Equal(t, tel.meter, GetMeter())

	globalTelemetry = nil
	assert.NotNil(t, GetMeter())
}

func TestCreateResource(t *testing.T) {
	res, err := createResource(&Config{
		ServiceName:    "housemate-test",
		ServiceVersion: "0.0.0",
		Environment:    "test",
	})
	require.NoError(t, err)
	require.NotNil(t, res)

	found := false
	for _, attr := range res.Attributes() {
		if string(attr.Key) == "service.name" {
			assert.Equal(t, "housemate-test", attr.Value.AsString())
			found = true
			break
		}
	}
	assert.True(t, found, "service.name attribute not found")
}
