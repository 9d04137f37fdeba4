package telemetry

import (
	"context"
	"testing"

	"github.com/renztrending/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetup_Disabled(t *testing.T) {
	tel, err := Setup(context.Background(), config.TelemetryConfig{ServiceName: "test"}, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, tel.Enabled())
	assert.NotNil(t, tel.MeterProvider())
	assert.NotNil(t, tel.Meter("test"))
	assert.False(t, tel.profiler.IsEnabled())
	assert.Equal(t, "test", tel.Config().ServiceName)

	base := zap.NewNop()
	assert.Same(t, base, tel.BridgeLogger(base, zapcore.InfoLevel))

	require.NoError(t, tel.Shutdown(context.Background()))
}

func TestSetup_NilLogger(t *testing.T) {
	tel, err := Setup(context.Background(), config.TelemetryConfig{}, nil)
	require.NoError(t, err)
	assert.NotNil(t, tel.logger)
}

func TestSetup_ProfilingWithoutEndpoint(t *testing.T) {
	_, err := Setup(context.Background(), config.TelemetryConfig{ProfilingEnabled: true}, zap.NewNop())
	assert.Error(t, err)
}

func TestSampler(t *testing.T) {
	tests := []struct {
		ratio float64
		want  string
	}{
		{1, "AlwaysOnSampler"},
		{2, "AlwaysOnSampler"},
		{0, "AlwaysOffSampler"},
		{-1, "AlwaysOffSampler"},
		{0.25, "TraceIDRatioBased{0.25}"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Sampler(tt.ratio).Description(), "ratio %v", tt.ratio)
	}
}

func TestLevelCore(t *testing.T) {
	inner, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(&levelCore{Core: inner, min: zapcore.WarnLevel})

	log.Debug("debug")
	log.Info("info")
	log.Warn("warn")
	log.With(zap.String("k", "v")).Error("error")

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, "warn", entries[0].Message)
	assert.Equal(t, "error", entries[1].Message)
	assert.Equal(t, "v", entries[1].ContextMap()["k"])
}
