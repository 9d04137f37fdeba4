// Package telemetry wires OpenTelemetry traces, metrics and logs, the GORM
// instrumentation and the Pyroscope profiler.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	otelpyroscope "github.com/grafana/otel-profiling-go"
	"github.com/renztrending/backend/internal/infrastructure/config"
	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// ServiceVersion is reported on every span, metric and log record
	ServiceVersion  = "1.0.0"
	metricsInterval = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Telemetry owns the OpenTelemetry providers. A disabled Telemetry hands out
// the global no-op implementations.
type Telemetry struct {
	cfg      config.TelemetryConfig
	traces   *sdktrace.TracerProvider
	metrics  *sdkmetric.MeterProvider
	logs     *sdklog.LoggerProvider
	profiler *Profiler
	logger   *zap.Logger
}

// Setup builds the providers and installs them globally when enabled
func Setup(ctx context.Context, cfg config.TelemetryConfig, logger *zap.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &Telemetry{cfg: cfg, logger: logger}

	if cfg.Enabled {
		if err := t.startExporters(ctx); err != nil {
			_ = t.Shutdown(context.Background())
			return nil, err
		}
	} else {
		logger.Info("Telemetry disabled, using no-op providers")
	}

	profiler, err := NewProfiler(cfg, logger)
	if err != nil {
		_ = t.Shutdown(context.Background())
		return nil, err
	}
	t.profiler = profiler

	// span_id labels on CPU profiles need both a live tracer and profiler
	if t.traces != nil && profiler.IsEnabled() {
		otel.SetTracerProvider(otelpyroscope.NewTracerProvider(t.traces))
		logger.Info("Span profiles enabled")
	}
	return t, nil
}

func (t *Telemetry) startExporters(ctx context.Context) error {
	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(t.cfg.ServiceName),
		semconv.ServiceVersion(ServiceVersion),
	))
	if err != nil {
		return fmt.Errorf("telemetry resource: %w", err)
	}

	traceOpts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(t.cfg.CollectorEndpoint)}
	metricOpts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(t.cfg.CollectorEndpoint)}
	logOpts := []otlploggrpc.Option{otlploggrpc.WithEndpoint(t.cfg.CollectorEndpoint)}
	if t.cfg.Insecure {
		traceOpts = append(traceOpts, otlptracegrpc.WithInsecure())
		metricOpts = append(metricOpts, otlpmetricgrpc.WithInsecure())
		logOpts = append(logOpts, otlploggrpc.WithInsecure())
	}

	traceExp, err := otlptracegrpc.New(ctx, traceOpts...)
	if err != nil {
		return fmt.Errorf("trace exporter: %w", err)
	}
	t.traces = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExp),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(Sampler(t.cfg.SamplingRatio))),
	)
	otel.SetTracerProvider(t.traces)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	metricExp, err := otlpmetricgrpc.New(ctx, metricOpts...)
	if err != nil {
		return fmt.Errorf("metric exporter: %w", err)
	}
	t.metrics = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExp, sdkmetric.WithInterval(metricsInterval))),
	)
	otel.SetMeterProvider(t.metrics)

	logExp, err := otlploggrpc.New(ctx, logOpts...)
	if err != nil {
		return fmt.Errorf("log exporter: %w", err)
	}
	t.logs = sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(sdklog.NewBatchProcessor(logExp)),
	)
	global.SetLoggerProvider(t.logs)

	t.logger.Info("Telemetry exporters started",
		zap.String("collector_endpoint", t.cfg.CollectorEndpoint),
		zap.Float64("sampling_ratio", t.cfg.SamplingRatio),
		zap.String("service_name", t.cfg.ServiceName))
	return nil
}

// Sampler maps a ratio onto the cheapest equivalent sampler
func Sampler(ratio float64) sdktrace.Sampler {
	switch {
	case ratio >= 1:
		return sdktrace.AlwaysSample()
	case ratio <= 0:
		return sdktrace.NeverSample()
	default:
		return sdktrace.TraceIDRatioBased(ratio)
	}
}

// Enabled reports whether exporters are running
func (t *Telemetry) Enabled() bool {
	return t.traces != nil
}

// MeterProvider returns the SDK provider, or the global one when disabled
func (t *Telemetry) MeterProvider() metric.MeterProvider {
	if t.metrics == nil {
		return otel.GetMeterProvider()
	}
	return t.metrics
}

// Meter returns a named meter
func (t *Telemetry) Meter(name string) metric.Meter {
	return t.MeterProvider().Meter(name)
}

// Config returns the settings Setup was called with
func (t *Telemetry) Config() config.TelemetryConfig {
	return t.cfg
}

// BridgeLogger tees base into the OTLP log pipeline at level and above.
// With logs disabled base is returned unchanged.
func (t *Telemetry) BridgeLogger(base *zap.Logger, level zapcore.Level) *zap.Logger {
	if t.logs == nil {
		return base
	}
	otelCore := otelzap.NewCore(t.cfg.ServiceName, otelzap.WithLoggerProvider(t.logs))
	return base.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return zapcore.NewTee(c, &levelCore{Core: otelCore, min: level})
	}))
}

// levelCore drops entries below min; otelzap has no level of its own
type levelCore struct {
	zapcore.Core
	min zapcore.Level
}

func (c *levelCore) Enabled(l zapcore.Level) bool {
	return l >= c.min && c.Core.Enabled(l)
}

func (c *levelCore) Check(e zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !c.Enabled(e.Level) {
		return ce
	}
	return c.Core.Check(e, ce)
}

func (c *levelCore) With(fields []zapcore.Field) zapcore.Core {
	return &levelCore{Core: c.Core.With(fields), min: c.min}
}

// Shutdown flushes and stops every provider, collecting all errors
func (t *Telemetry) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	var errs []error
	if t.profiler != nil {
		errs = append(errs, t.profiler.Stop())
	}
	if t.traces != nil {
		errs = append(errs, t.traces.Shutdown(ctx))
	}
	if t.metrics != nil {
		errs = append(errs, t.metrics.Shutdown(ctx))
	}
	if t.logs != nil {
		errs = append(errs, t.logs.Shutdown(ctx))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("telemetry shutdown: %w", err)
	}
	return nil
}
