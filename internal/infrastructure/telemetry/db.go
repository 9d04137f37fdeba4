package telemetry

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/renztrending/backend/internal/infrastructure/config"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const startKey = "telemetry:query_start"

// dbDurationBuckets are in seconds
var dbDurationBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}

// DBPlugin records query counts, latency and slow queries, and annotates the
// active span. Register it with db.Use.
type DBPlugin struct {
	slowThreshold time.Duration
	queries       metric.Int64Counter
	duration      metric.Float64Histogram
	slow          metric.Int64Counter
	logger        *zap.Logger
}

// NewDBPlugin creates the instruments on meter
func NewDBPlugin(meter metric.Meter, slowThreshold time.Duration, logger *zap.Logger) (*DBPlugin, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if slowThreshold <= 0 {
		slowThreshold = 200 * time.Millisecond
	}
	queries, err := meter.Int64Counter("db.client.queries",
		metric.WithDescription("Database queries by operation"), metric.WithUnit("{query}"))
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram("db.client.query.duration",
		metric.WithDescription("Database query latency"), metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(dbDurationBuckets...))
	if err != nil {
		return nil, err
	}
	slow, err := meter.Int64Counter("db.client.slow_queries",
		metric.WithDescription("Queries slower than the configured threshold"), metric.WithUnit("{query}"))
	if err != nil {
		return nil, err
	}
	return &DBPlugin{slowThreshold: slowThreshold, queries: queries, duration: duration, slow: slow, logger: logger}, nil
}

func (p *DBPlugin) Name() string { return "renz:db_telemetry" }

// Initialize hooks a start and finish callback around every processor
func (p *DBPlugin) Initialize(db *gorm.DB) error {
	before := func(tx *gorm.DB) { tx.InstanceSet(startKey, time.Now()) }
	cb := db.Callback()
	hooks := []struct {
		name  string
		op    string
		reg   func(name string, fn func(*gorm.DB)) error
		after func(name string, fn func(*gorm.DB)) error
	}{
		{"create", "INSERT", cb.Create().Before("gorm:create").Register, cb.Create().After("gorm:create").Register},
		{"query", "SELECT", cb.Query().Before("gorm:query").Register, cb.Query().After("gorm:query").Register},
		{"update", "UPDATE", cb.Update().Before("gorm:update").Register, cb.Update().After("gorm:update").Register},
		{"delete", "DELETE", cb.Delete().Before("gorm:delete").Register, cb.Delete().After("gorm:delete").Register},
		{"row", "", cb.Row().Before("gorm:row").Register, cb.Row().After("gorm:row").Register},
		{"raw", "", cb.Raw().Before("gorm:raw").Register, cb.Raw().After("gorm:raw").Register},
	}
	for _, h := range hooks {
		op := h.op
		if err := h.reg("renz:before_"+h.name, before); err != nil {
			return err
		}
		if err := h.after("renz:after_"+h.name, func(tx *gorm.DB) { p.finish(tx, op) }); err != nil {
			return err
		}
	}
	return nil
}

func (p *DBPlugin) finish(tx *gorm.DB, op string) {
	ctx := tx.Statement.Context
	if ctx == nil {
		ctx = context.Background()
	}
	if op == "" {
		op = operationOf(tx.Statement.SQL.String())
	}
	table := tx.Statement.Table
	if table == "" {
		table = "unknown"
	}

	var elapsed time.Duration
	if v, ok := tx.InstanceGet(startKey); ok {
		if start, ok := v.(time.Time); ok {
			elapsed = time.Since(start)
		}
	}

	opAttr := attribute.String("db.operation", op)
	p.queries.Add(ctx, 1, metric.WithAttributes(opAttr))
	p.duration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(opAttr))

	span := trace.SpanFromContext(ctx)
	recording := span.IsRecording()
	if recording {
		span.SetAttributes(
			attribute.Int64("db.rows_affected", tx.Statement.RowsAffected),
			attribute.String("db.sql.table", table))
		if tx.Error != nil && !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, tx.Error.Error())
			span.RecordError(tx.Error)
		}
	}

	if elapsed > p.slowThreshold {
		p.slow.Add(ctx, 1, metric.WithAttributes(attribute.String("db.sql.table", table)))
		if recording {
			span.AddEvent("slow_query", trace.WithAttributes(
				attribute.Int64("duration_ms", elapsed.Milliseconds()),
				attribute.Int64("threshold_ms", p.slowThreshold.Milliseconds())))
		}
	}
}

func operationOf(sql string) string {
	sql = strings.ToUpper(strings.TrimSpace(sql))
	for _, op := range []string{"SELECT", "INSERT", "UPDATE", "DELETE"} {
		if strings.HasPrefix(sql, op) {
			return op
		}
	}
	return "OTHER"
}

// RegisterPoolStats exports database/sql pool statistics as observable gauges
func RegisterPoolStats(meter metric.Meter, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	conns, err := meter.Int64ObservableGauge("db.client.connections",
		metric.WithDescription("Connections in the pool by state"), metric.WithUnit("{connection}"))
	if err != nil {
		return err
	}
	maxConns, err := meter.Int64ObservableGauge("db.client.connections.max",
		metric.WithDescription("Maximum open connections"), metric.WithUnit("{connection}"))
	if err != nil {
		return err
	}
	_, err = meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		s := sqlDB.Stats()
		o.ObserveInt64(conns, int64(s.Idle), metric.WithAttributes(attribute.String("state", "idle")))
		o.ObserveInt64(conns, int64(s.InUse), metric.WithAttributes(attribute.String("state", "in_use")))
		o.ObserveInt64(maxConns, int64(s.MaxOpenConnections))
		return nil
	}, conns, maxConns)
	return err
}

// InstrumentDB installs otelgorm tracing (when enabled), the metrics plugin
// and the pool gauges
func InstrumentDB(db *gorm.DB, cfg config.TelemetryConfig, meter metric.Meter, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Enabled && cfg.DBTraceEnabled {
		opts := []otelgorm.Option{otelgorm.WithDBName("renztrending")}
		if !cfg.DBLogFullSQL {
			opts = append(opts, otelgorm.WithoutQueryVariables())
		}
		if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
			return err
		}
	}

	plugin, err := NewDBPlugin(meter, cfg.DBSlowQueryThresh, logger)
	if err != nil {
		return err
	}
	if err := db.Use(plugin); err != nil {
		return err
	}
	if err := RegisterPoolStats(meter, db); err != nil {
		return err
	}
	logger.Info("Database instrumentation installed",
		zap.Bool("tracing", cfg.Enabled && cfg.DBTraceEnabled),
		zap.Duration("slow_query_threshold", plugin.slowThreshold))
	return nil
}
