package telemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/renztrending/backend/internal/domain/catalog"
	"github.com/renztrending/backend/internal/domain/order"
	"github.com/renztrending/backend/internal/domain/shared"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// orderValueBuckets are in rupees
var orderValueBuckets = []float64{250, 500, 1000, 2000, 3500, 5000, 10000, 25000}

// StockCounter reports catalog stock levels for the inventory gauges
type StockCounter interface {
	CountStockLevels(ctx context.Context, lowThreshold int) (*catalog.StockLevels, error)
}

// ShopMetrics turns order events into business metrics and observes the
// catalog stock levels on each collection cycle.
type ShopMetrics struct {
	ordersPlaced metric.Int64Counter
	orderValue   metric.Float64Histogram
	transitions  metric.Int64Counter
	logger       *zap.Logger
}

// NewShopMetrics registers the instruments. stock may be nil, which skips
// the inventory gauges.
func NewShopMetrics(meter metric.Meter, stock StockCounter, logger *zap.Logger) (*ShopMetrics, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	placed, err := meter.Int64Counter("shop.orders.placed",
		metric.WithDescription("Orders placed by payment method"), metric.WithUnit("{order}"))
	if err != nil {
		return nil, err
	}
	value, err := meter.Float64Histogram("shop.order.value",
		metric.WithDescription("Order totals"), metric.WithUnit("INR"),
		metric.WithExplicitBucketBoundaries(orderValueBuckets...))
	if err != nil {
		return nil, err
	}
	transitions, err := meter.Int64Counter("shop.orders.transitions",
		metric.WithDescription("Order status transitions"), metric.WithUnit("{transition}"))
	if err != nil {
		return nil, err
	}
	m := &ShopMetrics{ordersPlaced: placed, orderValue: value, transitions: transitions, logger: logger}

	if stock != nil {
		if err := m.observeStock(meter, stock); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *ShopMetrics) observeStock(meter metric.Meter, stock StockCounter) error {
	products, err := meter.Int64ObservableGauge("shop.inventory.products",
		metric.WithDescription("Products by stock level"), metric.WithUnit("{product}"))
	if err != nil {
		return err
	}
	_, err = meter.RegisterCallback(func(ctx context.Context, o metric.Observer) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		levels, err := stock.CountStockLevels(ctx, catalog.LowStockThreshold)
		if err != nil {
			m.logger.Warn("Failed to collect stock levels", zap.Error(err))
			return nil
		}
		o.ObserveInt64(products, levels.TotalProducts, metric.WithAttributes(attribute.String("level", "total")))
		o.ObserveInt64(products, levels.LowStock, metric.WithAttributes(attribute.String("level", "low")))
		o.ObserveInt64(products, levels.OutOfStock, metric.WithAttributes(attribute.String("level", "out")))
		return nil
	}, products)
	return err
}

func (m *ShopMetrics) EventTypes() []string {
	return []string{order.EventTypeOrderPlaced, order.EventTypeOrderStatusChanged}
}

func (m *ShopMetrics) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *order.OrderPlacedEvent:
		method := attribute.String("payment_method", string(e.PaymentMethod))
		m.ordersPlaced.Add(ctx, 1, metric.WithAttributes(method))
		m.orderValue.Record(ctx, e.TotalAmount.InexactFloat64(), metric.WithAttributes(method))
	case *order.OrderStatusChangedEvent:
		m.transitions.Add(ctx, 1, metric.WithAttributes(
			attribute.String("from", e.From.String()),
			attribute.String("to", e.To.String())))
	default:
		return fmt.Errorf("unexpected event type %s", event.EventType())
	}
	return nil
}

var _ shared.EventHandler = (*ShopMetrics)(nil)
