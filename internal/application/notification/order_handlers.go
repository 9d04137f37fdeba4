package notification

import (
	"context"
	"fmt"

	"github.com/renztrending/backend/internal/domain/audit"
	"github.com/renztrending/backend/internal/domain/identity"
	"github.com/renztrending/backend/internal/domain/order"
	"github.com/renztrending/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// OrderUpdateNotifier emails the customer whenever their order changes status
type OrderUpdateNotifier struct {
	customerRepo identity.CustomerRepository
	queue        Queue
	siteURL      string
	logger       *zap.Logger
}

// NewOrderUpdateNotifier creates a new OrderUpdateNotifier
func NewOrderUpdateNotifier(customerRepo identity.CustomerRepository, queue Queue, siteURL string, logger *zap.Logger) *OrderUpdateNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderUpdateNotifier{customerRepo: customerRepo, queue: queue, siteURL: siteURL, logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *OrderUpdateNotifier) EventTypes() []string {
	return []string{order.EventTypeOrderStatusChanged}
}

// Handle looks up the customer and queues the update email
func (h *OrderUpdateNotifier) Handle(ctx context.Context, event shared.DomainEvent) error {
	changed, ok := event.(*order.OrderStatusChangedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			order.EventTypeOrderStatusChanged, event.EventType())
	}

	customer, err := h.customerRepo.FindByID(ctx, changed.CustomerID)
	if err != nil {
		return fmt.Errorf("load customer %s: %w", changed.CustomerID, err)
	}
	if customer.Email == "" {
		h.logger.Debug("Customer has no email, skipping order update",
			zap.String("customer_id", customer.ID.String()))
		return nil
	}

	h.queue.Enqueue(OrderUpdate(customer.Email, customer.FullName(), changed, h.siteURL))
	return nil
}

// OrderAuditHandler writes every order status change to the audit log
type OrderAuditHandler struct {
	auditLog audit.Log
	logger   *zap.Logger
}

// NewOrderAuditHandler creates a new OrderAuditHandler
func NewOrderAuditHandler(auditLog audit.Log, logger *zap.Logger) *OrderAuditHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderAuditHandler{auditLog: auditLog, logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *OrderAuditHandler) EventTypes() []string {
	return []string{order.EventTypeOrderStatusChanged}
}

// Handle records the transition with the acting user from the context
func (h *OrderAuditHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	changed, ok := event.(*order.OrderStatusChangedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			order.EventTypeOrderStatusChanged, event.EventType())
	}

	entry := audit.NewEntry(audit.ActorFrom(ctx), audit.ActionOrderStatusChanged,
		order.AggregateTypeOrder, changed.OrderID.String(), map[string]any{
			"order_number": changed.OrderNumber,
			"from":         changed.From.String(),
			"to":           changed.To.String(),
		})
	if err := h.auditLog.Record(ctx, entry); err != nil {
		h.logger.Warn("Failed to record order status change",
			zap.String("order_id", changed.OrderID.String()),
			zap.Error(err))
	}
	return nil
}

var (
	_ shared.EventHandler = (*OrderUpdateNotifier)(nil)
	_ shared.EventHandler = (*OrderAuditHandler)(nil)
)
