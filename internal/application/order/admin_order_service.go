package order

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/audit"
	"github.com/renztrending/backend/internal/domain/order"
	"github.com/renztrending/backend/internal/domain/payment"
	"github.com/renztrending/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// AdminOrderService is the staff view over all orders
type AdminOrderService struct {
	orderRepo order.OrderRepository
	txScope   TransactionScope
	auditLog  audit.Log
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewAdminOrderService creates a new AdminOrderService
func NewAdminOrderService(orderRepo order.OrderRepository, txScope TransactionScope, auditLog audit.Log, publisher shared.EventPublisher, logger *zap.Logger) *AdminOrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminOrderService{
		orderRepo: orderRepo,
		txScope:   txScope,
		auditLog:  auditLog,
		publisher: publisher,
		logger:    logger,
	}
}

// ListOrders returns all orders matching the search and status filter
func (s *AdminOrderService) ListOrders(ctx context.Context, f OrderListFilter) ([]OrderResponse, int64, error) {
	filter, err := toFilter(f)
	if err != nil {
		return nil, 0, err
	}
	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return ToOrderResponses(orders), total, nil
}

// GetOrder returns any order
func (s *AdminOrderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.find(ctx, s.orderRepo, orderID)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

// UpdateStatus moves one order along its lifecycle
func (s *AdminOrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (*OrderResponse, error) {
	target, err := order.ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}

	var updated *order.Order
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		o, err := s.find(ctx, repos.OrderRepo(), orderID)
		if err != nil {
			return err
		}
		if err := applyStatus(ctx, repos, o, target); err != nil {
			return err
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order status updated",
		zap.String("order_id", orderID.String()),
		zap.String("status", target.String()))

	publishEvents(ctx, s.publisher, s.logger, updated)
	resp := ToOrderResponse(updated)
	return &resp, nil
}

// BulkUpdateStatus applies the status to every order whose lifecycle allows
// it. Orders that are unknown, already in that status, not allowed to move
// or changed concurrently are reported as skipped.
func (s *AdminOrderService) BulkUpdateStatus(ctx context.Context, req BulkStatusRequest) (*BulkStatusResponse, error) {
	if len(req.OrderIDs) == 0 {
		return nil, shared.NewValidationError("At least one order is required")
	}
	if len(req.OrderIDs) > MaxBulkOrders {
		return nil, shared.NewValidationError("Too many orders in one request")
	}
	target, err := order.ParseOrderStatus(req.Status)
	if err != nil {
		return nil, err
	}

	ids := uniqueIDs(req.OrderIDs)
	orders, err := s.orderRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*order.Order, len(orders))
	for i := range orders {
		byID[orders[i].ID] = &orders[i]
	}

	resp := &BulkStatusResponse{Skipped: []uuid.UUID{}}
	for _, id := range ids {
		o, ok := byID[id]
		if !ok || !o.Status.CanTransitionTo(target) {
			resp.Skipped = append(resp.Skipped, id)
			continue
		}
		err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
			return applyStatus(ctx, repos, o, target)
		})
		if err != nil {
			s.logger.Warn("Bulk status update skipped order",
				zap.String("order_id", id.String()),
				zap.Error(err))
			o.ClearDomainEvents()
			resp.Skipped = append(resp.Skipped, id)
			continue
		}
		resp.Updated++
		publishEvents(ctx, s.publisher, s.logger, o)
	}

	s.logger.Info("Bulk order status update",
		zap.String("status", target.String()),
		zap.Int("requested", len(ids)),
		zap.Int("updated", resp.Updated),
		zap.Int("skipped", len(resp.Skipped)))

	return resp, nil
}

// UpdateTracking records the carrier tracking details
func (s *AdminOrderService) UpdateTracking(ctx context.Context, orderID uuid.UUID, req TrackingRequest) (*OrderResponse, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewValidationError("Order ID is required")
	}
	o, err := s.find(ctx, s.orderRepo, orderID)
	if err != nil {
		return nil, err
	}
	previous := o.TrackingNumber
	if err := o.UpdateTracking(req.TrackingNumber, req.Carrier, req.ExpectedDeliveryDate); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, audit.ActionOrderTracking, o, map[string]any{
		"from":    previous,
		"to":      o.TrackingNumber,
		"carrier": o.Carrier,
	})

	resp := ToOrderResponse(o)
	return &resp, nil
}

// UpdateShipment records the courier booking of an order
func (s *AdminOrderService) UpdateShipment(ctx context.Context, orderID uuid.UUID, req ShipmentRequest) (*OrderResponse, error) {
	o, err := s.find(ctx, s.orderRepo, orderID)
	if err != nil {
		return nil, err
	}
	err = o.UpdateShipment(order.Shipment{
		ShipmentOrderID:  req.ShipmentOrderID,
		ShipmentID:       req.ShipmentID,
		AWBCode:          req.AWBCode,
		CourierCompanyID: req.CourierCompanyID,
		CourierName:      req.CourierName,
	})
	if err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, audit.ActionOrderShipment, o, map[string]any{
		"awb_code":     req.AWBCode,
		"courier_name": req.CourierName,
	})

	resp := ToOrderResponse(o)
	return &resp, nil
}

func (s *AdminOrderService) find(ctx context.Context, repo order.OrderRepository, orderID uuid.UUID) (*order.Order, error) {
	o, err := repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return o, nil
}

func (s *AdminOrderService) recordAudit(ctx context.Context, action string, o *order.Order, details map[string]any) {
	if s.auditLog == nil {
		return
	}
	entry := audit.NewEntry(audit.ActorFrom(ctx), action, order.AggregateTypeOrder, o.ID.String(), details)
	if err := s.auditLog.Record(ctx, entry); err != nil {
		s.logger.Warn("Failed to record audit entry",
			zap.String("action", action),
			zap.String("order_id", o.ID.String()),
			zap.Error(err))
	}
}

// applyStatus performs one transition with its side effects: cancelling
// restores stock, delivering settles a cash-on-delivery payment
func applyStatus(ctx context.Context, repos TransactionalRepositories, o *order.Order, target order.OrderStatus) error {
	if target == order.StatusCancelled {
		return cancelOrder(ctx, repos, o)
	}
	if err := o.TransitionTo(target); err != nil {
		return err
	}
	if err := repos.OrderRepo().Save(ctx, o); err != nil {
		return err
	}
	if target != order.StatusDelivered || o.PaymentMethod != order.PaymentCOD {
		return nil
	}

	p, err := repos.PaymentRepo().FindByOrderID(ctx, o.ID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if p.Status != payment.StatusPending {
		return nil
	}
	if err := p.MarkPaid(""); err != nil {
		return err
	}
	return repos.PaymentRepo().Save(ctx, p)
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
