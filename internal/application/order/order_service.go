package order

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/identity"
	"github.com/renztrending/backend/internal/domain/order"
	"github.com/renztrending/backend/internal/domain/payment"
	"github.com/renztrending/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ErrOrderNotFound is returned for unknown or foreign orders
var ErrOrderNotFound = shared.NewNotFoundError("Order not found")

// OrderService serves a customer's own orders
type OrderService struct {
	orderRepo   order.OrderRepository
	addressRepo identity.AddressRepository
	txScope     TransactionScope
	publisher   shared.EventPublisher
	logger      *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo order.OrderRepository, addressRepo identity.AddressRepository, txScope TransactionScope, publisher shared.EventPublisher, logger *zap.Logger) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		orderRepo:   orderRepo,
		addressRepo: addressRepo,
		txScope:     txScope,
		publisher:   publisher,
		logger:      logger,
	}
}

// GetOrder returns one of the customer's orders
func (s *OrderService) GetOrder(ctx context.Context, customerID, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.find(ctx, s.orderRepo, customerID, orderID)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

// ListCustomerOrders returns the customer's orders, newest first
func (s *OrderService) ListCustomerOrders(ctx context.Context, customerID uuid.UUID, f OrderListFilter) ([]OrderResponse, int64, error) {
	filter, err := toFilter(f)
	if err != nil {
		return nil, 0, err
	}
	orders, err := s.orderRepo.FindByCustomer(ctx, customerID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.CountByCustomer(ctx, customerID, filter)
	if err != nil {
		return nil, 0, err
	}
	return ToOrderResponses(orders), total, nil
}

// UpdateShippingAddress points an unshipped order at another of the customer's addresses
func (s *OrderService) UpdateShippingAddress(ctx context.Context, customerID, orderID, addressID uuid.UUID) (*OrderResponse, error) {
	if _, err := s.addressRepo.FindShippingForCustomer(ctx, customerID, addressID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("Shipping address not found")
		}
		return nil, err
	}

	o, err := s.find(ctx, s.orderRepo, customerID, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.ReassignShippingAddress(addressID); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	s.logger.Info("Order address changed",
		zap.String("order_id", o.ID.String()),
		zap.String("address_id", addressID.String()))

	resp := ToOrderResponse(o)
	return &resp, nil
}

// CancelOrder cancels one of the customer's orders before it ships and puts
// its units back in stock
func (s *OrderService) CancelOrder(ctx context.Context, customerID, orderID uuid.UUID) (*OrderResponse, error) {
	var cancelled *order.Order
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		o, err := s.find(ctx, repos.OrderRepo(), customerID, orderID)
		if err != nil {
			return err
		}
		if o.Status.HasShipped() {
			return shared.NewDomainError(shared.CodeInvalidState, "Order has already shipped and can no longer be cancelled")
		}
		if err := cancelOrder(ctx, repos, o); err != nil {
			return err
		}
		cancelled = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order cancelled by customer",
		zap.String("order_id", cancelled.ID.String()),
		zap.String("customer_id", customerID.String()))

	publishEvents(ctx, s.publisher, s.logger, cancelled)
	resp := ToOrderResponse(cancelled)
	return &resp, nil
}

func (s *OrderService) find(ctx context.Context, repo order.OrderRepository, customerID, orderID uuid.UUID) (*order.Order, error) {
	o, err := repo.FindForCustomer(ctx, customerID, orderID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return o, nil
}

// cancelOrder moves the order to cancelled, restores stock and voids an
// uncollected payment, all through the transactional repositories
func cancelOrder(ctx context.Context, repos TransactionalRepositories, o *order.Order) error {
	if err := o.Cancel(); err != nil {
		return err
	}
	if err := repos.OrderRepo().Save(ctx, o); err != nil {
		return err
	}
	if err := restoreStock(ctx, repos.ProductRepo(), o); err != nil {
		return err
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
	p.MarkFailed()
	return repos.PaymentRepo().Save(ctx, p)
}

// toFilter maps list query parameters onto a repository filter
func toFilter(f OrderListFilter) (shared.Filter, error) {
	filter := shared.DefaultFilter().Paged(f.Page, f.PageSize, f.Search)
	if strings.TrimSpace(f.Status) != "" {
		status, err := order.ParseOrderStatus(f.Status)
		if err != nil {
			return filter, err
		}
		filter.Filters["status"] = status
	}
	return filter, nil
}
