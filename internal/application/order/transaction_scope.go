package order

import (
	"context"

	"github.com/renztrending/backend/internal/domain/cart"
	"github.com/renztrending/backend/internal/domain/catalog"
	"github.com/renztrending/backend/internal/domain/order"
	"github.com/renztrending/backend/internal/domain/payment"
)

// TransactionScope provides transactional access to the repositories that
// checkout and order updates touch. Everything done through the repositories
// handed to fn commits or rolls back together.
type TransactionScope interface {
	// Execute runs fn within a database transaction. An error from fn rolls
	// the transaction back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories are repositories sharing one transaction.
//
// ProductRepo is only used for the conditional stock and buy-count updates;
// catalog reads stay outside the transaction.
type TransactionalRepositories interface {
	OrderRepo() order.OrderRepository
	PaymentRepo() payment.PaymentRepository
	CartRepo() cart.CartRepository
	ProductRepo() catalog.ProductRepository
}

// NoOpTransactionScope runs fn directly against the given repositories
type NoOpTransactionScope struct {
	orderRepo   order.OrderRepository
	paymentRepo payment.PaymentRepository
	cartRepo    cart.CartRepository
	productRepo catalog.ProductRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope
func NewNoOpTransactionScope(
	orderRepo order.OrderRepository,
	paymentRepo payment.PaymentRepository,
	cartRepo cart.CartRepository,
	productRepo catalog.ProductRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) OrderRepo() order.OrderRepository       { return s.orderRepo }
func (s *NoOpTransactionScope) PaymentRepo() payment.PaymentRepository { return s.paymentRepo }
func (s *NoOpTransactionScope) CartRepo() cart.CartRepository          { return s.cartRepo }
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository { return s.productRepo }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
