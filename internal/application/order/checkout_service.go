package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/cart"
	"github.com/renztrending/backend/internal/domain/catalog"
	"github.com/renztrending/backend/internal/domain/identity"
	"github.com/renztrending/backend/internal/domain/order"
	"github.com/renztrending/backend/internal/domain/payment"
	"github.com/renztrending/backend/internal/domain/shared"
	"github.com/renztrending/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// paymentClaimTTL is how long a confirmed payment ID stays claimed
const paymentClaimTTL = 7 * 24 * time.Hour

// orderNumberAttempts bounds the retries on an order number clash
const orderNumberAttempts = 3

// ErrEmptyCart is returned when checking out an empty cart
var ErrEmptyCart = shared.NewValidationError("Cart is empty")

// ErrPaymentAlreadyProcessed is returned for a replayed payment confirmation
var ErrPaymentAlreadyProcessed = shared.NewDomainError(shared.CodeAlreadyExists, "Payment already processed")

// CheckoutService turns carts into orders
type CheckoutService struct {
	txScope     TransactionScope
	cartRepo    cart.CartRepository
	productRepo catalog.ProductRepository
	addressRepo identity.AddressRepository
	gateway     payment.Gateway
	intents     payment.IntentRepository
	idempotency shared.IdempotencyStore
	publisher   shared.EventPublisher
	logger      *zap.Logger
}

// CheckoutServiceDeps groups the CheckoutService collaborators
type CheckoutServiceDeps struct {
	TxScope     TransactionScope
	CartRepo    cart.CartRepository
	ProductRepo catalog.ProductRepository
	AddressRepo identity.AddressRepository
	Gateway     payment.Gateway
	Intents     payment.IntentRepository
	Idempotency shared.IdempotencyStore
	Publisher   shared.EventPublisher
	Logger      *zap.Logger
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(deps CheckoutServiceDeps) *CheckoutService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckoutService{
		txScope:     deps.TxScope,
		cartRepo:    deps.CartRepo,
		productRepo: deps.ProductRepo,
		addressRepo: deps.AddressRepo,
		gateway:     deps.Gateway,
		intents:     deps.Intents,
		idempotency: deps.Idempotency,
		publisher:   deps.Publisher,
		logger:      logger,
	}
}

// PlaceCODOrder places the whole cart as one cash-on-delivery order. Stock,
// the order, its payment and the emptied cart commit together.
func (s *CheckoutService) PlaceCODOrder(ctx context.Context, customerID uuid.UUID, req CheckoutRequest) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "checkout", "place_cod_order",
		telemetry.WithAttribute(telemetry.SpanAttrCustomerID, customerID.String()))
	defer span.End()

	if err := s.validateAddresses(ctx, customerID, req.ShippingAddressID, req.BillingAddressID); err != nil {
		return nil, err
	}

	var placed *order.Order
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		lines, err := repos.CartRepo().FindByCustomer(ctx, customerID)
		if err != nil {
			return err
		}
		items, err := snapshotCart(lines)
		if err != nil {
			return err
		}
		o, err := order.NewCODOrder(customerID, items)
		if err != nil {
			return err
		}
		o.SetAddresses(req.ShippingAddressID, req.BillingAddressID)

		if err := commitOrder(ctx, repos, o, payment.NewPendingPayment(o)); err != nil {
			return err
		}
		if err := repos.CartRepo().DeleteLines(ctx, customerID, cartLineIDs(lines)); err != nil {
			return err
		}
		placed = o
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span,
		telemetry.SpanAttrOrderID, placed.ID.String(),
		telemetry.SpanAttrAmount, placed.TotalAmount.String())

	s.logger.Info("COD order placed",
		zap.String("order_id", placed.ID.String()),
		zap.String("order_number", placed.OrderNumber),
		zap.String("customer_id", customerID.String()),
		zap.String("total", placed.TotalAmount.StringFixed(2)))

	publishEvents(ctx, s.publisher, s.logger, placed)
	resp := ToOrderResponse(placed)
	return &resp, nil
}

// BuyNow places a single product as a cash-on-delivery order, leaving the cart alone
func (s *CheckoutService) BuyNow(ctx context.Context, customerID uuid.UUID, req BuyNowRequest) (*OrderResponse, error) {
	if err := cart.ValidateQuantity(req.Quantity); err != nil {
		return nil, err
	}
	if err := s.validateAddresses(ctx, customerID, req.ShippingAddressID, req.BillingAddressID); err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	size := cart.NormalizeSize(req.Size)
	var variant *catalog.ProductVariant
	if req.VariantID != nil {
		variant, err = s.productRepo.FindVariantByID(ctx, *req.VariantID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewNotFoundError("Variant not found")
			}
			return nil, err
		}
		if variant.ProductID != product.ID {
			return nil, shared.NewValidationError("Variant does not belong to this product")
		}
		size = string(variant.Size)
	} else if !product.OffersSize(size) {
		return nil, shared.NewValidationError("Size is not available for this product")
	}

	item, err := order.NewOrderItem(nil, product.ID, req.VariantID, product.Name, size,
		cart.UnitPrice(product, variant), req.Quantity)
	if err != nil {
		return nil, err
	}

	var placed *order.Order
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		o, err := order.NewCODOrder(customerID, []order.OrderItem{*item})
		if err != nil {
			return err
		}
		o.SetAddresses(req.ShippingAddressID, req.BillingAddressID)
		if err := commitOrder(ctx, repos, o, payment.NewPendingPayment(o)); err != nil {
			return err
		}
		placed = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Buy-now order placed",
		zap.String("order_id", placed.ID.String()),
		zap.String("product_id", product.ID.String()),
		zap.Int("quantity", req.Quantity))

	publishEvents(ctx, s.publisher, s.logger, placed)
	resp := ToOrderResponse(placed)
	return &resp, nil
}

// CreateGatewayOrder registers the cart total with the payment gateway.
// No order is created until the payment is verified.
func (s *CheckoutService) CreateGatewayOrder(ctx context.Context, customerID uuid.UUID) (*GatewayOrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "checkout", "create_gateway_order",
		telemetry.WithAttribute(telemetry.SpanAttrCustomerID, customerID.String()))
	defer span.End()

	lines, err := s.cartRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	amount := payment.ToMinorUnits(cart.Total(lines))
	gwOrder, err := s.gateway.CreateOrder(ctx, amount, payment.CurrencyINR, newReceipt())
	if err != nil {
		telemetry.RecordError(span, err)
		s.logger.Error("Failed to create gateway order",
			zap.String("customer_id", customerID.String()),
			zap.Int64("amount", amount),
			zap.Error(err))
		return nil, shared.NewDomainError(shared.CodePaymentGateway, "Payment gateway is unavailable, please try again")
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrGatewayOrder, gwOrder.ID, telemetry.SpanAttrAmount, amount)

	if err := s.intents.Create(ctx, payment.NewIntent(customerID, gwOrder)); err != nil {
		telemetry.RecordError(span, err)
		s.logger.Error("Failed to record gateway order",
			zap.String("customer_id", customerID.String()),
			zap.String("gateway_order_id", gwOrder.ID),
			zap.Error(err))
		return nil, fmt.Errorf("record gateway order %s: %w", gwOrder.ID, err)
	}

	return &GatewayOrderResponse{
		OrderID:  gwOrder.ID,
		Key:      s.gateway.KeyID(),
		Amount:   gwOrder.Amount,
		Currency: gwOrder.Currency,
	}, nil
}

// VerifyGatewayPayment checks the gateway callback and turns the cart into a
// confirmed, paid order. A forged signature writes nothing, each payment ID
// is only ever turned into one order, and the cart must still total exactly
// what was registered with the gateway.
func (s *CheckoutService) VerifyGatewayPayment(ctx context.Context, customerID uuid.UUID, req VerifyPaymentRequest) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "checkout", "verify_gateway_payment",
		telemetry.WithAttribute(telemetry.SpanAttrCustomerID, customerID.String()),
		telemetry.WithAttribute(telemetry.SpanAttrGatewayOrder, req.GatewayOrderID))
	defer span.End()

	if !s.gateway.VerifySignature(req.GatewayOrderID, req.PaymentID, req.Signature) {
		telemetry.AddEvent(span, "signature_mismatch")
		s.logger.Warn("Payment signature mismatch",
			zap.String("customer_id", customerID.String()),
			zap.String("gateway_order_id", req.GatewayOrderID),
			zap.String("payment_id", req.PaymentID))
		return nil, payment.ErrVerificationFailed
	}
	if err := s.validateAddresses(ctx, customerID, req.ShippingAddressID, req.BillingAddressID); err != nil {
		return nil, err
	}
	intent, err := s.intents.FindForCustomer(ctx, customerID, req.GatewayOrderID)
	if err != nil {
		return nil, err
	}

	key := "payment:" + req.PaymentID
	claimed, err := s.idempotency.MarkProcessed(ctx, key, paymentClaimTTL)
	if err != nil {
		return nil, fmt.Errorf("claim payment %s: %w", req.PaymentID, err)
	}
	if !claimed {
		return nil, ErrPaymentAlreadyProcessed
	}

	var placed *order.Order
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		lines, err := repos.CartRepo().FindByCustomer(ctx, customerID)
		if err != nil {
			return err
		}
		items, err := snapshotCart(lines)
		if err != nil {
			return err
		}
		o, err := order.NewPaidOrder(customerID, req.GatewayOrderID, req.PaymentID, items)
		if err != nil {
			return err
		}
		o.SetAddresses(req.ShippingAddressID, req.BillingAddressID)
		p, err := payment.NewCapturedPayment(o, intent)
		if err != nil {
			if errors.Is(err, payment.ErrAmountMismatch) {
				s.logger.Warn("Paid amount does not match cart",
					zap.String("customer_id", customerID.String()),
					zap.String("gateway_order_id", req.GatewayOrderID),
					zap.Int64("paid", intent.AmountMinor),
					zap.String("cart_total", o.TotalAmount.StringFixed(2)))
			}
			return err
		}
		if err := commitOrder(ctx, repos, o, p); err != nil {
			return err
		}
		if err := repos.CartRepo().DeleteLines(ctx, customerID, cartLineIDs(lines)); err != nil {
			return err
		}
		placed = o
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		// the payment may be retried once the cause is fixed
		if relErr := s.idempotency.Release(ctx, key); relErr != nil {
			s.logger.Warn("Failed to release payment claim", zap.String("key", key), zap.Error(relErr))
		}
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, ErrPaymentAlreadyProcessed
		}
		return nil, err
	}

	s.logger.Info("Online order confirmed",
		zap.String("order_id", placed.ID.String()),
		zap.String("order_number", placed.OrderNumber),
		zap.String("payment_id", req.PaymentID))

	publishEvents(ctx, s.publisher, s.logger, placed)
	resp := ToOrderResponse(placed)
	return &resp, nil
}

func (s *CheckoutService) validateAddresses(ctx context.Context, customerID uuid.UUID, shippingID, billingID *uuid.UUID) error {
	if shippingID != nil {
		if _, err := s.addressRepo.FindShippingForCustomer(ctx, customerID, *shippingID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewNotFoundError("Shipping address not found")
			}
			return err
		}
	}
	if billingID != nil {
		if _, err := s.addressRepo.FindBillingForCustomer(ctx, customerID, *billingID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewNotFoundError("Billing address not found")
			}
			return err
		}
	}
	return nil
}

// snapshotCart copies the current prices and names of the cart lines
func snapshotCart(lines []cart.CartItem) ([]order.OrderItem, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	items := make([]order.OrderItem, 0, len(lines))
	for i := range lines {
		line := &lines[i]
		if line.Product == nil {
			return nil, shared.NewValidationError("A product in your cart is no longer available")
		}
		lineID := line.ID
		item, err := order.NewOrderItem(&lineID, line.ProductID, line.VariantID, line.Product.Name,
			line.Size, line.UnitPrice(), line.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, nil
}

// cartLineIDs lists the lines a checkout read, so lines added meanwhile stay
func cartLineIDs(lines []cart.CartItem) []uuid.UUID {
	ids := make([]uuid.UUID, len(lines))
	for i := range lines {
		ids[i] = lines[i].ID
	}
	return ids
}

// commitOrder reserves stock and writes the order with its payment. An order
// number clash draws a fresh number.
func commitOrder(ctx context.Context, repos TransactionalRepositories, o *order.Order, p *payment.Payment) error {
	for _, it := range o.Items {
		if err := reserveStock(ctx, repos.ProductRepo(), it); err != nil {
			return err
		}
		if err := repos.ProductRepo().IncrementBuyCount(ctx, it.ProductID, it.Quantity); err != nil {
			return err
		}
	}
	if err := createOrder(ctx, repos.OrderRepo(), o); err != nil {
		return err
	}
	return repos.PaymentRepo().Create(ctx, p)
}

func createOrder(ctx context.Context, orders order.OrderRepository, o *order.Order) error {
	for attempt := 1; ; attempt++ {
		err := orders.Create(ctx, o)
		if !errors.Is(err, order.ErrOrderNumberTaken) {
			return err
		}
		if attempt == orderNumberAttempts {
			return fmt.Errorf("allocate order number: %w", err)
		}
		if err := o.Renumber(); err != nil {
			return err
		}
	}
}

func reserveStock(ctx context.Context, products catalog.ProductRepository, it order.OrderItem) error {
	var err error
	if it.VariantID != nil {
		err = products.AdjustVariantStock(ctx, *it.VariantID, -it.Quantity)
	} else {
		err = products.AdjustStock(ctx, it.ProductID, -it.Quantity)
	}
	if errors.Is(err, shared.ErrInsufficientStock) {
		return shared.NewDomainError(shared.CodeInsufficientStock,
			fmt.Sprintf("Not enough stock for %s (size %s)", it.ProductName, it.Size))
	}
	return err
}

// restoreStock returns the units of a cancelled order to stock
func restoreStock(ctx context.Context, products catalog.ProductRepository, o *order.Order) error {
	for _, it := range o.Items {
		var err error
		if it.VariantID != nil {
			err = products.AdjustVariantStock(ctx, *it.VariantID, it.Quantity)
		} else {
			err = products.AdjustStock(ctx, it.ProductID, it.Quantity)
		}
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return err
		}
	}
	return nil
}

// publishEvents hands the order's events to the bus; failures are logged only
func publishEvents(ctx context.Context, publisher shared.EventPublisher, logger *zap.Logger, o *order.Order) {
	events := o.PullDomainEvents()
	if publisher == nil || len(events) == 0 {
		return
	}
	if err := publisher.Publish(ctx, events...); err != nil {
		logger.Warn("Failed to publish order events",
			zap.String("order_id", o.ID.String()),
			zap.Error(err))
	}
}

// newReceipt returns a gateway receipt id, at most 40 characters
func newReceipt() string {
	return "rcpt_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:20]
}
