package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/cart"
	"github.com/renztrending/backend/internal/domain/catalog"
	"github.com/renztrending/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CartService manages a customer's cart lines
type CartService struct {
	cartRepo    cart.CartRepository
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewCartService creates a new CartService
func NewCartService(cartRepo cart.CartRepository, productRepo catalog.ProductRepository, logger *zap.Logger) *CartService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartService{cartRepo: cartRepo, productRepo: productRepo, logger: logger}
}

// GetCart returns the customer's lines with prices and totals
func (s *CartService) GetCart(ctx context.Context, customerID uuid.UUID) (*CartResponse, error) {
	items, err := s.cartRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return ToCartResponse(items), nil
}

// AddItem adds units to the (product, size) line, creating it if needed.
// Quantities over the cap are rejected, never clamped, and an existing line
// keeps the option it was added with.
func (s *CartService) AddItem(ctx context.Context, customerID uuid.UUID, req AddCartItemRequest) (*CartResponse, error) {
	if err := cart.ValidateQuantity(req.Quantity); err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	size := cart.NormalizeSize(req.Size)
	if req.VariantID != nil {
		variant, err := s.productRepo.FindVariantByID(ctx, *req.VariantID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewNotFoundError("Variant not found")
			}
			return nil, err
		}
		if variant.ProductID != product.ID {
			return nil, shared.NewValidationError("Variant does not belong to this product")
		}
		if variant.Stock <= 0 {
			return nil, shared.NewDomainError(shared.CodeInsufficientStock, "Variant is out of stock")
		}
		size = string(variant.Size)
	} else {
		if !product.OffersSize(size) {
			return nil, shared.NewValidationError("Size is not available for this product")
		}
		if !product.IsInStock() {
			return nil, shared.NewDomainError(shared.CodeInsufficientStock, "Product is out of stock")
		}
	}

	existing, err := s.cartRepo.FindLine(ctx, customerID, product.ID, size)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		if !existing.SameOption(req.VariantID) {
			return nil, cart.ErrOptionMismatch
		}
		if err := existing.Add(req.Quantity); err != nil {
			return nil, err
		}
	}

	item, err := cart.NewCartItem(customerID, product.ID, req.VariantID, size, req.Quantity)
	if err != nil {
		return nil, err
	}
	merged, err := s.cartRepo.Merge(ctx, item, cart.MaxLineQuantity)
	if err != nil {
		return nil, err
	}
	if !merged {
		return nil, s.mergeRejection(ctx, customerID, product.ID, size, req.VariantID)
	}

	s.logger.Debug("Cart line merged",
		zap.String("customer_id", customerID.String()),
		zap.String("product_id", product.ID.String()),
		zap.String("size", size),
		zap.Int("quantity", req.Quantity))

	return s.GetCart(ctx, customerID)
}

// UpdateItem overwrites a line's quantity; zero or Remove deletes the line
func (s *CartService) UpdateItem(ctx context.Context, customerID, itemID uuid.UUID, req UpdateCartItemRequest) (*CartResponse, error) {
	if req.Remove || req.Quantity == 0 {
		if err := s.RemoveItem(ctx, customerID, itemID); err != nil {
			return nil, err
		}
		return s.GetCart(ctx, customerID)
	}

	item, err := s.findLine(ctx, customerID, itemID)
	if err != nil {
		return nil, err
	}
	if err := item.SetQuantity(req.Quantity); err != nil {
		return nil, err
	}
	if err := s.cartRepo.UpdateQuantity(ctx, item); err != nil {
		return nil, err
	}
	return s.GetCart(ctx, customerID)
}

// ApplyAction adds one, reduces one or deletes a line
func (s *CartService) ApplyAction(ctx context.Context, customerID, itemID uuid.UUID, code string) (*CartResponse, error) {
	action, err := cart.ParseAction(code)
	if err != nil {
		return nil, err
	}

	item, err := s.findLine(ctx, customerID, itemID)
	if err != nil {
		return nil, err
	}

	switch action {
	case cart.ActionAdd:
		if err := item.Add(1); err != nil {
			return nil, err
		}
		err = s.cartRepo.UpdateQuantity(ctx, item)
	case cart.ActionReduce:
		if item.Decrement() {
			err = s.cartRepo.Delete(ctx, customerID, itemID)
		} else {
			err = s.cartRepo.UpdateQuantity(ctx, item)
		}
	case cart.ActionDelete:
		err = s.cartRepo.Delete(ctx, customerID, itemID)
	}
	if err != nil {
		return nil, err
	}
	return s.GetCart(ctx, customerID)
}

// RemoveItem deletes a line
func (s *CartService) RemoveItem(ctx context.Context, customerID, itemID uuid.UUID) error {
	if err := s.cartRepo.Delete(ctx, customerID, itemID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return cart.ErrItemNotFound
		}
		return err
	}
	return nil
}

// Clear empties the cart
func (s *CartService) Clear(ctx context.Context, customerID uuid.UUID) error {
	return s.cartRepo.Clear(ctx, customerID)
}

// mergeRejection explains a merge lost to a concurrent add: the line now
// holds another option, or too many units
func (s *CartService) mergeRejection(ctx context.Context, customerID, productID uuid.UUID, size string, variantID *uuid.UUID) error {
	line, err := s.cartRepo.FindLine(ctx, customerID, productID, size)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return err
	}
	if line != nil && !line.SameOption(variantID) {
		return cart.ErrOptionMismatch
	}
	return cart.ErrTotalTooLarge
}

func (s *CartService) findLine(ctx context.Context, customerID, itemID uuid.UUID) (*cart.CartItem, error) {
	item, err := s.cartRepo.FindForCustomer(ctx, customerID, itemID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, cart.ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}
