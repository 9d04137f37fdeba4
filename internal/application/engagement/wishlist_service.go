package engagement

import (
	"context"

	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/catalog"
	"github.com/renztrending/backend/internal/domain/engagement"
	"go.uber.org/zap"
)

// WishlistService manages saved products
type WishlistService struct {
	wishlistRepo engagement.WishlistRepository
	productRepo  catalog.ProductRepository
	logger       *zap.Logger
}

// NewWishlistService creates a new WishlistService
func NewWishlistService(wishlistRepo engagement.WishlistRepository, productRepo catalog.ProductRepository, logger *zap.Logger) *WishlistService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WishlistService{wishlistRepo: wishlistRepo, productRepo: productRepo, logger: logger}
}

// Add saves the product and reports whether it was newly added. Adding a
// saved product again changes nothing.
func (s *WishlistService) Add(ctx context.Context, customerID, productID uuid.UUID) (bool, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return false, err
	}
	created, err := s.wishlistRepo.Add(ctx, engagement.NewWishlistItem(customerID, productID))
	if err != nil {
		return false, err
	}
	if created {
		s.logger.Debug("Wishlist item added",
			zap.String("customer_id", customerID.String()),
			zap.String("product_id", productID.String()))
	}
	return created, nil
}

// Remove drops the product from the wishlist
func (s *WishlistService) Remove(ctx context.Context, customerID, productID uuid.UUID) error {
	removed, err := s.wishlistRepo.Remove(ctx, customerID, productID)
	if err != nil {
		return err
	}
	if !removed {
		return engagement.ErrNotInWishlist
	}
	return nil
}

// Status reports whether the product is saved
func (s *WishlistService) Status(ctx context.Context, customerID, productID uuid.UUID) (*WishlistStatusResponse, error) {
	exists, err := s.wishlistRepo.Exists(ctx, customerID, productID)
	if err != nil {
		return nil, err
	}
	return &WishlistStatusResponse{InWishlist: exists}, nil
}

// List returns the saved products, newest first
func (s *WishlistService) List(ctx context.Context, customerID uuid.UUID) ([]WishlistItemResponse, error) {
	items, err := s.wishlistRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]WishlistItemResponse, len(items))
	for i := range items {
		out[i] = ToWishlistItemResponse(&items[i])
	}
	return out, nil
}
