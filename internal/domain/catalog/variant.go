package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductVariant is a purchasable size/color combination with its own price and stock
type ProductVariant struct {
	shared.BaseEntity
	ProductID   uuid.UUID
	SKU         string
	Size        SizeCode
	ColorID     *uuid.UUID
	Price       decimal.Decimal
	MarketPrice decimal.Decimal
	Stock       int
}

// NewProductVariant creates a variant of a product
func NewProductVariant(productID uuid.UUID, sku, size string, price, marketPrice decimal.Decimal, stock int) (*ProductVariant, error) {
	sku = strings.ToUpper(strings.TrimSpace(sku))
	if sku == "" {
		return nil, shared.NewValidationError("Variant SKU cannot be empty")
	}
	if len(sku) > 64 {
		return nil, shared.NewValidationError("Variant SKU cannot exceed 64 characters")
	}
	code, err := ParseSizeCode(size)
	if err != nil {
		return nil, err
	}
	if price.IsNegative() || marketPrice.IsNegative() {
		return nil, shared.NewValidationError("Variant prices cannot be negative")
	}
	if stock < 0 {
		return nil, shared.NewValidationError("Stock cannot be negative")
	}
	return &ProductVariant{
		BaseEntity:  shared.NewBaseEntity(),
		ProductID:   productID,
		SKU:         sku,
		Size:        code,
		Price:       price,
		MarketPrice: marketPrice,
		Stock:       stock,
	}, nil
}
