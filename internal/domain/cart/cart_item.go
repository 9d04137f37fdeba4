package cart

import (
	"strings"

	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/catalog"
	"github.com/renztrending/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MaxLineQuantity caps the quantity of a single cart line
const MaxLineQuantity = 20

// Cart line errors
var (
	ErrQuantityNotPositive = shared.NewValidationError("Quantity must be greater than 0")
	ErrQuantityTooLarge    = shared.NewValidationError("Quantity cannot exceed 20")
	ErrTotalTooLarge       = shared.NewValidationError("Total quantity cannot exceed 20")
	ErrItemNotFound        = shared.NewNotFoundError("Cart item not found")
	ErrOptionMismatch      = shared.NewValidationError("This size is already in your cart as a different option")
)

// CartItem is one (product, size) line in a customer's cart
type CartItem struct {
	shared.BaseEntity
	CustomerID uuid.UUID
	ProductID  uuid.UUID
	VariantID  *uuid.UUID
	Size       string
	Quantity   int

	// Read-side associations, populated when preloaded
	Product *catalog.Product
	Variant *catalog.ProductVariant
}

// NewCartItem creates a fresh cart line
func NewCartItem(customerID, productID uuid.UUID, variantID *uuid.UUID, size string, quantity int) (*CartItem, error) {
	if err := ValidateQuantity(quantity); err != nil {
		return nil, err
	}
	return &CartItem{
		BaseEntity: shared.NewBaseEntity(),
		CustomerID: customerID,
		ProductID:  productID,
		VariantID:  variantID,
		Size:       NormalizeSize(size),
		Quantity:   quantity,
	}, nil
}

// ValidateQuantity checks a single line quantity against 1..MaxLineQuantity
func ValidateQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrQuantityNotPositive
	}
	if quantity > MaxLineQuantity {
		return ErrQuantityTooLarge
	}
	return nil
}

// NormalizeSize canonicalizes the size key that lines merge on
func NormalizeSize(size string) string {
	return strings.ToUpper(strings.TrimSpace(size))
}

// Add merges more units into the line; the merged total may not exceed the cap
func (i *CartItem) Add(quantity int) error {
	if quantity <= 0 {
		return ErrQuantityNotPositive
	}
	if i.Quantity+quantity > MaxLineQuantity {
		return ErrTotalTooLarge
	}
	i.Quantity += quantity
	i.Touch()
	return nil
}

// SameOption reports whether variantID names the option this line was priced
// with. A line never changes option once created.
func (i *CartItem) SameOption(variantID *uuid.UUID) bool {
	if i.VariantID == nil || variantID == nil {
		return i.VariantID == nil && variantID == nil
	}
	return *i.VariantID == *variantID
}

// SetQuantity overwrites the line quantity
func (i *CartItem) SetQuantity(quantity int) error {
	if err := ValidateQuantity(quantity); err != nil {
		return err
	}
	i.Quantity = quantity
	i.Touch()
	return nil
}

// Decrement removes one unit and reports whether the line is now empty
func (i *CartItem) Decrement() bool {
	i.Quantity--
	i.Touch()
	return i.Quantity <= 0
}

// UnitPrice is the variant price when a variant is set, otherwise the product's selling price
func (i *CartItem) UnitPrice() decimal.Decimal {
	return UnitPrice(i.Product, i.Variant)
}

// LinePrice is the unit price times quantity
func (i *CartItem) LinePrice() decimal.Decimal {
	return LinePrice(i.Product, i.Variant, i.Quantity)
}

// UnitPrice resolves the price of one unit
func UnitPrice(product *catalog.Product, variant *catalog.ProductVariant) decimal.Decimal {
	if variant != nil {
		return variant.Price
	}
	if product != nil {
		return product.SellingPrice
	}
	return decimal.Zero
}

// LinePrice returns unit price times quantity
func LinePrice(product *catalog.Product, variant *catalog.ProductVariant, quantity int) decimal.Decimal {
	return UnitPrice(product, variant).Mul(decimal.NewFromInt(int64(quantity)))
}

// Total sums the line prices of a cart
func Total(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for i := range items {
		total = total.Add(items[i].LinePrice())
	}
	return total
}

// ItemCount sums the quantities of a cart
func ItemCount(items []CartItem) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

// Action is a quick adjustment applied to a cart line
type Action string

const (
	ActionAdd    Action = "a"
	ActionReduce Action = "r"
	ActionDelete Action = "d"
)

// ParseAction parses a quick-action code
func ParseAction(s string) (Action, error) {
	switch a := Action(strings.ToLower(strings.TrimSpace(s))); a {
	case ActionAdd, ActionReduce, ActionDelete:
		return a, nil
	}
	return "", shared.NewValidationError("Action must be one of a, r, d")
}
