package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Stock thresholds used by inventory reporting
const (
	LowStockThreshold = 10
	HotBuyCount       = 100
)

// Product is a sellable catalog item and the aggregate root for its variants and images
type Product struct {
	shared.BaseAggregateRoot
	Name         string
	Slug         string
	Description  string
	CategoryID   *uuid.UUID
	Brand        string
	Stock        int
	ColorID      *uuid.UUID
	SizeID       *uuid.UUID
	AvailSizes   []SizeCode
	MarketPrice  decimal.Decimal
	SellingPrice decimal.Decimal
	Rating       decimal.Decimal
	BuyCount     int
	Tags         []string
	Fabric       []string
	GSM          int
	ProductType  string
	Sleeve       string
	Fit          string
	IdealFor     string
	NetWeight    int

	// Read-side associations, populated by repositories when preloaded
	Color    *Color
	Size     *Size
	Category *Category
	Variants []ProductVariant
	Images   []ProductImage
}

// NewProduct creates a product with a slug derived from its name
func NewProduct(name string, marketPrice, sellingPrice decimal.Decimal, stock int) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	slug := shared.Slugify(name)
	if slug == "" {
		return nil, shared.NewValidationError("Product name must contain letters or digits")
	}

	p := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Slug:              slug,
		Rating:            decimal.Zero,
	}
	if err := p.SetPrices(marketPrice, sellingPrice); err != nil {
		return nil, err
	}
	if err := p.SetStock(stock); err != nil {
		return nil, err
	}
	return p, nil
}

// Rename changes the display name and regenerates the slug
func (p *Product) Rename(name string) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	slug := shared.Slugify(name)
	if slug == "" {
		return shared.NewValidationError("Product name must contain letters or digits")
	}
	p.Name = strings.TrimSpace(name)
	p.Slug = slug
	p.touch()
	return nil
}

// SetPrices sets the market and selling prices
func (p *Product) SetPrices(marketPrice, sellingPrice decimal.Decimal) error {
	if marketPrice.IsNegative() {
		return shared.NewValidationError("Market price cannot be negative")
	}
	if sellingPrice.IsNegative() {
		return shared.NewValidationError("Selling price cannot be negative")
	}
	p.MarketPrice = marketPrice
	p.SellingPrice = sellingPrice
	p.touch()
	return nil
}

// SetStock overwrites the on-hand stock
func (p *Product) SetStock(stock int) error {
	if stock < 0 {
		return shared.NewValidationError("Stock cannot be negative")
	}
	p.Stock = stock
	p.touch()
	return nil
}

// SetRating sets the aggregated review rating
func (p *Product) SetRating(rating decimal.Decimal) error {
	if rating.IsNegative() || rating.GreaterThan(decimal.NewFromInt(MaxRating)) {
		return shared.NewValidationError(fmt.Sprintf("Rating must be between 0 and %d", MaxRating))
	}
	p.Rating = rating.Round(1)
	p.touch()
	return nil
}

// SetCategory assigns the product to a category
func (p *Product) SetCategory(categoryID *uuid.UUID) {
	p.CategoryID = categoryID
	p.touch()
}

// SetAvailableSizes replaces the sizes the product is offered in
func (p *Product) SetAvailableSizes(codes []string) error {
	sizes := make([]SizeCode, 0, len(codes))
	for _, c := range codes {
		code, err := ParseSizeCode(c)
		if err != nil {
			return err
		}
		sizes = append(sizes, code)
	}
	p.AvailSizes = sizes
	p.touch()
	return nil
}

// OffersSize reports whether the product is sold in the given size.
// Products without a size list accept any size (including none).
func (p *Product) OffersSize(size string) bool {
	if len(p.AvailSizes) == 0 {
		return true
	}
	for _, s := range p.AvailSizes {
		if strings.EqualFold(string(s), size) {
			return true
		}
	}
	return false
}

// IsInStock reports whether any unit is on hand
func (p *Product) IsInStock() bool {
	return p.Stock > 0
}

// IsLowStock reports whether stock is positive but under the low-stock threshold
func (p *Product) IsLowStock() bool {
	return p.Stock > 0 && p.Stock < LowStockThreshold
}

// DiscountPercent returns the rounded percentage of selling price below market price
func (p *Product) DiscountPercent() int {
	return DiscountPercent(p.MarketPrice, p.SellingPrice)
}

// Badge returns the merchandising badge shown on product cards
func (p *Product) Badge() string {
	return Badge(p.BuyCount, p.MarketPrice, p.SellingPrice)
}

// SKU returns the derived stock-keeping code for the product
func (p *Product) SKU() string {
	sizeName := ""
	if p.Size != nil {
		sizeName = string(p.Size.Code)
	} else if len(p.AvailSizes) > 0 {
		sizeName = string(p.AvailSizes[0])
	}
	colorName := ""
	if p.Color != nil {
		colorName = p.Color.Name
	}
	return BuildSKU(SKUParts{
		ID:          p.ID,
		Size:        sizeName,
		Color:       colorName,
		Stock:       p.Stock,
		GSM:         p.GSM,
		Fabric:      p.Fabric,
		ProductType: p.ProductType,
		Sleeve:      p.Sleeve,
		Fit:         p.Fit,
		NetWeight:   p.NetWeight,
		IdealFor:    p.IdealFor,
	})
}

// PrimaryImage returns the primary image, falling back to the first one
func (p *Product) PrimaryImage() *ProductImage {
	for i := range p.Images {
		if p.Images[i].IsPrimary {
			return &p.Images[i]
		}
	}
	if len(p.Images) > 0 {
		return &p.Images[0]
	}
	return nil
}

// FindVariant returns the variant with the given ID
func (p *Product) FindVariant(id uuid.UUID) *ProductVariant {
	for i := range p.Variants {
		if p.Variants[i].ID == id {
			return &p.Variants[i]
		}
	}
	return nil
}

func (p *Product) touch() {
	p.UpdatedAt = time.Now()
}

func validateProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewValidationError("Product name cannot exceed 200 characters")
	}
	return nil
}
