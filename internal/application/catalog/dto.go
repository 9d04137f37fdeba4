package catalog

import (
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductListFilter is the storefront product query
type ProductListFilter struct {
	Search   string           `form:"search"`
	Category string           `form:"category"`
	MinPrice *decimal.Decimal `form:"-"`
	MaxPrice *decimal.Decimal `form:"-"`
	Sort     string           `form:"sort" binding:"omitempty,oneof=newest price_asc price_desc popular rating name"`
	Page     int              `form:"page" binding:"omitempty,min=1"`
	PageSize int              `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Name         string          `json:"name" binding:"required,min=1,max=200"`
	Description  string          `json:"description" binding:"max=5000"`
	CategoryID   *uuid.UUID      `json:"category_id"`
	Brand        string          `json:"brand" binding:"max=100"`
	MarketPrice  decimal.Decimal `json:"market_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	Stock        int             `json:"stock" binding:"min=0"`
	ColorID      *uuid.UUID      `json:"color_id"`
	SizeID       *uuid.UUID      `json:"size_id"`
	AvailSizes   []string        `json:"avail_sizes"`
	Tags         []string        `json:"tags"`
	Fabric       []string        `json:"fabric"`
	GSM          int             `json:"gsm" binding:"min=0"`
	ProductType  string          `json:"product_type" binding:"max=100"`
	Sleeve       string          `json:"sleeve" binding:"max=100"`
	Fit          string          `json:"fit" binding:"max=100"`
	IdealFor     string          `json:"ideal_for" binding:"max=100"`
	NetWeight    int             `json:"net_weight" binding:"min=0"`
}

// UpdateProductRequest represents a partial product update
type UpdateProductRequest struct {
	Name         *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description  *string          `json:"description" binding:"omitempty,max=5000"`
	CategoryID   *uuid.UUID       `json:"category_id"`
	Brand        *string          `json:"brand" binding:"omitempty,max=100"`
	MarketPrice  *decimal.Decimal `json:"market_price"`
	SellingPrice *decimal.Decimal `json:"selling_price"`
	ColorID      *uuid.UUID       `json:"color_id"`
	SizeID       *uuid.UUID       `json:"size_id"`
	AvailSizes   []string         `json:"avail_sizes"`
	Tags         []string         `json:"tags"`
	Fabric       []string         `json:"fabric"`
	GSM          *int             `json:"gsm" binding:"omitempty,min=0"`
	ProductType  *string          `json:"product_type"`
	Sleeve       *string          `json:"sleeve"`
	Fit          *string          `json:"fit"`
	IdealFor     *string          `json:"ideal_for"`
	NetWeight    *int             `json:"net_weight" binding:"omitempty,min=0"`
}

// AddVariantRequest represents a request to add a variant to a product
type AddVariantRequest struct {
	SKU         string          `json:"sku" binding:"required,max=64"`
	Size        string          `json:"size" binding:"required"`
	ColorID     *uuid.UUID      `json:"color_id"`
	Price       decimal.Decimal `json:"price"`
	MarketPrice decimal.Decimal `json:"market_price"`
	Stock       int             `json:"stock" binding:"min=0"`
}

// UploadImageRequest carries an uploaded image file
type UploadImageRequest struct {
	Filename    string
	ContentType string
	Body        io.Reader
	AltText     string
	IsPrimary   bool
}

// CreateGroupRequest groups products shown together on the detail page
type CreateGroupRequest struct {
	Name       string      `json:"name" binding:"required,max=200"`
	ProductIDs []uuid.UUID `json:"product_ids" binding:"required,min=2"`
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name     string     `json:"name" binding:"required,min=1,max=100"`
	ParentID *uuid.UUID `json:"parent_id"`
	ImageURL string     `json:"image_url" binding:"omitempty,url,max=500"`
}

// CreateColorRequest represents a request to create a color
type CreateColorRequest struct {
	Name    string `json:"name" binding:"required,max=50"`
	HexCode string `json:"hex_code" binding:"omitempty,max=7"`
}

// CreateSizeRequest represents a request to create a size chart row
type CreateSizeRequest struct {
	Code     string          `json:"code" binding:"required"`
	Chest    decimal.Decimal `json:"chest"`
	Length   decimal.Decimal `json:"length"`
	Shoulder decimal.Decimal `json:"shoulder"`
	Sleeve   decimal.Decimal `json:"sleeve"`
}

// StockUpdateRequest sets the stock of one product
type StockUpdateRequest struct {
	Stock int `json:"stock" binding:"min=0"`
}

// BulkStockItem is one row of a bulk stock update
type BulkStockItem struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Stock     int       `json:"stock" binding:"min=0"`
}

// BulkStockUpdateRequest sets the stock of many products at once
type BulkStockUpdateRequest struct {
	Items []BulkStockItem `json:"items" binding:"required,min=1,max=500,dive"`
}

// ProductResponse is the product card shown in listings
type ProductResponse struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Slug            string          `json:"slug"`
	Brand           string          `json:"brand"`
	CategoryID      *uuid.UUID      `json:"category_id"`
	CategoryName    string          `json:"category_name,omitempty"`
	MarketPrice     decimal.Decimal `json:"market_price"`
	SellingPrice    decimal.Decimal `json:"selling_price"`
	DiscountPercent int             `json:"discount_percent"`
	Badge           string          `json:"badge,omitempty"`
	Rating          decimal.Decimal `json:"rating"`
	BuyCount        int             `json:"buy_count"`
	Stock           int             `json:"stock"`
	InStock         bool            `json:"in_stock"`
	AvailSizes      []string        `json:"avail_sizes"`
	ImageURL        string          `json:"image_url,omitempty"`
}

// HomeResponse is the storefront landing feed
type HomeResponse struct {
	Categories []CategoryResponse `json:"categories"`
	NewlyAdded []ProductResponse  `json:"newly_added"`
	HotRelease []ProductResponse  `json:"hot_release"`
	Trendy     []ProductResponse  `json:"trendy"`
	BestDeal   []ProductResponse  `json:"best_deal"`
}

// ProductDetailResponse is the full product page
type ProductDetailResponse struct {
	ProductResponse
	Description string            `json:"description"`
	SKU         string            `json:"sku"`
	Tags        []string          `json:"tags"`
	Fabric      []string          `json:"fabric"`
	GSM         int               `json:"gsm"`
	ProductType string            `json:"product_type"`
	Sleeve      string            `json:"sleeve"`
	Fit         string            `json:"fit"`
	IdealFor    string            `json:"ideal_for"`
	NetWeight   int               `json:"net_weight"`
	Color       *ColorResponse    `json:"color,omitempty"`
	Variants    []VariantResponse `json:"variants"`
	Images      []ImageResponse   `json:"images"`
	Group       []ProductResponse `json:"group,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// VariantResponse is a purchasable variant
type VariantResponse struct {
	ID          uuid.UUID       `json:"id"`
	SKU         string          `json:"sku"`
	Size        string          `json:"size"`
	ColorID     *uuid.UUID      `json:"color_id"`
	Price       decimal.Decimal `json:"price"`
	MarketPrice decimal.Decimal `json:"market_price"`
	Stock       int             `json:"stock"`
}

// ImageResponse is a product image
type ImageResponse struct {
	ID        uuid.UUID `json:"id"`
	URL       string    `json:"url"`
	AltText   string    `json:"alt_text"`
	IsPrimary bool      `json:"is_primary"`
}

// GroupResponse is a created product group
type GroupResponse struct {
	ID         uuid.UUID   `json:"id"`
	Name       string      `json:"name"`
	ProductIDs []uuid.UUID `json:"product_ids"`
}

// ColorResponse is a product color
type ColorResponse struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	HexCode string    `json:"hex_code"`
}

// SizeResponse is a size chart row
type SizeResponse struct {
	ID       uuid.UUID       `json:"id"`
	Code     string          `json:"code"`
	Chest    decimal.Decimal `json:"chest"`
	Length   decimal.Decimal `json:"length"`
	Shoulder decimal.Decimal `json:"shoulder"`
	Sleeve   decimal.Decimal `json:"sleeve"`
}

// CategoryResponse is a category with its product count
type CategoryResponse struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Slug          string     `json:"slug"`
	ParentID      *uuid.UUID `json:"parent_id"`
	ParentName    string     `json:"parent_name,omitempty"`
	ImageURL      string     `json:"image_url"`
	TotalProducts int64      `json:"total_products"`
}

// CategoryTreeNode is a category with its subcategories
type CategoryTreeNode struct {
	CategoryResponse
	Children []CategoryTreeNode `json:"children"`
}

// InventorySummaryResponse is the admin stock overview
type InventorySummaryResponse struct {
	TotalProducts int64             `json:"total_products"`
	LowStock      int64             `json:"low_stock"`
	OutOfStock    int64             `json:"out_of_stock"`
	LowStockItems []ProductResponse `json:"low_stock_items"`
	OutOfStockIDs []uuid.UUID       `json:"out_of_stock_ids"`
}

// BulkStockUpdateResponse reports a bulk stock update
type BulkStockUpdateResponse struct {
	Updated int64 `json:"updated"`
}

// StockImportResponse reports an applied stock CSV. Skipped counts rows whose
// product no longer exists.
type StockImportResponse struct {
	Rows    int   `json:"rows"`
	Updated int64 `json:"updated"`
	Skipped int64 `json:"skipped"`
}

// ToProductResponse converts a product to its card
func ToProductResponse(p *catalog.Product) ProductResponse {
	sizes := make([]string, len(p.AvailSizes))
	for i, s := range p.AvailSizes {
		sizes[i] = string(s)
	}
	resp := ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		Slug:            p.Slug,
		Brand:           p.Brand,
		CategoryID:      p.CategoryID,
		MarketPrice:     p.MarketPrice,
		SellingPrice:    p.SellingPrice,
		DiscountPercent: p.DiscountPercent(),
		Badge:           p.Badge(),
		Rating:          p.Rating,
		BuyCount:        p.BuyCount,
		Stock:           p.Stock,
		InStock:         p.IsInStock(),
		AvailSizes:      sizes,
	}
	if p.Category != nil {
		resp.CategoryName = p.Category.Name
	}
	if img := p.PrimaryImage(); img != nil {
		resp.ImageURL = img.URL
	}
	return resp
}

// ToProductResponses converts a slice of products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = ToProductResponse(&products[i])
	}
	return out
}

// ToProductDetailResponse converts a product to the full product page
func ToProductDetailResponse(p *catalog.Product) *ProductDetailResponse {
	resp := &ProductDetailResponse{
		ProductResponse: ToProductResponse(p),
		Description:     p.Description,
		SKU:             p.SKU(),
		Tags:            nonNil(p.Tags),
		Fabric:          nonNil(p.Fabric),
		GSM:             p.GSM,
		ProductType:     p.ProductType,
		Sleeve:          p.Sleeve,
		Fit:             p.Fit,
		IdealFor:        p.IdealFor,
		NetWeight:       p.NetWeight,
		Variants:        make([]VariantResponse, len(p.Variants)),
		Images:          make([]ImageResponse, len(p.Images)),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	if p.Color != nil {
		c := ToColorResponse(p.Color)
		resp.Color = &c
	}
	for i := range p.Variants {
		resp.Variants[i] = ToVariantResponse(&p.Variants[i])
	}
	for i, img := range p.Images {
		resp.Images[i] = ImageResponse{ID: img.ID, URL: img.URL, AltText: img.AltText, IsPrimary: img.IsPrimary}
	}
	return resp
}

// ToVariantResponse converts a variant
func ToVariantResponse(v *catalog.ProductVariant) VariantResponse {
	return VariantResponse{
		ID:          v.ID,
		SKU:         v.SKU,
		Size:        string(v.Size),
		ColorID:     v.ColorID,
		Price:       v.Price,
		MarketPrice: v.MarketPrice,
		Stock:       v.Stock,
	}
}

// ToColorResponse converts a color
func ToColorResponse(c *catalog.Color) ColorResponse {
	return ColorResponse{ID: c.ID, Name: c.Name, HexCode: c.HexCode}
}

// ToSizeResponse converts a size
func ToSizeResponse(s *catalog.Size) SizeResponse {
	return SizeResponse{
		ID:       s.ID,
		Code:     string(s.Code),
		Chest:    s.Chest,
		Length:   s.Length,
		Shoulder: s.Shoulder,
		Sleeve:   s.Sleeve,
	}
}

// ToCategoryResponse converts a category
func ToCategoryResponse(c *catalog.Category, totalProducts int64) CategoryResponse {
	return CategoryResponse{
		ID:            c.ID,
		Name:          c.Name,
		Slug:          c.Slug,
		ParentID:      c.ParentID,
		ParentName:    c.ParentName(),
		ImageURL:      c.ImageURL,
		TotalProducts: totalProducts,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
