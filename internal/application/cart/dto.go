package cart

import (
	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/cart"
	"github.com/shopspring/decimal"
)

// AddCartItemRequest adds units of a product in a size
type AddCartItemRequest struct {
	ProductID uuid.UUID  `json:"product_id" binding:"required"`
	VariantID *uuid.UUID `json:"variant_id"`
	Size      string     `json:"size" binding:"max=10" example:"M"`
	Quantity  int        `json:"quantity" binding:"required" example:"1"`
}

// UpdateCartItemRequest overwrites a line's quantity; zero or Remove deletes it
type UpdateCartItemRequest struct {
	Quantity int  `json:"quantity" binding:"min=0" example:"2"`
	Remove   bool `json:"remove"`
}

// CartActionRequest carries a quick action: a (add one), r (reduce one), d (delete)
type CartActionRequest struct {
	Action string `json:"action" binding:"required,oneof=a r d A R D" example:"a"`
}

// CartItemResponse is one cart line with its computed price
type CartItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	VariantID *uuid.UUID      `json:"variant_id,omitempty"`
	Name      string          `json:"name"`
	Slug      string          `json:"slug"`
	ImageURL  string          `json:"image_url,omitempty"`
	Size      string          `json:"size"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LinePrice decimal.Decimal `json:"line_price"`
	InStock   bool            `json:"in_stock"`
}

// CartResponse is the whole cart
type CartResponse struct {
	Items     []CartItemResponse `json:"items"`
	ItemCount int                `json:"item_count"`
	Total     decimal.Decimal    `json:"total"`
}

// ToCartItemResponse converts a cart line
func ToCartItemResponse(item *cart.CartItem) CartItemResponse {
	resp := CartItemResponse{
		ID:        item.ID,
		ProductID: item.ProductID,
		VariantID: item.VariantID,
		Size:      item.Size,
		Quantity:  item.Quantity,
		UnitPrice: item.UnitPrice(),
		LinePrice: item.LinePrice(),
	}
	if p := item.Product; p != nil {
		resp.Name = p.Name
		resp.Slug = p.Slug
		resp.InStock = p.IsInStock()
		if img := p.PrimaryImage(); img != nil {
			resp.ImageURL = img.URL
		}
	}
	if item.Variant != nil {
		resp.InStock = item.Variant.Stock > 0
	}
	return resp
}

// ToCartResponse converts the customer's lines
func ToCartResponse(items []cart.CartItem) *CartResponse {
	out := make([]CartItemResponse, len(items))
	for i := range items {
		out[i] = ToCartItemResponse(&items[i])
	}
	return &CartResponse{
		Items:     out,
		ItemCount: cart.ItemCount(items),
		Total:     cart.Total(items),
	}
}
