package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProduct(t *testing.T) *Product {
	p, err := NewProduct("Oversized Graphic Tee", decimal.NewFromInt(999), decimal.NewFromInt(749), 25)
	require.NoError(t, err)
	return p
}

func TestNewProduct(t *testing.T) {
	t.Run("derives slug from name", func(t *testing.T) {
		p := newTestProduct(t)
		assert.Equal(t, "oversized-graphic-tee", p.Slug)
		assert.Equal(t, 25, p.Stock)
		assert.True(t, p.Rating.IsZero())
		assert.Equal(t, 1, p.Version)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewProduct("  ", decimal.NewFromInt(1), decimal.NewFromInt(1), 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be empty")
	})

	t.Run("rejects name without slug characters", func(t *testing.T) {
		_, err := NewProduct("!!!", decimal.NewFromInt(1), decimal.NewFromInt(1), 0)
		require.Error(t, err)
	})

	t.Run("rejects negative prices and stock", func(t *testing.T) {
		_, err := NewProduct("Tee", decimal.NewFromInt(-1), decimal.NewFromInt(1), 0)
		assert.Error(t, err)
		_, err = NewProduct("Tee", decimal.NewFromInt(1), decimal.NewFromInt(-1), 0)
		assert.Error(t, err)
		_, err = NewProduct("Tee", decimal.NewFromInt(1), decimal.NewFromInt(1), -3)
		assert.Error(t, err)
	})
}

func TestProduct_Rename(t *testing.T) {
	p := newTestProduct(t)
	require.NoError(t, p.Rename("Café Crème Hoodie"))
	assert.Equal(t, "Café Crème Hoodie", p.Name)
	assert.Equal(t, "cafe-creme-hoodie", p.Slug)
}

func TestProduct_SetRating(t *testing.T) {
	p := newTestProduct(t)

	require.NoError(t, p.SetRating(decimal.RequireFromString("4.26")))
	assert.True(t, p.Rating.Equal(decimal.RequireFromString("4.3")))

	assert.Error(t, p.SetRating(decimal.NewFromInt(6)))
	assert.Error(t, p.SetRating(decimal.NewFromInt(-1)))
}

func TestProduct_Sizes(t *testing.T) {
	p := newTestProduct(t)
	assert.True(t, p.OffersSize("anything"), "no size list accepts any size")

	require.NoError(t, p.SetAvailableSizes([]string{"s", "M", "xl"}))
	assert.Equal(t, []SizeCode{SizeS, SizeM, SizeXL}, p.AvailSizes)
	assert.True(t, p.OffersSize("m"))
	assert.False(t, p.OffersSize("XXL"))

	assert.Error(t, p.SetAvailableSizes([]string{"XXXL"}))
}

func TestProduct_StockBands(t *testing.T) {
	tests := []struct {
		stock   int
		inStock bool
		low     bool
	}{
		{0, false, false},
		{1, true, true},
		{9, true, true},
		{10, true, false},
		{200, true, false},
	}
	for _, tt := range tests {
		p := newTestProduct(t)
		require.NoError(t, p.SetStock(tt.stock))
		assert.Equal(t, tt.inStock, p.IsInStock(), "stock %d", tt.stock)
		assert.Equal(t, tt.low, p.IsLowStock(), "stock %d", tt.stock)
	}
}

func TestProduct_PrimaryImage(t *testing.T) {
	p := newTestProduct(t)
	assert.Nil(t, p.PrimaryImage())

	first := NewProductImage(p.ID, "products/a.jpg", "https://cdn/a.jpg", "", false)
	second := NewProductImage(p.ID, "products/b.jpg", "https://cdn/b.jpg", "", true)
	p.Images = []ProductImage{*first}
	assert.Equal(t, "products/a.jpg", p.PrimaryImage().StorageKey)

	p.Images = append(p.Images, *second)
	assert.Equal(t, "products/b.jpg", p.PrimaryImage().StorageKey)
}

func TestProduct_FindVariant(t *testing.T) {
	p := newTestProduct(t)
	v, err := NewProductVariant(p.ID, "tee-blk-m", "m", decimal.NewFromInt(799), decimal.NewFromInt(999), 4)
	require.NoError(t, err)
	p.Variants = []ProductVariant{*v}

	found := p.FindVariant(v.ID)
	require.NotNil(t, found)
	assert.Equal(t, "TEE-BLK-M", found.SKU)
	assert.Equal(t, SizeM, found.Size)
	assert.Nil(t, p.FindVariant(uuid.New()))
}

func TestProduct_SKU(t *testing.T) {
	p := newTestProduct(t)
	p.ID = uuid.MustParse("a1b2c3d4-0000-0000-0000-000000000000")
	p.Stock = 7
	p.GSM = 180
	p.Fabric = []string{"cotton", "lycra"}
	p.ProductType = "tshirt"
	p.Sleeve = "half"
	p.Fit = "oversized"
	p.NetWeight = 250
	p.IdealFor = "men"
	p.Color = &Color{Name: "black"}
	p.Size = &Size{Code: SizeM}

	assert.Equal(t, "A1B2C3D4MB0070180CLTHO0250M", p.SKU())
}

func TestProduct_SKUDefaults(t *testing.T) {
	p := newTestProduct(t)
	p.ID = uuid.MustParse("00000000-0000-0000-0000-000000000000")
	p.Stock = 0

	assert.Equal(t, "00000000SC0000000TLF0000I", p.SKU())
}

func TestNewCategory(t *testing.T) {
	c, err := NewCategory("  Men's T-Shirts ", nil)
	require.NoError(t, err)
	assert.Equal(t, "Men's T-Shirts", c.Name)
	assert.Equal(t, "men-s-t-shirts", c.Slug)
	assert.Equal(t, "", c.ParentName())

	c.Parent = &Category{Name: "Men"}
	assert.Equal(t, "Men", c.ParentName())

	_, err = NewCategory("", nil)
	assert.Error(t, err)
}

func TestParseSizeCode(t *testing.T) {
	code, err := ParseSizeCode(" xxl ")
	require.NoError(t, err)
	assert.Equal(t, SizeXXL, code)

	_, err = ParseSizeCode("XXXL")
	assert.Error(t, err)
}

func TestNewColor(t *testing.T) {
	c, err := NewColor("Navy", "#1f2a44")
	require.NoError(t, err)
	assert.Equal(t, "#1F2A44", c.HexCode)

	_, err = NewColor("Navy", "blue")
	assert.Error(t, err)
	_, err = NewColor("", "")
	assert.Error(t, err)
}

func TestNewProductGroup(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	g, err := NewProductGroup("Classic Polo", []uuid.UUID{a, b, a})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a, b}, g.ProductIDs)

	_, err = NewProductGroup("Solo", []uuid.UUID{a, a})
	assert.Error(t, err)
}
