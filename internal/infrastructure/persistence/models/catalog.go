package models

import (
	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product domain entity.
type ProductModel struct {
	AggregateModel
	Name         string          `gorm:"type:varchar(200);not null"`
	Slug         string          `gorm:"type:varchar(220);not null;uniqueIndex"`
	Description  string          `gorm:"type:text"`
	CategoryID   *uuid.UUID      `gorm:"type:uuid;index"`
	Brand        string          `gorm:"type:varchar(100)"`
	Stock        int             `gorm:"not null;default:0;index"`
	ColorID      *uuid.UUID      `gorm:"type:uuid"`
	SizeID       *uuid.UUID      `gorm:"type:uuid"`
	AvailSizes   []string        `gorm:"type:jsonb;serializer:json"`
	MarketPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	SellingPrice decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;index"`
	Rating       decimal.Decimal `gorm:"type:decimal(3,2);not null;default:0"`
	BuyCount     int             `gorm:"not null;default:0"`
	Tags         []string        `gorm:"type:jsonb;serializer:json"`
	Fabric       []string        `gorm:"type:jsonb;serializer:json"`
	GSM          int             `gorm:"column:gsm;not null;default:0"`
	ProductType  string          `gorm:"type:varchar(50)"`
	Sleeve       string          `gorm:"type:varchar(50)"`
	Fit          string          `gorm:"type:varchar(50)"`
	IdealFor     string          `gorm:"type:varchar(50)"`
	NetWeight    int             `gorm:"not null;default:0"`

	Category *CategoryModel        `gorm:"foreignKey:CategoryID"`
	Color    *ColorModel           `gorm:"foreignKey:ColorID"`
	Size     *SizeModel            `gorm:"foreignKey:SizeID"`
	Variants []ProductVariantModel `gorm:"foreignKey:ProductID"`
	Images   []ProductImageModel   `gorm:"foreignKey:ProductID"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
// Associations are converted only when they were preloaded.
func (m *ProductModel) ToDomain() *catalog.Product {
	p := &catalog.Product{
		BaseAggregateRoot: m.Aggregate(),
		Name:              m.Name,
		Slug:              m.Slug,
		Description:       m.Description,
		CategoryID:        m.CategoryID,
		Brand:             m.Brand,
		Stock:             m.Stock,
		ColorID:           m.ColorID,
		SizeID:            m.SizeID,
		MarketPrice:       m.MarketPrice,
		SellingPrice:      m.SellingPrice,
		Rating:            m.Rating,
		BuyCount:          m.BuyCount,
		Tags:              m.Tags,
		Fabric:            m.Fabric,
		GSM:               m.GSM,
		ProductType:       m.ProductType,
		Sleeve:            m.Sleeve,
		Fit:               m.Fit,
		IdealFor:          m.IdealFor,
		NetWeight:         m.NetWeight,
	}
	p.AvailSizes = make([]catalog.SizeCode, len(m.AvailSizes))
	for i, s := range m.AvailSizes {
		p.AvailSizes[i] = catalog.SizeCode(s)
	}
	if m.Category != nil {
		p.Category = m.Category.ToDomain()
	}
	if m.Color != nil {
		p.Color = m.Color.ToDomain()
	}
	if m.Size != nil {
		p.Size = m.Size.ToDomain()
	}
	if len(m.Variants) > 0 {
		p.Variants = make([]catalog.ProductVariant, len(m.Variants))
		for i := range m.Variants {
			p.Variants[i] = *m.Variants[i].ToDomain()
		}
	}
	if len(m.Images) > 0 {
		p.Images = make([]catalog.ProductImage, len(m.Images))
		for i := range m.Images {
			p.Images[i] = *m.Images[i].ToDomain()
		}
	}
	return p
}

// FromDomain populates the persistence model from a domain Product entity.
// Associations are not copied; they are written through their own repositories.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.fromAggregate(p.BaseAggregateRoot)
	m.Name = p.Name
	m.Slug = p.Slug
	m.Description = p.Description
	m.CategoryID = p.CategoryID
	m.Brand = p.Brand
	m.Stock = p.Stock
	m.ColorID = p.ColorID
	m.SizeID = p.SizeID
	m.MarketPrice = p.MarketPrice
	m.SellingPrice = p.SellingPrice
	m.Rating = p.Rating
	m.BuyCount = p.BuyCount
	m.Tags = p.Tags
	m.Fabric = p.Fabric
	m.GSM = p.GSM
	m.ProductType = p.ProductType
	m.Sleeve = p.Sleeve
	m.Fit = p.Fit
	m.IdealFor = p.IdealFor
	m.NetWeight = p.NetWeight
	m.AvailSizes = make([]string, len(p.AvailSizes))
	for i, s := range p.AvailSizes {
		m.AvailSizes[i] = string(s)
	}
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}

// ProductVariantModel is the persistence model for a size/colour variant
type ProductVariantModel struct {
	BaseModel
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	SKU         string          `gorm:"column:sku;type:varchar(64);not null;uniqueIndex"`
	Size        string          `gorm:"type:varchar(5);not null"`
	ColorID     *uuid.UUID      `gorm:"type:uuid"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	MarketPrice decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Stock       int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (ProductVariantModel) TableName() string {
	return "product_variants"
}

// ToDomain converts the persistence model to a domain ProductVariant
func (m *ProductVariantModel) ToDomain() *catalog.ProductVariant {
	return &catalog.ProductVariant{
		BaseEntity:  m.BaseModel.Entity(),
		ProductID:   m.ProductID,
		SKU:         m.SKU,
		Size:        catalog.SizeCode(m.Size),
		ColorID:     m.ColorID,
		Price:       m.Price,
		MarketPrice: m.MarketPrice,
		Stock:       m.Stock,
	}
}

// ProductVariantModelFromDomain creates a new persistence model from a domain ProductVariant
func ProductVariantModelFromDomain(v *catalog.ProductVariant) *ProductVariantModel {
	m := &ProductVariantModel{
		ProductID:   v.ProductID,
		SKU:         v.SKU,
		Size:        string(v.Size),
		ColorID:     v.ColorID,
		Price:       v.Price,
		MarketPrice: v.MarketPrice,
		Stock:       v.Stock,
	}
	m.fromEntity(v.BaseEntity)
	return m
}

// ProductImageModel is the persistence model for a product image
type ProductImageModel struct {
	BaseModel
	ProductID  uuid.UUID `gorm:"type:uuid;not null;index"`
	StorageKey string    `gorm:"type:varchar(500)"`
	URL        string    `gorm:"column:url;type:varchar(1000);not null"`
	AltText    string    `gorm:"type:varchar(200)"`
	IsPrimary  bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (ProductImageModel) TableName() string {
	return "product_images"
}

// ToDomain converts the persistence model to a domain ProductImage
func (m *ProductImageModel) ToDomain() *catalog.ProductImage {
	return &catalog.ProductImage{
		BaseEntity: m.BaseModel.Entity(),
		ProductID:  m.ProductID,
		StorageKey: m.StorageKey,
		URL:        m.URL,
		AltText:    m.AltText,
		IsPrimary:  m.IsPrimary,
	}
}

// ProductImageModelFromDomain creates a new persistence model from a domain ProductImage
func ProductImageModelFromDomain(img *catalog.ProductImage) *ProductImageModel {
	m := &ProductImageModel{
		ProductID:  img.ProductID,
		StorageKey: img.StorageKey,
		URL:        img.URL,
		AltText:    img.AltText,
		IsPrimary:  img.IsPrimary,
	}
	m.fromEntity(img.BaseEntity)
	return m
}

// ProductGroupModel is a named set of products shown as alternatives
type ProductGroupModel struct {
	BaseModel
	Name    string                    `gorm:"type:varchar(200);not null"`
	Members []ProductGroupMemberModel `gorm:"foreignKey:GroupID"`
}

// TableName returns the table name for GORM
func (ProductGroupModel) TableName() string {
	return "product_groups"
}

// ProductGroupMemberModel links a product to a group
type ProductGroupMemberModel struct {
	GroupID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
}

// TableName returns the table name for GORM
func (ProductGroupMemberModel) TableName() string {
	return "product_group_members"
}

// ProductGroupModelFromDomain creates the group row and its member rows
func ProductGroupModelFromDomain(g *catalog.ProductGroup) *ProductGroupModel {
	m := &ProductGroupModel{Name: g.Name}
	m.fromEntity(g.BaseEntity)
	m.Members = make([]ProductGroupMemberModel, len(g.ProductIDs))
	for i, id := range g.ProductIDs {
		m.Members[i] = ProductGroupMemberModel{GroupID: g.ID, ProductID: id}
	}
	return m
}

// CategoryModel is the persistence model for the Category domain entity.
type CategoryModel struct {
	BaseModel
	Name     string     `gorm:"type:varchar(100);not null"`
	Slug     string     `gorm:"type:varchar(120);not null;uniqueIndex"`
	ParentID *uuid.UUID `gorm:"type:uuid;index"`
	ImageURL string     `gorm:"column:image_url;type:varchar(1000)"`

	Parent *CategoryModel `gorm:"foreignKey:ParentID"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the persistence model to a domain Category entity.
func (m *CategoryModel) ToDomain() *catalog.Category {
	c := &catalog.Category{
		BaseEntity: m.BaseModel.Entity(),
		Name:       m.Name,
		Slug:       m.Slug,
		ParentID:   m.ParentID,
		ImageURL:   m.ImageURL,
	}
	if m.Parent != nil {
		c.Parent = m.Parent.ToDomain()
	}
	return c
}

// CategoryModelFromDomain creates a new persistence model from a domain Category entity.
func CategoryModelFromDomain(c *catalog.Category) *CategoryModel {
	m := &CategoryModel{
		Name:     c.Name,
		Slug:     c.Slug,
		ParentID: c.ParentID,
		ImageURL: c.ImageURL,
	}
	m.fromEntity(c.BaseEntity)
	return m
}

// ColorModel is the persistence model for a colour
type ColorModel struct {
	BaseModel
	Name    string `gorm:"type:varchar(50);not null;uniqueIndex"`
	HexCode string `gorm:"type:varchar(7)"`
}

// TableName returns the table name for GORM
func (ColorModel) TableName() string {
	return "colors"
}

// ToDomain converts the persistence model to a domain Color
func (m *ColorModel) ToDomain() *catalog.Color {
	return &catalog.Color{BaseEntity: m.BaseModel.Entity(), Name: m.Name, HexCode: m.HexCode}
}

// ColorModelFromDomain creates a new persistence model from a domain Color
func ColorModelFromDomain(c *catalog.Color) *ColorModel {
	m := &ColorModel{Name: c.Name, HexCode: c.HexCode}
	m.fromEntity(c.BaseEntity)
	return m
}

// SizeModel is the persistence model for a size and its measurements
type SizeModel struct {
	BaseModel
	Code     string          `gorm:"type:varchar(5);not null;uniqueIndex"`
	Chest    decimal.Decimal `gorm:"type:decimal(6,2);not null;default:0"`
	Length   decimal.Decimal `gorm:"type:decimal(6,2);not null;default:0"`
	Shoulder decimal.Decimal `gorm:"type:decimal(6,2);not null;default:0"`
	Sleeve   decimal.Decimal `gorm:"type:decimal(6,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (SizeModel) TableName() string {
	return "sizes"
}

// ToDomain converts the persistence model to a domain Size
func (m *SizeModel) ToDomain() *catalog.Size {
	return &catalog.Size{
		BaseEntity: m.BaseModel.Entity(),
		Code:       catalog.SizeCode(m.Code),
		Chest:      m.Chest,
		Length:     m.Length,
		Shoulder:   m.Shoulder,
		Sleeve:     m.Sleeve,
	}
}

// SizeModelFromDomain creates a new persistence model from a domain Size
func SizeModelFromDomain(s *catalog.Size) *SizeModel {
	m := &SizeModel{
		Code:     string(s.Code),
		Chest:    s.Chest,
		Length:   s.Length,
		Shoulder: s.Shoulder,
		Sleeve:   s.Sleeve,
	}
	m.fromEntity(s.BaseEntity)
	return m
}
