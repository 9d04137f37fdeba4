package catalog

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SizeCode is a garment size label
type SizeCode string

const (
	SizeXS  SizeCode = "XS"
	SizeS   SizeCode = "S"
	SizeM   SizeCode = "M"
	SizeL   SizeCode = "L"
	SizeXL  SizeCode = "XL"
	SizeXXL SizeCode = "XXL"
)

// AllSizeCodes lists sizes in display order
func AllSizeCodes() []SizeCode {
	return []SizeCode{SizeXS, SizeS, SizeM, SizeL, SizeXL, SizeXXL}
}

// ParseSizeCode parses a size label case-insensitively
func ParseSizeCode(s string) (SizeCode, error) {
	code := SizeCode(strings.ToUpper(strings.TrimSpace(s)))
	for _, c := range AllSizeCodes() {
		if c == code {
			return code, nil
		}
	}
	return "", shared.NewValidationError("Invalid size: " + s)
}

// Size holds the measurements for a size label, in inches
type Size struct {
	shared.BaseEntity
	Code     SizeCode
	Chest    decimal.Decimal
	Length   decimal.Decimal
	Shoulder decimal.Decimal
	Sleeve   decimal.Decimal
}

// NewSize creates a size chart row
func NewSize(code string) (*Size, error) {
	c, err := ParseSizeCode(code)
	if err != nil {
		return nil, err
	}
	return &Size{BaseEntity: shared.NewBaseEntity(), Code: c}, nil
}

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}){1,2}$`)

// Color is a named product color
type Color struct {
	shared.BaseEntity
	Name    string
	HexCode string
}

// NewColor creates a color with an optional hex code
func NewColor(name, hexCode string) (*Color, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("Color name cannot be empty")
	}
	if hexCode != "" && !hexColorPattern.MatchString(hexCode) {
		return nil, shared.NewValidationError("Hex code must look like #RRGGBB")
	}
	return &Color{BaseEntity: shared.NewBaseEntity(), Name: name, HexCode: strings.ToUpper(hexCode)}, nil
}

// ProductImage is a stored image of a product
type ProductImage struct {
	shared.BaseEntity
	ProductID  uuid.UUID
	StorageKey string
	URL        string
	AltText    string
	IsPrimary  bool
}

// NewProductImage creates an image record for an uploaded object
func NewProductImage(productID uuid.UUID, storageKey, url, altText string, primary bool) *ProductImage {
	return &ProductImage{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		StorageKey: storageKey,
		URL:        url,
		AltText:    altText,
		IsPrimary:  primary,
	}
}

// ProductGroup links products that are presented together (e.g. colorways of one design)
type ProductGroup struct {
	shared.BaseEntity
	Name       string
	ProductIDs []uuid.UUID
}

// NewProductGroup creates a group from at least two distinct products
func NewProductGroup(name string, productIDs []uuid.UUID) (*ProductGroup, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("Group name cannot be empty")
	}
	seen := make(map[uuid.UUID]struct{}, len(productIDs))
	ids := make([]uuid.UUID, 0, len(productIDs))
	for _, id := range productIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) < 2 {
		return nil, shared.NewValidationError("A group needs at least two products")
	}
	return &ProductGroup{BaseEntity: shared.NewBaseEntity(), Name: name, ProductIDs: ids}, nil
}
