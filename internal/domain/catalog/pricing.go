package catalog

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxRating is the upper bound of a review rating
const MaxRating = 5

// DiscountPercent returns the rounded discount of selling against market price.
// Zero when there is no market price or no discount.
func DiscountPercent(marketPrice, sellingPrice decimal.Decimal) int {
	if !marketPrice.IsPositive() || !sellingPrice.LessThan(marketPrice) {
		return 0
	}
	pct := marketPrice.Sub(sellingPrice).Div(marketPrice).Mul(decimal.NewFromInt(100)).Round(0)
	return int(pct.IntPart())
}

// Badge is "Hot" for best sellers, otherwise the discount label ("-25%").
// Empty when neither applies.
func Badge(buyCount int, marketPrice, sellingPrice decimal.Decimal) string {
	if buyCount > HotBuyCount {
		return "Hot"
	}
	if pct := DiscountPercent(marketPrice, sellingPrice); pct > 0 {
		return fmt.Sprintf("-%d%%", pct)
	}
	return ""
}

// SKUParts carries the attributes encoded into a SKU
type SKUParts struct {
	ID          uuid.UUID
	Size        string
	Color       string
	Stock       int
	GSM         int
	Fabric      []string
	ProductType string
	Sleeve      string
	Fit         string
	NetWeight   int
	IdealFor    string
}

// BuildSKU encodes product attributes into a SKU string:
// id prefix, size, color, stock(3), gsm(4), fabric initials,
// type, sleeve, fit, net weight(4), ideal-for.
func BuildSKU(p SKUParts) string {
	var b strings.Builder
	b.WriteString(strings.ToUpper(strings.ReplaceAll(p.ID.String(), "-", "")[:8]))
	b.WriteString(initial(p.Size, "S"))
	b.WriteString(initial(p.Color, "C"))
	fmt.Fprintf(&b, "%03d", p.Stock)
	fmt.Fprintf(&b, "%04d", p.GSM)
	for _, f := range p.Fabric {
		b.WriteString(initial(f, ""))
	}
	b.WriteString(initial(p.ProductType, "T"))
	b.WriteString(initial(p.Sleeve, "L"))
	b.WriteString(initial(p.Fit, "F"))
	fmt.Fprintf(&b, "%04d", p.NetWeight)
	b.WriteString(initial(p.IdealFor, "I"))
	return b.String()
}

func initial(s, fallback string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	return strings.ToUpper(s[:1])
}
