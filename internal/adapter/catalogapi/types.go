package catalogapi

import (
	"log/slog"

	"github.com/Renatopaccha/Dental-Gest/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Wire shapes as served by the catalog backend. Prices travel as
// decimal strings, discount and image fields are nullable.

type (
	Product struct {
		ID                 int            `json:"id"`
		Name               string         `json:"name"`
		Description        string         `json:"description"`
		Price              string         `json:"price"`
		DiscountPrice      *string        `json:"discount_price"`
		CurrentPrice       string         `json:"current_price"`
		HasDiscount        bool           `json:"has_discount"`
		DiscountPercentage int            `json:"discount_percentage"`
		Category           int            `json:"category"`
		CategoryName       string         `json:"category_name"`
		CategorySlug       string         `json:"category_slug"`
		StockCount         int            `json:"stock_count"`
		InStock            bool           `json:"in_stock"`
		StockStatus        string         `json:"stock_status"`
		Image              *string        `json:"image"`
		ImageURL           *string        `json:"image_url"`
		Images             []ProductImage `json:"images"`
		CreatedAt          string         `json:"created_at"`
		UpdatedAt          string         `json:"updated_at"`
	}

	ProductImage struct {
		ID       int     `json:"id"`
		Image    string  `json:"image"`
		ImageURL *string `json:"image_url"`
		Order    int     `json:"order"`
	}

	Category struct {
		ID           int    `json:"id"`
		Name         string `json:"name"`
		Slug         string `json:"slug"`
		Description  string `json:"description"`
		ProductCount int    `json:"product_count"`
	}

	Brand struct {
		ID           int    `json:"id"`
		Name         string `json:"name"`
		Slug         string `json:"slug"`
		ProductCount int    `json:"product_count"`
	}
)

// ToDisplay normalizes one raw product record into its display shape.
// Pure mapping, a fresh value is built per fetch.
func ToDisplay(p Product) domain.ProductDisplay {
	d := domain.ProductDisplay{
		ID:                 p.ID,
		Name:               p.Name,
		Description:        p.Description,
		Price:              decimalValue(p.Price),
		CurrentPrice:       decimalValue(p.CurrentPrice),
		HasDiscount:        p.HasDiscount,
		DiscountPercentage: p.DiscountPercentage,
		CategoryName:       p.CategoryName,
		CategorySlug:       p.CategorySlug,
		StockCount:         p.StockCount,
		InStock:            p.InStock,
		StockStatus:        p.StockStatus,
		ImageURL:           bestImage(p.ImageURL, p.Image),
	}

	if p.DiscountPrice != nil {
		d.DiscountPrice = decimalValue(*p.DiscountPrice)
	}
	if d.StockStatus == "" {
		d.StockStatus = domain.StockStatusFor(p.StockCount)
	}

	d.Images = make([]domain.ProductImage, len(p.Images))
	for i, img := range p.Images {
		d.Images[i] = domain.ProductImage{
			ID:    img.ID,
			Image: bestImage(img.ImageURL, &img.Image),
			Order: img.Order,
		}
	}
	return d
}

func toDomainCategory(c Category) domain.Category {
	return domain.Category{
		ID:           c.ID,
		Name:         c.Name,
		Slug:         c.Slug,
		Description:  c.Description,
		ProductCount: c.ProductCount,
	}
}

func toDomainBrand(b Brand) domain.Brand {
	return domain.Brand{
		ID:           b.ID,
		Name:         b.Name,
		Slug:         b.Slug,
		ProductCount: b.ProductCount,
	}
}

// decimalValue parses a backend decimal string strictly. A malformed
// value is logged and read as zero, matching the repo-wide fail-soft
// policy.
func decimalValue(s string) float64 {
	if s == "" {
		return 0
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		slog.Warn("malformed decimal from backend, reading as zero",
			"value", s, "err", err)
		return 0
	}
	f, _ := d.Float64()
	return f
}

// bestImage prefers the absolute URL over the relative media path.
func bestImage(absolute *string, relative *string) string {
	if absolute != nil && *absolute != "" {
		return *absolute
	}
	if relative != nil {
		return *relative
	}
	return ""
}
