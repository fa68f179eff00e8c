package domain

// PlaceholderImage is served when a product has no image at all.
const PlaceholderImage = "/file.svg"

// Stock status labels as exposed by the catalog backend.
const (
	StockStatusIn  = "En Stock"
	StockStatusLow = "Poco Stock"
	StockStatusOut = "Agotado"
)

const lowStockThreshold = 5

type (
	// ProductDisplay is the normalized, display-ready product shape.
	// Price fields are numeric, unlike the decimal strings on the wire.
	ProductDisplay struct {
		ID                 int
		Name               string
		Description        string
		Price              float64
		DiscountPrice      float64
		CurrentPrice       float64
		HasDiscount        bool
		DiscountPercentage int
		CategoryName       string
		CategorySlug       string
		StockCount         int
		InStock            bool
		StockStatus        string
		ImageURL           string
		Images             []ProductImage
	}

	ProductImage struct {
		ID    int
		Image string
		Order int
	}
)

// DisplayImage resolves the image to show:
// primary image, then first gallery entry, then the placeholder.
func (p ProductDisplay) DisplayImage() string {
	if p.ImageURL != "" {
		return p.ImageURL
	}
	if len(p.Images) != 0 && p.Images[0].Image != "" {
		return p.Images[0].Image
	}
	return PlaceholderImage
}

// StockStatusFor derives the tri-state stock label from a unit count.
func StockStatusFor(stockCount int) string {
	switch {
	case stockCount <= 0:
		return StockStatusOut
	case stockCount < lowStockThreshold:
		return StockStatusLow
	default:
		return StockStatusIn
	}
}

type Category struct {
	ID           int
	Name         string
	Slug         string
	Description  string
	ProductCount int
}

type Brand struct {
	ID           int
	Name         string
	Slug         string
	ProductCount int
}
