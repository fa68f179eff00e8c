package httphandler

import "github.com/Renatopaccha/Dental-Gest/internal/core/domain"

// JSON shapes served to the storefront UI. Field names match the web
// client's display types.

type (
	ProductDisplay struct {
		ID                 int            `json:"id"`
		Name               string         `json:"name"`
		Description        string         `json:"description"`
		Price              float64        `json:"price"`
		DiscountPrice      *float64       `json:"discountPrice"`
		CurrentPrice       float64        `json:"currentPrice"`
		HasDiscount        bool           `json:"hasDiscount"`
		DiscountPercentage int            `json:"discountPercentage"`
		CategoryName       string         `json:"categoryName"`
		CategorySlug       string         `json:"categorySlug"`
		StockCount         int            `json:"stockCount"`
		InStock            bool           `json:"inStock"`
		StockStatus        string         `json:"stockStatus"`
		ImageURL           string         `json:"imageUrl"`
		DisplayImage       string         `json:"displayImage"`
		Images             []ProductImage `json:"images"`
	}

	ProductImage struct {
		ID    int    `json:"id"`
		Image string `json:"image"`
		Order int    `json:"order"`
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

	CatalogView struct {
		Products []ProductDisplay `json:"products"`
		Query    string           `json:"query"`
	}

	FilterOptionsView struct {
		Categories []Category `json:"categories"`
		Brands     []Brand    `json:"brands"`
	}

	CartItem struct {
		Product  ProductDisplay `json:"product"`
		Quantity int            `json:"quantity"`
	}

	CartView struct {
		Items     []CartItem `json:"items"`
		ItemCount int        `json:"itemCount"`
		Total     float64    `json:"total"`
		IsOpen    bool       `json:"isOpen"`
	}

	AddItemRequest struct {
		ProductID int `json:"product_id"`
		Quantity  int `json:"quantity"`
	}

	UpdateQuantityRequest struct {
		Quantity int `json:"quantity"`
	}

	VisibilityRequest struct {
		Action string `json:"action"`
	}

	CheckoutView struct {
		WhatsAppURL string `json:"whatsapp_url"`
	}
)

func toProductView(p domain.ProductDisplay) ProductDisplay {
	v := ProductDisplay{
		ID:                 p.ID,
		Name:               p.Name,
		Description:        p.Description,
		Price:              p.Price,
		CurrentPrice:       p.CurrentPrice,
		HasDiscount:        p.HasDiscount,
		DiscountPercentage: p.DiscountPercentage,
		CategoryName:       p.CategoryName,
		CategorySlug:       p.CategorySlug,
		StockCount:         p.StockCount,
		InStock:            p.InStock,
		StockStatus:        p.StockStatus,
		ImageURL:           p.ImageURL,
		DisplayImage:       p.DisplayImage(),
	}
	if p.HasDiscount {
		dp := p.DiscountPrice
		v.DiscountPrice = &dp
	}
	v.Images = make([]ProductImage, len(p.Images))
	for i, img := range p.Images {
		v.Images[i] = ProductImage(img)
	}
	return v
}

func toProductViews(ps []domain.ProductDisplay) []ProductDisplay {
	vs := make([]ProductDisplay, len(ps))
	for i, p := range ps {
		vs[i] = toProductView(p)
	}
	return vs
}

func toCartView(
	items []domain.CartItem, itemCount int, total float64, isOpen bool,
) CartView {
	v := CartView{
		Items:     make([]CartItem, len(items)),
		ItemCount: itemCount,
		Total:     total,
		IsOpen:    isOpen,
	}
	for i, it := range items {
		v.Items[i] = CartItem{
			Product:  toProductView(it.Product),
			Quantity: it.Quantity,
		}
	}
	return v
}

func toFilterOptionsView(
	cs []domain.Category, bs []domain.Brand,
) FilterOptionsView {
	v := FilterOptionsView{
		Categories: make([]Category, len(cs)),
		Brands:     make([]Brand, len(bs)),
	}
	for i, c := range cs {
		v.Categories[i] = Category(c)
	}
	for i, b := range bs {
		v.Brands[i] = Brand(b)
	}
	return v
}
