package port

import (
	"context"

	"github.com/Renatopaccha/Dental-Gest/internal/core/domain"
)

// Outbound ports.

type CatalogProvider interface {
	FetchProducts(context.Context, domain.FilterSelection) ([]domain.ProductDisplay, error)
	FetchProductByID(ctx context.Context, id int) (domain.ProductDisplay, error)
	FetchCategories(ctx context.Context, audience string) ([]domain.Category, error)
	FetchBrands(ctx context.Context, audience string) ([]domain.Brand, error)
}

type CartSnapshotStorage interface {
	Load(context.Context) ([]domain.CartItem, error)
	Save(context.Context, []domain.CartItem) error
}

type CartEventsProducer interface {
	ProduceCartEvent(context.Context, domain.CartEvent) error
}

// Inbound ports, consumed by the HTTP surface.

type CatalogBrowser interface {
	BrowseProducts(context.Context, domain.FilterSelection) []domain.ProductDisplay
	ProductByID(ctx context.Context, id int) (domain.ProductDisplay, bool)
	FilterOptions(ctx context.Context, audience string) ([]domain.Category, []domain.Brand)
}

// FilterNavigator mirrors an incoming query string into the filter
// state. Over HTTP the query string is the only inbound commit path;
// the controller's finer-grained transitions compose the same
// selection and serve direct embedding.
type FilterNavigator interface {
	Navigate(ctx context.Context, rawQuery string) (domain.FilterSelection, string)
}

type CartKeeper interface {
	Items() []domain.CartItem
	AddToCart(ctx context.Context, p domain.ProductDisplay, quantity int)
	RemoveFromCart(ctx context.Context, productID int)
	UpdateQuantity(ctx context.Context, productID, quantity int)
	ClearCart(ctx context.Context)
	ItemCount() int
	Total() float64
	IsCartOpen() bool
	OpenCart()
	CloseCart()
	ToggleCart()
}

type CheckoutLinker interface {
	OrderLink(context.Context) (string, error)
	InquiryLink(p domain.ProductDisplay) (string, error)
}
