package domain

import "time"

// CartItem pairs a product display snapshot with a quantity.
// The cart holds at most one item per product id.
type CartItem struct {
	Product  ProductDisplay
	Quantity int
}

// Cart activity event types.
const (
	CartEventAdd      = "add_to_cart"
	CartEventRemove   = "remove_from_cart"
	CartEventUpdate   = "update_quantity"
	CartEventClear    = "clear_cart"
	CartEventCheckout = "checkout"
)

// CartEvent describes a single cart mutation for downstream analytics.
type CartEvent struct {
	Type        string
	ProductID   int
	ProductName string
	Quantity    int
	UnitPrice   float64
	CartTotal   float64
	OccurredAt  time.Time
}
