package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Renatopaccha/Dental-Gest/internal/core/domain"
	"github.com/Renatopaccha/Dental-Gest/internal/core/port"
	"github.com/shopspring/decimal"
)

var _ port.CartKeeper = (*CartService)(nil)

// CartService owns the (product, quantity) collection and the drawer
// visibility flag. Every mutation after the initial load mirrors the
// whole collection to durable storage; a failed write is only logged.
type CartService struct {
	mu      sync.Mutex
	items   []domain.CartItem
	open    bool
	storage port.CartSnapshotStorage
	events  port.CartEventsProducer // nil when the pipeline is disabled
}

// NewCartService rehydrates the previously saved snapshot.
// An unreadable snapshot degrades to an empty cart.
func NewCartService(
	ctx context.Context,
	storage port.CartSnapshotStorage,
	events port.CartEventsProducer,
) *CartService {
	const op = "CartService.New"

	s := &CartService{storage: storage, events: events}

	items, err := storage.Load(ctx)
	if err != nil {
		slog.With("op", op).Warn(
			"failed to load cart snapshot, starting empty", "err", err,
		)
		return s
	}
	s.items = items
	return s
}

func (s *CartService) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// AddToCart accumulates quantity for an already present product and
// appends a new item otherwise. Insertion order is preserved.
func (s *CartService) AddToCart(
	ctx context.Context, p domain.ProductDisplay, quantity int,
) {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	if i := s.indexLocked(p.ID); i >= 0 {
		s.items[i].Quantity += quantity
	} else {
		s.items = append(s.items, domain.CartItem{Product: p, Quantity: quantity})
	}
	snapshot := s.snapshotLocked()
	total := s.totalLocked()
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	s.emit(ctx, domain.CartEvent{
		Type:        domain.CartEventAdd,
		ProductID:   p.ID,
		ProductName: p.Name,
		Quantity:    quantity,
		UnitPrice:   p.CurrentPrice,
		CartTotal:   total,
		OccurredAt:  time.Now(),
	})
}

// RemoveFromCart deletes the item for the product id, no-op when absent.
func (s *CartService) RemoveFromCart(ctx context.Context, productID int) {
	s.mu.Lock()
	i := s.indexLocked(productID)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	removed := s.items[i]
	s.items = append(s.items[:i], s.items[i+1:]...)
	snapshot := s.snapshotLocked()
	total := s.totalLocked()
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	s.emit(ctx, domain.CartEvent{
		Type:        domain.CartEventRemove,
		ProductID:   removed.Product.ID,
		ProductName: removed.Product.Name,
		UnitPrice:   removed.Product.CurrentPrice,
		CartTotal:   total,
		OccurredAt:  time.Now(),
	})
}

// UpdateQuantity sets the quantity to exactly the given value.
// A value of zero or less removes the item.
func (s *CartService) UpdateQuantity(
	ctx context.Context, productID, quantity int,
) {
	if quantity <= 0 {
		s.RemoveFromCart(ctx, productID)
		return
	}

	s.mu.Lock()
	i := s.indexLocked(productID)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.items[i].Quantity = quantity
	updated := s.items[i]
	snapshot := s.snapshotLocked()
	total := s.totalLocked()
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	s.emit(ctx, domain.CartEvent{
		Type:        domain.CartEventUpdate,
		ProductID:   updated.Product.ID,
		ProductName: updated.Product.Name,
		Quantity:    quantity,
		UnitPrice:   updated.Product.CurrentPrice,
		CartTotal:   total,
		OccurredAt:  time.Now(),
	})
}

func (s *CartService) ClearCart(ctx context.Context) {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()

	s.persist(ctx, nil)
	s.emit(ctx, domain.CartEvent{
		Type:       domain.CartEventClear,
		OccurredAt: time.Now(),
	})
}

// ItemCount sums the quantities, not the number of distinct products.
func (s *CartService) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

// Total sums quantity times current price over all items. The current
// price already reflects an active discount.
func (s *CartService) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalLocked()
}

// Checkout returns the item list for order-summary building and emits
// a checkout event. The cart itself is left untouched: the order is
// completed externally over WhatsApp.
func (s *CartService) Checkout(ctx context.Context) []domain.CartItem {
	s.mu.Lock()
	snapshot := s.snapshotLocked()
	total := s.totalLocked()
	s.mu.Unlock()

	if len(snapshot) != 0 {
		s.emit(ctx, domain.CartEvent{
			Type:       domain.CartEventCheckout,
			Quantity:   countItems(snapshot),
			CartTotal:  total,
			OccurredAt: time.Now(),
		})
	}
	return snapshot
}

func (s *CartService) IsCartOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

func (s *CartService) OpenCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = true
}

func (s *CartService) CloseCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = false
}

func (s *CartService) ToggleCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = !s.open
}

func (s *CartService) indexLocked(productID int) int {
	for i, it := range s.items {
		if it.Product.ID == productID {
			return i
		}
	}
	return -1
}

func (s *CartService) snapshotLocked() []domain.CartItem {
	snapshot := make([]domain.CartItem, len(s.items))
	copy(snapshot, s.items)
	return snapshot
}

func (s *CartService) totalLocked() float64 {
	sum := decimal.Zero
	for _, it := range s.items {
		line := decimal.NewFromFloat(it.Product.CurrentPrice).
			Mul(decimal.NewFromInt(int64(it.Quantity)))
		sum = sum.Add(line)
	}
	f, _ := sum.Float64()
	return f
}

func (s *CartService) persist(ctx context.Context, items []domain.CartItem) {
	const op = "CartService.persist"

	if err := s.storage.Save(ctx, items); err != nil {
		slog.With("op", op).Error("failed to save cart snapshot", "err", err)
	}
}

// emit is best effort: analytics never block or fail a cart mutation.
func (s *CartService) emit(ctx context.Context, evt domain.CartEvent) {
	const op = "CartService.emit"

	if s.events == nil {
		return
	}
	if err := s.events.ProduceCartEvent(ctx, evt); err != nil {
		slog.With("op", op).Warn("failed to produce cart event", "err", err)
	}
}

func countItems(items []domain.CartItem) int {
	var n int
	for _, it := range items {
		n += it.Quantity
	}
	return n
}
