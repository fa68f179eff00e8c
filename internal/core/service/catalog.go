package service

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/Renatopaccha/Dental-Gest/internal/core/domain"
	"github.com/Renatopaccha/Dental-Gest/internal/core/port"
)

var _ port.CatalogBrowser = (*CatalogService)(nil)

// CatalogService fronts the backend catalog API with the storefront's
// fail-soft policy: any transport or decode failure degrades to an
// empty result set or an absent product, never to an error.
//
// Product fetches are generation-tagged so that a slow, stale response
// can not overwrite the results of a later filter commit.
type CatalogService struct {
	provider port.CatalogProvider

	gen     atomic.Int64
	mu      sync.Mutex
	current []domain.ProductDisplay
}

func NewCatalogService(provider port.CatalogProvider) *CatalogService {
	return &CatalogService{provider: provider}
}

// BrowseProducts fetches the product list for the selection and applies
// it as the visible result set. When a newer fetch committed while this
// one was in flight, the stale response is discarded and the newer
// visible set is returned instead.
func (s *CatalogService) BrowseProducts(
	ctx context.Context, sel domain.FilterSelection,
) []domain.ProductDisplay {
	const op = "CatalogService.BrowseProducts"

	gen := s.gen.Add(1)

	ps, err := s.provider.FetchProducts(ctx, sel)
	if err != nil {
		slog.With("op", op).Warn(
			"failed to fetch products, degrading to empty list", "err", err,
		)
		ps = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen.Load() {
		return s.current
	}
	s.current = ps
	return ps
}

// CurrentProducts returns the visible result set of the latest applied fetch.
func (s *CatalogService) CurrentProducts() []domain.ProductDisplay {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// ProductByID resolves a single product. Not-found and every other
// failure map to absent: the caller renders a not-found outcome.
func (s *CatalogService) ProductByID(
	ctx context.Context, id int,
) (domain.ProductDisplay, bool) {
	const op = "CatalogService.ProductByID"

	p, err := s.provider.FetchProductByID(ctx, id)
	if err != nil {
		slog.With("op", op).Warn("product unavailable", "id", id, "err", err)
		return domain.ProductDisplay{}, false
	}
	return p, true
}

// FilterOptions fetches the category and brand lists, optionally scoped
// by an audience segment. Each list degrades to empty independently.
func (s *CatalogService) FilterOptions(
	ctx context.Context, audience string,
) ([]domain.Category, []domain.Brand) {
	const op = "CatalogService.FilterOptions"
	log := slog.With("op", op)

	cs, err := s.provider.FetchCategories(ctx, audience)
	if err != nil {
		log.Warn("failed to fetch categories", "err", err)
		cs = nil
	}

	bs, err := s.provider.FetchBrands(ctx, audience)
	if err != nil {
		log.Warn("failed to fetch brands", "err", err)
		bs = nil
	}

	return cs, bs
}
