package service

import (
	"context"
	"net/url"
	"strconv"
	"sync"

	"github.com/Renatopaccha/Dental-Gest/internal/core/domain"
	"github.com/Renatopaccha/Dental-Gest/internal/core/port"
)

var _ port.FilterNavigator = (*FilterService)(nil)

// FilterService is the filter state controller. Its committed state is
// always a projection of the page's query string; the search text and
// price bounds additionally keep an uncommitted input buffer that only
// an explicit apply writes into the selection.
//
// Commits are serialized with a mutex so no two of them can reorder
// the canonical query relative to user intent.
type FilterService struct {
	mu  sync.Mutex
	sel domain.FilterSelection

	searchBuf string
	minBuf    string
	maxBuf    string

	provider port.CatalogProvider
}

func NewFilterService(provider port.CatalogProvider) *FilterService {
	return &FilterService{
		sel:      domain.FilterSelection{Ordering: domain.SortNewest},
		provider: provider,
	}
}

func (s *FilterService) Current() domain.FilterSelection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel
}

// Query returns the canonical query string for the committed state.
func (s *FilterService) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel.EncodedQuery()
}

// Navigate mirrors an incoming query string into the controller.
// When the audience segment changed, selections that are no longer in
// the audience's option lists are silently dropped. It returns the
// resulting selection and its canonical query string, which may differ
// from the input after such a corrective transition.
func (s *FilterService) Navigate(
	ctx context.Context, rawQuery string,
) (domain.FilterSelection, string) {
	q, err := url.ParseQuery(rawQuery)
	if err != nil {
		q = url.Values{}
	}
	sel := domain.ParseFilterSelection(q)

	s.mu.Lock()
	audienceChanged := sel.Audience != s.sel.Audience
	s.commitLocked(sel)
	s.mu.Unlock()

	if audienceChanged && sel.Audience != "" {
		s.reconcile(ctx, sel.Audience)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel, s.sel.EncodedQuery()
}

// SelectCategory commits immediately; empty slug means "whole catalog".
func (s *FilterService) SelectCategory(slug string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel.Category = slug
	return s.sel.EncodedQuery()
}

// SelectBrand commits immediately; empty slug means "all brands".
func (s *FilterService) SelectBrand(slug string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel.Brand = slug
	return s.sel.EncodedQuery()
}

// SetOrdering commits a sort key; unknown keys keep the current one.
func (s *FilterService) SetOrdering(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if domain.ValidOrdering(key) {
		s.sel.Ordering = key
	}
	return s.sel.EncodedQuery()
}

// TypeSearch updates the search input buffer without committing.
func (s *FilterService) TypeSearch(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchBuf = text
}

// TypePriceBounds updates the price input buffers without committing.
func (s *FilterService) TypePriceBounds(minText, maxText string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.minBuf = minText
	s.maxBuf = maxText
}

// ApplySearch writes the search buffer into the selection.
func (s *FilterService) ApplySearch() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel.Search = s.searchBuf
	return s.sel.EncodedQuery()
}

// ApplyPrice writes the price buffers into the selection.
// An empty or non-numeric buffer clears the bound.
func (s *FilterService) ApplyPrice() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel.MinPrice = parseBound(s.minBuf)
	s.sel.MaxPrice = parseBound(s.maxBuf)
	return s.sel.EncodedQuery()
}

// ClearAll resets every field and buffer to its default, which encodes
// to the base catalog URL.
func (s *FilterService) ClearAll() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel = domain.FilterSelection{Ordering: domain.SortNewest}
	s.searchBuf = ""
	s.minBuf = ""
	s.maxBuf = ""
	return s.sel.EncodedQuery()
}

// SetAudience commits the audience segment and drops category or brand
// selections that the segment's option lists no longer contain.
func (s *FilterService) SetAudience(ctx context.Context, audience string) string {
	s.mu.Lock()
	s.sel.Audience = audience
	s.mu.Unlock()

	if audience != "" {
		s.reconcile(ctx, audience)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel.EncodedQuery()
}

func (s *FilterService) commitLocked(sel domain.FilterSelection) {
	s.sel = sel
	s.searchBuf = sel.Search
	s.minBuf = formatBound(sel.MinPrice)
	s.maxBuf = formatBound(sel.MaxPrice)
}

// reconcile validates the committed category and brand slugs against
// the freshly fetched option lists for the audience. It never triggers
// a product fetch of its own.
func (s *FilterService) reconcile(ctx context.Context, audience string) {
	cs, csErr := s.provider.FetchCategories(ctx, audience)
	bs, bsErr := s.provider.FetchBrands(ctx, audience)

	s.mu.Lock()
	defer s.mu.Unlock()

	if csErr == nil && s.sel.Category != "" && !hasCategory(cs, s.sel.Category) {
		s.sel.Category = ""
	}
	if bsErr == nil && s.sel.Brand != "" && !hasBrand(bs, s.sel.Brand) {
		s.sel.Brand = ""
	}
}

func hasCategory(cs []domain.Category, slug string) bool {
	for _, c := range cs {
		if c.Slug == slug {
			return true
		}
	}
	return false
}

func hasBrand(bs []domain.Brand, slug string) bool {
	for _, b := range bs {
		if b.Slug == slug {
			return true
		}
	}
	return false
}

func parseBound(text string) float64 {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func formatBound(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
