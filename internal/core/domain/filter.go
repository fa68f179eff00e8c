package domain

import (
	"net/url"
	"strconv"
)

// Sort orders accepted by the catalog backend.
const (
	SortNewest    = "-created_at"
	SortPriceAsc  = "price"
	SortPriceDesc = "-price"
	SortNameAsc   = "name"
	SortNameDesc  = "-name"
)

// Audience segments scoping which categories, brands and products are shown.
const (
	AudienceStudent      = "STUDENT"
	AudienceProfessional = "PROFESSIONAL"
	AudienceGeneral      = "GENERAL"
)

// FilterSelection is the catalog filter state. It round-trips exactly
// through a URL query string, which is the single source of truth.
// Zero values mean "not selected".
type FilterSelection struct {
	Category string
	Brand    string
	MinPrice float64
	MaxPrice float64
	InStock  *bool
	Search   string
	Ordering string
	Audience string
}

func ValidOrdering(s string) bool {
	switch s {
	case SortNewest, SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc:
		return true
	}
	return false
}

// ParseFilterSelection projects a URL query into a selection.
// Absent ordering falls back to newest-first, unknown values too.
func ParseFilterSelection(q url.Values) FilterSelection {
	sel := FilterSelection{
		Category: q.Get("category"),
		Brand:    q.Get("brand"),
		Search:   q.Get("search"),
		Audience: q.Get("audience"),
		Ordering: SortNewest,
	}

	if v, err := strconv.ParseFloat(q.Get("min_price"), 64); err == nil {
		sel.MinPrice = v
	}
	if v, err := strconv.ParseFloat(q.Get("max_price"), 64); err == nil {
		sel.MaxPrice = v
	}

	switch q.Get("in_stock") {
	case "true":
		t := true
		sel.InStock = &t
	case "false":
		f := false
		sel.InStock = &f
	}

	if o := q.Get("ordering"); ValidOrdering(o) {
		sel.Ordering = o
	}

	return sel
}

// QueryValues serializes the non-empty fields of the selection.
// The default ordering is omitted, so a cleared selection encodes
// to an empty query string.
func (s FilterSelection) QueryValues() url.Values {
	q := url.Values{}

	if s.Category != "" {
		q.Set("category", s.Category)
	}
	if s.Brand != "" {
		q.Set("brand", s.Brand)
	}
	if s.MinPrice != 0 {
		q.Set("min_price", strconv.FormatFloat(s.MinPrice, 'f', -1, 64))
	}
	if s.MaxPrice != 0 {
		q.Set("max_price", strconv.FormatFloat(s.MaxPrice, 'f', -1, 64))
	}
	if s.InStock != nil {
		q.Set("in_stock", strconv.FormatBool(*s.InStock))
	}
	if s.Search != "" {
		q.Set("search", s.Search)
	}
	if s.Ordering != "" && s.Ordering != SortNewest {
		q.Set("ordering", s.Ordering)
	}
	if s.Audience != "" {
		q.Set("audience", s.Audience)
	}

	return q
}

// EncodedQuery returns the canonical query string for the selection.
func (s FilterSelection) EncodedQuery() string {
	return s.QueryValues().Encode()
}
