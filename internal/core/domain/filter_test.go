package domain_test

import (
	"net/url"
	"testing"

	"github.com/Renatopaccha/Dental-Gest/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterSelectionRoundTrip(t *testing.T) {

	t.Run("TypicalSelection", func(t *testing.T) {
		sel := domain.FilterSelection{
			Category: "kits",
			MinPrice: 10,
			Search:   "resin",
			Ordering: domain.SortPriceDesc,
		}

		q, err := url.ParseQuery(sel.EncodedQuery())
		require.NoError(t, err)

		reparsed := domain.ParseFilterSelection(q)
		assert.Equal(t, sel, reparsed)
	})

	t.Run("EmptySelectionEncodesToEmptyQuery", func(t *testing.T) {
		sel := domain.FilterSelection{Ordering: domain.SortNewest}
		assert.Empty(t, sel.EncodedQuery())
	})

	t.Run("AllFields", func(t *testing.T) {
		inStock := true
		sel := domain.FilterSelection{
			Category: "instrumentos",
			Brand:    "dentsply",
			MinPrice: 12.5,
			MaxPrice: 199.99,
			InStock:  &inStock,
			Search:   "fresas",
			Ordering: domain.SortNameAsc,
			Audience: domain.AudienceProfessional,
		}

		q, err := url.ParseQuery(sel.EncodedQuery())
		require.NoError(t, err)

		reparsed := domain.ParseFilterSelection(q)
		assert.Equal(t, sel, reparsed)
	})
}

func TestParseFilterSelection(t *testing.T) {

	t.Run("AbsentOrderingFallsBackToNewest", func(t *testing.T) {
		sel := domain.ParseFilterSelection(url.Values{})
		assert.Equal(t, domain.SortNewest, sel.Ordering)
	})

	t.Run("UnknownOrderingFallsBackToNewest", func(t *testing.T) {
		q := url.Values{"ordering": []string{"stock_count"}}
		sel := domain.ParseFilterSelection(q)
		assert.Equal(t, domain.SortNewest, sel.Ordering)
	})

	t.Run("MalformedPriceIsIgnored", func(t *testing.T) {
		q := url.Values{
			"min_price": []string{"cheap"},
			"max_price": []string{""},
		}
		sel := domain.ParseFilterSelection(q)
		assert.Zero(t, sel.MinPrice)
		assert.Zero(t, sel.MaxPrice)
	})

	t.Run("InStockTriState", func(t *testing.T) {
		sel := domain.ParseFilterSelection(url.Values{})
		assert.Nil(t, sel.InStock)

		sel = domain.ParseFilterSelection(
			url.Values{"in_stock": []string{"true"}},
		)
		require.NotNil(t, sel.InStock)
		assert.True(t, *sel.InStock)

		sel = domain.ParseFilterSelection(
			url.Values{"in_stock": []string{"false"}},
		)
		require.NotNil(t, sel.InStock)
		assert.False(t, *sel.InStock)
	})
}

func TestDisplayImage(t *testing.T) {

	t.Run("PrimaryImageWins", func(t *testing.T) {
		p := domain.ProductDisplay{
			ImageURL: "/media/products/kit.jpg",
			Images:   []domain.ProductImage{{Image: "/media/gallery/1.jpg"}},
		}
		assert.Equal(t, "/media/products/kit.jpg", p.DisplayImage())
	})

	t.Run("FirstGalleryEntryWhenNoPrimary", func(t *testing.T) {
		p := domain.ProductDisplay{
			Images: []domain.ProductImage{
				{Image: "/media/gallery/1.jpg"},
				{Image: "/media/gallery/2.jpg"},
			},
		}
		assert.Equal(t, "/media/gallery/1.jpg", p.DisplayImage())
	})

	t.Run("PlaceholderWhenNoImages", func(t *testing.T) {
		p := domain.ProductDisplay{}
		assert.Equal(t, domain.PlaceholderImage, p.DisplayImage())
	})
}

func TestStockStatusFor(t *testing.T) {
	assert.Equal(t, domain.StockStatusOut, domain.StockStatusFor(0))
	assert.Equal(t, domain.StockStatusLow, domain.StockStatusFor(1))
	assert.Equal(t, domain.StockStatusLow, domain.StockStatusFor(4))
	assert.Equal(t, domain.StockStatusIn, domain.StockStatusFor(5))
	assert.Equal(t, domain.StockStatusIn, domain.StockStatusFor(120))
}
