package httphandler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/Renatopaccha/Dental-Gest/internal/adapter/httphandler"
	"github.com/Renatopaccha/Dental-Gest/internal/core/domain"
	"github.com/Renatopaccha/Dental-Gest/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	products   []domain.ProductDisplay
	categories []domain.Category
	brands     []domain.Brand
}

func (s stubProvider) FetchProducts(
	context.Context, domain.FilterSelection,
) ([]domain.ProductDisplay, error) {
	return s.products, nil
}

func (s stubProvider) FetchProductByID(
	_ context.Context, id int,
) (domain.ProductDisplay, error) {
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.ProductDisplay{}, domain.ErrNotFound
}

func (s stubProvider) FetchCategories(
	context.Context, string,
) ([]domain.Category, error) {
	return s.categories, nil
}

func (s stubProvider) FetchBrands(
	context.Context, string,
) ([]domain.Brand, error) {
	return s.brands, nil
}

type noopStorage struct{}

func (noopStorage) Load(context.Context) ([]domain.CartItem, error) { return nil, nil }
func (noopStorage) Save(context.Context, []domain.CartItem) error   { return nil }

func storefrontMux(t *testing.T, provider stubProvider) *http.ServeMux {
	t.Helper()

	catalog := service.NewCatalogService(provider)
	filter := service.NewFilterService(provider)
	cart := service.NewCartService(t.Context(), noopStorage{}, nil)
	checkout := service.NewCheckoutService("593987654321", cart)

	mux := http.NewServeMux()
	httphandler.RegisterCatalog(mux, catalog, filter, checkout)
	httphandler.RegisterCart(mux, cart, catalog, checkout)
	return mux
}

func testProvider() stubProvider {
	return stubProvider{
		products: []domain.ProductDisplay{
			{
				ID: 1, Name: "Kit de resina",
				Price: 55, CurrentPrice: 55,
				StockCount: 12, InStock: true,
				StockStatus: domain.StockStatusIn,
			},
			{
				ID: 2, Name: "Espejo bucal",
				Price: 3.5, CurrentPrice: 3.5,
				StockCount: 3, InStock: true,
				StockStatus: domain.StockStatusLow,
			},
		},
		categories: []domain.Category{{ID: 1, Name: "Kits", Slug: "kits"}},
		brands:     []domain.Brand{{ID: 1, Name: "Dentsply", Slug: "dentsply"}},
	}
}

func doJSON(
	t *testing.T, mux *http.ServeMux, method, target, body string, v any,
) *httptest.ResponseRecorder {
	t.Helper()

	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)

	if v != nil && w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
	}
	return w
}

func TestGetCatalog(t *testing.T) {

	t.Run("ServesProductsAndCanonicalQuery", func(t *testing.T) {
		mux := storefrontMux(t, testProvider())

		var view httphandler.CatalogView
		w := doJSON(t, mux, http.MethodGet,
			"/v1/catalog?category=kits&ordering=-price", "", &view)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		require.Len(t, view.Products, 2)
		assert.Equal(t, "Kit de resina", view.Products[0].Name)

		// the placeholder shows when a product carries no image
		assert.Equal(t, domain.PlaceholderImage, view.Products[0].DisplayImage)

		assert.Contains(t, view.Query, "category=kits")
		assert.Contains(t, view.Query, "ordering=-price")
	})

	t.Run("UnknownOrderingIsDroppedFromTheCanonicalQuery", func(t *testing.T) {
		mux := storefrontMux(t, testProvider())

		var view httphandler.CatalogView
		w := doJSON(t, mux, http.MethodGet,
			"/v1/catalog?ordering=stock_count", "", &view)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, view.Query)
	})
}

func TestGetFilterOptions(t *testing.T) {
	mux := storefrontMux(t, testProvider())

	var view httphandler.FilterOptionsView
	w := doJSON(t, mux, http.MethodGet, "/v1/catalog/filters", "", &view)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, view.Categories, 1)
	assert.Equal(t, "kits", view.Categories[0].Slug)
	require.Len(t, view.Brands, 1)
	assert.Equal(t, "dentsply", view.Brands[0].Slug)
}

func TestGetProduct(t *testing.T) {

	t.Run("KnownProduct", func(t *testing.T) {
		mux := storefrontMux(t, testProvider())

		var view httphandler.ProductDisplay
		w := doJSON(t, mux, http.MethodGet, "/v1/products/1", "", &view)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Kit de resina", view.Name)
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		mux := storefrontMux(t, testProvider())

		w := doJSON(t, mux, http.MethodGet, "/v1/products/404", "", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("NonNumericID", func(t *testing.T) {
		mux := storefrontMux(t, testProvider())

		w := doJSON(t, mux, http.MethodGet, "/v1/products/abc", "", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetInquiry(t *testing.T) {

	t.Run("InStockProduct", func(t *testing.T) {
		mux := storefrontMux(t, testProvider())

		var view httphandler.CheckoutView
		w := doJSON(t, mux, http.MethodGet, "/v1/products/1/inquiry", "", &view)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, view.WhatsAppURL, "https://wa.me/593987654321?text=")
		assert.Contains(t, view.WhatsAppURL,
			url.QueryEscape("Hola, estoy interesado en Kit de resina"))
	})

	t.Run("OutOfStockProduct", func(t *testing.T) {
		provider := testProvider()
		provider.products = append(provider.products, domain.ProductDisplay{
			ID: 3, Name: "Cemento dental",
			Price: 20, CurrentPrice: 20,
			StockCount: 0, InStock: false,
			StockStatus: domain.StockStatusOut,
		})
		mux := storefrontMux(t, provider)

		w := doJSON(t, mux, http.MethodGet, "/v1/products/3/inquiry", "", nil)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		mux := storefrontMux(t, testProvider())

		w := doJSON(t, mux, http.MethodGet, "/v1/products/404/inquiry", "", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCartEndpoints(t *testing.T) {

	t.Run("AddPatchDeleteFlow", func(t *testing.T) {
		mux := storefrontMux(t, testProvider())

		var view httphandler.CartView
		w := doJSON(t, mux, http.MethodPost, "/v1/cart/items",
			`{"product_id": 1, "quantity": 2}`, &view)
		require.Equal(t, http.StatusOK, w.Code)
		require.Len(t, view.Items, 1)
		assert.Equal(t, 2, view.ItemCount)
		assert.InDelta(t, 110, view.Total, 1e-9)

		w = doJSON(t, mux, http.MethodPatch, "/v1/cart/items/1",
			`{"quantity": 5}`, &view)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 5, view.ItemCount)

		w = doJSON(t, mux, http.MethodDelete, "/v1/cart/items/1", "", &view)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, view.Items)
	})

	t.Run("AddUnknownProduct", func(t *testing.T) {
		mux := storefrontMux(t, testProvider())

		w := doJSON(t, mux, http.MethodPost, "/v1/cart/items",
			`{"product_id": 404, "quantity": 1}`, nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("AddMalformedBody", func(t *testing.T) {
		mux := storefrontMux(t, testProvider())

		w := doJSON(t, mux, http.MethodPost, "/v1/cart/items",
			`{"product_id": `, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("ClearCart", func(t *testing.T) {
		mux := storefrontMux(t, testProvider())
		doJSON(t, mux, http.MethodPost, "/v1/cart/items",
			`{"product_id": 1, "quantity": 2}`, nil)

		var view httphandler.CartView
		w := doJSON(t, mux, http.MethodDelete, "/v1/cart", "", &view)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, view.Items)
		assert.Zero(t, view.ItemCount)
	})

	t.Run("Visibility", func(t *testing.T) {
		mux := storefrontMux(t, testProvider())

		var view httphandler.CartView
		w := doJSON(t, mux, http.MethodPost, "/v1/cart/visibility",
			`{"action": "open"}`, &view)
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, view.IsOpen)

		w = doJSON(t, mux, http.MethodPost, "/v1/cart/visibility",
			`{"action": "toggle"}`, &view)
		require.Equal(t, http.StatusOK, w.Code)
		assert.False(t, view.IsOpen)

		w = doJSON(t, mux, http.MethodPost, "/v1/cart/visibility",
			`{"action": "hide"}`, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetCheckout(t *testing.T) {

	t.Run("EmptyCartConflicts", func(t *testing.T) {
		mux := storefrontMux(t, testProvider())

		w := doJSON(t, mux, http.MethodGet, "/v1/cart/checkout", "", nil)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("IssuesWhatsAppLink", func(t *testing.T) {
		mux := storefrontMux(t, testProvider())
		doJSON(t, mux, http.MethodPost, "/v1/cart/items",
			`{"product_id": 1, "quantity": 2}`, nil)

		var view httphandler.CheckoutView
		w := doJSON(t, mux, http.MethodGet, "/v1/cart/checkout", "", &view)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, view.WhatsAppURL, "https://wa.me/593987654321?text=")
	})
}
