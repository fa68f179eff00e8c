package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Renatopaccha/Dental-Gest/internal/core/domain"
	"github.com/Renatopaccha/Dental-Gest/internal/core/port"
)

// GET v1/catalog?category=&brand=&min_price=&max_price=&search=&ordering=&audience= (200 OK)
// GET v1/catalog/filters?audience= (200 OK)
// GET v1/products/{id} (200 OK, 404 Not found)
// GET v1/products/{id}/inquiry (200 OK, 404, 409 when out of stock)

type CatalogHandler struct {
	browser  port.CatalogBrowser
	nav      port.FilterNavigator
	checkout port.CheckoutLinker
}

func RegisterCatalog(
	mux *http.ServeMux,
	browser port.CatalogBrowser,
	nav port.FilterNavigator,
	checkout port.CheckoutLinker,
) {
	h := CatalogHandler{browser, nav, checkout}
	mux.HandleFunc("GET /v1/catalog", h.GetCatalog)
	mux.HandleFunc("GET /v1/catalog/filters", h.GetFilterOptions)
	mux.HandleFunc("GET /v1/products/{id}", h.GetProduct)
	mux.HandleFunc("GET /v1/products/{id}/inquiry", h.GetInquiry)
}

func (h CatalogHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetCatalog"
	log := slog.With("op", op)

	sel, canonical := h.nav.Navigate(r.Context(), r.URL.RawQuery)
	ps := h.browser.BrowseProducts(r.Context(), sel)

	writeJSON(w, log, CatalogView{
		Products: toProductViews(ps),
		Query:    canonical,
	})
	log.Info("catalog served", "nProducts", len(ps))
}

func (h CatalogHandler) GetFilterOptions(
	w http.ResponseWriter, r *http.Request,
) {
	const op = "CatalogHandler.GetFilterOptions"
	log := slog.With("op", op)

	audience := r.URL.Query().Get("audience")
	cs, bs := h.browser.FilterOptions(r.Context(), audience)

	writeJSON(w, log, toFilterOptionsView(cs, bs))
}

func (h CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProduct"
	log := slog.With("op", op)

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	p, ok := h.browser.ProductByID(r.Context(), id)
	if !ok {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}

	writeJSON(w, log, toProductView(p))
}

// GetInquiry issues the "ask about this product" WhatsApp link shown
// on the product detail page.
func (h CatalogHandler) GetInquiry(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetInquiry"
	log := slog.With("op", op)

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	p, ok := h.browser.ProductByID(r.Context(), id)
	if !ok {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}

	link, err := h.checkout.InquiryLink(p)
	if err != nil {
		if errors.Is(err, domain.ErrOutOfStock) {
			http.Error(w, "product is out of stock", http.StatusConflict)
			return
		}
		http.Error(w, "failed to build inquiry link",
			http.StatusInternalServerError)
		log.Error("failed to build inquiry link", "err", err)
		return
	}

	writeJSON(w, log, CheckoutView{WhatsAppURL: link})
}

// GET    v1/cart (200 OK)
// POST   v1/cart/items JSON {"product_id", "quantity"} (200 OK, 400, 404)
// PATCH  v1/cart/items/{id} JSON {"quantity"} (200 OK, 400)
// DELETE v1/cart/items/{id} (200 OK)
// DELETE v1/cart (200 OK)
// POST   v1/cart/visibility JSON {"action": "open"|"close"|"toggle"} (200 OK, 400)
// GET    v1/cart/checkout (200 OK, 409 when empty)

type CartHandler struct {
	cart     port.CartKeeper
	browser  port.CatalogBrowser
	checkout port.CheckoutLinker
}

func RegisterCart(
	mux *http.ServeMux,
	cart port.CartKeeper,
	browser port.CatalogBrowser,
	checkout port.CheckoutLinker,
) {
	h := CartHandler{cart, browser, checkout}
	mux.HandleFunc("GET /v1/cart", h.GetCart)
	mux.HandleFunc("POST /v1/cart/items", h.PostItem)
	mux.HandleFunc("PATCH /v1/cart/items/{id}", h.PatchItem)
	mux.HandleFunc("DELETE /v1/cart/items/{id}", h.DeleteItem)
	mux.HandleFunc("DELETE /v1/cart", h.DeleteCart)
	mux.HandleFunc("POST /v1/cart/visibility", h.PostVisibility)
	mux.HandleFunc("GET /v1/cart/checkout", h.GetCheckout)
}

func (h CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.GetCart"
	log := slog.With("op", op)

	writeJSON(w, log, h.cartView())
}

func (h CartHandler) PostItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostItem"
	log := slog.With("op", op)

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	p, ok := h.browser.ProductByID(r.Context(), req.ProductID)
	if !ok {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}

	h.cart.AddToCart(r.Context(), p, req.Quantity)
	writeJSON(w, log, h.cartView())
	log.Info("item added", "productID", req.ProductID, "quantity", req.Quantity)
}

func (h CartHandler) PatchItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PatchItem"
	log := slog.With("op", op)

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	var req UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	h.cart.UpdateQuantity(r.Context(), id, req.Quantity)
	writeJSON(w, log, h.cartView())
}

func (h CartHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.DeleteItem"
	log := slog.With("op", op)

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	h.cart.RemoveFromCart(r.Context(), id)
	writeJSON(w, log, h.cartView())
}

func (h CartHandler) DeleteCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.DeleteCart"
	log := slog.With("op", op)

	h.cart.ClearCart(r.Context())
	writeJSON(w, log, h.cartView())
}

func (h CartHandler) PostVisibility(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostVisibility"
	log := slog.With("op", op)

	var req VisibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	switch req.Action {
	case "open":
		h.cart.OpenCart()
	case "close":
		h.cart.CloseCart()
	case "toggle":
		h.cart.ToggleCart()
	default:
		http.Error(w, "invalid action", http.StatusBadRequest)
		return
	}

	writeJSON(w, log, h.cartView())
}

func (h CartHandler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.GetCheckout"
	log := slog.With("op", op)

	link, err := h.checkout.OrderLink(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrEmptyCart) {
			http.Error(w, "cart is empty", http.StatusConflict)
			return
		}
		http.Error(w, "failed to build order link",
			http.StatusInternalServerError)
		log.Error("failed to build order link", "err", err)
		return
	}

	writeJSON(w, log, CheckoutView{WhatsAppURL: link})
	log.Info("checkout link issued", "nItems", h.cart.ItemCount())
}

func (h CartHandler) cartView() CartView {
	return toCartView(
		h.cart.Items(),
		h.cart.ItemCount(),
		h.cart.Total(),
		h.cart.IsCartOpen(),
	)
}

func writeJSON(w http.ResponseWriter, log *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to write response body", "err", err)
	}
}
