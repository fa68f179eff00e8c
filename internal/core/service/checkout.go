package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/Renatopaccha/Dental-Gest/internal/core/domain"
	"github.com/Renatopaccha/Dental-Gest/internal/core/port"
	"github.com/shopspring/decimal"
)

var _ port.CheckoutLinker = (*CheckoutService)(nil)

// CheckoutService builds the WhatsApp deep links that stand in for a
// checkout flow: there is no payment or order-submission API.
type CheckoutService struct {
	phone string
	cart  *CartService
}

func NewCheckoutService(phone string, cart *CartService) *CheckoutService {
	return &CheckoutService{phone: phone, cart: cart}
}

// OrderLink renders the current cart as a wa.me link with the order
// summary pre-filled. An empty cart has nothing to order.
func (s *CheckoutService) OrderLink(ctx context.Context) (string, error) {
	const op = "CheckoutService.OrderLink"

	items := s.cart.Checkout(ctx)
	if len(items) == 0 {
		return "", fmt.Errorf("%s: %w", op, domain.ErrEmptyCart)
	}

	return s.deepLink(orderMessage(items)), nil
}

// InquiryLink renders the "ask about this product" link shown on the
// product detail page. Out-of-stock products are not offered.
func (s *CheckoutService) InquiryLink(p domain.ProductDisplay) (string, error) {
	const op = "CheckoutService.InquiryLink"

	if !p.InStock {
		return "", fmt.Errorf("%s: %w", op, domain.ErrOutOfStock)
	}

	msg := fmt.Sprintf("Hola, estoy interesado en %s", p.Name)
	return s.deepLink(msg), nil
}

func (s *CheckoutService) deepLink(message string) string {
	u := url.URL{
		Scheme:   "https",
		Host:     "wa.me",
		Path:     s.phone,
		RawQuery: "text=" + url.QueryEscape(message),
	}
	return u.String()
}

func orderMessage(items []domain.CartItem) string {
	var b strings.Builder
	b.WriteString("¡Hola! Me gustaría hacer el siguiente pedido:\n\n")
	b.WriteString("🛒 *Mi Pedido:*\n")

	total := decimal.Zero
	for _, it := range items {
		line := decimal.NewFromFloat(it.Product.CurrentPrice).
			Mul(decimal.NewFromInt(int64(it.Quantity)))
		total = total.Add(line)
		fmt.Fprintf(&b, "• %dx %s - $%s\n",
			it.Quantity, it.Product.Name, line.StringFixed(2))
	}

	fmt.Fprintf(&b, "\n💰 *Total: $%s*\n\n", total.StringFixed(2))
	b.WriteString("¡Gracias!")
	return b.String()
}
