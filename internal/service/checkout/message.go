package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"optic-storefront/internal/domain"
)

const whatsAppBase = "https://wa.me/"

// ComposeMessage renders the plain-text order summary sent to the shop.
func ComposeMessage(shopName string, customer domain.CustomerDetails, items []domain.CartItem, total domain.Money) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New order from %s\n\n", shopName)
	fmt.Fprintf(&b, "Customer name: %s\n", customer.FullName())
	fmt.Fprintf(&b, "Customer phone: %s\n", customer.Phone)
	fmt.Fprintf(&b, "Customer address: %s\n\n", customer.Address)
	fmt.Fprintf(&b, "Total order amount: %s\n\n", total)
	b.WriteString("Items:")
	for _, item := range items {
		fmt.Fprintf(&b, "\n- %d x %s (%s each)", item.Quantity, item.Name, domain.Money{Amount: item.Price, Currency: total.Currency})
	}
	return b.String()
}

// WhatsAppURL builds the wa.me deep link carrying text as a pre-filled message.
// Spaces are encoded as %20.
func WhatsAppURL(number, text string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	return whatsAppBase + number + "?text=" + escaped
}

// IsWhatsAppURL reports whether link points at the wa.me deep-link host.
func IsWhatsAppURL(link string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	return u.Scheme == "https" && u.Host == "wa.me"
}
