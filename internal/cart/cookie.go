package cart

import (
	"encoding/json"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
)

// CookieName holds the serialized cart on the client.
const CookieName = "cart_items"

// cookieTTL keeps the cart alive for thirty days.
const cookieTTL = 30 * 24 * time.Hour

// ReadCookie decodes the cart cookie. An absent or corrupt cookie is treated
// as an empty cart.
func ReadCookie(c *fiber.Ctx) []Item {
	raw := c.Cookies(CookieName)
	if raw == "" {
		return nil
	}

	// Cookie values are URL-encoded; JSON is not cookie-safe as-is.
	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return nil
	}

	var items []Item
	if err := json.Unmarshal([]byte(decoded), &items); err != nil {
		return nil
	}
	return items
}

// WriteCookie rewrites the full cart cookie. Every mutation persists the
// whole cart, so concurrent tabs resolve as last-write-wins.
func WriteCookie(c *fiber.Ctx, items []Item) error {
	if items == nil {
		items = []Item{}
	}

	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    url.QueryEscape(string(payload)),
		Path:     "/",
		Expires:  time.Now().Add(cookieTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}

// ClearCookie expires the cart cookie.
func ClearCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
