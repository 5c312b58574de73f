package session

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/cinelog/cinelog/internal/pkg/env"
)

// CookieName carries the signed session token. The token itself is the
// whole session; nothing is stored server-side.
const CookieName = "cinelog_session"

// Set writes the session cookie. HTTP-only, so scripts never see the token.
func Set(c *fiber.Ctx, token string, lifetime time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		Expires:  time.Now().Add(lifetime),
		HTTPOnly: true,
		Secure:   !env.IsDev(),
		SameSite: "Lax",
		Path:     "/",
	})
}

// Clear expires the session cookie.
func Clear(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
}

// Token extracts the session token from the cookie, falling back to a
// bearer Authorization header for API clients.
func Token(c *fiber.Ctx) string {
	if v := c.Cookies(CookieName); v != "" {
		return v
	}
	authHeader := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
