package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/cinelog/cinelog/internal/pkg/session"
	"github.com/cinelog/cinelog/internal/pkg/usercontext"
)

// GuardMiddleware enforces the route guard on every request. Public paths
// pass through untouched; guarded pages redirect to the sign-in page and
// guarded API routes answer with JSON 401 instead.
func GuardMiddleware(c *fiber.Ctx) error {
	decision := authService.Guard.Authorize(c.Path(), session.Token(c))
	if decision.Allow {
		return c.Next()
	}
	if strings.HasPrefix(c.Path(), "/api/") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "login required",
		})
	}
	return c.Redirect(decision.RedirectTo, fiber.StatusSeeOther)
}

// RequireAuth ensures a logged-in session; redirects to the sign-in page if missing.
func RequireAuth(c *fiber.Ctx) error {
	if !usercontext.IsLoggedIn(c) {
		return c.Redirect("/signin", fiber.StatusSeeOther)
	}
	return c.Next()
}

// RequireAPIAuth ensures a logged-in session for API routes and returns JSON 401 instead of redirect.
func RequireAPIAuth(c *fiber.Ctx) error {
	if !usercontext.IsLoggedIn(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "login required",
		})
	}
	return c.Next()
}
