package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/cinelog/cinelog/internal/pkg/auth"
	"github.com/cinelog/cinelog/internal/pkg/session"
	"github.com/cinelog/cinelog/internal/pkg/usercontext"
)

var authService *auth.Service

// Setup installs the auth service the middlewares run against. Called once
// during router installation.
func Setup(svc *auth.Service) {
	authService = svc
}

// UserContextMiddleware materializes the session token into the request
// user context on every request. A missing or invalid token simply yields
// an anonymous context; it is never an error.
func UserContextMiddleware(c *fiber.Ctx) error {
	// Goth keeps its own state store on /auth/*; don't touch it here.
	if strings.HasPrefix(c.Path(), "/auth/") {
		return c.Next()
	}

	sess := authService.Tokens.Materialize(session.Token(c))
	if sess == nil {
		c.Locals(usercontext.KeyUserContext, usercontext.UserContext{IsLoggedIn: false})
		c.Locals(usercontext.KeyFromProtected, false)
		return c.Next()
	}

	c.Locals(usercontext.KeyUserContext, usercontext.UserContext{
		UserID:     sess.ID,
		Username:   sess.Username,
		IsLoggedIn: true,
	})
	c.Locals(usercontext.KeyFromProtected, true)
	c.Locals(usercontext.KeyUserID, sess.ID)
	c.Locals(usercontext.KeyUsername, sess.Username)

	return c.Next()
}
