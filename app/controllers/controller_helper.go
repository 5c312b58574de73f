package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/cinelog/cinelog/internal/pkg/usercontext"
)

// currentUserID parses the session subject back into a database id.
// Returns 0 for anonymous requests or a malformed subject.
func currentUserID(c *fiber.Ctx) uint {
	ctx := usercontext.GetUserContext(c)
	if !ctx.IsLoggedIn {
		return 0
	}
	id, err := strconv.ParseUint(ctx.UserID, 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}
