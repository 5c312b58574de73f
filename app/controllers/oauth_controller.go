package controllers

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	gothfiber "github.com/shareed2k/goth_fiber"
	"github.com/sujit-baniya/flash"

	"github.com/cinelog/cinelog/internal/pkg/auth"
	"github.com/cinelog/cinelog/internal/pkg/session"
)

// HandleOAuthBegin starts the provider flow.
func HandleOAuthBegin(c *fiber.Ctx) error {
	return gothfiber.BeginAuthHandler(c)
}

// HandleOAuthCallback completes the provider flow and logs the user in.
// The whole pipeline runs before any cookie is written: a linking failure
// refuses the sign-in instead of authenticating a half-linked account.
func HandleOAuthCallback(c *fiber.Ctx) error {
	u, err := gothfiber.CompleteUserAuth(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(fmt.Sprintf("OAuth failed: %v", err))
	}

	var expiresAt *time.Time
	if !u.ExpiresAt.IsZero() {
		t := u.ExpiresAt
		expiresAt = &t
	}

	identity, err := authService.SignIn(auth.SignInRequest{
		Kind: auth.SignInOAuth,
		OAuth: &auth.OAuthPayload{
			Provider:       u.Provider,
			ProviderUserID: u.UserID,
			Email:          u.Email,
			Name:           u.Name,
			Tokens: auth.TokenBundle{
				AccessToken:  u.AccessToken,
				RefreshToken: u.RefreshToken,
				ExpiresAt:    expiresAt,
				TokenType:    "Bearer",
				Scope:        "email profile",
				IDToken:      u.IDToken,
			},
		},
	})
	if err != nil {
		if errors.Is(err, auth.ErrMissingProfileEmail) {
			return c.Status(fiber.StatusUnauthorized).SendString("not authorized: provider profile has no email")
		}
		log.Printf("oauth sign-in failed for provider %s: %v", u.Provider, err)
		fm := fiber.Map{
			"type":    "error",
			"message": genericSignInError,
		}
		return flash.WithError(c, fm).Redirect("/signin")
	}

	token, err := authService.Tokens.Issue(identity)
	if err != nil {
		log.Printf("token issuance failed for user %d: %v", identity.ID, err)
		fm := fiber.Map{
			"type":    "error",
			"message": genericSignInError,
		}
		return flash.WithError(c, fm).Redirect("/signin")
	}
	session.Set(c, token, auth.DefaultTokenLifetime)

	return c.Redirect("/", fiber.StatusSeeOther)
}
