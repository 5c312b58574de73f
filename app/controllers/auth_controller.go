package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"
	"gorm.io/gorm"

	"github.com/cinelog/cinelog/app/models"
	"github.com/cinelog/cinelog/app/repository"
	"github.com/cinelog/cinelog/internal/pkg/auth"
	"github.com/cinelog/cinelog/internal/pkg/session"
)

var authService *auth.Service

// InitializeAuthControllers installs the auth service the handlers run
// against. Called once during router installation.
func InitializeAuthControllers(svc *auth.Service) {
	authService = svc
}

// genericSignInError is the only failure message a sign-in attempt gets.
// Field-specific reasons stay server-side so usernames cannot be enumerated.
const genericSignInError = "There is a problem with the sign-in process"

// HandleSignIn renders the sign-in page and processes credential logins.
func HandleSignIn(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodPost {
		identity, err := authService.SignIn(auth.SignInRequest{
			Kind: auth.SignInCredentials,
			Credentials: &auth.CredentialPayload{
				Username: c.FormValue("username"),
				Password: c.FormValue("password"),
			},
		})
		if err != nil {
			fm := fiber.Map{
				"type":    "error",
				"message": genericSignInError,
			}
			return flash.WithError(c, fm).Redirect("/signin")
		}

		token, err := authService.Tokens.Issue(identity)
		if err != nil {
			fm := fiber.Map{
				"type":    "error",
				"message": genericSignInError,
			}
			return flash.WithError(c, fm).Redirect("/signin")
		}
		session.Set(c, token, auth.DefaultTokenLifetime)

		return c.Redirect("/", fiber.StatusSeeOther)
	}

	return c.Render("signin", fiber.Map{
		"Title": "Sign in",
		"Flash": flash.Get(c),
	})
}

// HandleSignUpPage renders the registration page.
func HandleSignUpPage(c *fiber.Ctx) error {
	return c.Render("signup", fiber.Map{
		"Title": "Sign up",
		"Flash": flash.Get(c),
	})
}

// HandleSignOut clears the session cookie.
func HandleSignOut(c *fiber.Ctx) error {
	session.Clear(c)
	return c.Redirect("/signin", fiber.StatusSeeOther)
}

type signupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HandleAPISignup creates a credential-login user. Signup keeps its
// specific error messages; only sign-in failures are generic.
func HandleAPISignup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Username and password are required"})
	}
	if req.Username == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Username and password are required"})
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	if _, err := repo.GetByUsername(req.Username); err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Username is already taken"})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create user"})
	}

	user, err := models.CreateUser(req.Username, req.Password)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := repo.Create(user); err != nil {
		// The unique index wins racing signups; report it as taken.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Username is already taken"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create user"})
	}

	return c.JSON(fiber.Map{"message": "User created", "userId": user.ID})
}
