package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/cinelog/cinelog/app/controllers"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())

	api.Post("/auth/signup", controllers.HandleAPISignup)

	api.Get("/movies", controllers.HandleGetMovies)
	api.Post("/movies", controllers.HandleAddMovie)
	api.Post("/movies/delete", controllers.HandleDeleteMovie)

	api.Get("/comments", controllers.HandleGetComments)
	api.Post("/comments", controllers.HandleAddComment)

	api.Get("/user/me", controllers.HandleGetSession)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
