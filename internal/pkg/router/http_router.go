package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cinelog/cinelog/app/controllers"
	"github.com/cinelog/cinelog/app/repository"
	"github.com/cinelog/cinelog/internal/pkg/auth"
	"github.com/cinelog/cinelog/internal/pkg/env"
	"github.com/cinelog/cinelog/internal/pkg/middleware"
	"github.com/cinelog/cinelog/internal/pkg/oauth"
	"github.com/cinelog/cinelog/internal/pkg/tmdb"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init oauth providers
	oauth.Setup()

	// Assemble the immutable auth configuration once and hand it to every
	// component; nothing reads the environment after this point.
	svc := auth.NewService(repository.GetGlobalRepositories(), newAuthConfig())
	middleware.Setup(svc)
	controllers.InitializeAuthControllers(svc)
	controllers.InitializeMainControllers(tmdb.NewClient(env.GetEnv("TMDB_API_KEY", "")))

	// Session materialization and the route guard run on every request.
	app.Use(middleware.UserContextMiddleware)
	app.Use(middleware.GuardMiddleware)

	h.registerRoutes(app)
}

func (h HttpRouter) registerRoutes(app *fiber.App) {
	app.Get("/", controllers.HandleHome)
	app.Get("/movie/:id", controllers.HandleMovieDetail)

	app.Get("/signin", controllers.HandleSignIn)
	app.Post("/signin", controllers.HandleSignIn)
	app.Get("/signup", controllers.HandleSignUpPage)
	app.Get("/signout", controllers.HandleSignOut)

	app.Get("/auth/:provider", controllers.HandleOAuthBegin)
	app.Get("/auth/:provider/callback", controllers.HandleOAuthCallback)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}

func newAuthConfig() auth.Config {
	policy := auth.CollisionSuffix
	if env.GetEnv("USERNAME_COLLISION_POLICY", "suffix") == "fail" {
		policy = auth.CollisionFail
	}
	return auth.Config{
		TokenSecret:          []byte(env.GetEnv("JWT_SECRET", "")),
		TokenLifetime:        auth.DefaultTokenLifetime,
		SignInPath:           auth.DefaultSignInPath,
		CollisionPolicy:      policy,
		PreserveRefreshToken: env.GetEnv("PRESERVE_REFRESH_TOKEN", "true") != "false",
	}
}
