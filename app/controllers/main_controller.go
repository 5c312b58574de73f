package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/cinelog/cinelog/internal/pkg/statistics"
	"github.com/cinelog/cinelog/internal/pkg/tmdb"
	"github.com/cinelog/cinelog/internal/pkg/usercontext"
)

var tmdbClient *tmdb.Client

// InitializeMainControllers installs the metadata client the page handlers use.
func InitializeMainControllers(client *tmdb.Client) {
	tmdbClient = client
}

// HandleHome renders the home page with the cached site totals.
func HandleHome(c *fiber.Ctx) error {
	stats := statistics.GetStatistics()

	return c.Render("index", fiber.Map{
		"Title":         "CineLog",
		"Username":      usercontext.GetUsername(c),
		"Flash":         flash.Get(c),
		"TotalUsers":    stats.TotalUsers,
		"TrackedMovies": stats.TrackedMovies,
	})
}

// HandleMovieDetail renders the detail page for one movie.
func HandleMovieDetail(c *fiber.Ctx) error {
	movieID, err := strconv.Atoi(c.Params("id"))
	if err != nil || movieID == 0 {
		return c.Status(fiber.StatusNotFound).SendString("movie not found")
	}

	movie, err := tmdbClient.Movie(movieID)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).SendString("failed to load movie details")
	}

	return c.Render("movie", fiber.Map{
		"Title":    movie.Title,
		"Username": usercontext.GetUsername(c),
		"Movie":    movie,
	})
}
