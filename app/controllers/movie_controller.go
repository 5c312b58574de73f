package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/cinelog/cinelog/app/models"
	"github.com/cinelog/cinelog/app/repository"
)

type addMovieRequest struct {
	MovieID     int    `json:"movieId"`
	Title       string `json:"title"`
	Poster      string `json:"poster"`
	Category    string `json:"category"`
	Overview    string `json:"overview"`
	ReleaseDate string `json:"releaseDate"`
	Rating      string `json:"rating"`
}

type deleteMovieRequest struct {
	MovieID int `json:"movieId"`
}

// HandleGetMovies returns the caller's movie list grouped by category.
func HandleGetMovies(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if userID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	entries, err := repository.GetGlobalFactory().GetMovieListRepository().GetByUserID(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch movies"})
	}

	grouped := fiber.Map{
		models.CategoryWatching:       []models.MovieListEntry{},
		models.CategoryWillWatch:      []models.MovieListEntry{},
		models.CategoryAlreadyWatched: []models.MovieListEntry{},
	}
	for _, entry := range entries {
		list := grouped[entry.Category].([]models.MovieListEntry)
		grouped[entry.Category] = append(list, entry)
	}

	return c.JSON(grouped)
}

// HandleAddMovie adds a movie to the caller's list, or moves an already
// tracked one to the submitted category.
func HandleAddMovie(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if userID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	var req addMovieRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.MovieID == 0 || req.Title == "" || req.Category == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
	}
	category, ok := models.NormalizeCategory(req.Category)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown category"})
	}

	repo := repository.GetGlobalFactory().GetMovieListRepository()

	existing, err := repo.GetByUserAndMovie(userID, req.MovieID)
	if err == nil {
		existing.Category = category
		if err := repo.Update(existing); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update movie"})
		}
		return c.JSON(existing)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch movies"})
	}

	entry := &models.MovieListEntry{
		UserID:      userID,
		MovieID:     req.MovieID,
		Title:       req.Title,
		PosterPath:  req.Poster,
		Category:    category,
		Overview:    req.Overview,
		ReleaseDate: req.ReleaseDate,
		Rating:      req.Rating,
	}
	if err := repo.Create(entry); err != nil {
		// A racing request for the same movie wins the unique index; report
		// the current row rather than failing the add.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if existing, lookupErr := repo.GetByUserAndMovie(userID, req.MovieID); lookupErr == nil {
				return c.JSON(existing)
			}
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to add movie"})
	}

	return c.JSON(entry)
}

// HandleDeleteMovie removes a movie from the caller's list.
func HandleDeleteMovie(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if userID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	var req deleteMovieRequest
	if err := c.BodyParser(&req); err != nil || req.MovieID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing movie id"})
	}

	if err := repository.GetGlobalFactory().GetMovieListRepository().Delete(userID, req.MovieID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete movie"})
	}

	return c.JSON(fiber.Map{"message": "Movie removed"})
}
