package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/cinelog/cinelog/app/models"
	"github.com/cinelog/cinelog/app/repository"
)

const commentPageSize = 20

type addCommentRequest struct {
	MovieID int    `json:"movieId"`
	Content string `json:"content"`
}

// HandleGetComments lists comments for a movie, newest first.
func HandleGetComments(c *fiber.Ctx) error {
	movieID, err := strconv.Atoi(c.Query("movieId"))
	if err != nil || movieID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing movie id"})
	}
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}

	comments, err := repository.GetGlobalFactory().GetCommentRepository().
		GetByMovieID(movieID, (page-1)*commentPageSize, commentPageSize)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch comments"})
	}

	return c.JSON(fiber.Map{"comments": comments, "page": page})
}

// HandleAddComment stores a new comment by the caller.
func HandleAddComment(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if userID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	var req addCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.MovieID == 0 || req.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
	}

	comment := &models.Comment{
		UserID:  userID,
		MovieID: req.MovieID,
		Content: req.Content,
	}
	if err := repository.GetGlobalFactory().GetCommentRepository().Create(comment); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to add comment"})
	}

	return c.JSON(comment)
}
