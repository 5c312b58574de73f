package repository

import (
	"gorm.io/gorm"

	"github.com/cinelog/cinelog/app/models"
)

// movieListRepository implements the MovieListRepository interface
type movieListRepository struct {
	db *gorm.DB
}

// NewMovieListRepository creates a new movie list repository instance
func NewMovieListRepository(db *gorm.DB) MovieListRepository {
	return &movieListRepository{db: db}
}

// Create adds a movie to a user's list
func (r *movieListRepository) Create(entry *models.MovieListEntry) error {
	return r.db.Create(entry).Error
}

// GetByUserID retrieves all list entries of a user, newest first
func (r *movieListRepository) GetByUserID(userID uint) ([]models.MovieListEntry, error) {
	var entries []models.MovieListEntry
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&entries).Error
	return entries, err
}

// GetByUserAndMovie retrieves a single entry by its (user, movie) pair
func (r *movieListRepository) GetByUserAndMovie(userID uint, movieID int) (*models.MovieListEntry, error) {
	var entry models.MovieListEntry
	err := r.db.Where("user_id = ? AND movie_id = ?", userID, movieID).First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Update updates an existing entry (category moves)
func (r *movieListRepository) Update(entry *models.MovieListEntry) error {
	return r.db.Save(entry).Error
}

// Delete removes a movie from a user's list
func (r *movieListRepository) Delete(userID uint, movieID int) error {
	return r.db.Where("user_id = ? AND movie_id = ?", userID, movieID).
		Delete(&models.MovieListEntry{}).Error
}

// Count returns the total number of tracked movies across all users
func (r *movieListRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.MovieListEntry{}).Count(&count).Error
	return count, err
}
