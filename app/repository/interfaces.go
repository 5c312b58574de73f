package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/cinelog/cinelog/app/models"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	// UpdateLoginStats bumps the login bookkeeping columns only; it never
	// touches credentials or identity fields.
	UpdateLoginStats(id uint, at time.Time, count uint) error
	Update(user *models.User) error
	Count() (int64, error)
}

// ProviderAccountRepository defines the interface for external account links
type ProviderAccountRepository interface {
	GetByProviderAccountID(provider, providerUserID string) (*models.ProviderAccount, error)
	Create(account *models.ProviderAccount) error
	// UpdateTokens replaces the token bundle of an existing link. The owning
	// user id is deliberately not part of the update.
	UpdateTokens(account *models.ProviderAccount) error
}

// MovieListRepository defines the interface for the per-user movie list
type MovieListRepository interface {
	Create(entry *models.MovieListEntry) error
	GetByUserID(userID uint) ([]models.MovieListEntry, error)
	GetByUserAndMovie(userID uint, movieID int) (*models.MovieListEntry, error)
	Update(entry *models.MovieListEntry) error
	Delete(userID uint, movieID int) error
	Count() (int64, error)
}

// CommentRepository defines the interface for movie comments
type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByMovieID(movieID int, offset, limit int) ([]models.Comment, error)
	Delete(id uint) error
}

// Repositories struct holds all repository instances
type Repositories struct {
	User            UserRepository
	ProviderAccount ProviderAccountRepository
	MovieList       MovieListRepository
	Comment         CommentRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:            NewUserRepository(db),
		ProviderAccount: NewProviderAccountRepository(db),
		MovieList:       NewMovieListRepository(db),
		Comment:         NewCommentRepository(db),
	}
}
