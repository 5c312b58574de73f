package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

const (
	CategoryWatching       = "watching"
	CategoryWillWatch      = "will-watch"
	CategoryAlreadyWatched = "already-watched"
)

// MovieListEntry is one tracked movie on a user's list. A user tracks a
// given movie at most once; moving it between categories updates the row.
type MovieListEntry struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"index:user_movie,unique" json:"user_id"`
	User        User           `gorm:"foreignKey:UserID" json:"-"`
	MovieID     int            `gorm:"index:user_movie,unique" json:"movie_id"` // TMDB movie id
	Title       string         `gorm:"type:varchar(191)" json:"title" validate:"required,max=191"`
	PosterPath  string         `gorm:"type:varchar(191)" json:"poster_path" validate:"max=191"`
	Category    string         `gorm:"type:varchar(50)" json:"category" validate:"oneof=watching will-watch already-watched"`
	Overview    string         `gorm:"type:varchar(191)" json:"overview" validate:"max=191"`
	ReleaseDate string         `gorm:"type:varchar(191)" json:"release_date" validate:"max=191"`
	Rating      string         `gorm:"type:varchar(50)" json:"rating" validate:"max=50"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// NormalizeCategory maps the loose category spellings accepted by the API
// ("will watch", "Already Watched") onto the canonical values.
func NormalizeCategory(raw string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "watching":
		return CategoryWatching, true
	case "will-watch", "will watch":
		return CategoryWillWatch, true
	case "already-watched", "already watched":
		return CategoryAlreadyWatched, true
	}
	return "", false
}
