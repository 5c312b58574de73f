package repository

import (
	"gorm.io/gorm"

	"github.com/cinelog/cinelog/app/models"
)

// providerAccountRepository implements the ProviderAccountRepository interface
type providerAccountRepository struct {
	db *gorm.DB
}

// NewProviderAccountRepository creates a new provider account repository instance
func NewProviderAccountRepository(db *gorm.DB) ProviderAccountRepository {
	return &providerAccountRepository{db: db}
}

// GetByProviderAccountID retrieves a link by its unique (provider, provider_user_id) pair
func (r *providerAccountRepository) GetByProviderAccountID(provider, providerUserID string) (*models.ProviderAccount, error) {
	var account models.ProviderAccount
	err := r.db.Where("provider = ? AND provider_user_id = ?", provider, providerUserID).First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// Create creates a new provider account link
func (r *providerAccountRepository) Create(account *models.ProviderAccount) error {
	return r.db.Create(account).Error
}

// UpdateTokens replaces the token bundle columns of an existing link.
// UserID is excluded so an update can never re-own the link.
func (r *providerAccountRepository) UpdateTokens(account *models.ProviderAccount) error {
	return r.db.Model(&models.ProviderAccount{}).
		Where("id = ?", account.ID).
		Updates(map[string]any{
			"access_token":  account.AccessToken,
			"refresh_token": account.RefreshToken,
			"expires_at":    account.ExpiresAt,
			"token_type":    account.TokenType,
			"scope":         account.Scope,
			"id_token":      account.IDToken,
		}).Error
}
