package auth

import (
	"fmt"
	"time"

	"github.com/cinelog/cinelog/app/models"
	"github.com/cinelog/cinelog/app/repository"
)

// TokenBundle is the opaque set of provider tokens captured on each
// callback. RefreshToken may be empty on non-first consent.
type TokenBundle struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    *time.Time
	TokenType    string
	Scope        string
	IDToken      string
}

// Linker maintains the provider-account rows that tie a user to each
// external provider identity. The unique (provider, provider_user_id) index
// is the idempotency boundary: replaying a callback converges on one row.
type Linker struct {
	accounts        repository.ProviderAccountRepository
	preserveRefresh bool
}

func NewLinker(accounts repository.ProviderAccountRepository, cfg Config) *Linker {
	return &Linker{accounts: accounts, preserveRefresh: cfg.PreserveRefreshToken}
}

// LinkOrUpdate creates the link on first contact with an external account
// and replaces its token bundle on every later one. An update never changes
// the owning user; a link cannot be silently re-owned.
func (l *Linker) LinkOrUpdate(userID uint, provider, providerUserID string, tokens TokenBundle) (*models.ProviderAccount, error) {
	if provider == "" || providerUserID == "" {
		return nil, ErrMissingInput
	}

	account, err := l.accounts.GetByProviderAccountID(provider, providerUserID)
	if err == nil {
		return l.updateTokens(account, tokens)
	}
	if !isNotFound(err) {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	account = &models.ProviderAccount{
		UserID:         userID,
		Provider:       provider,
		ProviderUserID: providerUserID,
		AccessToken:    tokens.AccessToken,
		RefreshToken:   tokens.RefreshToken,
		ExpiresAt:      tokens.ExpiresAt,
		TokenType:      tokens.TokenType,
		Scope:          tokens.Scope,
		IDToken:        tokens.IDToken,
	}
	createErr := l.accounts.Create(account)
	if createErr == nil {
		return account, nil
	}
	if !isDuplicate(createErr) {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, createErr)
	}

	// Lost the lookup-then-create race: a concurrent callback inserted the
	// row first. Re-read the winner and converge on an update.
	account, err = l.accounts.GetByProviderAccountID(provider, providerUserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return l.updateTokens(account, tokens)
}

func (l *Linker) updateTokens(account *models.ProviderAccount, tokens TokenBundle) (*models.ProviderAccount, error) {
	account.AccessToken = tokens.AccessToken
	account.ExpiresAt = tokens.ExpiresAt
	account.TokenType = tokens.TokenType
	account.Scope = tokens.Scope
	account.IDToken = tokens.IDToken
	if tokens.RefreshToken != "" || !l.preserveRefresh {
		account.RefreshToken = tokens.RefreshToken
	}

	if err := l.accounts.UpdateTokens(account); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return account, nil
}
