package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinelog/cinelog/app/models"
)

func bundle(access, refresh string) TokenBundle {
	exp := time.Now().Add(time.Hour)
	return TokenBundle{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    &exp,
		TokenType:    "Bearer",
		Scope:        "email profile",
		IDToken:      "id-" + access,
	}
}

func TestLinkOrUpdateMissingInput(t *testing.T) {
	l := NewLinker(newFakeAccountStore(), Config{})

	_, err := l.LinkOrUpdate(1, "", "acct-1", bundle("a", "r"))
	assert.ErrorIs(t, err, ErrMissingInput)

	_, err = l.LinkOrUpdate(1, "google", "", bundle("a", "r"))
	assert.ErrorIs(t, err, ErrMissingInput)
}

func TestLinkOrUpdateCreatesLink(t *testing.T) {
	store := newFakeAccountStore()
	l := NewLinker(store, Config{})

	account, err := l.LinkOrUpdate(7, "google", "acct-1", bundle("tok-1", "refresh-1"))
	require.NoError(t, err)
	assert.Equal(t, uint(7), account.UserID)
	assert.Equal(t, "google", account.Provider)
	assert.Equal(t, "acct-1", account.ProviderUserID)
	assert.Equal(t, "tok-1", account.AccessToken)
	assert.Equal(t, "refresh-1", account.RefreshToken)
	assert.Equal(t, 1, store.len())
}

func TestLinkOrUpdateIsIdempotent(t *testing.T) {
	store := newFakeAccountStore()
	l := NewLinker(store, Config{})

	first, err := l.LinkOrUpdate(7, "google", "acct-1", bundle("tok-1", "refresh-1"))
	require.NoError(t, err)

	second, err := l.LinkOrUpdate(7, "google", "acct-1", bundle("tok-2", "refresh-2"))
	require.NoError(t, err)

	assert.Equal(t, 1, store.len(), "replaying a callback must not duplicate the link")
	assert.Equal(t, first.ID, second.ID)

	stored := store.byID(first.ID)
	assert.Equal(t, "tok-2", stored.AccessToken, "the second call's tokens win")
	assert.Equal(t, "refresh-2", stored.RefreshToken)
}

func TestLinkOrUpdateNeverReassignsOwner(t *testing.T) {
	store := newFakeAccountStore()
	l := NewLinker(store, Config{})

	first, err := l.LinkOrUpdate(7, "google", "acct-1", bundle("tok-1", "r"))
	require.NoError(t, err)

	_, err = l.LinkOrUpdate(99, "google", "acct-1", bundle("tok-2", "r"))
	require.NoError(t, err)

	stored := store.byID(first.ID)
	assert.Equal(t, uint(7), stored.UserID, "an update must not re-own the link")
}

func TestLinkOrUpdatePreservesRefreshToken(t *testing.T) {
	store := newFakeAccountStore()
	l := NewLinker(store, Config{PreserveRefreshToken: true})

	first, err := l.LinkOrUpdate(7, "google", "acct-1", bundle("tok-1", "refresh-1"))
	require.NoError(t, err)

	// Non-first consent: Google omits the refresh token.
	_, err = l.LinkOrUpdate(7, "google", "acct-1", bundle("tok-2", ""))
	require.NoError(t, err)

	stored := store.byID(first.ID)
	assert.Equal(t, "tok-2", stored.AccessToken)
	assert.Equal(t, "refresh-1", stored.RefreshToken, "stored refresh token survives an empty update")
}

func TestLinkOrUpdateOverwritesRefreshTokenWhenNotPreserving(t *testing.T) {
	store := newFakeAccountStore()
	l := NewLinker(store, Config{PreserveRefreshToken: false})

	first, err := l.LinkOrUpdate(7, "google", "acct-1", bundle("tok-1", "refresh-1"))
	require.NoError(t, err)

	_, err = l.LinkOrUpdate(7, "google", "acct-1", bundle("tok-2", ""))
	require.NoError(t, err)

	stored := store.byID(first.ID)
	assert.Empty(t, stored.RefreshToken)
}

func TestLinkOrUpdateConvergesOnCreateRace(t *testing.T) {
	store := newFakeAccountStore()
	l := NewLinker(store, Config{})

	// A concurrent callback wins the insert between our lookup and create.
	store.beforeCreate = func() {
		err := store.Create(&models.ProviderAccount{
			UserID:         7,
			Provider:       "google",
			ProviderUserID: "acct-1",
			AccessToken:    "winner-token",
		})
		require.NoError(t, err)
	}

	account, err := l.LinkOrUpdate(7, "google", "acct-1", bundle("loser-token", "r"))
	require.NoError(t, err, "losing the race must converge to an update, not fail")
	assert.Equal(t, 1, store.len())
	assert.Equal(t, "loser-token", account.AccessToken, "the retried update carries our tokens")
}
