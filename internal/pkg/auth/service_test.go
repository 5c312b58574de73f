package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinelog/cinelog/app/models"
	"github.com/cinelog/cinelog/app/repository"
)

func newTestService() (*Service, *fakeUserStore, *fakeAccountStore) {
	users := newFakeUserStore()
	accounts := newFakeAccountStore()
	repos := &repository.Repositories{User: users, ProviderAccount: accounts}
	svc := NewService(repos, Config{TokenSecret: testSecret})
	return svc, users, accounts
}

func TestSignInValidatesVariant(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.SignIn(SignInRequest{Kind: "magic-link"})
	assert.Error(t, err)

	_, err = svc.SignIn(SignInRequest{Kind: SignInCredentials})
	assert.Error(t, err, "credentials request without a payload is refused")

	_, err = svc.SignIn(SignInRequest{
		Kind:        SignInCredentials,
		Credentials: &CredentialPayload{Username: "alice", Password: "pw"},
		OAuth:       &OAuthPayload{Provider: "google"},
	})
	assert.Error(t, err, "a request must carry exactly one payload")

	_, err = svc.SignIn(SignInRequest{
		Kind:  SignInOAuth,
		OAuth: &OAuthPayload{Provider: "google", ProviderUserID: "acct-1"},
	})
	assert.ErrorIs(t, err, ErrMissingProfileEmail)
}

func TestSignInWithCredentials(t *testing.T) {
	svc, users, _ := newTestService()
	seedCredentialUser(t, users, "alice", "secret")

	identity, err := svc.SignIn(SignInRequest{
		Kind:        SignInCredentials,
		Credentials: &CredentialPayload{Username: "alice", Password: "secret"},
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", identity.Username)

	_, err = svc.SignIn(SignInRequest{
		Kind:        SignInCredentials,
		Credentials: &CredentialPayload{Username: "alice", Password: "wrong"},
	})
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestSignInWithOAuthCreatesUserAndLink(t *testing.T) {
	svc, users, accounts := newTestService()

	identity, err := svc.SignIn(SignInRequest{
		Kind: SignInOAuth,
		OAuth: &OAuthPayload{
			Provider:       "google",
			ProviderUserID: "acct-1",
			Email:          "carol@gmail.com",
			Name:           "Carol",
			Tokens:         bundle("tok-1", "refresh-1"),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "carol", identity.Username)

	user, err := users.GetByEmail("carol@gmail.com")
	require.NoError(t, err)
	assert.Equal(t, identity.ID, user.ID)

	account, err := accounts.GetByProviderAccountID("google", "acct-1")
	require.NoError(t, err)
	assert.Equal(t, identity.ID, account.UserID)
	assert.Equal(t, "tok-1", account.AccessToken)
}

func TestSignInWithOAuthJoinsByEmail(t *testing.T) {
	svc, users, accounts := newTestService()
	seeded := users.mustSeedUser(models.User{Username: "carol", Email: "carol@gmail.com"})

	identity, err := svc.SignIn(SignInRequest{
		Kind: SignInOAuth,
		OAuth: &OAuthPayload{
			Provider:       "google",
			ProviderUserID: "acct-1",
			Email:          "carol@gmail.com",
			Tokens:         bundle("tok-1", "refresh-1"),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, identity.ID, "the email joins the provider identity to the existing account")

	account, err := accounts.GetByProviderAccountID("google", "acct-1")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, account.UserID)
}

func TestSignInRefusedWhenLinkingFails(t *testing.T) {
	svc, users, accounts := newTestService()
	users.mustSeedUser(models.User{Username: "carol", Email: "carol@gmail.com"})
	accounts.updateErr = assert.AnError
	accounts.mustSeedAccount(models.ProviderAccount{UserID: 1, Provider: "google", ProviderUserID: "acct-1"})

	_, err := svc.SignIn(SignInRequest{
		Kind: SignInOAuth,
		OAuth: &OAuthPayload{
			Provider:       "google",
			ProviderUserID: "acct-1",
			Email:          "carol@gmail.com",
			Tokens:         bundle("tok-1", "r"),
		},
	})
	assert.Error(t, err, "a half-linked account must not be signed in")
}
