package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret-do-not-use")

func newTestTokenService(at time.Time) *TokenService {
	svc := NewTokenService(Config{TokenSecret: testSecret})
	svc.now = func() time.Time { return at }
	return svc
}

func TestIssueAndMaterializeRoundtrip(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestTokenService(now)

	token, err := svc.Issue(&Identity{ID: 42, Username: "carol"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	session := svc.Materialize(token)
	require.NotNil(t, session)
	assert.Equal(t, "42", session.ID)
	assert.Equal(t, "carol", session.Username)
}

func TestMaterializeExpiredTokenIsAnonymous(t *testing.T) {
	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestTokenService(issuedAt)

	token, err := svc.Issue(&Identity{ID: 42, Username: "carol"})
	require.NoError(t, err)

	// Still valid one day before expiry, anonymous one day after.
	svc.now = func() time.Time { return issuedAt.Add(DefaultTokenLifetime - 24*time.Hour) }
	assert.NotNil(t, svc.Materialize(token))

	svc.now = func() time.Time { return issuedAt.Add(DefaultTokenLifetime + 24*time.Hour) }
	assert.Nil(t, svc.Materialize(token), "an expired token materializes to anonymous, not an error")
}

func TestMaterializeRejectsGarbage(t *testing.T) {
	svc := newTestTokenService(time.Now())

	assert.Nil(t, svc.Materialize(""))
	assert.Nil(t, svc.Materialize("not-a-token"))
	assert.Nil(t, svc.Materialize("aaaa.bbbb.cccc"))
}

func TestMaterializeRejectsWrongSecret(t *testing.T) {
	now := time.Now()
	svc := newTestTokenService(now)

	token, err := svc.Issue(&Identity{ID: 42, Username: "carol"})
	require.NoError(t, err)

	other := NewTokenService(Config{TokenSecret: []byte("someone-else")})
	other.now = func() time.Time { return now }
	assert.Nil(t, other.Materialize(token))
}

func TestMaterializeFallsBackToInternalIDClaim(t *testing.T) {
	now := time.Now()
	svc := newTestTokenService(now)

	// A first-login token from the previous stack carried only the internal
	// "id" claim and no subject.
	claims := SessionClaims{
		UserID:   "42",
		Username: "carol",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)

	session := svc.Materialize(token)
	require.NotNil(t, session)
	assert.Equal(t, "42", session.ID)
	assert.Equal(t, "carol", session.Username)
}

func TestMaterializeRejectsTokenWithoutAnyID(t *testing.T) {
	now := time.Now()
	svc := newTestTokenService(now)

	claims := SessionClaims{
		Username: "carol",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)

	assert.Nil(t, svc.Materialize(token))
}

func TestReduceClaimsOrderAndPurity(t *testing.T) {
	prev := SessionClaims{UserID: "1", Username: "old"}

	next := ReduceClaims(prev, ClaimEvent{
		Login:   &Identity{ID: 2, Username: "login"},
		Refresh: &Identity{ID: 3, Username: "refresh"},
	})

	assert.Equal(t, "3", next.UserID, "refresh overrides login within one event")
	assert.Equal(t, "3", next.Subject)
	assert.Equal(t, "refresh", next.Username)

	assert.Equal(t, "1", prev.UserID, "the previous claim set is never mutated")
	assert.Equal(t, "old", prev.Username)

	unchanged := ReduceClaims(next, ClaimEvent{})
	assert.Equal(t, next, unchanged, "an empty event is a no-op")
}
