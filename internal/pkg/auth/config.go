package auth

import "time"

// UsernameCollisionPolicy decides what happens when the username derived
// from an OAuth email's local part is already taken by another account.
type UsernameCollisionPolicy int

const (
	// CollisionFail refuses the sign-in with ErrUsernameTaken.
	CollisionFail UsernameCollisionPolicy = iota
	// CollisionSuffix retries with numbered suffixes (bob, bob_1, bob_2, ...).
	CollisionSuffix
)

const (
	// DefaultTokenLifetime is the fixed, non-sliding session lifetime.
	DefaultTokenLifetime = 30 * 24 * time.Hour
	// DefaultSignInPath is where the route guard sends anonymous requests.
	DefaultSignInPath = "/signin"
)

// Config carries everything the auth components need at construction time.
// It is assembled once at bootstrap and never mutated afterwards; no
// component reads ambient globals.
type Config struct {
	TokenSecret   []byte
	TokenLifetime time.Duration
	SignInPath    string

	CollisionPolicy UsernameCollisionPolicy

	// PreserveRefreshToken keeps a previously stored refresh token when a
	// later callback omits one. Google only returns the refresh token on
	// first consent, so overwriting with empty would lose it.
	PreserveRefreshToken bool
}

// withDefaults fills the zero values callers usually leave unset.
func (c Config) withDefaults() Config {
	if c.TokenLifetime == 0 {
		c.TokenLifetime = DefaultTokenLifetime
	}
	if c.SignInPath == "" {
		c.SignInPath = DefaultSignInPath
	}
	return c
}
