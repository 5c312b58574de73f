package auth

import (
	"fmt"
	"log"
	"time"

	"github.com/cinelog/cinelog/app/models"
	"github.com/cinelog/cinelog/app/repository"
)

// Identity is the public slice of a user record handed to callers after a
// successful sign-in. It never carries the password hash.
type Identity struct {
	ID       uint
	Username string
	Email    string
}

func identityOf(u *models.User) *Identity {
	return &Identity{ID: u.ID, Username: u.Username, Email: u.Email}
}

// Verifier checks username/password pairs against the stored bcrypt hashes.
type Verifier struct {
	users repository.UserRepository
}

func NewVerifier(users repository.UserRepository) *Verifier {
	return &Verifier{users: users}
}

// Verify resolves a credential pair to an identity. On success the login
// counters are bumped best-effort; a bookkeeping failure never fails the
// login itself.
func (v *Verifier) Verify(username, password string) (*Identity, error) {
	if username == "" || password == "" {
		return nil, ErrMissingInput
	}

	user, err := v.users.GetByUsername(username)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	// bcrypt compares in constant time; an empty stored hash (OAuth-only
	// account) can never match.
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredential
	}

	bumpLoginStats(v.users, user)

	return identityOf(user), nil
}

// bumpLoginStats records a successful login. Failures are logged and
// swallowed so bookkeeping never blocks authentication.
func bumpLoginStats(users repository.UserRepository, user *models.User) {
	user.LoginCount++
	now := time.Now()
	user.LastLoginAt = &now
	if err := users.UpdateLoginStats(user.ID, now, user.LoginCount); err != nil {
		log.Printf("failed to update login stats for user %d: %v", user.ID, err)
	}
}
