package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/cinelog/cinelog/app/models"
	"github.com/cinelog/cinelog/app/repository"
)

// maxSuffixAttempts bounds the numbered-suffix search under CollisionSuffix.
const maxSuffixAttempts = 20

// Resolver maps an external identity assertion to the canonical user,
// creating one on first contact. Email is the sole cross-provider join key.
type Resolver struct {
	users  repository.UserRepository
	policy UsernameCollisionPolicy
}

func NewResolver(users repository.UserRepository, cfg Config) *Resolver {
	return &Resolver{users: users, policy: cfg.CollisionPolicy}
}

// ResolveExternal resolves the user behind an OAuth profile. The returned
// bool reports whether the user was created by this call, so the caller
// knows a brand-new account link is needed.
//
// A profile without an email is refused outright: without the join key a
// sign-in could fork an existing credential user into a second identity.
func (r *Resolver) ResolveExternal(email, name string) (*Identity, bool, error) {
	if email == "" {
		return nil, false, ErrMissingProfileEmail
	}

	user, err := r.users.GetByEmail(email)
	if err == nil {
		// Returning user: bump counters, leave username and password hash
		// untouched so an existing credential login keeps working.
		bumpLoginStats(r.users, user)
		return identityOf(user), false, nil
	}
	if !isNotFound(err) {
		return nil, false, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	user, err = r.createFromProfile(email, name)
	if err != nil {
		return nil, false, err
	}
	return identityOf(user), true, nil
}

// createFromProfile inserts a new user for a previously-unseen email.
// Unique-constraint races are resolved by the database: a concurrent insert
// of the same email wins and we fall back to the existing row.
func (r *Resolver) createFromProfile(email, name string) (*models.User, error) {
	base := usernameFromEmail(email)

	username := base
	for attempt := 0; ; attempt++ {
		now := time.Now()
		user := &models.User{
			Username:    username,
			Email:       email,
			Name:        name,
			Password:    "", // no credential login until the user sets one
			LoginCount:  1,
			LastLoginAt: &now,
		}

		err := r.users.Create(user)
		if err == nil {
			return user, nil
		}
		if !isDuplicate(err) {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}

		// Someone else created this email concurrently: use their row.
		if existing, lookupErr := r.users.GetByEmail(email); lookupErr == nil {
			bumpLoginStats(r.users, existing)
			return existing, nil
		}

		// The email is free, so the username constraint fired.
		switch r.policy {
		case CollisionSuffix:
			if attempt >= maxSuffixAttempts {
				return nil, ErrUsernameTaken
			}
			username = fmt.Sprintf("%s_%d", base, attempt+1)
		default:
			return nil, ErrUsernameTaken
		}
	}
}

// usernameFromEmail derives the deterministic username from the local part
// of the address, filtered down to the characters signup allows.
func usernameFromEmail(email string) string {
	local := email
	if at := strings.Index(email, "@"); at >= 0 {
		local = email[:at]
	}
	var b strings.Builder
	for _, c := range local {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
			b.WriteRune(c)
		case c == '.' || c == '-':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "user"
	}
	return b.String()
}
