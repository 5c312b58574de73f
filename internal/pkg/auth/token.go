package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the claim set embedded in a session token. The user id
// is written twice on purpose: into the registered subject claim and into
// the internal "id" claim. First-login tokens historically carried only the
// internal claim, adapter-managed ones populate the subject, and one
// consumer must keep decoding both shapes.
type SessionClaims struct {
	UserID   string `json:"id,omitempty"`
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// Session is the request-scoped view reconstructed from a valid token.
type Session struct {
	ID       string
	Username string
}

// ClaimEvent is one step of a sign-in flow that contributes claims.
// Events are reduced in a fixed order: the login event first, then the
// refresh event. Claim merging is a pure fold, never shared mutation.
type ClaimEvent struct {
	// Login carries the identity established at sign-in.
	Login *Identity
	// Refresh carries the identity re-derived from the user record on an
	// adapter refresh; it overrides whatever login wrote.
	Refresh *Identity
}

// ReduceClaims folds one event into the previous claim set and returns the
// next one. The input is never mutated.
func ReduceClaims(prev SessionClaims, ev ClaimEvent) SessionClaims {
	next := prev
	if ev.Login != nil {
		applyIdentity(&next, ev.Login)
	}
	if ev.Refresh != nil {
		applyIdentity(&next, ev.Refresh)
	}
	return next
}

func applyIdentity(c *SessionClaims, id *Identity) {
	sub := strconv.FormatUint(uint64(id.ID), 10)
	c.UserID = sub
	c.Subject = sub
	c.Username = id.Username
}

// TokenService issues and materializes the signed, stateless session token.
// Both directions are pure transforms with no I/O.
type TokenService struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

func NewTokenService(cfg Config) *TokenService {
	cfg = cfg.withDefaults()
	return &TokenService{
		secret:   cfg.TokenSecret,
		lifetime: cfg.TokenLifetime,
		now:      time.Now,
	}
}

// Issue signs a token for a resolved identity. The expiry is an absolute
// lifetime from issuance; it does not slide on later requests.
func (s *TokenService) Issue(identity *Identity) (string, error) {
	now := s.now()
	claims := ReduceClaims(SessionClaims{}, ClaimEvent{Login: identity})
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.lifetime))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Materialize reconstructs the session view from a token string. Anything
// wrong with the token (bad signature, expired, garbage) degrades to nil,
// meaning anonymous; it is never an error the caller has to handle.
func (s *TokenService) Materialize(tokenStr string) *Session {
	if tokenStr == "" {
		return nil
	}

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return nil
	}

	// Subject first, internal id claim as the compatibility fallback.
	id := claims.Subject
	if id == "" {
		id = claims.UserID
	}
	if id == "" {
		return nil
	}

	return &Session{ID: id, Username: claims.Username}
}
