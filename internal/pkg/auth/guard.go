package auth

import "strings"

// publicPrefixes lists everything reachable without a session: the sign-in
// page, the signup/auth APIs, the OAuth dance, and static assets. Every
// other path is guarded, including the home page.
var publicPrefixes = []string{
	"/signin",
	"/signup",
	"/api/auth/",
	"/auth/",
	"/assets/",
	"/favicon.ico",
}

// Decision is the route guard's verdict for one request.
type Decision struct {
	Allow      bool
	RedirectTo string
}

// Guard decides per request path whether an authenticated session is
// required. It is stateless; the token is the only session there is.
type Guard struct {
	tokens     *TokenService
	signInPath string
}

func NewGuard(tokens *TokenService, cfg Config) *Guard {
	cfg = cfg.withDefaults()
	return &Guard{tokens: tokens, signInPath: cfg.SignInPath}
}

// Authorize allows public paths unconditionally, allows guarded paths with
// a valid token, and redirects everything else to the sign-in page.
func (g *Guard) Authorize(path, token string) Decision {
	if isPublicPath(path) {
		return Decision{Allow: true}
	}
	if g.tokens.Materialize(token) != nil {
		return Decision{Allow: true}
	}
	return Decision{RedirectTo: g.signInPath}
}

func isPublicPath(path string) bool {
	for _, prefix := range publicPrefixes {
		if strings.HasSuffix(prefix, "/") {
			if strings.HasPrefix(path, prefix) {
				return true
			}
			continue
		}
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}
