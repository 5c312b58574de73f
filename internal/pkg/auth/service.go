package auth

import "github.com/cinelog/cinelog/app/repository"

// Service wires the auth components together behind a single constructor.
// The configuration is captured at construction and shared read-only.
type Service struct {
	Verifier *Verifier
	Resolver *Resolver
	Linker   *Linker
	Tokens   *TokenService
	Guard    *Guard
}

func NewService(repos *repository.Repositories, cfg Config) *Service {
	cfg = cfg.withDefaults()
	tokens := NewTokenService(cfg)
	return &Service{
		Verifier: NewVerifier(repos.User),
		Resolver: NewResolver(repos.User, cfg),
		Linker:   NewLinker(repos.ProviderAccount, cfg),
		Tokens:   tokens,
		Guard:    NewGuard(tokens, cfg),
	}
}

// SignIn runs a validated sign-in request through the matching pipeline and
// returns the resolved identity. OAuth requests are fully linked before the
// identity is returned; a linking failure refuses the sign-in rather than
// authenticating a half-linked account.
func (s *Service) SignIn(req SignInRequest) (*Identity, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	switch req.Kind {
	case SignInCredentials:
		return s.Verifier.Verify(req.Credentials.Username, req.Credentials.Password)
	default:
		identity, _, err := s.Resolver.ResolveExternal(req.OAuth.Email, req.OAuth.Name)
		if err != nil {
			return nil, err
		}
		if _, err := s.Linker.LinkOrUpdate(identity.ID, req.OAuth.Provider, req.OAuth.ProviderUserID, req.OAuth.Tokens); err != nil {
			return nil, err
		}
		return identity, nil
	}
}
