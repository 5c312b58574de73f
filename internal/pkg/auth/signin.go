package auth

import "fmt"

// SignInKind tags which authentication method produced a sign-in request.
type SignInKind string

const (
	SignInCredentials SignInKind = "credentials"
	SignInOAuth       SignInKind = "oauth"
)

// CredentialPayload is a username/password pair from the sign-in form.
type CredentialPayload struct {
	Username string
	Password string
}

// OAuthPayload is the profile assertion plus token bundle delivered by the
// provider callback.
type OAuthPayload struct {
	Provider       string
	ProviderUserID string
	Email          string
	Name           string
	Tokens         TokenBundle
}

// SignInRequest is the tagged variant handed to the auth core. Exactly one
// payload matching Kind must be set; Validate enforces that at the boundary
// before anything reaches the resolver.
type SignInRequest struct {
	Kind        SignInKind
	Credentials *CredentialPayload
	OAuth       *OAuthPayload
}

func (r SignInRequest) Validate() error {
	switch r.Kind {
	case SignInCredentials:
		if r.Credentials == nil || r.OAuth != nil {
			return fmt.Errorf("auth: credentials request must carry exactly the credentials payload")
		}
		if r.Credentials.Username == "" || r.Credentials.Password == "" {
			return ErrMissingInput
		}
	case SignInOAuth:
		if r.OAuth == nil || r.Credentials != nil {
			return fmt.Errorf("auth: oauth request must carry exactly the oauth payload")
		}
		if r.OAuth.Provider == "" || r.OAuth.ProviderUserID == "" {
			return ErrMissingInput
		}
		if r.OAuth.Email == "" {
			return ErrMissingProfileEmail
		}
	default:
		return fmt.Errorf("auth: unknown sign-in kind %q", r.Kind)
	}
	return nil
}
