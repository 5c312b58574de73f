package auth

import (
	"errors"

	"gorm.io/gorm"
)

// Typed sign-in failures. Handlers map all of these to one generic
// user-facing message so a caller cannot probe which field was wrong.
var (
	ErrMissingInput        = errors.New("auth: username and password are required")
	ErrUserNotFound        = errors.New("auth: no user found with this username")
	ErrInvalidCredential   = errors.New("auth: invalid password")
	ErrMissingProfileEmail = errors.New("auth: provider profile carries no email")
	ErrUsernameTaken       = errors.New("auth: derived username is already taken")
	ErrConflict            = errors.New("auth: conflicting concurrent write")
	ErrStoreUnavailable    = errors.New("auth: persistence unavailable")
)

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// isDuplicate reports whether a create lost a unique-constraint race.
// Requires TranslateError on the gorm config so driver errors surface
// as gorm.ErrDuplicatedKey.
func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
