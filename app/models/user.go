package models

import (
	"fmt"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// usernameRegex mirrors the signup rules: letters, digits and underscores only.
var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

type User struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Username    string         `gorm:"uniqueIndex;type:varchar(50)" json:"username" validate:"required,min=3,max=50"`
	Email       string         `gorm:"uniqueIndex;type:varchar(200) CHARACTER SET utf8 COLLATE utf8_bin" json:"email" validate:"required,email,min=5,max=200"`
	Name        string         `gorm:"type:varchar(150)" json:"name" validate:"max=150"`
	Password    string         `gorm:"type:text" json:"-"` // empty for OAuth-created users, no credential login possible
	LoginCount  uint           `gorm:"default:0" json:"login_count"`
	LastLoginAt *time.Time     `gorm:"type:timestamp;default:null" json:"last_login_at"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) Validate() error {
	v := validator.New()

	return v.Struct(u)
}

// CreateUser builds a credential-login user from the signup form values.
// The placeholder email keeps the unique email index satisfied for users
// who never sign in with Google.
func CreateUser(username string, password string) (*User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("username and password are required")
	}
	if !usernameRegex.MatchString(username) {
		return nil, fmt.Errorf("username can only contain letters, numbers, and underscores")
	}
	if len(username) < 3 || len(username) > 20 {
		return nil, fmt.Errorf("username must be between 3 and 20 characters")
	}

	pw, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Username: username,
		Email:    fmt.Sprintf("%s@placeholder.com", username),
		Password: pw,
	}

	err = u.Validate()
	if err != nil {
		return nil, err
	}

	return u, nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	return string(bytes), err
}

// CheckPasswordHash compares the given password with the stored hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	return err == nil
}

// CheckPassword verifies if the provided password matches the user's stored password.
// Users created through OAuth carry an empty hash and can never pass this check.
func (u *User) CheckPassword(password string) bool {
	if u.Password == "" {
		return false
	}
	return CheckPasswordHash(password, u.Password)
}

// SetPassword hashes and sets a new password for the user
func (u *User) SetPassword(password string) error {
	hashedPassword, err := HashPassword(password)
	if err != nil {
		return err
	}
	u.Password = hashedPassword
	return nil
}

// CanLoginWithPassword reports whether the account has a credential login at all.
func (u *User) CanLoginWithPassword() bool {
	return u.Password != ""
}
