package domain

import (
	"errors"
	"strings"
	"time"
	"unicode"
)

// Common validation errors
var (
	ErrEmptyUsername = errors.New("username cannot be empty")
	ErrEmptyEmail    = errors.New("email cannot be empty")
	ErrInvalidEmail  = errors.New("invalid email format")
	ErrEmptyPassword = errors.New("password cannot be empty")
)

// User represents a member of the gaming community.
// The Games collection is ordered; a game appears at most once per user.
type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	Slug           string    `json:"slug"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // Plaintext credential, only set transiently on create/update
	HashedPassword string    `json:"-"` // Never exposed in JSON
	Bio            string    `json:"bio"`
	ProfilePicture string    `json:"profile_picture"`
	BannerPicture  string    `json:"banner_picture"`
	Games          []*Game   `json:"games,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new User with the given username, email and password.
// The ID is zero until the store assigns one; the slug is derived by the
// user service at creation time.
func NewUser(username, email, password string) (*User, error) {
	user := &User{
		Username:  username,
		Email:     email,
		Password:  password,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.Username == "" {
		return ErrEmptyUsername
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}

	if !validateEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	// Existing users carry only the hashed credential; new users carry the
	// plaintext one until the store hashes it.
	if u.Password == "" && u.HashedPassword == "" {
		return ErrEmptyPassword
	}

	return nil
}

// HasGame reports whether the user's games collection already contains a
// game with the given id.
func (u *User) HasGame(gameID int64) bool {
	for _, g := range u.Games {
		if g.ID == gameID {
			return true
		}
	}
	return false
}

// UserPatch is a partial-update payload for a user. Nil fields mean
// "do not change".
type UserPatch struct {
	Username       *string `json:"username"`
	Email          *string `json:"email"`
	Password       *string `json:"password"`
	Bio            *string `json:"bio"`
	ProfilePicture *string `json:"profile_picture"`
	BannerPicture  *string `json:"banner_picture"`
}

// Slugify derives a URL-safe identifier from a username. It is deterministic
// and idempotent: slugifying a slug yields the same slug. Letters and digits
// are lower-cased, separator runs become a single hyphen, everything else is
// dropped.
func Slugify(username string) string {
	var b strings.Builder
	b.Grow(len(username))

	pendingHyphen := false
	for _, r := range strings.TrimSpace(username) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsSpace(r) || r == '-' || r == '_':
			pendingHyphen = true
		}
	}

	return b.String()
}

// validateEmailFormat performs basic validation of email format.
// Returns true if the email appears to be in a valid format.
func validateEmailFormat(email string) bool {
	atIndex := strings.IndexByte(email, '@')
	if atIndex <= 0 || atIndex == len(email)-1 {
		return false
	}

	// Domain needs a dot that is neither first nor last.
	domain := email[atIndex+1:]
	dotIndex := strings.IndexByte(domain, '.')
	return dotIndex > 0 && dotIndex < len(domain)-1
}
