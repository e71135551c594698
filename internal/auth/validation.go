package auth

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/vidinsight/backend/internal/models"
)

const (
	minPasswordLength = 6
	minNameLength     = 2

	// DefaultAvatar is assigned to every synthesized user.
	DefaultAvatar = "https://images.pexels.com/photos/1212984/pexels-photo-1212984.jpeg?auto=compress&cs=tinysrgb&w=150"
)

var (
	// ErrInvalidCredentials is the umbrella error for every rejected login or registration.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidEmail indicates the email is not shaped like local@domain.tld.
	ErrInvalidEmail = fmt.Errorf("%w: invalid email address", ErrInvalidCredentials)
	// ErrPasswordTooShort indicates the password has fewer than six characters.
	ErrPasswordTooShort = fmt.Errorf("%w: password must be at least %d characters", ErrInvalidCredentials, minPasswordLength)
	// ErrNameTooShort indicates the trimmed display name has fewer than two characters.
	ErrNameTooShort = fmt.Errorf("%w: name must be at least %d characters", ErrInvalidCredentials, minNameLength)
)

// emailBody excludes "@" and every character ECMAScript treats as whitespace,
// which is wider than RE2's \s.
const emailBody = `[^\t\n\v\f\r \p{Zs}\x{2028}\x{2029}\x{FEFF}@]+`

var emailPattern = regexp.MustCompile(`^` + emailBody + `@` + emailBody + `\.` + emailBody + `$`)

// ValidateCredentials checks the email shape and password length.
func ValidateCredentials(email, password string) error {
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	// Length is measured in UTF-16 code units so astral characters count twice.
	if len(utf16.Encode([]rune(password))) < minPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// ValidateName checks the trimmed display name length.
func ValidateName(name string) error {
	if utf8.RuneCountInString(strings.TrimSpace(name)) < minNameLength {
		return ErrNameTooShort
	}
	return nil
}

// RoleFor grants admin to any email containing "admin".
func RoleFor(email string) models.Role {
	if strings.Contains(email, "admin") {
		return models.RoleAdmin
	}
	return models.RoleUser
}

// DisplayName derives a name from the local part of email with its first
// letter upper-cased.
func DisplayName(email string) string {
	local, _, _ := strings.Cut(email, "@")
	r, size := utf8.DecodeRuneInString(local)
	if r == utf8.RuneError {
		return local
	}
	return string(unicode.ToUpper(r)) + local[size:]
}
