// Package validation holds the field format rules for user and note input.
package validation

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	usernameMinLen = 3
	usernameMaxLen = 20
	passwordMinLen = 8
	titleMaxLen    = 200

	specialChars = `!@#$%^&*(),.?":{}|<>`
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

var (
	ErrUsernameLength = errors.New("Username must be between 3 and 20 characters.")
	ErrUsernameFormat = errors.New("Username must start with a letter and contain only letters, numbers, and underscores.")
	ErrWeakPassword   = errors.New("Password must be at least 8 characters long, include uppercase, lowercase, digit, and special character.")
	ErrEmailFormat    = errors.New("Enter a valid email address.")
	ErrEmailTaken     = errors.New("A user with this email already exists.")
	ErrUsernameTaken  = errors.New("A user with that username already exists.")
	ErrTitleEmpty     = errors.New("Title cannot be empty.")
	ErrTitleTooLong   = errors.New("Title cannot exceed 200 characters.")
	ErrTextEmpty      = errors.New("Text cannot be empty.")
)

// FieldErrors is a field-keyed collection of validation messages, shaped
// the way the API serializes 400 responses.
type FieldErrors map[string][]string

func (fe FieldErrors) Add(field string, err error) {
	fe[field] = append(fe[field], err.Error())
}

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for field, msgs := range fe {
		parts = append(parts, field+": "+strings.Join(msgs, "; "))
	}
	return strings.Join(parts, "; ")
}

// Username checks length and the letter-then-alphanumeric/underscore shape.
func Username(s string) error {
	if len(s) < usernameMinLen || len(s) > usernameMaxLen {
		return ErrUsernameLength
	}
	if !usernameRegex.MatchString(s) {
		return ErrUsernameFormat
	}
	return nil
}

// Password requires at least 8 characters with lowercase, uppercase, digit
// and one special character.
func Password(s string) error {
	if len(s) < passwordMinLen {
		return ErrWeakPassword
	}
	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(specialChars, r):
			hasSpecial = true
		}
	}
	if !hasLower || !hasUpper || !hasDigit || !hasSpecial {
		return ErrWeakPassword
	}
	return nil
}

// Email checks format only; uniqueness is the credential store's concern.
func Email(s string) error {
	if !emailRegex.MatchString(s) {
		return ErrEmailFormat
	}
	return nil
}

// Title trims surrounding whitespace and returns the value to store.
func Title(s string) (string, error) {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) == 0 {
		return "", ErrTitleEmpty
	}
	if utf8.RuneCountInString(trimmed) > titleMaxLen {
		return "", ErrTitleTooLong
	}
	return trimmed, nil
}

// Text trims surrounding whitespace and returns the value to store.
func Text(s string) (string, error) {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) == 0 {
		return "", ErrTextEmpty
	}
	return trimmed, nil
}
