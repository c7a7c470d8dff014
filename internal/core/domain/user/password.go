package user

import (
	"unicode/utf8"
)

const (
	MinPasswordLength = 8
	MaxPasswordLength = 256
)

type PasswordHasher interface {
	HashPassword(password RawPassword) (PasswordHash, error)
	ValidatePassword(password RawPassword, hash PasswordHash) bool
}

// ValidateNewPassword applies the password policy. Only the length is
// enforced, composition rules are not.
func ValidateNewPassword(password RawPassword) error {
	length := utf8.RuneCountInString(string(password))
	if length < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if length > MaxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}
