package user

import (
	"errors"
)

var (
	ErrEmailAlreadyExists        = errors.New("email already exists")
	ErrUserDoesNotExist          = errors.New("user does not exist")
	ErrInvalidCredentials        = errors.New("invalid credentials")
	ErrSessionDoesNotExist       = errors.New("session does not exist")
	ErrInvalidPasswordResetToken = errors.New("invalid or expired password reset token")
)

var (
	ErrPasswordTooShort             = errors.New("password is too short")
	ErrPasswordTooLong              = errors.New("password is too long")
	ErrPasswordConfirmationMismatch = errors.New("password confirmation does not match")
)
