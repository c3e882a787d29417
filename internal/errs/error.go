package errs

import (
	"errors"
)

var (
	ErrAuthFailed        = errors.New("authentication failed")
	ErrValidation        = errors.New("validation failed")
	ErrUserConflict      = errors.New("username already taken")
	ErrUserNotFound      = errors.New("user not found")
	ErrBookNotFound      = errors.New("book not found")
	ErrBookCreate        = errors.New("book create failed")
	ErrInventoryNotFound = errors.New("inventory not found")
	ErrBookstoreNotFound = errors.New("bookstore not found")
	ErrTokenExpired      = errors.New("token expired")
	ErrSignatureInvalid  = errors.New("token signature invalid")
)
