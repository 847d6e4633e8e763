package domain

import "errors"

var (
	ErrListingNotFound = errors.New("listing not found")
	ErrEstimateFailed  = errors.New("price estimate failed")
	ErrNotAnImage      = errors.New("uploaded file is not an image")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrIncompleteSignup   = errors.New("username, email and password are required")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrUsernameInUse      = errors.New("username already in use")
	ErrEmailInUse         = errors.New("email already in use")
	ErrForbidden          = errors.New("not allowed")
	ErrAlreadyFavorite    = errors.New("listing already in favorites")
	ErrNotFavorite        = errors.New("listing not in favorites")
)
