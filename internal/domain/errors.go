package domain

import "errors"

// Authorization errors
var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("resource not found")
	ErrQuotaExceeded      = errors.New("quota exceeded")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Review constraint errors
var (
	ErrSelfReview      = errors.New("cannot review your own post")
	ErrDuplicateReview = errors.New("post already reviewed by this user")
)

// User errors
var (
	ErrEmailExists = errors.New("email already registered")
)

// Media errors
var (
	ErrUploadFailed = errors.New("image upload failed")
)
