package domain

import "errors"

var (
	ErrNotFound     = errors.New("record not found")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
)
