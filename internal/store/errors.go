package store

import "errors"

var (
	ErrInvalidID   = errors.New("invalid identifier")
	ErrNotFound    = errors.New("resource not found")
	ErrValidation  = errors.New("validation failed")
	ErrEmptyUpdate = errors.New("no fields to update")
)
