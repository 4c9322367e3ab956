package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrEmptyCart is returned when checkout is attempted without items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrMissingField marks a required checkout field left blank.
	ErrMissingField = errors.New("required field missing")
)
