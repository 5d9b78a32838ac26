package storefront

import (
	"errors"

	"bookStore/entities"
)

var (
	ErrLoginRequired = errors.New("please log in first")
	ErrEmptyCart     = errors.New("cart is empty")
	ErrCancelled     = errors.New("cancelled by user")
)

// ValidationErrors maps a form field to its message.
type ValidationErrors = entities.ValidationErrors
