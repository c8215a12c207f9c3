package purchaserequest

import "errors"

var (
	ErrNotFound          = errors.New("purchase request not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrValidation        = errors.New("validation failed")
)
