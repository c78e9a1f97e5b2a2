package service

import "errors"

var (
	ErrNotFound              = errors.New("not_found")
	ErrAccessDenied          = errors.New("access_denied")
	ErrInvalidTransition     = errors.New("invalid_transition")
	ErrInsufficientInventory = errors.New("insufficient_inventory")
	ErrAlreadyPaid           = errors.New("already_paid")
	ErrCropUnavailable       = errors.New("crop_unavailable")
	ErrConflict              = errors.New("conflict")
	ErrUsernameTaken         = errors.New("username_taken")
	ErrEmailTaken            = errors.New("email_taken")
)
