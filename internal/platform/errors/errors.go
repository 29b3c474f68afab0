package apperrors

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("not found")
	ErrNoActiveSession     = errors.New("no active session")
	ErrActiveSessionExists = errors.New("active session already exists")
	ErrInsufficientCoins   = errors.New("not enough coins")
	ErrPurchaseLimit       = errors.New("purchase limit reached")
	ErrNotOwned            = errors.New("item not owned")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrNotConfigured       = errors.New("not configured")
)
