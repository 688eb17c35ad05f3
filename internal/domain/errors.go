package domain

import "errors"

var (
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrDuplicateDevice    = errors.New("mac address already registered")
	ErrUnknownDevice      = errors.New("device not found")
	ErrClothingNotFound   = errors.New("clothing item not found")
	ErrInvalidInput       = errors.New("invalid input")
)
