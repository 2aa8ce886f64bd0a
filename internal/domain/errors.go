package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrNotOwner          = errors.New("not the product owner")
	ErrNotSender         = errors.New("not the message sender")
	ErrSelfMessage       = errors.New("sender and recipient are the same user")
	ErrInvalidRecipient  = errors.New("recipient does not own the product")
	ErrEmptyResult       = errors.New("empty result")
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnauthorized      = errors.New("unauthorized")
)
