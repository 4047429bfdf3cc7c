package repositories

import "errors"

var (
	ErrNotFound             = errors.New("record not found")
	ErrDuplicateUsername    = errors.New("username already exists")
	ErrDuplicateEmail       = errors.New("email already exists")
	ErrDuplicateOrderNumber = errors.New("order number already exists")
)
