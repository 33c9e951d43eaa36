package queries

import "errors"

var (
	ErrForbidden     = errors.New("access to resource denied")
	ErrOrderNotFound = errors.New("order not found")
)
