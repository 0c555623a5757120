package employees

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmailTaken       = errors.New("email already in use")
	ErrInvalidInput     = errors.New("invalid employee input")
)
