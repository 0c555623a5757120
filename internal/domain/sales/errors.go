package sales

import "errors"

var (
	ErrInvalidAmount = errors.New("sale amount must be greater than zero")
	ErrNotFound      = errors.New("sale not found")
)
