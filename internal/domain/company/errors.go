package company

import "errors"

var (
	ErrInvalidNIP  = errors.New("nip must contain 10 digits")
	ErrInvalidName = errors.New("company name is required")
)
