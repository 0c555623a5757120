package payroll

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid payroll input")
	ErrInvalidRates     = errors.New("invalid payroll rate table")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrInvalidMonth     = errors.New("month must be in YYYY-MM format")
	ErrPremiumRequired  = errors.New("premium plan required")
)
