package absence

import "errors"

var (
	ErrNotFound          = errors.New("absence request not found")
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrInvalidTransition = errors.New("absence request already decided")
	ErrInvalidStatus     = errors.New("status must be approved or rejected")
	ErrInvalidReason     = errors.New("reason is required")
)
