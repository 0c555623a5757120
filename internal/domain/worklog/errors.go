package worklog

import "errors"

var (
	ErrDuplicateDay = errors.New("work log already exists for this day")
	ErrInvalidTime  = errors.New("time must be in HH:MM format")
	ErrNotFound     = errors.New("work log not found")
)
