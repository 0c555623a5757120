package worklog

import (
	"context"
	"time"
)

type StoreAPI interface {
	Create(ctx context.Context, log WorkLog) (string, error)
	Count(ctx context.Context, employeeID string) (int, error)
	List(ctx context.Context, employeeID string, limit, offset int) ([]WorkLog, error)
	Shifts(ctx context.Context, employeeID string, from, to time.Time) ([]Shift, error)
	Delete(ctx context.Context, logID string) error
}
