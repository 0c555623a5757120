package absence

import (
	"context"
	"time"
)

type StoreAPI interface {
	Create(ctx context.Context, employeeID, reason string, date time.Time) (Request, error)
	Get(ctx context.Context, requestID string) (Request, error)
	Count(ctx context.Context, status, employeeID string) (int, error)
	List(ctx context.Context, status, employeeID string, limit, offset int) ([]Request, error)
	UpdateStatus(ctx context.Context, requestID, from, to string) (bool, error)
}
