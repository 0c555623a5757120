package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type StoreAPI interface {
	Create(ctx context.Context, sale Sale) (Sale, error)
	Count(ctx context.Context, employeeID string) (int, error)
	List(ctx context.Context, employeeID string, limit, offset int) ([]Sale, error)
	Total(ctx context.Context, employeeID string, from, to time.Time) (decimal.Decimal, int, error)
	Delete(ctx context.Context, saleID string) error
}
