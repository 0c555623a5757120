package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

func (s *Service) Record(ctx context.Context, employeeID string, amount decimal.Decimal, date time.Time) (Sale, error) {
	if !amount.IsPositive() {
		return Sale{}, ErrInvalidAmount
	}
	return s.store.Create(ctx, Sale{
		EmployeeID: employeeID,
		Amount:     amount.Round(2),
		Date:       time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
	})
}

func (s *Service) Count(ctx context.Context, employeeID string) (int, error) {
	return s.store.Count(ctx, employeeID)
}

func (s *Service) List(ctx context.Context, employeeID string, limit, offset int) ([]Sale, error) {
	return s.store.List(ctx, employeeID, limit, offset)
}

func (s *Service) Delete(ctx context.Context, saleID string) error {
	return s.store.Delete(ctx, saleID)
}

// MonthlyTotal sums the employee's sales for the calendar month containing month.
func (s *Service) MonthlyTotal(ctx context.Context, employeeID string, month time.Time) (MonthlyTotal, error) {
	from := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	total, count, err := s.store.Total(ctx, employeeID, from, from.AddDate(0, 1, 0))
	if err != nil {
		return MonthlyTotal{}, err
	}
	return MonthlyTotal{
		EmployeeID: employeeID,
		Month:      from.Format("2006-01"),
		Total:      total,
		Count:      count,
	}, nil
}
