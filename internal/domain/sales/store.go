package sales

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) Create(ctx context.Context, sale Sale) (Sale, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO sales (employee_id, amount, sale_date)
    VALUES ($1,$2::numeric,$3)
    RETURNING id, created_at
  `, sale.EmployeeID, sale.Amount.String(), sale.Date).Scan(&sale.ID, &sale.CreatedAt)
	if err != nil {
		return Sale{}, err
	}
	return sale, nil
}

func (s *Store) Count(ctx context.Context, employeeID string) (int, error) {
	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM sales WHERE employee_id::text = $1", employeeID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) List(ctx context.Context, employeeID string, limit, offset int) ([]Sale, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, amount::text, sale_date, created_at
    FROM sales
    WHERE employee_id::text = $1
    ORDER BY sale_date DESC, created_at DESC
    LIMIT $2 OFFSET $3
  `, employeeID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Sale
	for rows.Next() {
		var sale Sale
		var amount string
		if err := rows.Scan(&sale.ID, &sale.EmployeeID, &amount, &sale.Date, &sale.CreatedAt); err != nil {
			return nil, err
		}
		if sale.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, err
		}
		out = append(out, sale)
	}
	return out, rows.Err()
}

func (s *Store) Total(ctx context.Context, employeeID string, from, to time.Time) (decimal.Decimal, int, error) {
	var total string
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COALESCE(SUM(amount), 0)::text, COUNT(1)
    FROM sales
    WHERE employee_id::text = $1 AND sale_date >= $2 AND sale_date < $3
  `, employeeID, from, to).Scan(&total, &count)
	if err != nil {
		return decimal.Zero, 0, err
	}
	amount, err := decimal.NewFromString(total)
	if err != nil {
		return decimal.Zero, 0, err
	}
	return amount, count, nil
}

func (s *Store) Delete(ctx context.Context, saleID string) error {
	cmd, err := s.DB.Exec(ctx, "DELETE FROM sales WHERE id::text = $1", saleID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
