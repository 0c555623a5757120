package worklog

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) Create(ctx context.Context, log WorkLog) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO work_logs (employee_id, work_date, start_time, end_time)
    VALUES ($1,$2,$3,$4)
    RETURNING id
  `, log.EmployeeID, log.Date, log.StartTime, log.EndTime).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return "", ErrDuplicateDay
		}
		return "", err
	}
	return id, nil
}

func (s *Store) Count(ctx context.Context, employeeID string) (int, error) {
	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM work_logs WHERE employee_id = $1", employeeID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) List(ctx context.Context, employeeID string, limit, offset int) ([]WorkLog, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, work_date, start_time, end_time, created_at
    FROM work_logs
    WHERE employee_id = $1
    ORDER BY work_date DESC
    LIMIT $2 OFFSET $3
  `, employeeID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []WorkLog
	for rows.Next() {
		var log WorkLog
		if err := rows.Scan(&log.ID, &log.EmployeeID, &log.Date, &log.StartTime, &log.EndTime, &log.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, log)
	}
	return out, rows.Err()
}

// Shifts returns logs dated within [from, to). An empty employeeID selects
// every employee.
func (s *Store) Shifts(ctx context.Context, employeeID string, from, to time.Time) ([]Shift, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT work_date, start_time, end_time
    FROM work_logs
    WHERE ($1 = '' OR employee_id::text = $1)
      AND work_date >= $2 AND work_date < $3
    ORDER BY work_date
  `, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Shift
	for rows.Next() {
		var shift Shift
		if err := rows.Scan(&shift.Date, &shift.StartTime, &shift.EndTime); err != nil {
			return nil, err
		}
		out = append(out, shift)
	}
	return out, rows.Err()
}

func (s *Store) Delete(ctx context.Context, logID string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM work_logs WHERE id = $1", logID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
