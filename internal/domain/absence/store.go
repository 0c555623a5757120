package absence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const selectRequest = `
    SELECT r.id, r.employee_id, e.name, r.reason, r.absence_date, r.status, r.decided_at, r.created_at
    FROM absence_requests r
    JOIN employees e ON e.id = r.employee_id`

func (s *Store) Create(ctx context.Context, employeeID, reason string, date time.Time) (Request, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO absence_requests (employee_id, reason, absence_date, status)
    VALUES ($1,$2,$3,$4)
    RETURNING id
  `, employeeID, reason, date, StatusPending).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && (pgErr.Code == "23503" || pgErr.Code == "22P02") {
			return Request{}, ErrEmployeeNotFound
		}
		return Request{}, err
	}
	return s.Get(ctx, id)
}

func (s *Store) Get(ctx context.Context, requestID string) (Request, error) {
	req, err := scanRequest(s.DB.QueryRow(ctx, selectRequest+" WHERE r.id::text = $1", requestID))
	if errors.Is(err, pgx.ErrNoRows) {
		return Request{}, ErrNotFound
	}
	return req, err
}

func buildFilter(status, employeeID string) (string, []any) {
	where := " WHERE 1=1"
	var args []any
	if status != "" {
		args = append(args, status)
		where += fmt.Sprintf(" AND r.status = $%d", len(args))
	}
	if employeeID != "" {
		args = append(args, employeeID)
		where += fmt.Sprintf(" AND r.employee_id::text = $%d", len(args))
	}
	return where, args
}

func (s *Store) Count(ctx context.Context, status, employeeID string) (int, error) {
	where, args := buildFilter(status, employeeID)
	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM absence_requests r"+where, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) List(ctx context.Context, status, employeeID string, limit, offset int) ([]Request, error) {
	where, args := buildFilter(status, employeeID)
	query := selectRequest + where + fmt.Sprintf(" ORDER BY r.created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

// UpdateStatus moves a request from one status to another and reports whether
// a row matched, so two concurrent decisions cannot both win.
func (s *Store) UpdateStatus(ctx context.Context, requestID, from, to string) (bool, error) {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE absence_requests SET status = $1, decided_at = now()
    WHERE id::text = $2 AND status = $3
  `, to, requestID, from)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func scanRequest(row pgx.Row) (Request, error) {
	var req Request
	if err := row.Scan(&req.ID, &req.EmployeeID, &req.EmployeeName, &req.Reason, &req.Date, &req.Status, &req.DecidedAt, &req.CreatedAt); err != nil {
		return Request{}, err
	}
	req.StatusLabel = StatusLabel(req.Status)
	return req, nil
}
