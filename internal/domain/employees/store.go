package employees

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"workforce/internal/domain/payroll"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const selectColumns = `
    SELECT id, name, position, email, COALESCE(phone, ''), hourly_rate::text, age, is_student,
           contract_type, bonus_type, bonus_value::text, created_at, updated_at
    FROM employees`

func (s *Store) Count(ctx context.Context) (int, error) {
	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees").Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) List(ctx context.Context, limit, offset int) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, selectColumns+" ORDER BY name, id LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, emp)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, employeeID string) (Employee, error) {
	emp, err := scanEmployee(s.DB.QueryRow(ctx, selectColumns+" WHERE id::text = $1", employeeID))
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrEmployeeNotFound
	}
	return emp, err
}

func (s *Store) Create(ctx context.Context, emp Employee) (Employee, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (name, position, email, phone, hourly_rate, age, is_student, contract_type, bonus_type, bonus_value)
    VALUES ($1,$2,$3,$4,$5::numeric,$6,$7,$8,$9,$10::numeric)
    RETURNING id
  `, emp.Name, emp.Position, emp.Email, emp.Phone, emp.HourlyRate.String(), emp.Age, emp.IsStudent,
		string(emp.ContractType), string(emp.BonusType), emp.BonusValue.String()).Scan(&id)
	if err != nil {
		return Employee{}, mapWriteError(err)
	}
	return s.Get(ctx, id)
}

func (s *Store) Update(ctx context.Context, employeeID string, emp Employee) (Employee, error) {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET name = $1,
        position = $2,
        email = $3,
        phone = $4,
        hourly_rate = $5::numeric,
        age = $6,
        is_student = $7,
        contract_type = $8,
        bonus_type = $9,
        bonus_value = $10::numeric,
        updated_at = now()
    WHERE id::text = $11
  `, emp.Name, emp.Position, emp.Email, emp.Phone, emp.HourlyRate.String(), emp.Age, emp.IsStudent,
		string(emp.ContractType), string(emp.BonusType), emp.BonusValue.String(), employeeID)
	if err != nil {
		return Employee{}, mapWriteError(err)
	}
	if cmd.RowsAffected() == 0 {
		return Employee{}, ErrEmployeeNotFound
	}
	return s.Get(ctx, employeeID)
}

func (s *Store) UpdatePhone(ctx context.Context, employeeID, phone string) error {
	cmd, err := s.DB.Exec(ctx, "UPDATE employees SET phone = $1, updated_at = now() WHERE id::text = $2", phone, employeeID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

// Delete removes the employee; work logs, sales and absences cascade.
func (s *Store) Delete(ctx context.Context, employeeID string) error {
	cmd, err := s.DB.Exec(ctx, "DELETE FROM employees WHERE id::text = $1", employeeID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

func scanEmployee(row pgx.Row) (Employee, error) {
	var emp Employee
	var rate, bonusValue, contract, bonusType string
	if err := row.Scan(&emp.ID, &emp.Name, &emp.Position, &emp.Email, &emp.Phone, &rate, &emp.Age, &emp.IsStudent,
		&contract, &bonusType, &bonusValue, &emp.CreatedAt, &emp.UpdatedAt); err != nil {
		return Employee{}, err
	}
	var err error
	if emp.HourlyRate, err = decimal.NewFromString(rate); err != nil {
		return Employee{}, fmt.Errorf("hourly rate: %w", err)
	}
	if emp.BonusValue, err = decimal.NewFromString(bonusValue); err != nil {
		return Employee{}, fmt.Errorf("bonus value: %w", err)
	}
	emp.ContractType = payroll.ContractType(contract)
	emp.BonusType = payroll.BonusType(bonusType)
	return emp, nil
}

func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrEmailTaken
	}
	return err
}
