package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"workforce/internal/domain/worklog"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const employeeColumns = `
    id, name, position, email, hourly_rate::text, age, is_student,
    contract_type, bonus_type, bonus_value::text`

func (s *Store) ListEmployees(ctx context.Context) ([]EmployeePayrollData, error) {
	rows, err := s.DB.Query(ctx, "SELECT "+employeeColumns+" FROM employees ORDER BY name, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EmployeePayrollData
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, emp)
	}
	return out, rows.Err()
}

func (s *Store) GetEmployee(ctx context.Context, employeeID string) (EmployeePayrollData, error) {
	row := s.DB.QueryRow(ctx, "SELECT "+employeeColumns+" FROM employees WHERE id::text = $1", employeeID)
	emp, err := scanEmployee(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return EmployeePayrollData{}, ErrEmployeeNotFound
	}
	return emp, err
}

func scanEmployee(row pgx.Row) (EmployeePayrollData, error) {
	var emp EmployeePayrollData
	var rate, bonusValue, contract, bonusType string
	if err := row.Scan(&emp.EmployeeID, &emp.Name, &emp.Position, &emp.Email, &rate, &emp.Profile.Age,
		&emp.Profile.IsStudent, &contract, &bonusType, &bonusValue); err != nil {
		return EmployeePayrollData{}, err
	}
	var err error
	if emp.HourlyRate, err = decimal.NewFromString(rate); err != nil {
		return EmployeePayrollData{}, fmt.Errorf("employee %s hourly rate: %w", emp.EmployeeID, err)
	}
	if emp.Bonus.Value, err = decimal.NewFromString(bonusValue); err != nil {
		return EmployeePayrollData{}, fmt.Errorf("employee %s bonus value: %w", emp.EmployeeID, err)
	}
	emp.Profile.ContractType = ContractType(contract)
	emp.Bonus.Type = BonusType(bonusType)
	return emp, nil
}

func (s *Store) WorkedMinutes(ctx context.Context, employeeID string, from, to time.Time) (int, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT work_date, start_time, end_time
    FROM work_logs
    WHERE employee_id::text = $1 AND work_date >= $2 AND work_date < $3
  `, employeeID, from, to)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var shifts []worklog.Shift
	for rows.Next() {
		var shift worklog.Shift
		if err := rows.Scan(&shift.Date, &shift.StartTime, &shift.EndTime); err != nil {
			return 0, err
		}
		shifts = append(shifts, shift)
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}
	return worklog.TotalMinutes(shifts), nil
}

func (s *Store) SalesTotal(ctx context.Context, employeeID string, from, to time.Time) (decimal.Decimal, error) {
	var total string
	err := s.DB.QueryRow(ctx, `
    SELECT COALESCE(SUM(amount), 0)::text
    FROM sales
    WHERE employee_id::text = $1 AND sale_date >= $2 AND sale_date < $3
  `, employeeID, from, to).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(total)
}

func (s *Store) Company(ctx context.Context) (CompanyInfo, error) {
	var info CompanyInfo
	err := s.DB.QueryRow(ctx, `
    SELECT name, nip, address, is_premium, enable_sales_bonuses
    FROM company_settings
    WHERE id = 1
  `).Scan(&info.Name, &info.NIP, &info.Address, &info.IsPremium, &info.EnableSalesBonuses)
	if errors.Is(err, pgx.ErrNoRows) {
		return CompanyInfo{}, nil
	}
	return info, err
}
