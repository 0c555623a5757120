package payroll

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type StoreAPI interface {
	ListEmployees(ctx context.Context) ([]EmployeePayrollData, error)
	GetEmployee(ctx context.Context, employeeID string) (EmployeePayrollData, error)
	WorkedMinutes(ctx context.Context, employeeID string, from, to time.Time) (int, error)
	SalesTotal(ctx context.Context, employeeID string, from, to time.Time) (decimal.Decimal, error)
	Company(ctx context.Context) (CompanyInfo, error)
}
