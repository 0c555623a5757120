package payroll

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"workforce/internal/domain/worklog"
)

const monthLayout = "2006-01"

// Observer is told about every breakdown the service produces.
type Observer func(Breakdown)

type Service struct {
	store    StoreAPI
	calc     *Calculator
	workers  int
	observer Observer
}

func NewService(store StoreAPI, calc *Calculator, workers int) *Service {
	if workers <= 0 {
		workers = 4
	}
	return &Service{store: store, calc: calc, workers: workers}
}

func (s *Service) SetObserver(observer Observer) {
	s.observer = observer
}

func (s *Service) Rates() RateTable {
	return s.calc.Rates()
}

// Preview runs the calculator on caller supplied figures without touching the store.
func (s *Service) Preview(grossSalary, bonusAmount decimal.Decimal, profile TaxProfile) (Breakdown, error) {
	return s.compute(grossSalary, profile, bonusAmount)
}

func (s *Service) compute(grossSalary decimal.Decimal, profile TaxProfile, bonusAmount decimal.Decimal) (Breakdown, error) {
	breakdown, err := s.calc.ComputeNetSalary(grossSalary, profile, bonusAmount)
	if err != nil {
		return Breakdown{}, err
	}
	if s.observer != nil {
		s.observer(breakdown)
	}
	return breakdown, nil
}

// ParseMonth reads a YYYY-MM value and returns the first day of that month in UTC.
func ParseMonth(raw string) (time.Time, error) {
	month, err := time.Parse(monthLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidMonth, raw)
	}
	return month, nil
}

// MonthRange returns the half-open range [first day, first day of next month).
func MonthRange(month time.Time) (time.Time, time.Time) {
	from := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

func (s *Service) EstimateForEmployee(ctx context.Context, employeeID string, month time.Time) (Estimate, error) {
	emp, err := s.store.GetEmployee(ctx, employeeID)
	if err != nil {
		return Estimate{}, err
	}
	company, err := s.store.Company(ctx)
	if err != nil {
		return Estimate{}, err
	}
	return s.estimate(ctx, emp, company, month)
}

// EstimateAll estimates every employee for the month, ordered by name.
func (s *Service) EstimateAll(ctx context.Context, month time.Time) ([]Estimate, error) {
	employees, err := s.store.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	company, err := s.store.Company(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Estimate, len(employees))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.workers)
	for i, emp := range employees {
		i, emp := i, emp
		group.Go(func() error {
			estimate, err := s.estimate(groupCtx, emp, company, month)
			if err != nil {
				return fmt.Errorf("estimate %s: %w", emp.EmployeeID, err)
			}
			out[i] = estimate
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].EmployeeID < out[j].EmployeeID
	})
	return out, nil
}

func (s *Service) estimate(ctx context.Context, emp EmployeePayrollData, company CompanyInfo, month time.Time) (Estimate, error) {
	from, to := MonthRange(month)

	minutes, err := s.store.WorkedMinutes(ctx, emp.EmployeeID, from, to)
	if err != nil {
		return Estimate{}, err
	}
	salesTotal, err := s.store.SalesTotal(ctx, emp.EmployeeID, from, to)
	if err != nil {
		return Estimate{}, err
	}

	hours := worklog.MinutesToHours(minutes)
	gross := RoundCents(emp.HourlyRate.Mul(decimal.NewFromInt(int64(minutes))).Div(decimal.NewFromInt(60)))
	bonus, err := ComputeBonus(emp.Bonus, salesTotal, company.EnableSalesBonuses)
	if err != nil {
		return Estimate{}, err
	}
	breakdown, err := s.compute(gross, emp.Profile, bonus)
	if err != nil {
		return Estimate{}, err
	}

	return Estimate{
		EmployeeID: emp.EmployeeID,
		Name:       emp.Name,
		Position:   emp.Position,
		Month:      from.Format(monthLayout),
		Hours:      hours.Round(2),
		HourlyRate: emp.HourlyRate,
		SalesTotal: salesTotal,
		Profile:    emp.Profile,
		Breakdown:  breakdown,
	}, nil
}

func (s *Service) requirePremium(ctx context.Context) (CompanyInfo, error) {
	company, err := s.store.Company(ctx)
	if err != nil {
		return CompanyInfo{}, err
	}
	if !company.IsPremium {
		return CompanyInfo{}, ErrPremiumRequired
	}
	return company, nil
}

// Payslip renders a PDF for one employee and month. Premium only.
func (s *Service) Payslip(ctx context.Context, employeeID string, month time.Time) ([]byte, error) {
	company, err := s.requirePremium(ctx)
	if err != nil {
		return nil, err
	}
	estimate, err := s.EstimateForEmployee(ctx, employeeID, month)
	if err != nil {
		return nil, err
	}
	return RenderPayslipPDF(company, estimate)
}

// Register returns the month's estimates for export. Premium only.
func (s *Service) Register(ctx context.Context, month time.Time) (CompanyInfo, []Estimate, error) {
	company, err := s.requirePremium(ctx)
	if err != nil {
		return CompanyInfo{}, nil, err
	}
	estimates, err := s.EstimateAll(ctx, month)
	if err != nil {
		return CompanyInfo{}, nil, err
	}
	return company, estimates, nil
}
