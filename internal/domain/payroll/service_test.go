package payroll

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

type fakeStore struct {
	employees []EmployeePayrollData
	minutes   map[string]int
	sales     map[string]decimal.Decimal
	company   CompanyInfo
	failOn    string
}

func (f *fakeStore) ListEmployees(context.Context) ([]EmployeePayrollData, error) {
	return append([]EmployeePayrollData(nil), f.employees...), nil
}

func (f *fakeStore) GetEmployee(_ context.Context, employeeID string) (EmployeePayrollData, error) {
	for _, emp := range f.employees {
		if emp.EmployeeID == employeeID {
			return emp, nil
		}
	}
	return EmployeePayrollData{}, ErrEmployeeNotFound
}

func (f *fakeStore) WorkedMinutes(_ context.Context, employeeID string, from, to time.Time) (int, error) {
	if employeeID == f.failOn {
		return 0, errors.New("work logs unavailable")
	}
	if from.Day() != 1 || to.Sub(from) < 28*24*time.Hour {
		return 0, errors.New("expected a whole month range")
	}
	return f.minutes[employeeID], nil
}

func (f *fakeStore) SalesTotal(_ context.Context, employeeID string, _, _ time.Time) (decimal.Decimal, error) {
	if total, ok := f.sales[employeeID]; ok {
		return total, nil
	}
	return decimal.Zero, nil
}

func (f *fakeStore) Company(context.Context) (CompanyInfo, error) {
	return f.company, nil
}

func newTestService(t *testing.T, store StoreAPI) *Service {
	t.Helper()
	calc, err := NewCalculator(DefaultRates())
	if err != nil {
		t.Fatalf("calculator: %v", err)
	}
	return NewService(store, calc, 2)
}

func demoStore() *fakeStore {
	return &fakeStore{
		employees: []EmployeePayrollData{
			{
				EmployeeID: "e-3", Name: "Piotr Wiśniewski", Position: "Manager",
				HourlyRate: dec("45"),
				Profile:    TaxProfile{Age: 32, ContractType: ContractEmployment},
				Bonus:      BonusPolicy{Type: BonusNone, Value: decimal.Zero},
			},
			{
				EmployeeID: "e-1", Name: "Jan Kowalski", Position: "Sales",
				HourlyRate: dec("50"),
				Profile:    TaxProfile{Age: 30, ContractType: ContractEmployment},
				Bonus:      BonusPolicy{Type: BonusPercentage, Value: dec("5")},
			},
			{
				EmployeeID: "e-2", Name: "Anna Nowak", Position: "Assistant",
				HourlyRate: dec("40"),
				Profile:    TaxProfile{Age: 20, IsStudent: true, ContractType: ContractMandate},
				Bonus:      BonusPolicy{Type: BonusFixed, Value: dec("0")},
			},
		},
		minutes: map[string]int{
			"e-3": 160 * 60,
			"e-1": 100 * 60,
			"e-2": 100 * 60,
		},
		sales:   map[string]decimal.Decimal{"e-1": dec("20000")},
		company: CompanyInfo{Name: "Demo sp. z o.o.", NIP: "1234567890", EnableSalesBonuses: true},
	}
}

func TestEstimateForEmployeeMatchesBaseline(t *testing.T) {
	svc := newTestService(t, demoStore())
	month, _ := ParseMonth("2025-06")

	estimate, err := svc.EstimateForEmployee(context.Background(), "e-3", month)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if estimate.Month != "2025-06" {
		t.Fatalf("expected month 2025-06, got %s", estimate.Month)
	}
	assertAmount(t, "hours", estimate.Hours, "160")
	assertAmount(t, "gross", estimate.Breakdown.GrossSalary, "7200")
	assertAmount(t, "social", estimate.Breakdown.SocialInsuranceContribution, "987.12")
	assertAmount(t, "health", estimate.Breakdown.HealthInsuranceContribution, "559.1592")
	assertAmount(t, "tax", estimate.Breakdown.IncomeTaxAdvance, "416")
	assertAmount(t, "net", estimate.Breakdown.NetSalary, "5237.7208")
}

func TestEstimateAppliesSalesBonus(t *testing.T) {
	store := demoStore()
	svc := newTestService(t, store)
	month, _ := ParseMonth("2025-06")

	estimate, err := svc.EstimateForEmployee(context.Background(), "e-1", month)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertAmount(t, "bonus", estimate.Breakdown.BonusAmount, "1000")
	assertAmount(t, "social", estimate.Breakdown.SocialInsuranceContribution, "822.6")
	assertAmount(t, "tax", estimate.Breakdown.IncomeTaxAdvance, "291")
	assertAmount(t, "net", estimate.Breakdown.NetSalary, "4420.434")

	store.company.EnableSalesBonuses = false
	estimate, err = svc.EstimateForEmployee(context.Background(), "e-1", month)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertAmount(t, "bonus", estimate.Breakdown.BonusAmount, "0")
}

func TestEstimateRoundsGrossToCents(t *testing.T) {
	store := &fakeStore{
		employees: []EmployeePayrollData{{
			EmployeeID: "e-9", Name: "Part Timer", HourlyRate: dec("33.33"),
			Profile: TaxProfile{Age: 40, ContractType: ContractEmployment},
		}},
		minutes: map[string]int{"e-9": 50},
	}
	svc := newTestService(t, store)
	month, _ := ParseMonth("2025-02")

	estimate, err := svc.EstimateForEmployee(context.Background(), "e-9", month)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertAmount(t, "gross", estimate.Breakdown.GrossSalary, "27.78")
	assertAmount(t, "hours", estimate.Hours, "0.83")
}

func TestEstimateForUnknownEmployee(t *testing.T) {
	svc := newTestService(t, demoStore())
	if _, err := svc.EstimateForEmployee(context.Background(), "missing", time.Now()); !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestEstimateAllOrdersByNameAndObserves(t *testing.T) {
	svc := newTestService(t, demoStore())
	var observed atomic.Int32
	svc.SetObserver(func(Breakdown) { observed.Add(1) })
	month, _ := ParseMonth("2025-06")

	estimates, err := svc.EstimateAll(context.Background(), month)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var names []string
	for _, estimate := range estimates {
		names = append(names, estimate.Name)
	}
	if got := strings.Join(names, ","); got != "Anna Nowak,Jan Kowalski,Piotr Wiśniewski" {
		t.Fatalf("unexpected order: %s", got)
	}
	if observed.Load() != 3 {
		t.Fatalf("expected 3 observed breakdowns, got %d", observed.Load())
	}

	student := estimates[0].Breakdown
	if !student.SocialInsuranceExempt || !student.IncomeTaxExempt {
		t.Fatalf("expected both exemptions for the student, got %+v", student)
	}
	assertAmount(t, "student net", student.NetSalary, "3640")

	totals := Totals(estimates)
	if totals.EmployeeCount != 3 {
		t.Fatalf("expected 3 employees in totals, got %d", totals.EmployeeCount)
	}
	assertAmount(t, "total gross", totals.TotalGross, "17200")
	assertAmount(t, "total net", totals.TotalNet, "13298.1548")
}

func TestEstimateAllPropagatesStoreErrors(t *testing.T) {
	store := demoStore()
	store.failOn = "e-2"
	svc := newTestService(t, store)
	month, _ := ParseMonth("2025-06")
	if _, err := svc.EstimateAll(context.Background(), month); err == nil || !strings.Contains(err.Error(), "e-2") {
		t.Fatalf("expected failure naming e-2, got %v", err)
	}
}

func TestParseMonth(t *testing.T) {
	month, err := ParseMonth(" 2024-12 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	from, to := MonthRange(month)
	if from.Format("2006-01-02") != "2024-12-01" || to.Format("2006-01-02") != "2025-01-01" {
		t.Fatalf("unexpected range %v - %v", from, to)
	}
	for _, raw := range []string{"", "2024-13", "12-2024", "2024/12"} {
		if _, err := ParseMonth(raw); !errors.Is(err, ErrInvalidMonth) {
			t.Fatalf("expected ErrInvalidMonth for %q, got %v", raw, err)
		}
	}
}

func TestPreviewSkipsStore(t *testing.T) {
	svc := newTestService(t, nil)
	breakdown, err := svc.Preview(dec("4000"), decimal.Zero, TaxProfile{Age: 26, IsStudent: true, ContractType: ContractMandate})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertAmount(t, "tax", breakdown.IncomeTaxAdvance, "84")
	assertAmount(t, "net", breakdown.NetSalary, "3056.956")
}

func TestDocumentsRequirePremium(t *testing.T) {
	store := demoStore()
	svc := newTestService(t, store)
	month, _ := ParseMonth("2025-06")
	ctx := context.Background()

	if _, err := svc.Payslip(ctx, "e-3", month); !errors.Is(err, ErrPremiumRequired) {
		t.Fatalf("expected ErrPremiumRequired for payslip, got %v", err)
	}
	if _, _, err := svc.Register(ctx, month); !errors.Is(err, ErrPremiumRequired) {
		t.Fatalf("expected ErrPremiumRequired for register, got %v", err)
	}

	store.company.IsPremium = true
	pdf, err := svc.Payslip(ctx, "e-3", month)
	if err != nil {
		t.Fatalf("payslip: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatal("expected PDF output")
	}

	company, estimates, err := svc.Register(ctx, month)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	workbook, err := RegisterXLSX(company, "2025-06", estimates)
	if err != nil {
		t.Fatalf("xlsx: %v", err)
	}
	if !bytes.HasPrefix(workbook, []byte("PK")) {
		t.Fatal("expected a zip based workbook")
	}
}

func TestRegisterCSV(t *testing.T) {
	svc := newTestService(t, demoStore())
	month, _ := ParseMonth("2025-06")
	estimates, err := svc.EstimateAll(context.Background(), month)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := RegisterCSV(&buf, estimates); err != nil {
		t.Fatalf("csv: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d", len(records))
	}
	last := records[3]
	if last[0] != "Piotr Wiśniewski" || last[2] != "Umowa o Pracę" || last[10] != "5237.72" {
		t.Fatalf("unexpected row: %v", last)
	}
}
