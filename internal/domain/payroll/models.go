package payroll

import (
	"strings"

	"github.com/shopspring/decimal"
)

type ContractType string

// ParseContractType accepts the short codes as well as the Polish contract names.
func ParseContractType(raw string) (ContractType, bool) {
	value := strings.TrimSpace(raw)
	for contract, label := range contractLabels {
		if strings.EqualFold(value, string(contract)) || strings.EqualFold(value, label) {
			return contract, true
		}
	}
	switch strings.ToUpper(value) {
	case "UOP":
		return ContractEmployment, true
	case "UZ":
		return ContractMandate, true
	}
	return "", false
}

func (c ContractType) Label() string {
	if label, ok := contractLabels[c]; ok {
		return label
	}
	return string(c)
}

type BonusType string

type TaxProfile struct {
	Age          int          `json:"age"`
	IsStudent    bool         `json:"isStudent"`
	ContractType ContractType `json:"contractType"`
}

// Breakdown is the result of one net salary computation. Amounts are in whole
// currency units with fractional minor units kept as computed.
type Breakdown struct {
	GrossSalary                 decimal.Decimal `json:"grossSalary"`
	BonusAmount                 decimal.Decimal `json:"bonusAmount"`
	TotalGross                  decimal.Decimal `json:"totalGross"`
	SocialInsuranceContribution decimal.Decimal `json:"socialInsuranceContribution"`
	HealthInsuranceContribution decimal.Decimal `json:"healthInsuranceContribution"`
	IncomeTaxAdvance            decimal.Decimal `json:"incomeTaxAdvance"`
	NetSalary                   decimal.Decimal `json:"netSalary"`
	SocialInsuranceExempt       bool            `json:"socialInsuranceExempt"`
	IncomeTaxExempt             bool            `json:"incomeTaxExempt"`
}

// TotalDeductions is everything withheld between total gross and net.
func (b Breakdown) TotalDeductions() decimal.Decimal {
	return b.SocialInsuranceContribution.Add(b.HealthInsuranceContribution).Add(b.IncomeTaxAdvance)
}

type BonusPolicy struct {
	Type  BonusType       `json:"bonusType"`
	Value decimal.Decimal `json:"bonusValue"`
}

// EmployeePayrollData is what the estimate service needs to know about one
// employee, independent of how the roster stores it.
type EmployeePayrollData struct {
	EmployeeID string
	Name       string
	Position   string
	Email      string
	HourlyRate decimal.Decimal
	Profile    TaxProfile
	Bonus      BonusPolicy
}

type Estimate struct {
	EmployeeID string          `json:"employeeId"`
	Name       string          `json:"name"`
	Position   string          `json:"position"`
	Month      string          `json:"month"`
	Hours      decimal.Decimal `json:"hours"`
	HourlyRate decimal.Decimal `json:"hourlyRate"`
	SalesTotal decimal.Decimal `json:"salesTotal"`
	Profile    TaxProfile      `json:"profile"`
	Breakdown  Breakdown       `json:"breakdown"`
}

type RegisterTotals struct {
	EmployeeCount   int             `json:"employeeCount"`
	TotalGross      decimal.Decimal `json:"totalGross"`
	TotalDeductions decimal.Decimal `json:"totalDeductions"`
	TotalNet        decimal.Decimal `json:"totalNet"`
}

func Totals(estimates []Estimate) RegisterTotals {
	totals := RegisterTotals{
		EmployeeCount:   len(estimates),
		TotalGross:      decimal.Zero,
		TotalDeductions: decimal.Zero,
		TotalNet:        decimal.Zero,
	}
	for _, estimate := range estimates {
		totals.TotalGross = totals.TotalGross.Add(estimate.Breakdown.TotalGross)
		totals.TotalDeductions = totals.TotalDeductions.Add(estimate.Breakdown.TotalDeductions())
		totals.TotalNet = totals.TotalNet.Add(estimate.Breakdown.NetSalary)
	}
	return totals
}

type CompanyInfo struct {
	Name               string
	NIP                string
	Address            string
	IsPremium          bool
	EnableSalesBonuses bool
}
