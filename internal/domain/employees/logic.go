package employees

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"workforce/internal/domain/payroll"
)

var maxPercentage = decimal.NewFromInt(100)

// Normalize checks an input and turns it into an employee record without ID
// or timestamps.
func Normalize(in Input) (Employee, error) {
	emp := Employee{
		Name:       strings.TrimSpace(in.Name),
		Position:   strings.TrimSpace(in.Position),
		Email:      strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:      strings.TrimSpace(in.Phone),
		HourlyRate: in.HourlyRate,
		Age:        in.Age,
		IsStudent:  in.IsStudent,
		BonusValue: in.BonusValue,
	}
	if emp.Name == "" || emp.Email == "" {
		return Employee{}, fmt.Errorf("%w: name and email are required", ErrInvalidInput)
	}
	if emp.HourlyRate.IsNegative() || emp.BonusValue.IsNegative() || emp.Age < 0 {
		return Employee{}, fmt.Errorf("%w: amounts and age must not be negative", ErrInvalidInput)
	}

	contract, ok := payroll.ParseContractType(in.ContractType)
	if !ok {
		return Employee{}, fmt.Errorf("%w: unknown contract type %q", ErrInvalidInput, in.ContractType)
	}
	emp.ContractType = contract

	switch bonus := payroll.BonusType(strings.ToLower(strings.TrimSpace(in.BonusType))); bonus {
	case "", payroll.BonusNone:
		emp.BonusType = payroll.BonusNone
		emp.BonusValue = decimal.Zero
	case payroll.BonusPercentage:
		if emp.BonusValue.GreaterThan(maxPercentage) {
			return Employee{}, fmt.Errorf("%w: percentage bonus cannot exceed 100", ErrInvalidInput)
		}
		emp.BonusType = bonus
	case payroll.BonusFixed:
		emp.BonusType = bonus
	default:
		return Employee{}, fmt.Errorf("%w: unknown bonus type %q", ErrInvalidInput, in.BonusType)
	}
	return emp, nil
}
