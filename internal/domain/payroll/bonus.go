package payroll

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ComputeBonus turns an employee's bonus policy into an amount for one period.
// Percentage bonuses are a share of the employee's sales and only pay out when
// the company has sales bonuses switched on.
func ComputeBonus(policy BonusPolicy, salesTotal decimal.Decimal, salesBonusesEnabled bool) (decimal.Decimal, error) {
	if policy.Value.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: bonus value must not be negative", ErrInvalidInput)
	}
	if salesTotal.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: sales total must not be negative", ErrInvalidInput)
	}

	switch policy.Type {
	case BonusFixed:
		return RoundCents(policy.Value), nil
	case BonusPercentage:
		if !salesBonusesEnabled {
			return decimal.Zero, nil
		}
		return RoundCents(salesTotal.Mul(policy.Value).Div(hundred)), nil
	case BonusNone, "":
		return decimal.Zero, nil
	default:
		return decimal.Zero, fmt.Errorf("%w: unknown bonus type %q", ErrInvalidInput, policy.Type)
	}
}
