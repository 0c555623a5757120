package payroll

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var half = decimal.RequireFromString("0.5")

// Calculator binds a rate table so callers do not pass it on every call.
// It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	rates RateTable
}

func NewCalculator(rates RateTable) (*Calculator, error) {
	if err := rates.Validate(); err != nil {
		return nil, err
	}
	return &Calculator{rates: rates}, nil
}

func (c *Calculator) Rates() RateTable {
	return c.rates
}

func (c *Calculator) ComputeNetSalary(grossSalary decimal.Decimal, profile TaxProfile, bonusAmount decimal.Decimal) (Breakdown, error) {
	return ComputeNetSalary(grossSalary, profile, bonusAmount, c.rates)
}

// ComputeNetSalary converts gross pay plus bonus into net pay. The steps run in
// a fixed order because the tax base is rounded before tax is computed and the
// youth exemption overrides the clamped tax.
func ComputeNetSalary(grossSalary decimal.Decimal, profile TaxProfile, bonusAmount decimal.Decimal, rates RateTable) (Breakdown, error) {
	if grossSalary.IsNegative() {
		return Breakdown{}, fmt.Errorf("%w: gross salary must not be negative", ErrInvalidInput)
	}
	if bonusAmount.IsNegative() {
		return Breakdown{}, fmt.Errorf("%w: bonus amount must not be negative", ErrInvalidInput)
	}
	if profile.Age < 0 {
		return Breakdown{}, fmt.Errorf("%w: age must not be negative", ErrInvalidInput)
	}

	totalGross := grossSalary.Add(bonusAmount)

	socialExempt := SocialInsuranceExempt(profile)
	taxExempt := IncomeTaxExempt(profile)

	social := decimal.Zero
	if !socialExempt {
		social = totalGross.Mul(rates.TotalSocialRate())
	}

	healthBase := totalGross.Sub(social)
	health := healthBase.Mul(rates.HealthInsuranceRate)

	taxBase := RoundHalfUp(healthBase.Sub(rates.TaxDeductibleCosts))
	tax := taxBase.Mul(rates.IncomeTaxRate).Sub(rates.TaxReducingAmount)
	if tax.IsNegative() {
		tax = decimal.Zero
	}
	if taxExempt {
		tax = decimal.Zero
	}
	tax = RoundHalfUp(tax)

	net := totalGross.Sub(social).Sub(health).Sub(tax)

	return Breakdown{
		GrossSalary:                 grossSalary,
		BonusAmount:                 bonusAmount,
		TotalGross:                  totalGross,
		SocialInsuranceContribution: social,
		HealthInsuranceContribution: health,
		IncomeTaxAdvance:            tax,
		NetSalary:                   net,
		SocialInsuranceExempt:       socialExempt,
		IncomeTaxExempt:             taxExempt,
	}, nil
}

func SocialInsuranceExempt(profile TaxProfile) bool {
	return profile.Age < YouthExemptionAge && profile.IsStudent && profile.ContractType == ContractMandate
}

func IncomeTaxExempt(profile TaxProfile) bool {
	return profile.Age < YouthExemptionAge
}

// RoundHalfUp rounds to the nearest whole unit with ties going toward positive
// infinity, so 2.5 becomes 3 and -2.5 becomes -2.
func RoundHalfUp(d decimal.Decimal) decimal.Decimal {
	return d.Add(half).Floor()
}

// RoundCents rounds to two places with the same tie rule as RoundHalfUp.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Shift(2).Add(half).Floor().Shift(-2)
}
