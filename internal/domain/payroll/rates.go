package payroll

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"workforce/internal/platform/validation"
)

// RateTable holds the statutory rates used by the calculator. It is loaded once
// at startup and passed by value, so callers never share mutable state.
type RateTable struct {
	PensionRate         decimal.Decimal `json:"pensionRate" validate:"gte=0,lt=1"`
	DisabilityRate      decimal.Decimal `json:"disabilityRate" validate:"gte=0,lt=1"`
	SicknessRate        decimal.Decimal `json:"sicknessRate" validate:"gte=0,lt=1"`
	HealthInsuranceRate decimal.Decimal `json:"healthInsuranceRate" validate:"gte=0,lt=1"`
	IncomeTaxRate       decimal.Decimal `json:"incomeTaxRate" validate:"gte=0,lt=1"`
	TaxDeductibleCosts  decimal.Decimal `json:"taxDeductibleCosts" validate:"gte=0"`
	TaxReducingAmount   decimal.Decimal `json:"taxReducingAmount" validate:"gte=0"`
}

func DefaultRates() RateTable {
	return RateTable{
		PensionRate:         decimal.RequireFromString("0.0976"),
		DisabilityRate:      decimal.RequireFromString("0.015"),
		SicknessRate:        decimal.RequireFromString("0.0245"),
		HealthInsuranceRate: decimal.RequireFromString("0.09"),
		IncomeTaxRate:       decimal.RequireFromString("0.12"),
		TaxDeductibleCosts:  decimal.NewFromInt(250),
		TaxReducingAmount:   decimal.NewFromInt(300),
	}
}

func (r RateTable) TotalSocialRate() decimal.Decimal {
	return r.PensionRate.Add(r.DisabilityRate).Add(r.SicknessRate)
}

func (r RateTable) Validate() error {
	if issues := validation.Struct(r); len(issues) > 0 {
		parts := make([]string, 0, len(issues))
		for _, issue := range issues {
			parts = append(parts, issue.Field+" "+issue.Reason)
		}
		return fmt.Errorf("%w: %s", ErrInvalidRates, strings.Join(parts, "; "))
	}
	if r.TotalSocialRate().GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: social insurance rates must sum to less than 1", ErrInvalidRates)
	}
	return nil
}

type rateFile struct {
	PensionRate         yaml.Node `yaml:"pensionRate"`
	DisabilityRate      yaml.Node `yaml:"disabilityRate"`
	SicknessRate        yaml.Node `yaml:"sicknessRate"`
	HealthInsuranceRate yaml.Node `yaml:"healthInsuranceRate"`
	IncomeTaxRate       yaml.Node `yaml:"incomeTaxRate"`
	TaxDeductibleCosts  yaml.Node `yaml:"taxDeductibleCosts"`
	TaxReducingAmount   yaml.Node `yaml:"taxReducingAmount"`
}

// ParseRatesYAML reads a rate table document. Keys missing from the document
// keep their default values. Numbers are parsed from their literal text, never
// through float64.
func ParseRatesYAML(b []byte) (RateTable, error) {
	var file rateFile
	if err := yaml.Unmarshal(b, &file); err != nil {
		return RateTable{}, fmt.Errorf("%w: %v", ErrInvalidRates, err)
	}

	rates := DefaultRates()
	fields := []struct {
		name string
		node yaml.Node
		dst  *decimal.Decimal
	}{
		{"pensionRate", file.PensionRate, &rates.PensionRate},
		{"disabilityRate", file.DisabilityRate, &rates.DisabilityRate},
		{"sicknessRate", file.SicknessRate, &rates.SicknessRate},
		{"healthInsuranceRate", file.HealthInsuranceRate, &rates.HealthInsuranceRate},
		{"incomeTaxRate", file.IncomeTaxRate, &rates.IncomeTaxRate},
		{"taxDeductibleCosts", file.TaxDeductibleCosts, &rates.TaxDeductibleCosts},
		{"taxReducingAmount", file.TaxReducingAmount, &rates.TaxReducingAmount},
	}
	for _, field := range fields {
		if field.node.Kind == 0 {
			continue
		}
		if field.node.Kind != yaml.ScalarNode {
			return RateTable{}, fmt.Errorf("%w: %s must be a number", ErrInvalidRates, field.name)
		}
		value, err := decimal.NewFromString(strings.TrimSpace(field.node.Value))
		if err != nil {
			return RateTable{}, fmt.Errorf("%w: %s must be a number", ErrInvalidRates, field.name)
		}
		*field.dst = value
	}

	if err := rates.Validate(); err != nil {
		return RateTable{}, err
	}
	return rates, nil
}

// LoadRates returns the defaults when path is empty.
func LoadRates(path string) (RateTable, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultRates(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RateTable{}, fmt.Errorf("rate table file %s not found: %w", path, err)
		}
		return RateTable{}, err
	}
	return ParseRatesYAML(b)
}
