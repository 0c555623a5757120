package employees

import (
	"time"

	"github.com/shopspring/decimal"

	"workforce/internal/domain/payroll"
)

type Employee struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Position     string               `json:"position"`
	Email        string               `json:"email"`
	Phone        string               `json:"phone"`
	HourlyRate   decimal.Decimal      `json:"hourlyRate"`
	Age          int                  `json:"age"`
	IsStudent    bool                 `json:"isStudent"`
	ContractType payroll.ContractType `json:"contractType"`
	BonusType    payroll.BonusType    `json:"bonusType"`
	BonusValue   decimal.Decimal      `json:"bonusValue"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

func (e Employee) TaxProfile() payroll.TaxProfile {
	return payroll.TaxProfile{Age: e.Age, IsStudent: e.IsStudent, ContractType: e.ContractType}
}

func (e Employee) BonusPolicy() payroll.BonusPolicy {
	return payroll.BonusPolicy{Type: e.BonusType, Value: e.BonusValue}
}

// Input is the writable part of an employee. ContractType accepts the Polish
// contract names as well as the short codes.
type Input struct {
	Name         string          `json:"name" validate:"required,max=200"`
	Position     string          `json:"position" validate:"required,max=200"`
	Email        string          `json:"email" validate:"required,email,max=254"`
	Phone        string          `json:"phone" validate:"omitempty,max=40"`
	HourlyRate   decimal.Decimal `json:"hourlyRate" validate:"gte=0"`
	Age          int             `json:"age" validate:"gte=0,lte=120"`
	IsStudent    bool            `json:"isStudent"`
	ContractType string          `json:"contractType" validate:"required"`
	BonusType    string          `json:"bonusType" validate:"omitempty,oneof=none percentage fixed"`
	BonusValue   decimal.Decimal `json:"bonusValue" validate:"gte=0"`
}

type ContactInput struct {
	Phone string `json:"phone" validate:"max=40"`
}
