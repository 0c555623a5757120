package sales

import (
	"time"

	"github.com/shopspring/decimal"
)

type Sale struct {
	ID         string          `json:"id"`
	EmployeeID string          `json:"employeeId"`
	Amount     decimal.Decimal `json:"amount"`
	Date       time.Time       `json:"date"`
	CreatedAt  time.Time       `json:"createdAt"`
}

type MonthlyTotal struct {
	EmployeeID string          `json:"employeeId"`
	Month      string          `json:"month"`
	Total      decimal.Decimal `json:"total"`
	Count      int             `json:"count"`
}
