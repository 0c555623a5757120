package absence

import "time"

type Request struct {
	ID           string     `json:"id"`
	EmployeeID   string     `json:"employeeId"`
	EmployeeName string     `json:"employeeName"`
	Reason       string     `json:"reason"`
	Date         time.Time  `json:"date"`
	Status       string     `json:"status"`
	StatusLabel  string     `json:"statusLabel"`
	DecidedAt    *time.Time `json:"decidedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

type CreateInput struct {
	EmployeeID string `json:"employeeId" validate:"required,uuid"`
	Reason     string `json:"reason" validate:"required,max=500"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
}

type DecisionInput struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}
