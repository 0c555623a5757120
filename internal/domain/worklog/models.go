package worklog

import "time"

type WorkLog struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employeeId"`
	Date       time.Time `json:"date"`
	StartTime  string    `json:"startTime"`
	EndTime    string    `json:"endTime"`
	Hours      string    `json:"hours"`
	CreatedAt  time.Time `json:"createdAt"`
}

type DailyTotal struct {
	Date  time.Time `json:"date"`
	Hours string    `json:"hours"`
}

// Shift is a raw start/end pair as stored, before any duration rules apply.
type Shift struct {
	Date      time.Time
	StartTime string
	EndTime   string
}
