package worklog

import (
	"context"
	"time"
)

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

// Add records one shift. An employee can log at most one shift per day.
func (s *Service) Add(ctx context.Context, employeeID string, date time.Time, start, end string) (WorkLog, error) {
	for _, value := range []string{start, end} {
		if _, err := ParseClock(value); err != nil {
			return WorkLog{}, err
		}
	}
	minutes, err := Minutes(start, end)
	if err != nil {
		return WorkLog{}, err
	}

	log := WorkLog{
		EmployeeID: employeeID,
		Date:       truncateDay(date),
		StartTime:  start,
		EndTime:    end,
		Hours:      FormatHours(minutes),
	}
	id, err := s.store.Create(ctx, log)
	if err != nil {
		return WorkLog{}, err
	}
	log.ID = id
	return log, nil
}

func (s *Service) Count(ctx context.Context, employeeID string) (int, error) {
	return s.store.Count(ctx, employeeID)
}

func (s *Service) List(ctx context.Context, employeeID string, limit, offset int) ([]WorkLog, error) {
	logs, err := s.store.List(ctx, employeeID, limit, offset)
	if err != nil {
		return nil, err
	}
	for i := range logs {
		minutes, _ := Minutes(logs[i].StartTime, logs[i].EndTime)
		logs[i].Hours = FormatHours(minutes)
	}
	return logs, nil
}

func (s *Service) Delete(ctx context.Context, logID string) error {
	return s.store.Delete(ctx, logID)
}

// MinutesBetween sums an employee's worked minutes for shifts dated in [from, to).
func (s *Service) MinutesBetween(ctx context.Context, employeeID string, from, to time.Time) (int, error) {
	shifts, err := s.store.Shifts(ctx, employeeID, from, to)
	if err != nil {
		return 0, err
	}
	return TotalMinutes(shifts), nil
}

// DailyTotals returns hours worked by everyone for each of the last days
// ending with today, oldest first. Days without logs are reported as zero.
func (s *Service) DailyTotals(ctx context.Context, days int, today time.Time) ([]DailyTotal, error) {
	if days <= 0 {
		days = 7
	}
	end := truncateDay(today).AddDate(0, 0, 1)
	start := end.AddDate(0, 0, -days)

	shifts, err := s.store.Shifts(ctx, "", start, end)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string][]Shift, days)
	for _, shift := range shifts {
		key := shift.Date.Format("2006-01-02")
		byDay[key] = append(byDay[key], shift)
	}

	out := make([]DailyTotal, 0, days)
	for day := start; day.Before(end); day = day.AddDate(0, 0, 1) {
		minutes := TotalMinutes(byDay[day.Format("2006-01-02")])
		out = append(out, DailyTotal{Date: day, Hours: FormatHours(minutes)})
	}
	return out, nil
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
