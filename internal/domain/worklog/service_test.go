package worklog

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"
)

type memoryStore struct {
	logs []WorkLog
}

func (m *memoryStore) Create(_ context.Context, log WorkLog) (string, error) {
	for _, existing := range m.logs {
		if existing.EmployeeID == log.EmployeeID && existing.Date.Equal(log.Date) {
			return "", ErrDuplicateDay
		}
	}
	log.ID = strconv.Itoa(len(m.logs) + 1)
	m.logs = append(m.logs, log)
	return log.ID, nil
}

func (m *memoryStore) Count(_ context.Context, employeeID string) (int, error) {
	total := 0
	for _, log := range m.logs {
		if log.EmployeeID == employeeID {
			total++
		}
	}
	return total, nil
}

func (m *memoryStore) List(_ context.Context, employeeID string, limit, offset int) ([]WorkLog, error) {
	var out []WorkLog
	for _, log := range m.logs {
		if log.EmployeeID == employeeID {
			out = append(out, log)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memoryStore) Shifts(_ context.Context, employeeID string, from, to time.Time) ([]Shift, error) {
	var out []Shift
	for _, log := range m.logs {
		if employeeID != "" && log.EmployeeID != employeeID {
			continue
		}
		if log.Date.Before(from) || !log.Date.Before(to) {
			continue
		}
		out = append(out, Shift{Date: log.Date, StartTime: log.StartTime, EndTime: log.EndTime})
	}
	return out, nil
}

func (m *memoryStore) Delete(_ context.Context, logID string) error {
	for i, log := range m.logs {
		if log.ID == logID {
			m.logs = append(m.logs[:i], m.logs[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func TestAddRejectsSecondLogForSameDay(t *testing.T) {
	svc := NewService(&memoryStore{})
	day := time.Date(2025, 3, 4, 15, 30, 0, 0, time.UTC)

	log, err := svc.Add(context.Background(), "emp-1", day, "09:00", "17:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if log.Hours != "8.50" {
		t.Fatalf("expected 8.50 hours, got %s", log.Hours)
	}
	if !log.Date.Equal(time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected date truncated to day, got %v", log.Date)
	}

	if _, err := svc.Add(context.Background(), "emp-1", day, "18:00", "20:00"); !errors.Is(err, ErrDuplicateDay) {
		t.Fatalf("expected ErrDuplicateDay, got %v", err)
	}
	if _, err := svc.Add(context.Background(), "emp-2", day, "18:00", "20:00"); err != nil {
		t.Fatalf("expected another employee to log the same day, got %v", err)
	}
}

func TestAddRejectsMalformedTimes(t *testing.T) {
	svc := NewService(&memoryStore{})
	day := time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)
	if _, err := svc.Add(context.Background(), "emp-1", day, "", "17:00"); !errors.Is(err, ErrInvalidTime) {
		t.Fatalf("expected ErrInvalidTime for empty start, got %v", err)
	}
	if _, err := svc.Add(context.Background(), "emp-1", day, "09:00", "5pm"); !errors.Is(err, ErrInvalidTime) {
		t.Fatalf("expected ErrInvalidTime for bad end, got %v", err)
	}
}

func TestMinutesBetweenUsesHalfOpenRange(t *testing.T) {
	store := &memoryStore{}
	svc := NewService(store)
	ctx := context.Background()
	for _, day := range []int{31, 1, 15, 30} {
		month := time.June
		if day == 31 {
			month = time.May
		}
		if _, err := svc.Add(ctx, "emp-1", time.Date(2025, month, day, 0, 0, 0, 0, time.UTC), "08:00", "16:00"); err != nil {
			t.Fatalf("seed log: %v", err)
		}
	}
	if _, err := svc.Add(ctx, "emp-1", time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC), "08:00", "16:00"); err != nil {
		t.Fatalf("seed log: %v", err)
	}

	from := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	minutes, err := svc.MinutesBetween(ctx, "emp-1", from, from.AddDate(0, 1, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if minutes != 3*480 {
		t.Fatalf("expected %d minutes, got %d", 3*480, minutes)
	}
}

func TestDailyTotalsFillsEmptyDays(t *testing.T) {
	store := &memoryStore{}
	svc := NewService(store)
	ctx := context.Background()
	today := time.Date(2025, 6, 10, 13, 0, 0, 0, time.UTC)

	if _, err := svc.Add(ctx, "emp-1", today, "09:00", "17:00"); err != nil {
		t.Fatalf("seed log: %v", err)
	}
	if _, err := svc.Add(ctx, "emp-2", today, "10:00", "12:30"); err != nil {
		t.Fatalf("seed log: %v", err)
	}
	if _, err := svc.Add(ctx, "emp-1", today.AddDate(0, 0, -2), "09:00", "10:00"); err != nil {
		t.Fatalf("seed log: %v", err)
	}
	if _, err := svc.Add(ctx, "emp-1", today.AddDate(0, 0, -9), "09:00", "10:00"); err != nil {
		t.Fatalf("seed log: %v", err)
	}

	totals, err := svc.DailyTotals(ctx, 7, today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(totals) != 7 {
		t.Fatalf("expected 7 days, got %d", len(totals))
	}
	if got := totals[6]; got.Hours != "10.50" || got.Date.Day() != 10 {
		t.Fatalf("expected today with 10.50 hours, got %+v", got)
	}
	if got := totals[4]; got.Hours != "1.00" {
		t.Fatalf("expected two days ago with 1.00 hours, got %+v", got)
	}
	if got := totals[0]; got.Hours != "0.00" || got.Date.Day() != 4 {
		t.Fatalf("expected empty first day on the 4th, got %+v", got)
	}
}
