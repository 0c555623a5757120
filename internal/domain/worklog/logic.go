package worklog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var sixty = decimal.NewFromInt(60)

// ParseClock returns minutes since midnight for an HH:MM value.
func ParseClock(value string) (int, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, value)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, value)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, value)
	}
	return hours*60 + minutes, nil
}

// Minutes returns the worked minutes between start and end on the same day.
// A missing bound or an end at or before the start counts as zero.
func Minutes(start, end string) (int, error) {
	if strings.TrimSpace(start) == "" || strings.TrimSpace(end) == "" {
		return 0, nil
	}
	from, err := ParseClock(start)
	if err != nil {
		return 0, err
	}
	to, err := ParseClock(end)
	if err != nil {
		return 0, err
	}
	if to <= from {
		return 0, nil
	}
	return to - from, nil
}

// Duration is Minutes expressed in hours.
func Duration(start, end string) (decimal.Decimal, error) {
	minutes, err := Minutes(start, end)
	if err != nil {
		return decimal.Zero, err
	}
	return MinutesToHours(minutes), nil
}

func MinutesToHours(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Div(sixty)
}

// TotalMinutes sums shifts, skipping ones whose times do not parse.
func TotalMinutes(shifts []Shift) int {
	total := 0
	for _, shift := range shifts {
		minutes, err := Minutes(shift.StartTime, shift.EndTime)
		if err != nil {
			continue
		}
		total += minutes
	}
	return total
}

// FormatHours renders hours with two decimals for display.
func FormatHours(minutes int) string {
	return MinutesToHours(minutes).StringFixed(2)
}
