package services

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidDate = errors.New("invalid date")

const dayLayout = "2006-01-02"

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

func DayRange(value time.Time, location *time.Location) (time.Time, time.Time) {
	start := DateAtLocation(value, location)
	return start, start.AddDate(0, 0, 1)
}

// ParseDayParam parses a YYYY-MM-DD value in location. An empty value means
// the current day.
func ParseDayParam(raw string, now time.Time, location *time.Location) (time.Time, error) {
	if location == nil {
		location = time.UTC
	}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return DateAtLocation(now, location), nil
	}
	parsed, err := time.ParseInLocation(dayLayout, trimmed, location)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return parsed, nil
}

func FormatDay(value time.Time) string {
	return value.Format(dayLayout)
}
