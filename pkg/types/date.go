package types

import (
	"fmt"
	"time"
)

// DateLayout формат даты "YYYY-MM-DD"
const DateLayout = "2006-01-02"

// FormatDate форматирует дату по локальным календарным полям, без перевода в UTC
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// ParseDate парсит "YYYY-MM-DD" и возвращает этот день в 12:00 по локальному времени.
// Полдень выбран, чтобы AddDate никогда не перескакивал через границу суток при переходе на летнее время.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout+"T15:04:05", s+"T12:00:00", time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// Noon возвращает тот же календарный день в 12:00 по локальному времени
func Noon(t time.Time) time.Time {
	local := t.In(time.Local)
	return time.Date(local.Year(), local.Month(), local.Day(), 12, 0, 0, 0, time.Local)
}

// StartOfDay возвращает локальную полночь для дня t
func StartOfDay(t time.Time) time.Time {
	local := t.In(time.Local)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local)
}

// AddDays сдвигает дату "YYYY-MM-DD" на days календарных дней
func AddDays(date string, days int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return FormatDate(t.AddDate(0, 0, days)), nil
}
