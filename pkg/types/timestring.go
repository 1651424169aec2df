package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	minutesPerHour = 60
	minutesPerDay  = 24 * minutesPerHour
)

var (
	// ErrInvalidTimeString возвращается, когда строка не соответствует формату HH:MM
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrOutOfDayRange возвращается, когда результат арифметики выходит за пределы суток
	ErrOutOfDayRange = errors.New("time is out of day range")
)

// TimeString время суток в формате "HH:MM"
type TimeString string

// NewTimeString создает TimeString из time.Time (часы и минуты по локальному времени t)
func NewTimeString(t time.Time) TimeString {
	return FromMinutes(t.Hour()*minutesPerHour + t.Minute())
}

// NewTimeStringFromString парсит и валидирует строку "HH:MM"
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(strings.TrimSpace(s))
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// FromMinutes переводит смещение в минутах от полуночи в "HH:MM".
// Значения >= 1440 не заворачиваются на следующие сутки - за это отвечает вызывающий код.
func FromMinutes(minutes int) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/minutesPerHour, minutes%minutesPerHour))
}

// Minutes возвращает hour*60+minute.
// Формат не проверяется: для некорректной строки результат не определен.
func (t TimeString) Minutes() int {
	hourPart, minutePart, _ := strings.Cut(string(t), ":")
	hour, _ := strconv.Atoi(hourPart)
	minute, _ := strconv.Atoi(minutePart)
	return hour*minutesPerHour + minute
}

// AddMinutes прибавляет минуты и проверяет, что результат остается в пределах суток
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	total := t.Minutes() + minutes
	if total < 0 || total > minutesPerDay {
		return "", fmt.Errorf("%w: %s%+d min", ErrOutOfDayRange, t, minutes)
	}
	return FromMinutes(total), nil
}

// Validate проверяет формат "HH:MM" и диапазоны часов и минут
func (t TimeString) Validate() error {
	hourPart, minutePart, ok := strings.Cut(string(t), ":")
	if !ok || len(hourPart) != 2 || len(minutePart) != 2 {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}

	hour, err := strconv.Atoi(hourPart)
	if err != nil || hour < 0 || hour > 23 {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}

	minute, err := strconv.Atoi(minutePart)
	if err != nil || minute < 0 || minute > 59 {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}

	return nil
}

func (t TimeString) IsZero() bool {
	return t == ""
}

func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

func (t TimeString) String() string {
	return string(t)
}

// Scan реализует sql.Scanner. Postgres отдает TIME как "HH:MM:SS", секунды отбрасываем.
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
	case string:
		*t = normalizeTime(v)
	case []byte:
		*t = normalizeTime(string(v))
	case time.Time:
		*t = NewTimeString(v)
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidTimeString, src)
	}
	return nil
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}

func normalizeTime(s string) TimeString {
	if len(s) > 5 {
		s = s[:5]
	}
	return TimeString(s)
}
