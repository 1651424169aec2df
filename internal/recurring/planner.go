package recurring

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	"github.com/m04kA/SMC-ShopBooking/internal/slots"
	"github.com/m04kA/SMC-ShopBooking/pkg/types"
)

var (
	ErrUnknownInterval = errors.New("recurring: unknown interval")
	ErrInvalidDate     = errors.New("recurring: invalid first occurrence date")
)

// Occurrence первое (подтвержденное) вхождение серии
type Occurrence struct {
	Date     string
	Time     types.TimeString
	Duration int
	StaffID  *string
}

// SeriesPlan итог планирования, показывается клиенту до создания серии
type SeriesPlan struct {
	Accepted      []string
	Skipped       []string
	Total         int // len(Accepted) + первое вхождение
	EndDate       string
	IntervalLabel string
}

// Planner перечисляет будущие даты серии и отбрасывает конфликтующие
type Planner struct {
	horizonMonths int
}

func NewPlanner(horizonMonths int) *Planner {
	if horizonMonths <= 0 {
		horizonMonths = domain.RecurringHorizonMonths
	}
	return &Planner{horizonMonths: horizonMonths}
}

// PlanSeries планирует серию с горизонтом по умолчанию
func PlanSeries(
	first Occurrence,
	interval domain.RecurringInterval,
	bookings []domain.Booking,
	bufferMinutes int,
) (*SeriesPlan, error) {
	return NewPlanner(domain.RecurringHorizonMonths).Plan(first, interval, bookings, bufferMinutes)
}

// Plan перечисляет даты строго после первой, с шагом interval, до конца горизонта включительно.
// Каждая дата проверяется на конфликт с активными бронированиями и с уже принятыми датами этого же прохода.
// k-я дата считается от первой (first + k*interval), а не от предыдущей, чтобы месячный шаг не "съезжал".
func (p *Planner) Plan(
	first Occurrence,
	interval domain.RecurringInterval,
	bookings []domain.Booking,
	bufferMinutes int,
) (*SeriesPlan, error) {
	label, ok := Label(interval)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownInterval, interval)
	}

	firstDate, err := types.ParseDate(first.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	horizonEnd := types.FormatDate(firstDate.AddDate(0, p.horizonMonths, 0))
	active := domain.ActiveBookings(bookings)

	plan := &SeriesPlan{
		Accepted:      []string{},
		Skipped:       []string{},
		IntervalLabel: label,
	}
	accepted := make(map[string]struct{})

	for k := 1; ; k++ {
		date := types.FormatDate(Step(firstDate, interval, k))
		if date > horizonEnd {
			break
		}

		if _, dup := accepted[date]; dup {
			plan.Skipped = append(plan.Skipped, date)
			continue
		}

		candidate := slots.Candidate{
			Date:     date,
			Start:    first.Time.Minutes(),
			Duration: first.Duration,
			StaffID:  first.StaffID,
		}
		if slots.HasConflict(candidate, active, bufferMinutes) {
			plan.Skipped = append(plan.Skipped, date)
			continue
		}

		accepted[date] = struct{}{}
		plan.Accepted = append(plan.Accepted, date)
	}

	plan.Total = len(plan.Accepted) + 1
	plan.EndDate = first.Date
	if n := len(plan.Accepted); n > 0 {
		plan.EndDate = plan.Accepted[n-1]
	}

	return plan, nil
}

// Step возвращает first + k*interval. first должен быть полднем (types.ParseDate).
func Step(first time.Time, interval domain.RecurringInterval, k int) time.Time {
	switch interval {
	case domain.IntervalWeekly:
		return first.AddDate(0, 0, 7*k)
	case domain.IntervalBiweekly:
		return first.AddDate(0, 0, 14*k)
	case domain.IntervalFourWeekly:
		return first.AddDate(0, 0, 28*k)
	case domain.IntervalMonthly:
		return first.AddDate(0, k, 0)
	}
	return first
}

// Label человекочитаемое название интервала
func Label(interval domain.RecurringInterval) (string, bool) {
	switch interval {
	case domain.IntervalWeekly:
		return "Every week", true
	case domain.IntervalBiweekly:
		return "Every 2 weeks", true
	case domain.IntervalFourWeekly:
		return "Every 4 weeks", true
	case domain.IntervalMonthly:
		return "Every month", true
	}
	return "", false
}
