package slots

import (
	"time"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	"github.com/m04kA/SMC-ShopBooking/pkg/types"
)

// DefaultHorizonDays горизонт генерации, если он не задан
const DefaultHorizonDays = domain.DefaultHorizonWeeks * 7

// GenerateSlotsForDate разворачивает недельное расписание мастера в слоты на конкретную дату.
//
// Окно [start, end) проходится с шагом serviceDuration+bufferMinutes. Слот выдается,
// если целиком помещается до end. Если слот задевает перерыв, позиция переносится
// сразу на конец перерыва и шаг продолжается оттуда.
// Отсутствующий, выключенный или некорректный день - пустой результат, не ошибка.
func GenerateSlotsForDate(
	hours domain.WeeklyHours,
	date time.Time,
	serviceDuration int,
	bufferMinutes int,
	staffID string,
	staffName string,
) []domain.Slot {
	day := hours.ForDate(date)
	if !day.IsWorking() || serviceDuration <= 0 {
		return nil
	}

	step := serviceDuration + bufferMinutes
	if step <= 0 {
		return nil
	}

	start := day.Start.Minutes()
	end := day.End.Minutes()

	hasBreak := day.HasBreak()
	var breakStart, breakEnd int
	if hasBreak {
		breakStart = day.Break.Start.Minutes()
		breakEnd = day.Break.End.Minutes()
	}

	dateStr := types.FormatDate(date)
	var result []domain.Slot

	for pos := start; pos+serviceDuration <= end; {
		if hasBreak && pos < breakEnd && pos+serviceDuration > breakStart {
			pos = breakEnd
			continue
		}

		slotTime := types.FromMinutes(pos)
		result = append(result, domain.Slot{
			ID:        domain.GeneratedSlotID(staffID, dateStr, slotTime),
			Date:      dateStr,
			Time:      slotTime,
			Duration:  serviceDuration,
			StaffID:   stringPtr(staffID),
			StaffName: stringPtr(staffName),
			Generated: true,
			Available: true,
		})

		pos += step
	}

	return result
}

// GenerateAllSlots генерирует слоты всех активных мастеров с расписанием
// на horizonDays дней, начиная с сегодняшнего дня (по локальному времени now).
// Мастера без расписания пропускаются.
func GenerateAllSlots(
	staff []domain.StaffMember,
	serviceDuration int,
	bufferMinutes int,
	horizonDays int,
	now time.Time,
) []domain.Slot {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}

	// Полдень, а не полночь: AddDate не перескочит через сутки при переходе на летнее время
	today := types.Noon(now)

	var result []domain.Slot
	for i := 0; i < horizonDays; i++ {
		date := today.AddDate(0, 0, i)
		for _, member := range staff {
			if !member.Active || !member.HasSchedule() {
				continue
			}
			result = append(result, GenerateSlotsForDate(
				member.WeeklyHours, date, serviceDuration, bufferMinutes, member.ID, member.Name,
			)...)
		}
	}

	return result
}

func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
