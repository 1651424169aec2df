package slots

import "github.com/m04kA/SMC-ShopBooking/internal/domain"

// Candidate интервал, проверяемый на пересечение с бронированиями
type Candidate struct {
	Date     string
	Start    int // минуты от полуночи
	Duration int
	StaffID  *string
}

// FilterBookedSlots убирает слоты, пересекающиеся с активными бронированиями с учетом буфера.
// Слот остается, только если для каждого активного бронирования того же дня и совместимого
// мастера выполняется slotEnd+buffer <= bookingStart или bookingEnd+buffer <= slotStart.
func FilterBookedSlots(slots []domain.Slot, bookings []domain.Booking, bufferMinutes int) []domain.Slot {
	active := domain.ActiveBookings(bookings)
	if len(active) == 0 {
		return slots
	}

	result := make([]domain.Slot, 0, len(slots))
	for i := range slots {
		candidate := Candidate{
			Date:     slots[i].Date,
			Start:    slots[i].Start(),
			Duration: slots[i].Duration,
			StaffID:  slots[i].StaffID,
		}
		if HasConflict(candidate, active, bufferMinutes) {
			continue
		}
		result = append(result, slots[i])
	}

	return result
}

// HasConflict проверяет кандидата против списка бронирований.
// Неактивные бронирования игнорируются.
func HasConflict(c Candidate, bookings []domain.Booking, bufferMinutes int) bool {
	for i := range bookings {
		if Conflicts(c, &bookings[i], bufferMinutes) {
			return true
		}
	}
	return false
}

// Conflicts проверяет пересечение кандидата с одним бронированием.
// Длительность бронирования: ServiceDuration, затем Duration, затем длительность кандидата.
func Conflicts(c Candidate, b *domain.Booking, bufferMinutes int) bool {
	if !b.IsActive() || b.Date != c.Date {
		return false
	}
	if !domain.StaffCompatible(c.StaffID, b.StaffID) {
		return false
	}

	slotStart := c.Start
	slotEnd := c.Start + c.Duration
	bookingStart := b.Time.Minutes()
	bookingEnd := bookingStart + b.EffectiveDuration(c.Duration)

	separated := slotEnd+bufferMinutes <= bookingStart || bookingEnd+bufferMinutes <= slotStart
	return !separated
}
