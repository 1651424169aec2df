package slots

import (
	"time"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	"github.com/m04kA/SMC-ShopBooking/pkg/types"
)

// Snapshot входные данные расчета доступных слотов одной услуги в магазине
type Snapshot struct {
	Staff       []domain.StaffMember
	Service     *domain.Service // nil - длительность по умолчанию
	StaffID     *string         // nil - любой мастер
	ManualSlots []domain.AvailabilitySlot
	Bookings    []domain.Booking

	BufferMinutes int
	HorizonDays   int
	Now           time.Time
}

// ServiceDuration длительность услуги для шага генерации
func (s *Snapshot) ServiceDuration() int {
	if s.Service != nil && s.Service.Duration > 0 {
		return s.Service.Duration
	}
	return domain.DefaultServiceDuration
}

// ComputeAvailableSlots генерация + слияние с ручными слотами + фильтр по бронированиям.
// Ручные слоты участвуют в приоритете при слиянии даже будучи занятыми,
// но в результат попадают только свободные.
func ComputeAvailableSlots(s Snapshot) []domain.Slot {
	duration := s.ServiceDuration()
	today := types.FormatDate(s.Now)

	staff := s.Staff
	if s.StaffID != nil {
		staff = make([]domain.StaffMember, 0, 1)
		for _, member := range s.Staff {
			if member.ID == *s.StaffID {
				staff = append(staff, member)
			}
		}
	}

	generated := GenerateAllSlots(staff, duration, s.BufferMinutes, s.HorizonDays, s.Now)

	manual := make([]domain.Slot, 0, len(s.ManualSlots))
	for i := range s.ManualSlots {
		slot := s.ManualSlots[i].ToSlot()
		if slot.Date < today {
			continue
		}
		if s.StaffID != nil && !domain.StaffCompatible(s.StaffID, slot.StaffID) {
			continue
		}
		manual = append(manual, slot)
	}

	merged := MergeSlots(generated, manual)

	open := make([]domain.Slot, 0, len(merged))
	for i := range merged {
		if merged[i].Available {
			open = append(open, merged[i])
		}
	}

	return FilterBookedSlots(open, s.Bookings, s.BufferMinutes)
}
