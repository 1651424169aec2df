package usecasetest

import (
	"time"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	"github.com/m04kA/SMC-ShopBooking/pkg/ptr"
	"github.com/m04kA/SMC-ShopBooking/pkg/types"
)

const (
	ShopID    = "shop-1"
	ServiceID = "svc-1"
	StaffID   = "s1"
)

// Now понедельник, 2030-01-14 08:00
var Now = time.Date(2030, 1, 14, 8, 0, 0, 0, time.Local)

// WeekdayHours пн-пт 09:00-17:00 с перерывом 12:00-13:00
func WeekdayHours() domain.WeeklyHours {
	day := func() *domain.DaySchedule {
		return &domain.DaySchedule{
			Enabled: true,
			Start:   "09:00",
			End:     "17:00",
			Break:   &domain.BreakWindow{Start: "12:00", End: "13:00"},
		}
	}
	return domain.WeeklyHours{
		"monday":    day(),
		"tuesday":   day(),
		"wednesday": day(),
		"thursday":  day(),
		"friday":    day(),
	}
}

// Seed магазин с одной часовой услугой и одним мастером
func Seed() *Store {
	s := NewStore()
	s.AddService(domain.Service{ID: ServiceID, ShopID: ShopID, Name: "Haircut", Duration: 60, Price: 40})
	s.AddStaff(domain.StaffMember{ID: StaffID, ShopID: ShopID, Name: "Anna", Active: true, WeeklyHours: WeekdayHours()})
	return s
}

// GeneratedSlotID id сгенерированного слота мастера по умолчанию
func GeneratedSlotID(date, t string) string {
	return domain.GeneratedSlotID(StaffID, date, types.TimeString(t))
}

// ManualSlot свободный ручной слот мастера по умолчанию
func ManualSlot(id, date, t string) domain.AvailabilitySlot {
	return domain.AvailabilitySlot{
		ID: id, ShopID: ShopID, Date: date, Time: types.TimeString(t),
		Duration: 60, Available: true, StaffID: ptr.Ptr(StaffID),
	}
}

// ActiveBooking подтвержденное бронирование мастера по умолчанию
func ActiveBooking(id, date, t string) domain.Booking {
	return domain.Booking{
		ID: id, ShopID: ShopID, ServiceID: ServiceID, ServiceName: "Haircut", Price: 40,
		ServiceDuration: 60, Date: date, Time: types.TimeString(t), Duration: 60,
		StaffID: ptr.Ptr(StaffID), StaffName: ptr.Ptr("Anna"), Status: domain.StatusConfirmed,
		SlotID: GeneratedSlotID(date, t), RefCode: "BK" + id, ClientName: "Kim", ClientEmail: "kim@example.com",
	}
}
