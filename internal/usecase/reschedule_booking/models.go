package reschedule_booking

import "github.com/m04kA/SMC-ShopBooking/pkg/types"

// Request модель запроса на перенос бронирования
type Request struct {
	ShopID    string
	BookingID string
	SlotID    string // новый слот
}

// Response перенесенное бронирование
type Response struct {
	BookingID        string
	RefCode          string
	Status           string
	Date             string
	StartTime        types.TimeString
	DurationMinutes  int
	SlotID           string
	StaffID          *string
	StaffName        *string
	RecurringGroupID *string
}
