package reschedule_booking

import (
	rescheduleBooking "github.com/m04kA/SMC-ShopBooking/internal/usecase/reschedule_booking"
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	SlotID string `json:"slotId"`
}

// RescheduleResponse HTTP response model
type RescheduleResponse struct {
	BookingID        string  `json:"bookingId"`
	RefCode          string  `json:"refCode"`
	Status           string  `json:"status"`
	Date             string  `json:"date"`
	StartTime        string  `json:"startTime"`
	DurationMinutes  int     `json:"durationMinutes"`
	SlotID           string  `json:"slotId"`
	StaffID          *string `json:"staffId,omitempty"`
	StaffName        *string `json:"staffName,omitempty"`
	RecurringGroupID *string `json:"recurringGroupId,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *rescheduleBooking.Response) *RescheduleResponse {
	return &RescheduleResponse{
		BookingID:        resp.BookingID,
		RefCode:          resp.RefCode,
		Status:           resp.Status,
		Date:             resp.Date,
		StartTime:        resp.StartTime.String(),
		DurationMinutes:  resp.DurationMinutes,
		SlotID:           resp.SlotID,
		StaffID:          resp.StaffID,
		StaffName:        resp.StaffName,
		RecurringGroupID: resp.RecurringGroupID,
	}
}
