package get_available_slots

import (
	getAvailableSlots "github.com/m04kA/SMC-ShopBooking/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	ShopID    string  `json:"shopId"`
	ServiceID string  `json:"serviceId"`
	StaffID   *string `json:"staffId,omitempty"`
	Slots     []Slot  `json:"slots"`
}

// Slot доступный слот
type Slot struct {
	ID              string  `json:"id"`
	Date            string  `json:"date"`      // "2030-01-15"
	StartTime       string  `json:"startTime"` // "10:00"
	DurationMinutes int     `json:"durationMinutes"`
	StaffID         *string `json:"staffId,omitempty"`
	StaffName       *string `json:"staffName,omitempty"`
	Generated       bool    `json:"generated"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	out := &AvailableSlotsResponse{
		ShopID:    resp.ShopID,
		ServiceID: resp.ServiceID,
		StaffID:   resp.StaffID,
		Slots:     make([]Slot, 0, len(resp.Slots)),
	}

	for _, s := range resp.Slots {
		out.Slots = append(out.Slots, Slot{
			ID:              s.ID,
			Date:            s.Date,
			StartTime:       s.StartTime.String(),
			DurationMinutes: s.DurationMinutes,
			StaffID:         s.StaffID,
			StaffName:       s.StaffName,
			Generated:       s.Generated,
		})
	}

	return out
}
