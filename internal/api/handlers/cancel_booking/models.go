package cancel_booking

import (
	cancelBooking "github.com/m04kA/SMC-ShopBooking/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model. Пустое тело - отмена одного бронирования.
type CancelBookingRequest struct {
	Mode string `json:"mode,omitempty"` // single | future
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	Mode      string             `json:"mode"`
	Cancelled []CancelledBooking `json:"cancelled"`
}

type CancelledBooking struct {
	BookingID string `json:"bookingId"`
	RefCode   string `json:"refCode"`
	Date      string `json:"date"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	out := &CancelBookingResponse{
		Mode:      resp.Mode,
		Cancelled: make([]CancelledBooking, 0, len(resp.Cancelled)),
	}
	for _, c := range resp.Cancelled {
		out.Cancelled = append(out.Cancelled, CancelledBooking{BookingID: c.BookingID, RefCode: c.RefCode, Date: c.Date})
	}
	return out
}
