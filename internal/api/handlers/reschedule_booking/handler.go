package reschedule_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ShopBooking/internal/api/handlers"
	rescheduleBooking "github.com/m04kA/SMC-ShopBooking/internal/usecase/reschedule_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRequest     = "некорректные данные переноса"
	msgNotFound           = "бронирование не найдено"
	msgNotActive          = "бронирование отменено или отклонено"
	msgServiceNotFound    = "услуга не найдена"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgSlotAlreadyClaimed = "слот уже занят, выберите другой"
)

type Handler struct {
	useCase RescheduleBookingUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/shops/{shopId}/bookings/{bookingId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	shopID, bookingID := vars["shopId"], vars["bookingId"]

	var req RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &rescheduleBooking.Request{
		ShopID:    shopID,
		BookingID: bookingID,
		SlotID:    req.SlotID,
	})
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleBooking.ErrServiceNotFound):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Service not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, rescheduleBooking.ErrBookingNotActive):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Booking not active: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgNotActive)

		case errors.Is(err, rescheduleBooking.ErrSlotAlreadyClaimed):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Slot claimed concurrently: slot_id=%s", req.SlotID)
			handlers.RespondConflict(w, msgSlotAlreadyClaimed)

		case errors.Is(err, rescheduleBooking.ErrSlotNotAvailable):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Slot not available: slot_id=%s", req.SlotID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		default:
			h.logger.Error("PATCH /bookings/{id}/reschedule - Failed to reschedule: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/reschedule - Booking moved: booking_id=%s, date=%s %s",
		bookingID, result.Date, result.StartTime)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
