package get_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ShopBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ShopBooking/internal/service/bookings"
)

const (
	msgInvalidRefCode = "некорректный код бронирования"
	msgNotFound       = "бронирование не найдено"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/shops/{shopId}/bookings/ref/{refCode}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	shopID, refCode := vars["shopId"], vars["refCode"]

	booking, err := h.service.GetByRefCode(r.Context(), shopID, refCode)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings/ref/{ref} - Invalid ref code: %q", refCode)
			handlers.RespondBadRequest(w, msgInvalidRefCode)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/ref/{ref} - Booking not found: shop_id=%s, ref=%s", shopID, refCode)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /bookings/ref/{ref} - Failed to get booking: ref=%s, error=%v", refCode, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/ref/{ref} - Booking retrieved successfully: booking_id=%s", booking.ID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
