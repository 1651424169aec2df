package create_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ShopBooking/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-ShopBooking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRequest     = "некорректные данные бронирования"
	msgServiceNotFound    = "услуга не найдена"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgSlotAlreadyClaimed = "слот уже занят, выберите другой"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/shops/{shopId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shopID := mux.Vars(r)["shopId"]

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /shops/{id}/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(shopID))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /shops/{id}/bookings - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /shops/{id}/bookings - Service not found: shop_id=%s, service_id=%s", shopID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrSlotAlreadyClaimed):
			h.logger.Warn("POST /shops/{id}/bookings - Slot claimed concurrently: shop_id=%s, slot_id=%s", shopID, req.SlotID)
			handlers.RespondConflict(w, msgSlotAlreadyClaimed)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /shops/{id}/bookings - Slot not available: shop_id=%s, slot_id=%s", shopID, req.SlotID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		default:
			h.logger.Error("POST /shops/{id}/bookings - Failed to create booking: shop_id=%s, error=%v", shopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /shops/{id}/bookings - Booking created successfully: booking_id=%s, ref=%s, shop_id=%s",
		result.BookingID, result.RefCode, shopID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
