package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ShopBooking/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-ShopBooking/internal/usecase/get_available_slots"
)

const (
	msgMissingServiceID = "ID услуги обязателен"
	msgInvalidRequest   = "некорректные параметры запроса"
	msgServiceNotFound  = "услуга не найдена"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/shops/{shopId}/available-slots
// Query params: serviceId (required), staffId, date (YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shopID := mux.Vars(r)["shopId"]
	query := r.URL.Query()

	serviceID := query.Get("serviceId")
	if serviceID == "" {
		h.logger.Warn("GET /shops/{id}/available-slots - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	req := &getAvailableSlots.Request{ShopID: shopID, ServiceID: serviceID}
	if staffID := query.Get("staffId"); staffID != "" {
		req.StaffID = &staffID
	}
	if date := query.Get("date"); date != "" {
		req.Date = &date
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /shops/{id}/available-slots - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /shops/{id}/available-slots - Service not found: shop_id=%s, service_id=%s", shopID, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		default:
			h.logger.Error("GET /shops/{id}/available-slots - Failed to get slots: shop_id=%s, error=%v", shopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /shops/{id}/available-slots - Found %d slots: shop_id=%s, service_id=%s",
		len(result.Slots), shopID, serviceID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
