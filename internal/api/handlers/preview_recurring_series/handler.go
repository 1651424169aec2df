package preview_recurring_series

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ShopBooking/internal/api/handlers"
	previewRecurringSeries "github.com/m04kA/SMC-ShopBooking/internal/usecase/preview_recurring_series"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRequest     = "некорректные параметры серии"
	msgServiceNotFound    = "услуга не найдена"
	msgSlotNotAvailable   = "выбранный слот недоступен"
)

type Handler struct {
	useCase PreviewRecurringSeriesUseCase
	logger  Logger
}

func NewHandler(useCase PreviewRecurringSeriesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/shops/{shopId}/recurring-preview
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shopID := mux.Vars(r)["shopId"]

	var req PreviewRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /shops/{id}/recurring-preview - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(shopID))
	if err != nil {
		switch {
		case errors.Is(err, previewRecurringSeries.ErrInvalidInput):
			h.logger.Warn("POST /shops/{id}/recurring-preview - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		case errors.Is(err, previewRecurringSeries.ErrServiceNotFound):
			h.logger.Warn("POST /shops/{id}/recurring-preview - Service not found: shop_id=%s, service_id=%s", shopID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, previewRecurringSeries.ErrSlotNotAvailable):
			h.logger.Warn("POST /shops/{id}/recurring-preview - Slot not available: shop_id=%s, slot_id=%s", shopID, req.SlotID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		default:
			h.logger.Error("POST /shops/{id}/recurring-preview - Failed to plan series: shop_id=%s, error=%v", shopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /shops/{id}/recurring-preview - Planned %d occurrences, %d skipped: shop_id=%s",
		result.Total, len(result.Skipped), shopID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
