package create_waitlist_entry

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ShopBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ShopBooking/internal/service/waitlist"
	"github.com/m04kA/SMC-ShopBooking/internal/service/waitlist/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные для листа ожидания"
	msgServiceNotFound    = "услуга не найдена"
)

type Handler struct {
	service WaitlistService
	logger  Logger
}

func NewHandler(service WaitlistService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/shops/{shopId}/waitlist
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shopID := mux.Vars(r)["shopId"]

	var req models.CreateEntryRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /shops/{id}/waitlist - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.ShopID = shopID

	entry, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, waitlist.ErrInvalidInput):
			h.logger.Warn("POST /shops/{id}/waitlist - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, waitlist.ErrServiceNotFound):
			h.logger.Warn("POST /shops/{id}/waitlist - Service not found: shop_id=%s", shopID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		default:
			h.logger.Error("POST /shops/{id}/waitlist - Failed to create entry: shop_id=%s, error=%v", shopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /shops/{id}/waitlist - Entry created: shop_id=%s, ref=%s", shopID, entry.RefCode)
	handlers.RespondJSON(w, http.StatusCreated, entry)
}
