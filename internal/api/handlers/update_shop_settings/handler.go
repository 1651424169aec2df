package update_shop_settings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ShopBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ShopBooking/internal/service/settings"
	"github.com/m04kA/SMC-ShopBooking/internal/service/settings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные значения настроек"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/shops/{shopId}/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shopID := mux.Vars(r)["shopId"]

	var req models.UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /shops/{id}/settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.ShopID = shopID

	result, err := h.service.Update(r.Context(), &req)
	if err != nil {
		if errors.Is(err, settings.ErrInvalidInput) {
			h.logger.Warn("PUT /shops/{id}/settings - Invalid data: shop_id=%s, error=%v", shopID, err)
			handlers.RespondBadRequest(w, msgInvalidData)
			return
		}

		h.logger.Error("PUT /shops/{id}/settings - Failed to update settings: shop_id=%s, error=%v", shopID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /shops/{id}/settings - Settings updated successfully: shop_id=%s", shopID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
