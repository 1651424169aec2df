package get_shop_settings

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ShopBooking/internal/api/handlers"
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

// Handle GET /api/v1/shops/{shopId}/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shopID := mux.Vars(r)["shopId"]

	// Отсутствие сохраненных настроек не ошибка: сервис вернет значения по умолчанию
	settings, err := h.service.Get(r.Context(), shopID)
	if err != nil {
		h.logger.Error("GET /shops/{id}/settings - Failed to get settings: shop_id=%s, error=%v", shopID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /shops/{id}/settings - Settings retrieved: shop_id=%s, default=%t", shopID, settings.IsDefault)
	handlers.RespondJSON(w, http.StatusOK, settings)
}
