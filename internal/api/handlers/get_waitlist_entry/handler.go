package get_waitlist_entry

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ShopBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ShopBooking/internal/service/waitlist"
)

const (
	msgInvalidRefCode = "некорректный код листа ожидания"
	msgNotFound       = "запись листа ожидания не найдена"
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

// Handle GET /api/v1/shops/{shopId}/waitlist/ref/{refCode}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	shopID, refCode := vars["shopId"], vars["refCode"]

	entry, err := h.service.GetByRefCode(r.Context(), shopID, refCode)
	if err != nil {
		switch {
		case errors.Is(err, waitlist.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRefCode)

		case errors.Is(err, waitlist.ErrEntryNotFound):
			h.logger.Warn("GET /waitlist/ref/{ref} - Entry not found: shop_id=%s, ref=%s", shopID, refCode)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /waitlist/ref/{ref} - Failed to get entry: ref=%s, error=%v", refCode, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /waitlist/ref/{ref} - Entry retrieved: id=%s", entry.ID)
	handlers.RespondJSON(w, http.StatusOK, entry)
}
