package update_shop_settings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ShopBooking/internal/service/settings"
	"github.com/m04kA/SMC-ShopBooking/internal/service/settings/models"
	"github.com/m04kA/SMC-ShopBooking/pkg/logger"
)

type stubService struct {
	got *models.UpdateSettingsRequest
	err error
}

func (s *stubService) Update(_ context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.SettingsResponse{ShopID: req.ShopID, BufferMinutes: *req.BufferMinutes}, nil
}

func serve(svc SettingsService, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/shops/{shopId}/settings", NewHandler(svc, logger.Nop()).Handle).Methods(http.MethodPut)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/v1/shops/shop-1/settings", strings.NewReader(body)))
	return rec
}

func TestHandle(t *testing.T) {
	svc := &stubService{}
	rec := serve(svc, `{"bufferMinutes":15}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "shop-1", svc.got.ShopID)
	assert.Nil(t, svc.got.HorizonWeeks)
	assert.Contains(t, rec.Body.String(), `"bufferMinutes":15`)

	assert.Equal(t, http.StatusBadRequest, serve(&stubService{err: settings.ErrInvalidInput}, `{"bufferMinutes":999}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(&stubService{}, `{"shopId":"other"}`).Code)
}
