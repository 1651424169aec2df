package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getAvailableSlots "github.com/m04kA/SMC-ShopBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-ShopBooking/pkg/logger"
	"github.com/m04kA/SMC-ShopBooking/pkg/types"
)

type stubUseCase struct {
	got *getAvailableSlots.Request
	err error
}

func (s *stubUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &getAvailableSlots.Response{
		ShopID: req.ShopID, ServiceID: req.ServiceID, StaffID: req.StaffID,
		Slots: []getAvailableSlots.Slot{{ID: "gen_s1_2030-01-15_09:00", Date: "2030-01-15", StartTime: types.TimeString("09:00"), DurationMinutes: 60, Generated: true}},
	}, nil
}

func serve(uc GetAvailableSlotsUseCase, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/shops/{shopId}/available-slots", NewHandler(uc, logger.Nop()).Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_OK(t *testing.T) {
	uc := &stubUseCase{}
	rec := serve(uc, "/api/v1/shops/shop-1/available-slots?serviceId=svc-1&staffId=s1&date=2030-01-15")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "s1", *uc.got.StaffID)
	assert.Equal(t, "2030-01-15", *uc.got.Date)

	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Slots, 1)
	assert.Equal(t, "09:00", body.Slots[0].StartTime)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serve(&stubUseCase{}, "/api/v1/shops/shop-1/available-slots").Code)
	assert.Equal(t, http.StatusBadRequest,
		serve(&stubUseCase{err: getAvailableSlots.ErrInvalidInput}, "/api/v1/shops/shop-1/available-slots?serviceId=svc-1&date=x").Code)
	assert.Equal(t, http.StatusNotFound,
		serve(&stubUseCase{err: getAvailableSlots.ErrServiceNotFound}, "/api/v1/shops/shop-1/available-slots?serviceId=nope").Code)
}
