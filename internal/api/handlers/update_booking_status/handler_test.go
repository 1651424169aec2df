package update_booking_status

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ShopBooking/internal/service/bookings"
	"github.com/m04kA/SMC-ShopBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-ShopBooking/pkg/logger"
)

type stubService struct {
	got *models.UpdateStatusRequest
	err error
}

func (s *stubService) UpdateStatus(_ context.Context, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.BookingResponse{ID: req.BookingID, Status: req.Status}, nil
}

func serve(svc BookingService, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/shops/{shopId}/bookings/{bookingId}/status", NewHandler(svc, logger.Nop()).Handle).Methods(http.MethodPatch)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/api/v1/shops/shop-1/bookings/b1/status", strings.NewReader(body)))
	return rec
}

func TestHandle(t *testing.T) {
	svc := &stubService{}
	rec := serve(svc, `{"status":"confirmed"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "shop-1", svc.got.ShopID)
	assert.Equal(t, "b1", svc.got.BookingID)

	assert.Equal(t, http.StatusConflict, serve(&stubService{err: bookings.ErrInvalidTransition}, `{"status":"confirmed"}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(&stubService{err: bookings.ErrInvalidInput}, `{"status":"cancelled"}`).Code)
	assert.Equal(t, http.StatusNotFound, serve(&stubService{err: bookings.ErrBookingNotFound}, `{"status":"rejected"}`).Code)
}
