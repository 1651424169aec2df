package bookings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	"github.com/m04kA/SMC-ShopBooking/internal/service/bookings/models"
	tu "github.com/m04kA/SMC-ShopBooking/internal/usecase/usecasetest"
)

type env struct {
	store  *tu.Store
	cache  *tu.Cache
	events *tu.Events
}

func newEnv() *env {
	store := tu.Seed()

	confirmed := tu.ActiveBooking("b1", "2030-01-15", "10:00")
	store.AddBooking(confirmed)

	pending := tu.ActiveBooking("b2", "2030-01-16", "10:00")
	pending.Status = domain.StatusPending
	pending.SlotID = "m1"
	store.AddBooking(pending)

	m1 := tu.ManualSlot("m1", "2030-01-16", "10:00")
	m1.Available = false
	store.AddSlot(m1)

	return &env{store: store, cache: &tu.Cache{}, events: &tu.Events{}}
}

func (e *env) service() *Service {
	return NewService(e.store.BookingRepo(), e.store.Slots(), e.cache, e.events, &tu.TxManager{Store: e.store}, tu.Logger())
}

func TestService_GetByRefCode(t *testing.T) {
	e := newEnv()

	resp, err := e.service().GetByRefCode(context.Background(), tu.ShopID, "BKb1")
	require.NoError(t, err)
	assert.Equal(t, "b1", resp.ID)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, 60, resp.DurationMinutes)

	_, err = e.service().GetByRefCode(context.Background(), "shop-2", "BKb1")
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = e.service().GetByRefCode(context.Background(), tu.ShopID, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_UpdateStatus_Approve(t *testing.T) {
	e := newEnv()

	resp, err := e.service().UpdateStatus(context.Background(), &models.UpdateStatusRequest{
		ShopID: tu.ShopID, BookingID: "b2", Status: "confirmed",
	})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)

	m1, _ := e.store.Slot("m1")
	assert.False(t, m1.Available)
	assert.Empty(t, e.cache.Invalidated)
	assert.Equal(t, []string{"b2"}, e.events.Published[domain.EventBookingStatusChanged])
}

func TestService_UpdateStatus_RejectReleasesSlot(t *testing.T) {
	e := newEnv()

	_, err := e.service().UpdateStatus(context.Background(), &models.UpdateStatusRequest{
		ShopID: tu.ShopID, BookingID: "b2", Status: "rejected",
	})
	require.NoError(t, err)

	b2, _ := e.store.Booking("b2")
	assert.Equal(t, domain.StatusRejected, b2.Status)
	m1, _ := e.store.Slot("m1")
	assert.True(t, m1.Available)
	assert.Equal(t, []string{tu.ShopID}, e.cache.Invalidated)

	// rejected is terminal
	_, err = e.service().UpdateStatus(context.Background(), &models.UpdateStatusRequest{
		ShopID: tu.ShopID, BookingID: "b2", Status: "confirmed",
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestService_UpdateStatus_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     models.UpdateStatusRequest
		wantErr error
	}{
		{"cancel is not a decision", models.UpdateStatusRequest{ShopID: tu.ShopID, BookingID: "b1", Status: "cancelled"}, ErrInvalidInput},
		{"unknown status", models.UpdateStatusRequest{ShopID: tu.ShopID, BookingID: "b1", Status: "done"}, ErrInvalidInput},
		{"missing booking", models.UpdateStatusRequest{ShopID: tu.ShopID, BookingID: "nope", Status: "confirmed"}, ErrBookingNotFound},
		{"same status", models.UpdateStatusRequest{ShopID: tu.ShopID, BookingID: "b1", Status: "confirmed"}, ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv()
			req := tt.req
			_, err := e.service().UpdateStatus(context.Background(), &req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
