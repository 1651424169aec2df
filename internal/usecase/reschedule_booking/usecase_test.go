package reschedule_booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	"github.com/m04kA/SMC-ShopBooking/internal/lifecycle"
	"github.com/m04kA/SMC-ShopBooking/internal/usecase/snapshot"
	tu "github.com/m04kA/SMC-ShopBooking/internal/usecase/usecasetest"
	"github.com/m04kA/SMC-ShopBooking/pkg/ptr"
)

type env struct {
	store    *tu.Store
	settings *tu.Settings
	cache    *tu.Cache
	events   *tu.Events
	metrics  *tu.Metrics
	slots    lifecycle.SlotStore
	tx       *tu.TxManager
}

func newEnv() *env {
	store := tu.Seed()
	return &env{
		store:    store,
		settings: &tu.Settings{Value: domain.ShopSettings{HorizonWeeks: 2}},
		cache:    &tu.Cache{},
		events:   &tu.Events{},
		metrics:  &tu.Metrics{},
		slots:    store.Slots(),
		tx:       &tu.TxManager{Store: store},
	}
}

func (e *env) useCase() *UseCase {
	codes := &tu.SeqCodes{}
	loader := snapshot.NewLoader(e.settings, e.store.Services(), e.store.Staff(), e.store.Slots(), e.store.BookingRepo())
	coordinator := lifecycle.NewCoordinator(&tu.SeqIDs{}, codes, nil, tu.Clock{T: tu.Now}.Now)
	applier := lifecycle.NewApplier(e.store.BookingRepo(), e.slots, codes, 1)

	uc := NewUseCase(e.store.BookingRepo(), loader, coordinator, applier, e.cache, e.events, e.metrics,
		e.tx, tu.Logger())
	uc.timeProvider = tu.Clock{T: tu.Now}
	return uc
}

func TestExecute_ManualToManual(t *testing.T) {
	e := newEnv()
	old := tu.ManualSlot("m1", "2030-01-19", "10:00")
	old.Available = false
	e.store.AddSlot(old)
	e.store.AddSlot(tu.ManualSlot("m2", "2030-01-20", "11:00"))

	b := tu.ActiveBooking("b1", "2030-01-19", "10:00")
	b.SlotID = "m1"
	b.RecurringGroupID = ptr.Ptr("g1")
	e.store.AddBooking(b)

	sibling := tu.ActiveBooking("b2", "2030-02-02", "10:00")
	sibling.RecurringGroupID = ptr.Ptr("g1")
	e.store.AddBooking(sibling)

	resp, err := e.useCase().Execute(context.Background(), &Request{ShopID: tu.ShopID, BookingID: "b1", SlotID: "m2"})
	require.NoError(t, err)

	assert.Equal(t, "2030-01-20", resp.Date)
	assert.Equal(t, "11:00", resp.StartTime.String())
	assert.Equal(t, "m2", resp.SlotID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)

	m1, _ := e.store.Slot("m1")
	m2, _ := e.store.Slot("m2")
	assert.True(t, m1.Available)
	assert.False(t, m2.Available)

	// Остальные бронирования серии не меняются
	got, _ := e.store.Booking("b2")
	assert.Equal(t, sibling, got)

	assert.Equal(t, []string{"b1"}, e.events.Published[domain.EventBookingRescheduled])
	assert.Equal(t, []string{tu.ShopID}, e.cache.Invalidated)
}

func TestExecute_SerializationConflictExhaustedIsConflict(t *testing.T) {
	e := newEnv()
	old := tu.ManualSlot("m1", "2030-01-19", "10:00")
	old.Available = false
	e.store.AddSlot(old)
	e.store.AddSlot(tu.ManualSlot("m2", "2030-01-20", "11:00"))

	b := tu.ActiveBooking("b1", "2030-01-19", "10:00")
	b.SlotID = "m1"
	e.store.AddBooking(b)

	slots := &tu.ConflictingSlots{SlotStore: e.store.Slots(), Conflicts: 10}
	e.slots = slots
	e.tx.Attempts = 3

	_, err := e.useCase().Execute(context.Background(), &Request{ShopID: tu.ShopID, BookingID: "b1", SlotID: "m2"})
	assert.ErrorIs(t, err, ErrSlotAlreadyClaimed)
	assert.Equal(t, 3, slots.Claims)
	assert.Equal(t, 1, e.metrics.ClaimConflicts)

	// Ничего не изменилось
	got, _ := e.store.Booking("b1")
	assert.Equal(t, b, got)
	m1, _ := e.store.Slot("m1")
	assert.False(t, m1.Available)
	assert.Empty(t, e.events.Published)
}

func TestExecute_OwnBookingIsNotAConflict(t *testing.T) {
	e := newEnv()
	e.settings.Value.BufferMinutes = 30
	e.settings.Value.RequireApproval = true
	e.store.AddBooking(tu.ActiveBooking("b1", "2030-01-15", "09:00"))

	// Шаг 90 минут: 09:00, 10:30, ... ; 10:30 конфликтует только с самим b1
	resp, err := e.useCase().Execute(context.Background(), &Request{
		ShopID: tu.ShopID, BookingID: "b1", SlotID: tu.GeneratedSlotID("2030-01-15", "10:30"),
	})
	require.NoError(t, err)
	assert.Equal(t, "10:30", resp.StartTime.String())
	assert.Equal(t, string(domain.StatusPending), resp.Status)
}

func TestExecute_SameSlot(t *testing.T) {
	e := newEnv()
	old := tu.ManualSlot("m1", "2030-01-19", "10:00")
	old.Available = false
	e.store.AddSlot(old)

	b := tu.ActiveBooking("b1", "2030-01-19", "10:00")
	b.SlotID = "m1"
	e.store.AddBooking(b)

	_, err := e.useCase().Execute(context.Background(), &Request{ShopID: tu.ShopID, BookingID: "b1", SlotID: "m1"})
	require.NoError(t, err)

	m1, _ := e.store.Slot("m1")
	assert.False(t, m1.Available)
}

func TestExecute_Errors(t *testing.T) {
	e := newEnv()
	e.store.AddBooking(tu.ActiveBooking("b1", "2030-01-15", "09:00"))
	e.store.AddBooking(tu.ActiveBooking("b2", "2030-01-15", "11:00"))
	cancelled := tu.ActiveBooking("b3", "2030-01-16", "09:00")
	cancelled.Status = domain.StatusCancelled
	e.store.AddBooking(cancelled)

	tests := []struct {
		name string
		req  Request
		want error
	}{
		{"missing slot", Request{ShopID: tu.ShopID, BookingID: "b1"}, ErrInvalidInput},
		{"not found", Request{ShopID: tu.ShopID, BookingID: "nope", SlotID: "x"}, ErrBookingNotFound},
		{"other shop", Request{ShopID: "shop-2", BookingID: "b1", SlotID: "x"}, ErrBookingNotFound},
		{"cancelled", Request{ShopID: tu.ShopID, BookingID: "b3", SlotID: tu.GeneratedSlotID("2030-01-17", "09:00")}, ErrBookingNotActive},
		{"taken slot", Request{ShopID: tu.ShopID, BookingID: "b1", SlotID: tu.GeneratedSlotID("2030-01-15", "11:00")}, ErrSlotNotAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := e.useCase().Execute(context.Background(), &req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	got, _ := e.store.Booking("b1")
	assert.Equal(t, "09:00", got.Time.String())
	assert.Empty(t, e.events.Published)
}
