package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	"github.com/m04kA/SMC-ShopBooking/pkg/ptr"
	"github.com/m04kA/SMC-ShopBooking/pkg/refcode"
	"github.com/m04kA/SMC-ShopBooking/pkg/types"
)

type seqIDs struct{ n int }

func (s *seqIDs) NewID() string {
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}

type seqCodes struct{ n int }

func (s *seqCodes) Booking() string {
	s.n++
	return fmt.Sprintf("BK%04d", s.n)
}

var fixedNow = time.Date(2024, 1, 10, 9, 0, 0, 0, time.Local)

func newCoordinator() *Coordinator {
	return NewCoordinator(&seqIDs{}, &seqCodes{}, nil, func() time.Time { return fixedNow })
}

func manualSlot(id, date, t string) domain.Slot {
	return domain.Slot{ID: id, Date: date, Time: types.TimeString(t), Duration: 60, StaffID: ptr.Ptr("s1"), StaffName: ptr.Ptr("Anna"), Available: true}
}

func generatedSlot(date, t string) domain.Slot {
	return domain.Slot{
		ID:        domain.GeneratedSlotID("s1", date, types.TimeString(t)),
		Date:      date,
		Time:      types.TimeString(t),
		Duration:  60,
		StaffID:   ptr.Ptr("s1"),
		StaffName: ptr.Ptr("Anna"),
		Generated: true,
		Available: true,
	}
}

func kinds(writes []Write) []WriteKind {
	out := make([]WriteKind, 0, len(writes))
	for _, w := range writes {
		out = append(out, w.Kind)
	}
	return out
}

func TestPlanCreate_ManualSlot(t *testing.T) {
	c := newCoordinator()

	plan, err := c.PlanCreate(CreateCommand{
		ShopID:   "shop-1",
		Slot:     manualSlot("slot-1", "2024-01-15", "10:00"),
		Service:  domain.Service{ID: "svc-1", Name: "Haircut", Duration: 45, Price: 30},
		Client:   Client{Name: "Kim", Email: "kim@example.com"},
		Settings: domain.ShopSettings{RequireApproval: true},
	})
	require.NoError(t, err)

	assert.Equal(t, []WriteKind{WriteClaimSlot, WriteCreateBooking}, kinds(plan.PrimaryWrites))
	assert.Equal(t, "slot-1", plan.PrimaryWrites[0].SlotID)
	assert.Same(t, plan.Primary, plan.PrimaryWrites[1].Booking)

	b := plan.Primary
	assert.Equal(t, "id-1", b.ID)
	assert.Equal(t, "BK0001", b.RefCode)
	assert.Equal(t, domain.StatusPending, b.Status)
	assert.Equal(t, 45, b.ServiceDuration)
	assert.Equal(t, "s1", *b.StaffID)
	assert.Equal(t, fixedNow, b.CreatedAt)
	assert.Nil(t, b.RecurringGroupID)
	assert.Nil(t, plan.Series)
	assert.Empty(t, plan.OccurrenceWrites)
}

func TestPlanCreate_GeneratedSlotIsNotClaimed(t *testing.T) {
	c := newCoordinator()

	plan, err := c.PlanCreate(CreateCommand{
		ShopID:  "shop-1",
		Slot:    generatedSlot("2024-01-15", "10:00"),
		Service: domain.Service{ID: "svc-1", Duration: 60},
	})
	require.NoError(t, err)

	assert.Equal(t, []WriteKind{WriteCreateBooking}, kinds(plan.PrimaryWrites))
	assert.Equal(t, domain.StatusConfirmed, plan.Primary.Status)
}

func TestPlanCreate_Unavailable(t *testing.T) {
	c := newCoordinator()

	taken := manualSlot("slot-1", "2024-01-15", "10:00")
	taken.Available = false
	_, err := c.PlanCreate(CreateCommand{ShopID: "shop-1", Slot: taken, Service: domain.Service{Duration: 60}})
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	_, err = c.PlanCreate(CreateCommand{
		ShopID:  "shop-1",
		Slot:    generatedSlot("2024-01-15", "10:00"),
		Service: domain.Service{Duration: 60},
		Bookings: []domain.Booking{
			{ID: "other", Date: "2024-01-15", Time: "10:30", Duration: 30, StaffID: ptr.Ptr("s1"), Status: domain.StatusConfirmed},
		},
	})
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestPlanCreate_RecurringSeries(t *testing.T) {
	c := newCoordinator()
	interval := domain.IntervalBiweekly

	plan, err := c.PlanCreate(CreateCommand{
		ShopID:   "shop-1",
		Slot:     manualSlot("slot-1", "2024-01-01", "10:00"),
		Service:  domain.Service{ID: "svc-1", Duration: 60},
		Client:   Client{Name: "Kim"},
		Interval: &interval,
		Bookings: []domain.Booking{
			{ID: "busy", Date: "2024-02-12", Time: "10:00", Duration: 60, StaffID: ptr.Ptr("s1"), Status: domain.StatusConfirmed},
		},
	})
	require.NoError(t, err)

	require.NotNil(t, plan.Series)
	assert.Equal(t, []string{"2024-01-15", "2024-01-29", "2024-02-26", "2024-03-11", "2024-03-25"}, plan.Series.Accepted)
	assert.Equal(t, []string{"2024-02-12"}, plan.Series.Skipped)

	groupID := *plan.Primary.RecurringGroupID
	assert.Equal(t, domain.IntervalBiweekly, *plan.Primary.RecurringInterval)

	require.Len(t, plan.OccurrenceWrites, 5)
	codes := map[string]bool{plan.Primary.RefCode: true}
	ids := map[string]bool{plan.Primary.ID: true}
	for i, w := range plan.OccurrenceWrites {
		b := w.Booking
		assert.Equal(t, WriteCreateBooking, w.Kind)
		assert.Equal(t, plan.Series.Accepted[i], b.Date)
		assert.Equal(t, groupID, *b.RecurringGroupID)
		assert.Equal(t, domain.RecurringSlotID(groupID, b.Date), b.SlotID)
		assert.Equal(t, "Kim", b.ClientName)
		assert.False(t, codes[b.RefCode], "ref code reused")
		assert.False(t, ids[b.ID], "id reused")
		codes[b.RefCode] = true
		ids[b.ID] = true
	}

	// Основная запись по-прежнему занимает только свой ручной слот
	assert.Equal(t, []WriteKind{WriteClaimSlot, WriteCreateBooking}, kinds(plan.PrimaryWrites))
}

func TestPlanReschedule(t *testing.T) {
	existing := domain.Booking{
		ID: "b1", ShopID: "shop-1", Date: "2024-01-15", Time: "10:00", ServiceDuration: 60,
		StaffID: ptr.Ptr("s1"), Status: domain.StatusConfirmed, SlotID: "slot-old",
		RecurringGroupID: ptr.Ptr("g1"),
	}

	tests := []struct {
		name       string
		newSlot    domain.Slot
		approval   bool
		wantWrites []WriteKind
		wantStatus domain.BookingStatus
	}{
		{
			name:       "manual to manual",
			newSlot:    manualSlot("slot-new", "2024-01-16", "11:00"),
			wantWrites: []WriteKind{WriteReleaseSlot, WriteClaimSlot, WriteRescheduleBooking},
			wantStatus: domain.StatusConfirmed,
		},
		{
			name:       "manual to generated with approval",
			newSlot:    generatedSlot("2024-01-16", "11:00"),
			approval:   true,
			wantWrites: []WriteKind{WriteReleaseSlot, WriteRescheduleBooking},
			wantStatus: domain.StatusPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := newCoordinator().PlanReschedule(RescheduleCommand{
				Booking:  existing,
				NewSlot:  tt.newSlot,
				Settings: domain.ShopSettings{RequireApproval: tt.approval},
				Bookings: []domain.Booking{existing},
			})
			require.NoError(t, err)

			assert.Equal(t, tt.wantWrites, kinds(plan.Writes))
			assert.Equal(t, tt.wantStatus, plan.Booking.Status)
			assert.Equal(t, "2024-01-16", plan.Booking.Date)
			assert.Equal(t, tt.newSlot.ID, plan.Booking.SlotID)
			assert.Equal(t, "g1", *plan.Booking.RecurringGroupID)
			assert.Equal(t, "2024-01-15", existing.Date, "input snapshot must not change")
		})
	}
}

func TestPlanReschedule_FromRecurringSlot(t *testing.T) {
	b := domain.Booking{ID: "b1", ShopID: "shop-1", Date: "2024-01-29", Time: "10:00", Duration: 60,
		Status: domain.StatusConfirmed, SlotID: domain.RecurringSlotID("g1", "2024-01-29")}

	plan, err := newCoordinator().PlanReschedule(RescheduleCommand{Booking: b, NewSlot: manualSlot("slot-2", "2024-01-30", "10:00")})
	require.NoError(t, err)

	assert.Equal(t, []WriteKind{WriteClaimSlot, WriteRescheduleBooking}, kinds(plan.Writes))
}

func TestPlanReschedule_SameSlotOnlyUpdatesBooking(t *testing.T) {
	b := domain.Booking{ID: "b1", ShopID: "shop-1", Date: "2024-01-15", Time: "10:00", Duration: 60,
		Status: domain.StatusConfirmed, SlotID: "slot-1", StaffID: ptr.Ptr("s1")}
	slot := manualSlot("slot-1", "2024-01-15", "10:00")
	slot.Available = false

	plan, err := newCoordinator().PlanReschedule(RescheduleCommand{Booking: b, NewSlot: slot, Bookings: []domain.Booking{b}})
	require.NoError(t, err)

	assert.Equal(t, []WriteKind{WriteRescheduleBooking}, kinds(plan.Writes))
}

func TestPlanReschedule_Errors(t *testing.T) {
	cancelled := domain.Booking{ID: "b1", Status: domain.StatusCancelled}
	_, err := newCoordinator().PlanReschedule(RescheduleCommand{Booking: cancelled, NewSlot: generatedSlot("2024-01-16", "10:00")})
	assert.ErrorIs(t, err, ErrBookingNotActive)

	active := domain.Booking{ID: "b1", Status: domain.StatusConfirmed, Date: "2024-01-15", Time: "10:00", Duration: 60}
	other := domain.Booking{ID: "b2", Status: domain.StatusPending, Date: "2024-01-16", Time: "10:00", Duration: 60, StaffID: ptr.Ptr("s1")}
	_, err = newCoordinator().PlanReschedule(RescheduleCommand{
		Booking:  active,
		NewSlot:  generatedSlot("2024-01-16", "10:00"),
		Bookings: []domain.Booking{active, other},
	})
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func seriesBooking(id, date, slotID string, status domain.BookingStatus) domain.Booking {
	return domain.Booking{
		ID: id, ShopID: "shop-1", Date: date, Time: "10:00", Duration: 60,
		Status: status, SlotID: slotID, RecurringGroupID: ptr.Ptr("g1"),
	}
}

func TestPlanCancel_FutureCascade(t *testing.T) {
	group := []domain.Booking{
		seriesBooking("b-0115", "2024-01-15", "slot-manual", domain.StatusConfirmed),
		seriesBooking("b-0129", "2024-01-29", domain.RecurringSlotID("g1", "2024-01-29"), domain.StatusConfirmed),
		seriesBooking("b-0212", "2024-02-12", domain.RecurringSlotID("g1", "2024-02-12"), domain.StatusConfirmed),
		seriesBooking("b-0226", "2024-02-26", domain.RecurringSlotID("g1", "2024-02-26"), domain.StatusPending),
		seriesBooking("b-0311", "2024-03-11", domain.RecurringSlotID("g1", "2024-03-11"), domain.StatusConfirmed),
		seriesBooking("b-0325", "2024-03-25", domain.RecurringSlotID("g1", "2024-03-25"), domain.StatusConfirmed),
	}

	plan, err := newCoordinator().PlanCancel(CancelCommand{Target: group[2], Mode: CancelFuture, Group: group})
	require.NoError(t, err)

	var cancelled []string
	for _, b := range plan.Cancelled {
		cancelled = append(cancelled, b.Date)
		assert.Equal(t, domain.StatusCancelled, b.Status)
	}
	assert.Equal(t, []string{"2024-02-12", "2024-02-26", "2024-03-11", "2024-03-25"}, cancelled)

	// Синтетические слоты не освобождаются
	assert.Equal(t, []WriteKind{WriteCancelBooking, WriteCancelBooking, WriteCancelBooking, WriteCancelBooking}, kinds(plan.Writes))
	for _, w := range plan.Writes {
		assert.NotEqual(t, "b-0115", w.BookingID)
		assert.NotEqual(t, "b-0129", w.BookingID)
	}
}

func TestPlanCancel_FutureSkipsInactiveAndOtherGroups(t *testing.T) {
	target := seriesBooking("b1", "2024-02-12", "slot-1", domain.StatusConfirmed)
	alreadyCancelled := seriesBooking("b2", "2024-02-26", "slot-2", domain.StatusCancelled)
	otherGroup := seriesBooking("b3", "2024-03-11", "slot-3", domain.StatusConfirmed)
	otherGroup.RecurringGroupID = ptr.Ptr("g2")

	plan, err := newCoordinator().PlanCancel(CancelCommand{
		Target: target,
		Mode:   CancelFuture,
		Group:  []domain.Booking{target, alreadyCancelled, otherGroup},
	})
	require.NoError(t, err)

	assert.Equal(t, []WriteKind{WriteCancelBooking, WriteReleaseSlot}, kinds(plan.Writes))
	assert.Equal(t, "slot-1", plan.Writes[1].SlotID)
}

func TestPlanCancel_Single(t *testing.T) {
	group := []domain.Booking{
		seriesBooking("b1", "2024-01-15", "slot-1", domain.StatusConfirmed),
		seriesBooking("b2", "2024-01-29", "slot-2", domain.StatusConfirmed),
	}

	plan, err := newCoordinator().PlanCancel(CancelCommand{Target: group[0], Mode: CancelSingle, Group: group})
	require.NoError(t, err)

	assert.Len(t, plan.Cancelled, 1)
	assert.Equal(t, []WriteKind{WriteCancelBooking, WriteReleaseSlot}, kinds(plan.Writes))
}

func TestPlanCancel_FutureWithoutGroupActsAsSingle(t *testing.T) {
	b := domain.Booking{ID: "b1", ShopID: "shop-1", Date: "2024-01-15", Status: domain.StatusPending, SlotID: "gen_s1_2024-01-15_10:00"}

	plan, err := newCoordinator().PlanCancel(CancelCommand{Target: b, Mode: CancelFuture})
	require.NoError(t, err)

	assert.Equal(t, []WriteKind{WriteCancelBooking}, kinds(plan.Writes))
}

func TestPlanCancel_Errors(t *testing.T) {
	_, err := newCoordinator().PlanCancel(CancelCommand{Target: domain.Booking{Status: domain.StatusConfirmed}, Mode: "all"})
	assert.ErrorIs(t, err, ErrUnknownCancelMode)

	_, err = newCoordinator().PlanCancel(CancelCommand{Target: domain.Booking{Status: domain.StatusRejected}, Mode: CancelSingle})
	assert.ErrorIs(t, err, ErrBookingNotActive)
}

// --- Applier ---

type memoryStore struct {
	bookings      map[string]*domain.Booking
	available     map[string]bool
	refCodes      map[string]bool
	failCreateFor map[string]bool
	calls         []string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		bookings:      map[string]*domain.Booking{},
		available:     map[string]bool{},
		refCodes:      map[string]bool{},
		failCreateFor: map[string]bool{},
	}
}

func (m *memoryStore) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	m.calls = append(m.calls, "create:"+b.ID)
	if m.failCreateFor[b.Date] {
		return nil, errors.New("store unavailable")
	}
	if m.refCodes[b.RefCode] {
		return nil, fmt.Errorf("insert: %w", domain.ErrDuplicateRefCode)
	}
	m.refCodes[b.RefCode] = true
	copied := *b
	m.bookings[b.ID] = &copied
	return &copied, nil
}

func (m *memoryStore) Reschedule(_ context.Context, b *domain.Booking) error {
	m.calls = append(m.calls, "reschedule:"+b.ID)
	copied := *b
	m.bookings[b.ID] = &copied
	return nil
}

func (m *memoryStore) Cancel(_ context.Context, _ string, id string) error {
	m.calls = append(m.calls, "cancel:"+id)
	if b, ok := m.bookings[id]; ok {
		b.Status = domain.StatusCancelled
	}
	return nil
}

func (m *memoryStore) Claim(_ context.Context, _ string, slotID string) error {
	m.calls = append(m.calls, "claim:"+slotID)
	if !m.available[slotID] {
		return domain.ErrSlotAlreadyClaimed
	}
	m.available[slotID] = false
	return nil
}

func (m *memoryStore) Release(_ context.Context, _ string, slotID string) error {
	m.calls = append(m.calls, "release:"+slotID)
	m.available[slotID] = true
	return nil
}

func TestApplier_ApplyInOrder(t *testing.T) {
	store := newMemoryStore()
	store.available["slot-1"] = true
	applier := NewApplier(store, store, &seqCodes{}, 3)

	plan, err := newCoordinator().PlanCreate(CreateCommand{ShopID: "shop-1", Slot: manualSlot("slot-1", "2024-01-15", "10:00"), Service: domain.Service{Duration: 60}})
	require.NoError(t, err)

	require.NoError(t, applier.Apply(context.Background(), plan.PrimaryWrites))
	assert.Equal(t, []string{"claim:slot-1", "create:id-1"}, store.calls)
	assert.False(t, store.available["slot-1"])
}

func TestApplier_ClaimConflictStops(t *testing.T) {
	store := newMemoryStore()
	applier := NewApplier(store, store, &seqCodes{}, 3)

	writes := []Write{claimSlot("shop-1", "slot-1"), createBooking(&domain.Booking{ID: "b1"})}
	err := applier.Apply(context.Background(), writes)

	assert.ErrorIs(t, err, domain.ErrSlotAlreadyClaimed)
	assert.Equal(t, []string{"claim:slot-1"}, store.calls)
}

func TestApplier_ApplyEachBestEffort(t *testing.T) {
	store := newMemoryStore()
	store.failCreateFor["2024-02-12"] = true
	store.refCodes["BK0001"] = true

	occurrences := []*domain.Booking{
		{ID: "o1", Date: "2024-01-29", RefCode: "BK0001"},
		{ID: "o2", Date: "2024-02-12", RefCode: "BK0002"},
		{ID: "o3", Date: "2024-02-26", RefCode: "BK0003"},
	}
	var writes []Write
	for _, o := range occurrences {
		writes = append(writes, createBooking(o))
	}

	codes := &seqCodes{n: 100}
	result := NewApplier(store, store, codes, 3).ApplyEach(context.Background(), writes)

	assert.Equal(t, 2, result.Applied)
	require.Len(t, result.Created, 2)
	assert.Equal(t, "o1", result.Created[0].ID)
	assert.Equal(t, "BK0101", result.Created[0].RefCode, "duplicate code must be regenerated")
	assert.Equal(t, "o3", result.Created[1].ID)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "o2", result.Failed[0].Write.BookingID)
	// Уже созданные вхождения не откатываются
	assert.Contains(t, store.bookings, "o1")
	assert.Contains(t, store.bookings, "o3")
}

func TestApplier_RefCodeRetryExhausted(t *testing.T) {
	store := newMemoryStore()
	store.refCodes["BK0001"] = true
	store.refCodes["BK0002"] = true

	b := &domain.Booking{ID: "o1", RefCode: "BK0001"}
	result := NewApplier(store, store, &seqCodes{n: 1}, 2).ApplyEach(context.Background(), []Write{createBooking(b)})

	require.Len(t, result.Failed, 1)
	assert.ErrorIs(t, result.Failed[0].Err, domain.ErrDuplicateRefCode)
}

func TestApplier_UnknownWrite(t *testing.T) {
	store := newMemoryStore()
	err := NewApplier(store, store, &seqCodes{}, 1).Apply(context.Background(), []Write{{Kind: "noop"}})
	assert.ErrorIs(t, err, ErrUnknownWrite)
}

func TestRefCodeFormatFromGenerator(t *testing.T) {
	plan, err := NewCoordinator(&seqIDs{}, refcode.NewGenerator(), nil, nil).PlanCreate(CreateCommand{
		ShopID: "shop-1", Slot: generatedSlot("2024-01-15", "10:00"), Service: domain.Service{Duration: 60},
	})
	require.NoError(t, err)
	assert.True(t, refcode.IsValid(plan.Primary.RefCode))
}
