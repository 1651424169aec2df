// Package usecasetest содержит in-memory хранилище магазина для тестов usecase'ов.
package usecasetest

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-ShopBooking/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-ShopBooking/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-ShopBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-ShopBooking/pkg/logger"
)

// Store одно in-memory состояние магазина с семантикой репозиториев (условный claim, уникальный ref code)
type Store struct {
	mu sync.Mutex

	services map[string]domain.Service
	staff    []domain.StaffMember
	slots    map[string]domain.AvailabilitySlot
	bookings map[string]domain.Booking

	// FailCreateOn дата -> ошибка Create (имитация сбоя хранилища на вхождении серии)
	FailCreateOn map[string]error
	// ReadErr возвращается всеми чтениями, если задана
	ReadErr error
}

func NewStore() *Store {
	return &Store{
		services:     map[string]domain.Service{},
		slots:        map[string]domain.AvailabilitySlot{},
		bookings:     map[string]domain.Booking{},
		FailCreateOn: map[string]error{},
	}
}

func (s *Store) AddService(svc domain.Service) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.services[svc.ShopID+"|"+svc.ID] = svc
}

func (s *Store) AddStaff(m domain.StaffMember) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.staff = append(s.staff, m)
}

func (s *Store) AddSlot(slot domain.AvailabilitySlot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[slot.ID] = slot
}

func (s *Store) AddBooking(b domain.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[b.ID] = b
}

// Slot текущее состояние ручного слота
func (s *Store) Slot(id string) (domain.AvailabilitySlot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.slots[id]
	return slot, ok
}

// Booking текущее состояние бронирования
func (s *Store) Booking(id string) (domain.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	return b, ok
}

// Bookings все бронирования, отсортированные по дате и времени
func (s *Store) Bookings() []domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedBookings(func(domain.Booking) bool { return true })
}

func (s *Store) sortedBookings(keep func(domain.Booking) bool) []domain.Booking {
	out := make([]domain.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		if keep(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out
}

type state struct {
	slots    map[string]domain.AvailabilitySlot
	bookings map[string]domain.Booking
}

func (s *Store) save() state {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := state{
		slots:    make(map[string]domain.AvailabilitySlot, len(s.slots)),
		bookings: make(map[string]domain.Booking, len(s.bookings)),
	}
	for k, v := range s.slots {
		st.slots[k] = v
	}
	for k, v := range s.bookings {
		st.bookings[k] = v
	}
	return st
}

func (s *Store) restore(st state) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots = st.slots
	s.bookings = st.bookings
}

// Services каталог услуг
func (s *Store) Services() *Services { return &Services{s} }

// Staff репозиторий мастеров
func (s *Store) Staff() *Staff { return &Staff{s} }

// Slots репозиторий ручных слотов
func (s *Store) Slots() *Slots { return &Slots{s} }

// BookingRepo репозиторий бронирований
func (s *Store) BookingRepo() *Bookings { return &Bookings{s} }

type Services struct{ s *Store }

func (r *Services) GetService(_ context.Context, shopID, serviceID string) (*domain.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.ReadErr != nil {
		return nil, r.s.ReadErr
	}
	svc, ok := r.s.services[shopID+"|"+serviceID]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return &svc, nil
}

type Staff struct{ s *Store }

func (r *Staff) GetByShop(_ context.Context, shopID string) ([]domain.StaffMember, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.ReadErr != nil {
		return nil, r.s.ReadErr
	}
	var out []domain.StaffMember
	for _, m := range r.s.staff {
		if m.ShopID == shopID {
			out = append(out, m)
		}
	}
	return out, nil
}

type Slots struct{ s *Store }

func (r *Slots) GetByShop(_ context.Context, shopID, fromDate string) ([]domain.AvailabilitySlot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.ReadErr != nil {
		return nil, r.s.ReadErr
	}
	var out []domain.AvailabilitySlot
	for _, slot := range r.s.slots {
		if slot.ShopID == shopID && slot.Date >= fromDate {
			out = append(out, slot)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Slots) Claim(_ context.Context, shopID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	slot, ok := r.s.slots[id]
	if !ok || slot.ShopID != shopID || !slot.Available {
		return availabilityRepo.ErrSlotAlreadyClaimed
	}
	slot.Available = false
	r.s.slots[id] = slot
	return nil
}

func (r *Slots) Release(_ context.Context, shopID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	slot, ok := r.s.slots[id]
	if !ok || slot.ShopID != shopID {
		return nil
	}
	slot.Available = true
	r.s.slots[id] = slot
	return nil
}

type Bookings struct{ s *Store }

func (r *Bookings) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.FailCreateOn[b.Date]; err != nil {
		return nil, err
	}
	for _, existing := range r.s.bookings {
		if existing.RefCode == b.RefCode {
			return nil, bookingRepo.ErrDuplicateRefCode
		}
	}
	r.s.bookings[b.ID] = *b
	return b, nil
}

func (r *Bookings) GetByID(_ context.Context, shopID, id string) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[id]
	if !ok || b.ShopID != shopID {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return &b, nil
}

func (r *Bookings) GetByRefCode(_ context.Context, shopID, refCode string) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.bookings {
		if b.ShopID == shopID && b.RefCode == refCode {
			return &b, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (r *Bookings) GetActiveByShop(_ context.Context, shopID, fromDate string) ([]domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.ReadErr != nil {
		return nil, r.s.ReadErr
	}
	return r.s.sortedBookings(func(b domain.Booking) bool {
		return b.ShopID == shopID && b.Date >= fromDate && b.IsActive()
	}), nil
}

func (r *Bookings) GetByGroup(_ context.Context, shopID, groupID string) ([]domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.sortedBookings(func(b domain.Booking) bool {
		return b.ShopID == shopID && b.RecurringGroupID != nil && *b.RecurringGroupID == groupID
	}), nil
}

func (r *Bookings) Reschedule(_ context.Context, b *domain.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.bookings[b.ID]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	r.s.bookings[b.ID] = *b
	return nil
}

func (r *Bookings) Cancel(_ context.Context, shopID, id string) error {
	return r.UpdateStatus(context.Background(), shopID, id, domain.StatusCancelled)
}

func (r *Bookings) UpdateStatus(_ context.Context, shopID, id string, status domain.BookingStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[id]
	if !ok || b.ShopID != shopID {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	r.s.bookings[id] = b
	return nil
}

// TxManager откатывает состояние Store, если функция вернула ошибку.
// Attempts > 1 повторяет функцию при domain.ErrWriteConflict, как txmanager.WithConflictRetry.
type TxManager struct {
	Store    *Store
	Attempts int
	Calls    int
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 1; ; attempt++ {
		m.Calls++
		saved := m.Store.save()
		if err = fn(ctx); err == nil {
			return nil
		}
		m.Store.restore(saved)
		if !errors.Is(err, domain.ErrWriteConflict) || attempt >= m.Attempts {
			return err
		}
	}
}

// SlotStore запись ручных слотов (lifecycle.SlotStore)
type SlotStore interface {
	Claim(ctx context.Context, shopID, slotID string) error
	Release(ctx context.Context, shopID, slotID string) error
}

// ConflictingSlots первые Conflicts захватов проигрывают конкурентной транзакции
type ConflictingSlots struct {
	SlotStore
	Conflicts int
	Claims    int
}

func (s *ConflictingSlots) Claim(ctx context.Context, shopID, slotID string) error {
	s.Claims++
	if s.Claims <= s.Conflicts {
		return fmt.Errorf("%w: Claim - execute update: could not serialize access", domain.ErrWriteConflict)
	}
	return s.SlotStore.Claim(ctx, shopID, slotID)
}

// Settings фиксированные настройки магазина
type Settings struct {
	Value domain.ShopSettings
}

func (p *Settings) Effective(_ context.Context, shopID string) (*domain.ShopSettings, error) {
	s := p.Value
	s.ShopID = shopID
	return &s, nil
}

// Clock фиксированное время
type Clock struct{ T time.Time }

func (c Clock) Now() time.Time { return c.T }

// SeqIDs детерминированные идентификаторы id-1, id-2, ...
type SeqIDs struct{ n int }

func (g *SeqIDs) NewID() string {
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

// SeqCodes детерминированные коды BK0001, BK0002, ... Первые Repeat кодов повторяют Repeated.
type SeqCodes struct {
	n        int
	Repeated string
	Repeat   int
}

func (g *SeqCodes) Booking() string {
	if g.Repeat > 0 {
		g.Repeat--
		return g.Repeated
	}
	g.n++
	return fmt.Sprintf("BK%04d", g.n)
}

func (g *SeqCodes) Waitlist() string {
	g.n++
	return fmt.Sprintf("WL%04d", g.n)
}

// Cache фиксирует сбросы кеша слотов
type Cache struct {
	Invalidated []string
}

func (c *Cache) Invalidate(_ context.Context, shopID string) error {
	c.Invalidated = append(c.Invalidated, shopID)
	return nil
}

// Events фиксирует опубликованные события
type Events struct {
	Published map[string][]string // тип -> id бронирований
	Err       error
}

func (e *Events) Publish(_ context.Context, eventType string, bookings ...*domain.Booking) error {
	if e.Err != nil {
		return e.Err
	}
	if e.Published == nil {
		e.Published = map[string][]string{}
	}
	for _, b := range bookings {
		e.Published[eventType] = append(e.Published[eventType], b.ID)
	}
	return nil
}

// Metrics счетчики без prometheus
type Metrics struct {
	Created        map[string]int
	NotCreated     map[string]int
	Cancelled      map[string]int
	ClaimConflicts int
	CacheResults   map[string]int
}

func (m *Metrics) IncBookingsCreated(kind string, n int) {
	if m.Created == nil {
		m.Created = map[string]int{}
	}
	m.Created[kind] += n
}

func (m *Metrics) IncRecurringNotCreated(reason string, n int) {
	if m.NotCreated == nil {
		m.NotCreated = map[string]int{}
	}
	m.NotCreated[reason] += n
}

func (m *Metrics) IncBookingsCancelled(mode string, n int) {
	if m.Cancelled == nil {
		m.Cancelled = map[string]int{}
	}
	m.Cancelled[mode] += n
}

func (m *Metrics) IncSlotClaimConflict() { m.ClaimConflicts++ }

func (m *Metrics) IncSlotCache(result string) {
	if m.CacheResults == nil {
		m.CacheResults = map[string]int{}
	}
	m.CacheResults[result]++
}

// ErrStore типовая ошибка хранилища
var ErrStore = errors.New("store unavailable")

// Logger логгер без вывода
func Logger() *logger.Logger { return logger.Nop() }
