package lifecycle

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	"github.com/m04kA/SMC-ShopBooking/internal/recurring"
	"github.com/m04kA/SMC-ShopBooking/internal/slots"
)

// CancelMode режим отмены
type CancelMode string

const (
	CancelSingle CancelMode = "single"
	CancelFuture CancelMode = "future"
)

// IDGenerator генератор идентификаторов бронирований и групп
type IDGenerator interface {
	NewID() string
}

// RefCodeGenerator генератор кодов бронирований
type RefCodeGenerator interface {
	Booking() string
}

// Client данные клиента, копируемые в каждое бронирование серии
type Client struct {
	Name  string
	Email string
	Phone *string
}

// CreateCommand создание бронирования (и, при Interval != nil, серии)
type CreateCommand struct {
	ShopID   string
	Slot     domain.Slot
	Service  domain.Service
	Client   Client
	Notes    *string
	Interval *domain.RecurringInterval
	Settings domain.ShopSettings
	Bookings []domain.Booking // текущие бронирования магазина
}

// CreatePlan результат планирования создания.
// PrimaryWrites исполняются атомарно, OccurrenceWrites - по одной, без отката.
type CreatePlan struct {
	Primary          *domain.Booking
	PrimaryWrites    []Write
	Series           *recurring.SeriesPlan
	Occurrences      []*domain.Booking
	OccurrenceWrites []Write
}

// RescheduleCommand перенос бронирования в другой слот
type RescheduleCommand struct {
	Booking  domain.Booking
	NewSlot  domain.Slot
	Settings domain.ShopSettings
	Bookings []domain.Booking
}

// ReschedulePlan результат планирования переноса
type ReschedulePlan struct {
	Booking *domain.Booking
	Writes  []Write
}

// CancelCommand отмена бронирования. Group - остальные бронирования той же серии.
type CancelCommand struct {
	Target domain.Booking
	Mode   CancelMode
	Group  []domain.Booking
}

// CancelPlan результат планирования отмены
type CancelPlan struct {
	Cancelled []domain.Booking
	Writes    []Write
}

// Coordinator вычисляет записи для create/reschedule/cancel по снимку данных, ничего не исполняя
type Coordinator struct {
	ids     IDGenerator
	codes   RefCodeGenerator
	planner *recurring.Planner
	now     func() time.Time
}

func NewCoordinator(ids IDGenerator, codes RefCodeGenerator, planner *recurring.Planner, now func() time.Time) *Coordinator {
	if planner == nil {
		planner = recurring.NewPlanner(domain.RecurringHorizonMonths)
	}
	if now == nil {
		now = time.Now
	}
	return &Coordinator{ids: ids, codes: codes, planner: planner, now: now}
}

// PlanCreate планирует основное бронирование и, если запрошено, вхождения серии
func (c *Coordinator) PlanCreate(cmd CreateCommand) (*CreatePlan, error) {
	duration := cmd.Service.Duration
	if duration <= 0 {
		duration = cmd.Slot.Duration
	}
	if !slotIsFree(cmd.Slot, duration, cmd.Bookings, cmd.Settings.BufferMinutes, "") {
		return nil, ErrSlotUnavailable
	}

	now := c.now()

	primary := &domain.Booking{
		ID:              c.ids.NewID(),
		ShopID:          cmd.ShopID,
		ServiceID:       cmd.Service.ID,
		ServiceName:     cmd.Service.Name,
		Price:           cmd.Service.Price,
		ServiceDuration: duration,
		Date:            cmd.Slot.Date,
		Time:            cmd.Slot.Time,
		Duration:        duration,
		StaffID:         cmd.Slot.StaffID,
		StaffName:       cmd.Slot.StaffName,
		Status:          cmd.Settings.InitialStatus(),
		SlotID:          cmd.Slot.ID,
		RefCode:         c.codes.Booking(),
		ClientName:      cmd.Client.Name,
		ClientEmail:     cmd.Client.Email,
		ClientPhone:     cmd.Client.Phone,
		Notes:           cmd.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	plan := &CreatePlan{Primary: primary}

	if cmd.Interval != nil {
		groupID := c.ids.NewID()
		interval := *cmd.Interval
		primary.RecurringGroupID = &groupID
		primary.RecurringInterval = &interval

		series, err := c.planner.Plan(recurring.Occurrence{
			Date:     primary.Date,
			Time:     primary.Time,
			Duration: duration,
			StaffID:  primary.StaffID,
		}, interval, cmd.Bookings, cmd.Settings.BufferMinutes)
		if err != nil {
			return nil, fmt.Errorf("plan series: %w", err)
		}
		plan.Series = series

		for _, date := range series.Accepted {
			occurrence := *primary
			occurrence.ID = c.ids.NewID()
			occurrence.Date = date
			occurrence.SlotID = domain.RecurringSlotID(groupID, date)
			occurrence.RefCode = c.codes.Booking()

			plan.Occurrences = append(plan.Occurrences, &occurrence)
			plan.OccurrenceWrites = append(plan.OccurrenceWrites, createBooking(&occurrence))
		}
	}

	plan.PrimaryWrites = claimIfManual(plan.PrimaryWrites, cmd.ShopID, cmd.Slot.ID)
	plan.PrimaryWrites = append(plan.PrimaryWrites, createBooking(primary))

	return plan, nil
}

// PlanReschedule освобождает старый ручной слот, занимает новый и обновляет бронирование.
// Остальные бронирования серии не затрагиваются.
func (c *Coordinator) PlanReschedule(cmd RescheduleCommand) (*ReschedulePlan, error) {
	if !cmd.Booking.CanBeRescheduled() {
		return nil, ErrBookingNotActive
	}

	// Слот, уже занятый этим же бронированием, считается свободным
	sameSlot := cmd.NewSlot.ID == cmd.Booking.SlotID
	target := cmd.NewSlot
	if sameSlot {
		target.Available = true
	}
	duration := cmd.Booking.EffectiveDuration(cmd.NewSlot.Duration)
	if !slotIsFree(target, duration, cmd.Bookings, cmd.Settings.BufferMinutes, cmd.Booking.ID) {
		return nil, ErrSlotUnavailable
	}

	updated := cmd.Booking
	updated.Date = cmd.NewSlot.Date
	updated.Time = cmd.NewSlot.Time
	updated.SlotID = cmd.NewSlot.ID
	updated.StaffID = cmd.NewSlot.StaffID
	updated.StaffName = cmd.NewSlot.StaffName
	updated.UpdatedAt = c.now()
	if cmd.Settings.RequireApproval {
		updated.Status = domain.StatusPending
	}

	var writes []Write
	if !sameSlot {
		writes = releaseIfManual(writes, updated.ShopID, cmd.Booking.SlotID)
		writes = claimIfManual(writes, updated.ShopID, cmd.NewSlot.ID)
	}
	writes = append(writes, rescheduleBooking(&updated))

	return &ReschedulePlan{Booking: &updated, Writes: writes}, nil
}

// PlanCancel отменяет бронирование, а в режиме future - все активные бронирования
// той же серии с датой не раньше отменяемого. Ручные слоты освобождаются.
func (c *Coordinator) PlanCancel(cmd CancelCommand) (*CancelPlan, error) {
	if cmd.Mode != CancelSingle && cmd.Mode != CancelFuture {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCancelMode, cmd.Mode)
	}
	if !cmd.Target.CanBeCancelled() {
		return nil, ErrBookingNotActive
	}

	targets := []domain.Booking{cmd.Target}

	if cmd.Mode == CancelFuture && cmd.Target.IsRecurring() {
		groupID := *cmd.Target.RecurringGroupID

		var future []domain.Booking
		for _, b := range cmd.Group {
			if b.ID == cmd.Target.ID || !b.IsActive() {
				continue
			}
			if b.RecurringGroupID == nil || *b.RecurringGroupID != groupID {
				continue
			}
			// Даты в формате YYYY-MM-DD сравниваются лексикографически
			if b.Date < cmd.Target.Date {
				continue
			}
			future = append(future, b)
		}
		sort.SliceStable(future, func(i, j int) bool { return future[i].Date < future[j].Date })
		targets = append(targets, future...)
	}

	plan := &CancelPlan{}
	for _, b := range targets {
		b.Status = domain.StatusCancelled
		plan.Cancelled = append(plan.Cancelled, b)
		plan.Writes = append(plan.Writes, cancelBooking(b.ShopID, b.ID))
		plan.Writes = releaseIfManual(plan.Writes, b.ShopID, b.SlotID)
	}

	return plan, nil
}

// slotIsFree проверяет ручной флаг доступности и пересечение с активными бронированиями,
// исключая бронирование excludeID (переносимое)
func slotIsFree(slot domain.Slot, duration int, bookings []domain.Booking, buffer int, excludeID string) bool {
	if !slot.Generated && domain.IsManualSlotID(slot.ID) && !slot.Available {
		return false
	}

	others := bookings
	if excludeID != "" {
		others = make([]domain.Booking, 0, len(bookings))
		for _, b := range bookings {
			if b.ID != excludeID {
				others = append(others, b)
			}
		}
	}

	return !slots.HasConflict(slots.Candidate{
		Date:     slot.Date,
		Start:    slot.Start(),
		Duration: duration,
		StaffID:  slot.StaffID,
	}, others, buffer)
}
