package reschedule_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ShopBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ShopBooking/internal/lifecycle"
	"github.com/m04kA/SMC-ShopBooking/internal/usecase/snapshot"
)

// UseCase use case переноса бронирования. Остальные бронирования серии не меняются.
type UseCase struct {
	bookingRepo  BookingRepository
	loader       SnapshotLoader
	coordinator  Coordinator
	applier      Applier
	cache        SlotCache
	events       EventPublisher
	metrics      Metrics
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case. cache может быть nil.
func NewUseCase(
	bookingRepo BookingRepository,
	loader SnapshotLoader,
	coordinator Coordinator,
	applier Applier,
	cache SlotCache,
	events EventPublisher,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		loader:       loader,
		coordinator:  coordinator,
		applier:      applier,
		cache:        cache,
		events:       events,
		metrics:      metrics,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute освобождает старый ручной слот, занимает новый и обновляет бронирование в одной транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: shop=%s, booking=%s, slot=%s", req.ShopID, req.BookingID, req.SlotID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	var updated *domain.Booking

	// 2. Все чтения и записи в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Бронирование
		booking, err := uc.bookingRepo.GetByID(txCtx, req.ShopID, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("RescheduleBooking: booking id=%s not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to get booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if !booking.CanBeRescheduled() {
			uc.logger.Warn("RescheduleBooking: booking id=%s has status %s", booking.ID, booking.Status)
			return ErrBookingNotActive
		}

		// 2.2. Снимок без переносимого бронирования: оно не должно конфликтовать само с собой
		data, err := uc.loader.Load(txCtx, req.ShopID, booking.ServiceID, nil, uc.timeProvider.Now())
		if err != nil {
			if errors.Is(err, snapshot.ErrServiceNotFound) {
				uc.logger.Warn("RescheduleBooking: service id=%s not found", booking.ServiceID)
				return ErrServiceNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to load shop data: %v", err)
			return fmt.Errorf("%w: failed to load shop data: %v", ErrInternal, err)
		}
		data = data.WithoutBooking(booking.ID)

		// 2.3. Новый слот
		slot, ok := uc.resolveSlot(data, booking, req.SlotID)
		if !ok {
			uc.logger.Warn("RescheduleBooking: slot id=%s is not available", req.SlotID)
			return ErrSlotNotAvailable
		}

		// 2.4. Планируем и исполняем записи
		plan, err := uc.coordinator.PlanReschedule(lifecycle.RescheduleCommand{
			Booking:  *booking,
			NewSlot:  slot,
			Settings: data.Settings,
			Bookings: data.Snapshot.Bookings,
		})
		if err != nil {
			switch {
			case errors.Is(err, lifecycle.ErrSlotUnavailable):
				return ErrSlotNotAvailable
			case errors.Is(err, lifecycle.ErrBookingNotActive):
				return ErrBookingNotActive
			}
			return fmt.Errorf("%w: failed to plan reschedule: %v", ErrInternal, err)
		}

		if err := uc.applier.Apply(txCtx, plan.Writes); err != nil {
			if errors.Is(err, domain.ErrSlotAlreadyClaimed) {
				uc.metrics.IncSlotClaimConflict()
				uc.logger.Warn("RescheduleBooking: slot id=%s was claimed concurrently", req.SlotID)
				return ErrSlotAlreadyClaimed
			}
			if errors.Is(err, domain.ErrWriteConflict) {
				return err
			}
			uc.logger.Error("RescheduleBooking: failed to write reschedule: %v", err)
			return fmt.Errorf("%w: failed to write reschedule: %v", ErrInternal, err)
		}

		updated = plan.Booking
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrWriteConflict) {
			uc.metrics.IncSlotClaimConflict()
			uc.logger.Warn("RescheduleBooking: slot id=%s lost to a concurrent booking: %v", req.SlotID, err)
			return nil, ErrSlotAlreadyClaimed
		}
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: booking id=%s moved to %s %s (status %s)",
		updated.ID, updated.Date, updated.Time, updated.Status)

	// 3. Сбрасываем кеш слотов и публикуем событие
	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, req.ShopID); err != nil {
			uc.logger.Warn("RescheduleBooking: failed to invalidate slot cache: %v", err)
		}
	}
	if err := uc.events.Publish(ctx, domain.EventBookingRescheduled, updated); err != nil {
		uc.logger.Warn("RescheduleBooking: failed to publish event: %v", err)
	}

	return &Response{
		BookingID:        updated.ID,
		RefCode:          updated.RefCode,
		Status:           string(updated.Status),
		Date:             updated.Date,
		StartTime:        updated.Time,
		DurationMinutes:  updated.Duration,
		SlotID:           updated.SlotID,
		StaffID:          updated.StaffID,
		StaffName:        updated.StaffName,
		RecurringGroupID: updated.RecurringGroupID,
	}, nil
}

// resolveSlot ищет слот среди доступных; текущий слот бронирования допустим всегда
func (uc *UseCase) resolveSlot(data *snapshot.Data, booking *domain.Booking, slotID string) (domain.Slot, bool) {
	if slotID == booking.SlotID {
		return domain.Slot{
			ID:        booking.SlotID,
			Date:      booking.Date,
			Time:      booking.Time,
			Duration:  booking.EffectiveDuration(data.Snapshot.ServiceDuration()),
			StaffID:   booking.StaffID,
			StaffName: booking.StaffName,
			Generated: !domain.IsManualSlotID(booking.SlotID),
			Available: true,
		}, true
	}

	return snapshot.FindSlot(data.Available(), slotID)
}
