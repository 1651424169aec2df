package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ShopBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ShopBooking/internal/lifecycle"
)

// UseCase use case отмены бронирования или хвоста серии
type UseCase struct {
	bookingRepo BookingRepository
	coordinator Coordinator
	applier     Applier
	cache       SlotCache
	events      EventPublisher
	metrics     Metrics
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case. cache может быть nil.
func NewUseCase(
	bookingRepo BookingRepository,
	coordinator Coordinator,
	applier Applier,
	cache SlotCache,
	events EventPublisher,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		coordinator: coordinator,
		applier:     applier,
		cache:       cache,
		events:      events,
		metrics:     metrics,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute отменяет бронирование и освобождает ручные слоты.
// В режиме future отменяются также все активные бронирования серии с датой не раньше выбранного.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: shop=%s, booking=%s, mode=%s", req.ShopID, req.BookingID, req.Mode)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelBooking: validation failed: %v", err)
		return nil, err
	}
	mode := lifecycle.CancelMode(req.Mode)

	var plan *lifecycle.CancelPlan

	// 2. Чтение и отмена в одной транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Бронирование
		target, err := uc.bookingRepo.GetByID(txCtx, req.ShopID, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CancelBooking: booking id=%s not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("CancelBooking: failed to get booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 2.2. Остальные бронирования серии (блокируются до конца транзакции)
		var group []domain.Booking
		if mode == lifecycle.CancelFuture && target.IsRecurring() {
			group, err = uc.bookingRepo.GetByGroup(txCtx, req.ShopID, *target.RecurringGroupID)
			if err != nil {
				uc.logger.Error("CancelBooking: failed to get group %s: %v", *target.RecurringGroupID, err)
				return fmt.Errorf("%w: failed to get recurring group: %v", ErrInternal, err)
			}
		}

		// 2.3. Планируем и исполняем записи
		plan, err = uc.coordinator.PlanCancel(lifecycle.CancelCommand{Target: *target, Mode: mode, Group: group})
		if err != nil {
			if errors.Is(err, lifecycle.ErrBookingNotActive) {
				uc.logger.Warn("CancelBooking: booking id=%s has status %s", target.ID, target.Status)
				return ErrBookingNotActive
			}
			return fmt.Errorf("%w: failed to plan cancel: %v", ErrInternal, err)
		}

		if err := uc.applier.Apply(txCtx, plan.Writes); err != nil {
			uc.logger.Error("CancelBooking: failed to write cancel: %v", err)
			// Конфликт сериализации сохраняется в цепочке, чтобы транзакцию повторили
			return fmt.Errorf("%w: failed to write cancel: %w", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.IncBookingsCancelled(req.Mode, len(plan.Cancelled))
	uc.logger.Info("CancelBooking: cancelled %d booking(s) starting from id=%s", len(plan.Cancelled), req.BookingID)

	// 3. Сбрасываем кеш слотов и публикуем события
	cancelled := make([]*domain.Booking, 0, len(plan.Cancelled))
	resp := &Response{Mode: req.Mode, Cancelled: make([]CancelledBooking, 0, len(plan.Cancelled))}
	for i := range plan.Cancelled {
		b := &plan.Cancelled[i]
		cancelled = append(cancelled, b)
		resp.Cancelled = append(resp.Cancelled, CancelledBooking{BookingID: b.ID, RefCode: b.RefCode, Date: b.Date})
	}

	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, req.ShopID); err != nil {
			uc.logger.Warn("CancelBooking: failed to invalidate slot cache: %v", err)
		}
	}
	if err := uc.events.Publish(ctx, domain.EventBookingCancelled, cancelled...); err != nil {
		uc.logger.Warn("CancelBooking: failed to publish events: %v", err)
	}

	return resp, nil
}
