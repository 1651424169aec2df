package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	"github.com/m04kA/SMC-ShopBooking/internal/integrations/payments"
	"github.com/m04kA/SMC-ShopBooking/internal/lifecycle"
	"github.com/m04kA/SMC-ShopBooking/internal/usecase/snapshot"
)

const (
	kindPrimary    = "primary"
	kindOccurrence = "occurrence"

	reasonConflict = "conflict"
	reasonFailed   = "failed"
)

// UseCase use case для создания бронирования и повторяющейся серии
type UseCase struct {
	loader          SnapshotLoader
	coordinator     Coordinator
	applier         Applier
	payments        PaymentsClient
	cache           SlotCache
	events          EventPublisher
	metrics         Metrics
	txManager       TransactionManager
	refCodeAttempts int
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case. payments и cache могут быть nil.
func NewUseCase(
	loader SnapshotLoader,
	coordinator Coordinator,
	applier Applier,
	paymentsClient PaymentsClient,
	cache SlotCache,
	events EventPublisher,
	metrics Metrics,
	txManager TransactionManager,
	refCodeAttempts int,
	logger Logger,
) *UseCase {
	if refCodeAttempts <= 0 {
		refCodeAttempts = 1
	}
	return &UseCase{
		loader:          loader,
		coordinator:     coordinator,
		applier:         applier,
		payments:        paymentsClient,
		cache:           cache,
		events:          events,
		metrics:         metrics,
		txManager:       txManager,
		refCodeAttempts: refCodeAttempts,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

type primaryResult struct {
	data *snapshot.Data
	plan *lifecycle.CreatePlan
}

// Execute выполняет use case создания бронирования.
// Основное бронирование (и захват ручного слота) пишется в сериализуемой транзакции.
// Вхождения серии пишутся после неё по одному, без отката уже созданных.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: shop=%s, service=%s, slot=%s, recurring=%t",
		req.ShopID, req.ServiceID, req.SlotID, req.RecurringInterval != nil)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Основное бронирование; при конфликте кода бронирования транзакция повторяется с новым планом
	var (
		result *primaryResult
		err    error
	)
	for attempt := 1; ; attempt++ {
		result, err = uc.createPrimary(ctx, req)
		if err == nil {
			break
		}
		if errors.Is(err, domain.ErrDuplicateRefCode) && attempt < uc.refCodeAttempts {
			uc.logger.Warn("CreateBooking: ref code collision, retrying (attempt %d/%d)", attempt, uc.refCodeAttempts)
			continue
		}
		if errors.Is(err, domain.ErrDuplicateRefCode) {
			uc.logger.Error("CreateBooking: ref code collisions exhausted %d attempts", uc.refCodeAttempts)
			return nil, fmt.Errorf("%w: failed to allocate ref code: %v", ErrInternal, err)
		}
		if errors.Is(err, domain.ErrWriteConflict) {
			// Повторы транзакции исчерпаны: слот занимают конкурентно
			uc.metrics.IncSlotClaimConflict()
			uc.logger.Warn("CreateBooking: slot id=%s lost to a concurrent booking: %v", req.SlotID, err)
			return nil, ErrSlotAlreadyClaimed
		}
		return nil, err
	}

	plan := result.plan
	primary := plan.Primary
	created := []*domain.Booking{primary}
	uc.metrics.IncBookingsCreated(kindPrimary, 1)
	uc.logger.Info("CreateBooking: created booking id=%s ref=%s", primary.ID, primary.RefCode)

	resp := toResponse(primary)

	// 3. Вхождения серии
	if plan.Series != nil {
		each := uc.applier.ApplyEach(ctx, plan.OccurrenceWrites)

		series := &SeriesResult{
			Interval:      string(*primary.RecurringInterval),
			IntervalLabel: plan.Series.IntervalLabel,
			Created:       1 + len(each.Created),
			CreatedDates:  make([]string, 0, len(each.Created)),
			Skipped:       plan.Series.Skipped,
			Failed:        make([]string, 0, len(each.Failed)),
			EndDate:       primary.Date,
		}
		for _, b := range each.Created {
			series.CreatedDates = append(series.CreatedDates, b.Date)
			series.EndDate = b.Date
		}
		for _, f := range each.Failed {
			series.Failed = append(series.Failed, f.Write.Booking.Date)
			uc.logger.Error("CreateBooking: failed to create occurrence %s of group %s: %v",
				f.Write.Booking.Date, *primary.RecurringGroupID, f.Err)
		}

		created = append(created, each.Created...)
		uc.metrics.IncBookingsCreated(kindOccurrence, len(each.Created))
		uc.metrics.IncRecurringNotCreated(reasonConflict, len(series.Skipped))
		uc.metrics.IncRecurringNotCreated(reasonFailed, len(series.Failed))

		uc.logger.Info("CreateBooking: series group=%s: %d created, %d skipped, %d failed",
			*primary.RecurringGroupID, series.Created, len(series.Skipped), len(series.Failed))
		resp.Series = series
	}

	// 4. Сбрасываем кеш слотов и публикуем события
	uc.afterWrite(ctx, req.ShopID, created)

	// 5. Депозит; ошибка провайдера не отменяет бронирование
	if uc.payments != nil && result.data.Service.HasDeposit() {
		deposit, err := uc.payments.CreateDepositWithGracefulDegradation(ctx, primary, &result.data.Service)
		switch {
		case err == nil:
			resp.Deposit = &Deposit{
				PaymentIntentID: deposit.PaymentIntentID,
				ClientSecret:    deposit.ClientSecret,
				AmountCents:     deposit.AmountCents,
				Currency:        deposit.Currency,
			}
		case errors.Is(err, payments.ErrDisabled):
		default:
			uc.logger.Warn("CreateBooking: booking id=%s created without deposit: %v", primary.ID, err)
		}
	}

	return resp, nil
}

func (uc *UseCase) createPrimary(ctx context.Context, req *Request) (*primaryResult, error) {
	var result primaryResult

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Снимок данных магазина
		data, err := uc.loader.Load(txCtx, req.ShopID, req.ServiceID, nil, uc.timeProvider.Now())
		if err != nil {
			if errors.Is(err, snapshot.ErrServiceNotFound) {
				uc.logger.Warn("CreateBooking: service id=%s not found", req.ServiceID)
				return ErrServiceNotFound
			}
			uc.logger.Error("CreateBooking: failed to load shop data: %v", err)
			return fmt.Errorf("%w: failed to load shop data: %v", ErrInternal, err)
		}

		// 2.2. Выбранный слот должен быть среди доступных
		slot, ok := snapshot.FindSlot(data.Available(), req.SlotID)
		if !ok {
			uc.logger.Warn("CreateBooking: slot id=%s is not available", req.SlotID)
			return ErrSlotNotAvailable
		}

		// 2.3. Планируем записи
		var interval *domain.RecurringInterval
		if req.RecurringInterval != nil {
			v := domain.RecurringInterval(*req.RecurringInterval)
			interval = &v
		}

		plan, err := uc.coordinator.PlanCreate(lifecycle.CreateCommand{
			ShopID:  req.ShopID,
			Slot:    slot,
			Service: data.Service,
			Client: lifecycle.Client{
				Name:  strings.TrimSpace(req.ClientName),
				Email: req.ClientEmail,
				Phone: req.ClientPhone,
			},
			Notes:    req.Notes,
			Interval: interval,
			Settings: data.Settings,
			Bookings: data.Snapshot.Bookings,
		})
		if err != nil {
			if errors.Is(err, lifecycle.ErrSlotUnavailable) {
				uc.logger.Warn("CreateBooking: slot id=%s conflicts with an existing booking", req.SlotID)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to plan booking: %v", err)
			return fmt.Errorf("%w: failed to plan booking: %v", ErrInternal, err)
		}

		// 2.4. Захват ручного слота и запись основного бронирования
		if err := uc.applier.Apply(txCtx, plan.PrimaryWrites); err != nil {
			switch {
			case errors.Is(err, domain.ErrSlotAlreadyClaimed):
				uc.metrics.IncSlotClaimConflict()
				uc.logger.Warn("CreateBooking: slot id=%s was claimed concurrently", req.SlotID)
				return ErrSlotAlreadyClaimed
			case errors.Is(err, domain.ErrDuplicateRefCode), errors.Is(err, domain.ErrWriteConflict):
				return err
			}
			uc.logger.Error("CreateBooking: failed to write booking: %v", err)
			return fmt.Errorf("%w: failed to write booking: %v", ErrInternal, err)
		}

		result = primaryResult{data: data, plan: plan}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (uc *UseCase) afterWrite(ctx context.Context, shopID string, created []*domain.Booking) {
	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, shopID); err != nil {
			uc.logger.Warn("CreateBooking: failed to invalidate slot cache for shop=%s: %v", shopID, err)
		}
	}
	if err := uc.events.Publish(ctx, domain.EventBookingCreated, created...); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish events: %v", err)
	}
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		BookingID:        b.ID,
		RefCode:          b.RefCode,
		Status:           string(b.Status),
		Date:             b.Date,
		StartTime:        b.Time,
		DurationMinutes:  b.Duration,
		StaffID:          b.StaffID,
		StaffName:        b.StaffName,
		ServiceName:      b.ServiceName,
		Price:            b.Price,
		RecurringGroupID: b.RecurringGroupID,
	}
}
