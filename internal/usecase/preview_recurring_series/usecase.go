package preview_recurring_series

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	"github.com/m04kA/SMC-ShopBooking/internal/recurring"
	"github.com/m04kA/SMC-ShopBooking/internal/usecase/snapshot"
)

// UseCase use case предпросмотра повторяющейся серии. Ничего не записывает.
type UseCase struct {
	loader       SnapshotLoader
	planner      SeriesPlanner
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(loader SnapshotLoader, planner SeriesPlanner, logger Logger) *UseCase {
	return &UseCase{
		loader:       loader,
		planner:      planner,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute планирует серию от выбранного слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("PreviewRecurringSeries: shop=%s, service=%s, slot=%s, interval=%s",
		req.ShopID, req.ServiceID, req.SlotID, req.Interval)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("PreviewRecurringSeries: validation failed: %v", err)
		return nil, err
	}

	// 2. Загружаем снимок данных магазина
	data, err := uc.loader.Load(ctx, req.ShopID, req.ServiceID, nil, uc.timeProvider.Now())
	if err != nil {
		if errors.Is(err, snapshot.ErrServiceNotFound) {
			uc.logger.Warn("PreviewRecurringSeries: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("PreviewRecurringSeries: failed to load shop data: %v", err)
		return nil, fmt.Errorf("%w: failed to load shop data: %v", ErrInternal, err)
	}

	// 3. Первое вхождение должно быть доступным слотом
	slot, ok := snapshot.FindSlot(data.Available(), req.SlotID)
	if !ok {
		uc.logger.Warn("PreviewRecurringSeries: slot id=%s is not available", req.SlotID)
		return nil, ErrSlotNotAvailable
	}

	// 4. Планируем серию
	interval := domain.RecurringInterval(req.Interval)
	plan, err := uc.planner.Plan(recurring.Occurrence{
		Date:     slot.Date,
		Time:     slot.Time,
		Duration: data.Snapshot.ServiceDuration(),
		StaffID:  slot.StaffID,
	}, interval, data.Snapshot.Bookings, data.Settings.BufferMinutes)
	if err != nil {
		uc.logger.Error("PreviewRecurringSeries: failed to plan series: %v", err)
		return nil, fmt.Errorf("%w: failed to plan series: %v", ErrInternal, err)
	}

	uc.logger.Info("PreviewRecurringSeries: %d accepted, %d skipped, ends %s",
		len(plan.Accepted), len(plan.Skipped), plan.EndDate)

	return &Response{
		Interval:      req.Interval,
		IntervalLabel: plan.IntervalLabel,
		FirstDate:     slot.Date,
		StartTime:     slot.Time,
		Accepted:      plan.Accepted,
		Skipped:       plan.Skipped,
		Total:         plan.Total,
		EndDate:       plan.EndDate,
	}, nil
}
