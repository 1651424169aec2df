package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	slotCache "github.com/m04kA/SMC-ShopBooking/internal/infra/cache/slots"
	"github.com/m04kA/SMC-ShopBooking/internal/usecase/snapshot"
	"github.com/m04kA/SMC-ShopBooking/pkg/ptr"
	"github.com/m04kA/SMC-ShopBooking/pkg/types"
)

const (
	cacheHit   = "hit"
	cacheMiss  = "miss"
	cacheError = "error"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	loader       SnapshotLoader
	cache        SlotCache
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case. cache может быть nil.
func NewUseCase(loader SnapshotLoader, cache SlotCache, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		loader:       loader,
		cache:        cache,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: shop=%s, service=%s, staff=%s, date=%s",
		req.ShopID, req.ServiceID, ptr.Deref(req.StaffID, "any"), ptr.Deref(req.Date, "all"))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	key := slotCache.Key{
		ShopID:    req.ShopID,
		ServiceID: req.ServiceID,
		StaffID:   ptr.Deref(req.StaffID, ""),
		Date:      types.FormatDate(now),
	}

	// 3. Пробуем кеш; версия магазина фиксируется до загрузки данных
	cacheKey, available, ok := uc.fromCache(ctx, key)

	// 4. Считаем слоты по снимку данных магазина
	if !ok {
		data, err := uc.loader.Load(ctx, req.ShopID, req.ServiceID, req.StaffID, now)
		if err != nil {
			if errors.Is(err, snapshot.ErrServiceNotFound) {
				uc.logger.Warn("GetAvailableSlots: service id=%s not found in shop=%s", req.ServiceID, req.ShopID)
				return nil, ErrServiceNotFound
			}
			uc.logger.Error("GetAvailableSlots: failed to load shop data: %v", err)
			return nil, fmt.Errorf("%w: failed to load shop data: %v", ErrInternal, err)
		}

		available = data.Available()
		uc.toCache(ctx, cacheKey, available)
	}

	// 5. Фильтр по дню
	result := make([]Slot, 0, len(available))
	for _, s := range available {
		if req.Date != nil && s.Date != *req.Date {
			continue
		}
		result = append(result, toSlot(s))
	}

	uc.logger.Info("GetAvailableSlots: found %d available slots", len(result))

	return &Response{
		ShopID:    req.ShopID,
		ServiceID: req.ServiceID,
		StaffID:   req.StaffID,
		Slots:     result,
	}, nil
}

func (uc *UseCase) fromCache(ctx context.Context, key slotCache.Key) (slotCache.VersionedKey, []domain.Slot, bool) {
	if uc.cache == nil {
		return "", nil, false
	}

	versioned, err := uc.cache.Versioned(ctx, key)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: cache version read failed: %v", err)
		uc.metrics.IncSlotCache(cacheError)
		return "", nil, false
	}

	cached, ok, err := uc.cache.Get(ctx, versioned)
	switch {
	case err != nil:
		uc.logger.Warn("GetAvailableSlots: cache read failed: %v", err)
		uc.metrics.IncSlotCache(cacheError)
		return versioned, nil, false
	case !ok:
		uc.metrics.IncSlotCache(cacheMiss)
		return versioned, nil, false
	}

	uc.metrics.IncSlotCache(cacheHit)
	return versioned, cached, true
}

// toCache пишет под версией, прочитанной до загрузки: запись по магазину во время расчета
// оставляет результат под устаревшей версией
func (uc *UseCase) toCache(ctx context.Context, key slotCache.VersionedKey, slots []domain.Slot) {
	if uc.cache == nil || key == "" {
		return
	}
	if err := uc.cache.Set(ctx, key, slots); err != nil {
		uc.logger.Warn("GetAvailableSlots: cache write failed: %v", err)
	}
}

func toSlot(s domain.Slot) Slot {
	return Slot{
		ID:              s.ID,
		Date:            s.Date,
		StartTime:       s.Time,
		DurationMinutes: s.Duration,
		StaffID:         s.StaffID,
		StaffName:       s.StaffName,
		Generated:       s.Generated,
	}
}
