package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	slotCache "github.com/m04kA/SMC-ShopBooking/internal/infra/cache/slots"
	"github.com/m04kA/SMC-ShopBooking/internal/usecase/snapshot"
)

// SnapshotLoader загрузка данных магазина для расчета слотов
type SnapshotLoader interface {
	Load(ctx context.Context, shopID, serviceID string, staffID *string, now time.Time) (*snapshot.Data, error)
}

// SlotCache кеш вычисленных слотов (опционально)
type SlotCache interface {
	Versioned(ctx context.Context, key slotCache.Key) (slotCache.VersionedKey, error)
	Get(ctx context.Context, key slotCache.VersionedKey) ([]domain.Slot, bool, error)
	Set(ctx context.Context, key slotCache.VersionedKey, slots []domain.Slot) error
}

// Metrics метрики кеша слотов
type Metrics interface {
	IncSlotCache(result string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
