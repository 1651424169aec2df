package preview_recurring_series

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	"github.com/m04kA/SMC-ShopBooking/internal/recurring"
	"github.com/m04kA/SMC-ShopBooking/internal/usecase/snapshot"
)

// SnapshotLoader загрузка данных магазина
type SnapshotLoader interface {
	Load(ctx context.Context, shopID, serviceID string, staffID *string, now time.Time) (*snapshot.Data, error)
}

// SeriesPlanner планировщик повторяющейся серии
type SeriesPlanner interface {
	Plan(first recurring.Occurrence, interval domain.RecurringInterval, bookings []domain.Booking, bufferMinutes int) (*recurring.SeriesPlan, error)
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
