package reschedule_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	"github.com/m04kA/SMC-ShopBooking/internal/lifecycle"
	"github.com/m04kA/SMC-ShopBooking/internal/usecase/snapshot"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, shopID, id string) (*domain.Booking, error)
}

// SnapshotLoader загрузка данных магазина
type SnapshotLoader interface {
	Load(ctx context.Context, shopID, serviceID string, staffID *string, now time.Time) (*snapshot.Data, error)
}

// Coordinator планирование записей переноса
type Coordinator interface {
	PlanReschedule(cmd lifecycle.RescheduleCommand) (*lifecycle.ReschedulePlan, error)
}

// Applier исполнение записей
type Applier interface {
	Apply(ctx context.Context, writes []lifecycle.Write) error
}

// SlotCache сброс закешированных слотов магазина
type SlotCache interface {
	Invalidate(ctx context.Context, shopID string) error
}

// EventPublisher публикация событий жизненного цикла
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, bookings ...*domain.Booking) error
}

// Metrics счетчик конфликтов захвата слота
type Metrics interface {
	IncSlotClaimConflict()
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
