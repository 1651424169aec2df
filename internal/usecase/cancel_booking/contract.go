package cancel_booking

import (
	"context"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	"github.com/m04kA/SMC-ShopBooking/internal/lifecycle"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, shopID, id string) (*domain.Booking, error)
	GetByGroup(ctx context.Context, shopID, groupID string) ([]domain.Booking, error)
}

// Coordinator планирование записей отмены
type Coordinator interface {
	PlanCancel(cmd lifecycle.CancelCommand) (*lifecycle.CancelPlan, error)
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

// Metrics счетчик отмен
type Metrics interface {
	IncBookingsCancelled(mode string, n int)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
