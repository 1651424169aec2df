package bookings

import (
	"context"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, shopID, id string) (*domain.Booking, error)
	GetByRefCode(ctx context.Context, shopID, refCode string) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, shopID, id string, status domain.BookingStatus) error
}

// SlotRepository освобождение ручных слотов
type SlotRepository interface {
	Release(ctx context.Context, shopID, id string) error
}

// SlotCache сброс закешированных слотов магазина
type SlotCache interface {
	Invalidate(ctx context.Context, shopID string) error
}

// EventPublisher публикация событий жизненного цикла
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, bookings ...*domain.Booking) error
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
