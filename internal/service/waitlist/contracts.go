package waitlist

import (
	"context"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
)

// WaitlistRepository интерфейс репозитория листа ожидания
type WaitlistRepository interface {
	Create(ctx context.Context, e *domain.WaitlistEntry) (*domain.WaitlistEntry, error)
	GetByRefCode(ctx context.Context, shopID, refCode string) (*domain.WaitlistEntry, error)
}

// ServiceRepository проверка существования услуги
type ServiceRepository interface {
	GetService(ctx context.Context, shopID, serviceID string) (*domain.Service, error)
}

// IDGenerator генератор идентификаторов записей
type IDGenerator interface {
	NewID() string
}

// RefCodeGenerator генератор кодов листа ожидания
type RefCodeGenerator interface {
	Waitlist() string
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
