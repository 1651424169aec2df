package settings

import (
	"context"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек магазина
type SettingsRepository interface {
	Get(ctx context.Context, shopID string) (*domain.ShopSettings, error)
	Upsert(ctx context.Context, s *domain.ShopSettings) (*domain.ShopSettings, error)
}

// SlotCache сброс закешированных слотов магазина
type SlotCache interface {
	Invalidate(ctx context.Context, shopID string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
