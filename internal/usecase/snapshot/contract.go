package snapshot

import (
	"context"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
)

// SettingsProvider действующие настройки магазина (сохраненные или по умолчанию)
type SettingsProvider interface {
	Effective(ctx context.Context, shopID string) (*domain.ShopSettings, error)
}

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	GetService(ctx context.Context, shopID, serviceID string) (*domain.Service, error)
}

// StaffRepository интерфейс репозитория мастеров
type StaffRepository interface {
	GetByShop(ctx context.Context, shopID string) ([]domain.StaffMember, error)
}

// SlotRepository интерфейс репозитория ручных слотов
type SlotRepository interface {
	GetByShop(ctx context.Context, shopID, fromDate string) ([]domain.AvailabilitySlot, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetActiveByShop(ctx context.Context, shopID, fromDate string) ([]domain.Booking, error)
}
