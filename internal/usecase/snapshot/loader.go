package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-ShopBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-ShopBooking/internal/slots"
	"github.com/m04kA/SMC-ShopBooking/pkg/types"
)

// Data снимок данных магазина для расчета слотов и планирования записей
type Data struct {
	Settings domain.ShopSettings
	Service  domain.Service
	Snapshot slots.Snapshot
}

// Loader собирает снимок из репозиториев. Внутри транзакции чтения идут через неё.
type Loader struct {
	settings SettingsProvider
	services ServiceRepository
	staff    StaffRepository
	slots    SlotRepository
	bookings BookingRepository
}

func NewLoader(
	settings SettingsProvider,
	services ServiceRepository,
	staff StaffRepository,
	slotRepo SlotRepository,
	bookings BookingRepository,
) *Loader {
	return &Loader{
		settings: settings,
		services: services,
		staff:    staff,
		slots:    slotRepo,
		bookings: bookings,
	}
}

// Load читает настройки, услугу, мастеров, ручные слоты и активные бронирования начиная с сегодняшнего дня
func (l *Loader) Load(ctx context.Context, shopID, serviceID string, staffID *string, now time.Time) (*Data, error) {
	settings, err := l.settings.Effective(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("%w: settings: %v", ErrInternal, err)
	}

	service, err := l.services.GetService(ctx, shopID, serviceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("%w: service: %v", ErrInternal, err)
	}

	staff, err := l.staff.GetByShop(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("%w: staff: %v", ErrInternal, err)
	}

	today := types.FormatDate(now)

	manual, err := l.slots.GetByShop(ctx, shopID, today)
	if err != nil {
		return nil, fmt.Errorf("%w: manual slots: %v", ErrInternal, err)
	}

	bookings, err := l.bookings.GetActiveByShop(ctx, shopID, today)
	if err != nil {
		return nil, fmt.Errorf("%w: bookings: %v", ErrInternal, err)
	}

	return &Data{
		Settings: *settings,
		Service:  *service,
		Snapshot: slots.Snapshot{
			Staff:         staff,
			Service:       service,
			StaffID:       staffID,
			ManualSlots:   manual,
			Bookings:      bookings,
			BufferMinutes: settings.BufferMinutes,
			HorizonDays:   settings.HorizonDays(),
			Now:           now,
		},
	}, nil
}

// Available доступные слоты снимка
func (d *Data) Available() []domain.Slot {
	return slots.ComputeAvailableSlots(d.Snapshot)
}

// WithoutBooking копия снимка без указанного бронирования (для переноса)
func (d *Data) WithoutBooking(bookingID string) *Data {
	out := *d
	out.Snapshot.Bookings = make([]domain.Booking, 0, len(d.Snapshot.Bookings))
	for _, b := range d.Snapshot.Bookings {
		if b.ID != bookingID {
			out.Snapshot.Bookings = append(out.Snapshot.Bookings, b)
		}
	}
	return &out
}

// FindSlot ищет слот по id
func FindSlot(list []domain.Slot, id string) (domain.Slot, bool) {
	for _, s := range list {
		if s.ID == id {
			return s, true
		}
	}
	return domain.Slot{}, false
}
