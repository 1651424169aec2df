package lifecycle

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
)

// BookingStore запись бронирований
type BookingStore interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	Reschedule(ctx context.Context, booking *domain.Booking) error
	Cancel(ctx context.Context, shopID, bookingID string) error
}

// SlotStore запись ручных слотов.
// Claim обязан быть условным: если слот уже занят - domain.ErrSlotAlreadyClaimed.
type SlotStore interface {
	Claim(ctx context.Context, shopID, slotID string) error
	Release(ctx context.Context, shopID, slotID string) error
}

// FailedWrite запись, которую не удалось исполнить
type FailedWrite struct {
	Write Write
	Err   error
}

// EachResult итог исполнения записей по одной
type EachResult struct {
	Created []*domain.Booking
	Applied int
	Failed  []FailedWrite
}

// Applier исполняет записи, вычисленные Coordinator
type Applier struct {
	bookings        BookingStore
	slots           SlotStore
	codes           RefCodeGenerator
	refCodeAttempts int
}

func NewApplier(bookings BookingStore, slots SlotStore, codes RefCodeGenerator, refCodeAttempts int) *Applier {
	if refCodeAttempts <= 0 {
		refCodeAttempts = 1
	}
	return &Applier{
		bookings:        bookings,
		slots:           slots,
		codes:           codes,
		refCodeAttempts: refCodeAttempts,
	}
}

// Apply исполняет записи по порядку и останавливается на первой ошибке.
// Атомарность обеспечивает вызывающий код (транзакция в ctx).
func (a *Applier) Apply(ctx context.Context, writes []Write) error {
	for i, w := range writes {
		if err := a.apply(ctx, w); err != nil {
			return fmt.Errorf("write %d (%s): %w", i, w.Kind, err)
		}
	}
	return nil
}

// ApplyEach исполняет записи независимо друг от друга: ошибка одной не останавливает остальные
// и уже исполненные не откатываются. При конфликте кода бронирования код перегенерируется.
func (a *Applier) ApplyEach(ctx context.Context, writes []Write) EachResult {
	var result EachResult

	for _, w := range writes {
		err := a.applyWithRefCodeRetry(ctx, w)
		if err != nil {
			result.Failed = append(result.Failed, FailedWrite{Write: w, Err: err})
			continue
		}
		result.Applied++
		if w.Kind == WriteCreateBooking {
			result.Created = append(result.Created, w.Booking)
		}
	}

	return result
}

func (a *Applier) applyWithRefCodeRetry(ctx context.Context, w Write) error {
	err := a.apply(ctx, w)
	for attempt := 1; attempt < a.refCodeAttempts; attempt++ {
		if err == nil || w.Kind != WriteCreateBooking || !errors.Is(err, domain.ErrDuplicateRefCode) {
			return err
		}
		w.Booking.RefCode = a.codes.Booking()
		err = a.apply(ctx, w)
	}
	return err
}

func (a *Applier) apply(ctx context.Context, w Write) error {
	switch w.Kind {
	case WriteClaimSlot:
		return a.slots.Claim(ctx, w.ShopID, w.SlotID)
	case WriteReleaseSlot:
		return a.slots.Release(ctx, w.ShopID, w.SlotID)
	case WriteCreateBooking:
		_, err := a.bookings.Create(ctx, w.Booking)
		return err
	case WriteRescheduleBooking:
		return a.bookings.Reschedule(ctx, w.Booking)
	case WriteCancelBooking:
		return a.bookings.Cancel(ctx, w.ShopID, w.BookingID)
	}
	return fmt.Errorf("%w: %q", ErrUnknownWrite, w.Kind)
}
