package lifecycle

import "errors"

var (
	// ErrSlotUnavailable выбранный слот занят или пересекается с активным бронированием
	ErrSlotUnavailable = errors.New("lifecycle: slot is not available")

	// ErrBookingNotActive операция допустима только для активного бронирования
	ErrBookingNotActive = errors.New("lifecycle: booking is not active")

	// ErrUnknownCancelMode неизвестный режим отмены
	ErrUnknownCancelMode = errors.New("lifecycle: unknown cancel mode")

	// ErrUnknownWrite неизвестный тип записи
	ErrUnknownWrite = errors.New("lifecycle: unknown write kind")
)
