package reschedule_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено в магазине
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrBookingNotActive возвращается при переносе отмененного или отклоненного бронирования
	ErrBookingNotActive = errors.New("reschedule_booking: booking is not active")

	// ErrServiceNotFound возвращается, когда услуга бронирования удалена из каталога
	ErrServiceNotFound = errors.New("reschedule_booking: service not found")

	// ErrSlotNotAvailable возвращается, когда новый слот недоступен
	ErrSlotNotAvailable = errors.New("reschedule_booking: slot is not available")

	// ErrSlotAlreadyClaimed возвращается, когда ручной слот занял другой клиент между чтением и записью
	ErrSlotAlreadyClaimed = errors.New("reschedule_booking: slot no longer available, please pick another")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
