package cancel_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено в магазине
	ErrBookingNotFound = errors.New("cancel_booking: booking not found")

	// ErrBookingNotActive возвращается при повторной отмене или отмене отклоненного бронирования
	ErrBookingNotActive = errors.New("cancel_booking: booking is not active")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)
