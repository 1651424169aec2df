package create_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrSlotNotAvailable возвращается, когда выбранный слот недоступен или пересекается с бронированием
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrSlotAlreadyClaimed возвращается, когда ручной слот занял другой клиент между чтением и записью
	ErrSlotAlreadyClaimed = errors.New("create_booking: slot no longer available, please pick another")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
