package preview_recurring_series

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("preview_recurring_series: service not found")

	// ErrSlotNotAvailable возвращается, когда первый слот серии недоступен
	ErrSlotNotAvailable = errors.New("preview_recurring_series: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("preview_recurring_series: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("preview_recurring_series: internal error")
)
