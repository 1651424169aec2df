package waitlist

import "errors"

var (
	// ErrEntryNotFound возвращается, когда запись листа ожидания не найдена
	ErrEntryNotFound = errors.New("waitlist: entry not found")

	// ErrServiceNotFound возвращается, когда указанная услуга не найдена в магазине
	ErrServiceNotFound = errors.New("waitlist: service not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("waitlist: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("waitlist: internal error")
)
