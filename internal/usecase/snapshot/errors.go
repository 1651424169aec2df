package snapshot

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в магазине
	ErrServiceNotFound = errors.New("snapshot: service not found")

	// ErrInternal возвращается при ошибках чтения данных магазина
	ErrInternal = errors.New("snapshot: internal error")
)
