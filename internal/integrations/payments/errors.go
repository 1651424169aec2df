package payments

import "errors"

var (
	// ErrDisabled возвращается, когда ключ Stripe не настроен
	ErrDisabled = errors.New("payments: disabled")

	// ErrNoDeposit возвращается, если услуга не требует предоплаты
	ErrNoDeposit = errors.New("payments: service has no deposit")

	// ErrProvider возвращается при ошибке платежного провайдера
	ErrProvider = errors.New("payments: provider error")

	// ErrServiceDegraded возвращается при применении graceful degradation:
	// бронирование создается без депозита
	ErrServiceDegraded = errors.New("payments unavailable: graceful degradation applied")
)
