package booking

import (
	"errors"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrDuplicateRefCode возвращается, когда код бронирования уже занят
	ErrDuplicateRefCode = domain.ErrDuplicateRefCode

	// ErrWriteConflict возвращается, когда запись проиграла конкурентной транзакции (SQLSTATE 40001)
	ErrWriteConflict = domain.ErrWriteConflict

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
