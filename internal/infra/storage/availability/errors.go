package availability

import (
	"errors"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
)

var (
	// ErrSlotNotFound возвращается, когда ручной слот не найден
	ErrSlotNotFound = errors.New("availability.repository: slot not found")

	// ErrSlotAlreadyClaimed возвращается, когда слот уже занят (условное обновление не затронуло строк)
	ErrSlotAlreadyClaimed = domain.ErrSlotAlreadyClaimed

	// ErrWriteConflict возвращается, когда запись проиграла конкурентной транзакции (SQLSTATE 40001)
	ErrWriteConflict = domain.ErrWriteConflict

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("availability.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("availability.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("availability.repository: failed to scan row")
)
