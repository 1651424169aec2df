package domain

import (
	"errors"

	"github.com/m04kA/SMC-ShopBooking/pkg/txmanager"
)

// Ошибки хранилища, на которые реагирует бизнес-логика выше уровня репозиториев
var (
	// ErrSlotAlreadyClaimed ручной слот уже занят другим бронированием
	ErrSlotAlreadyClaimed = errors.New("slot already claimed")

	// ErrDuplicateRefCode код бронирования или листа ожидания уже существует
	ErrDuplicateRefCode = errors.New("duplicate reference code")

	// ErrWriteConflict сериализуемая транзакция проиграла конкурентной записи, txmanager повторяет её
	ErrWriteConflict = txmanager.ErrConflict
)
