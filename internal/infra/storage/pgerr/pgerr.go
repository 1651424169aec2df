package pgerr

import (
	"errors"

	"github.com/lib/pq"
)

const (
	uniqueViolation      pq.ErrorCode = "23505"
	serializationFailure pq.ErrorCode = "40001"
	deadlockDetected     pq.ErrorCode = "40P01"
)

// IsUniqueViolation проверяет, что ошибка - нарушение уникальности.
// Если constraint не пустой, он тоже должен совпасть.
func IsUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	if pqErr.Code != uniqueViolation {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}

// IsSerializationFailure проверяет, что транзакцию можно повторить:
// конфликт сериализации или взаимная блокировка
func IsSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == serializationFailure || pqErr.Code == deadlockDetected
}
