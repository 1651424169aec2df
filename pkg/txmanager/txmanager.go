package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ShopBooking/pkg/dbmetrics"
)

var (
	// ErrTransaction возвращается при ошибках начала или фиксации транзакции
	ErrTransaction = errors.New("txmanager: transaction error")

	// ErrConflict транзакция проиграла конкурентной записи (serialization failure).
	// Репозитории оборачивают такие ошибки в ErrConflict, чтобы транзакцию можно было повторить.
	ErrConflict = errors.New("txmanager: concurrent write conflict")
)

// TxBeginner источник транзакций (*dbmetrics.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// Option настройка TransactionManager
type Option func(*TransactionManager)

// WithConflictRetry повторяет транзакцию до attempts раз, если она завершилась ErrConflict.
// isConflict распознает конфликт в ошибке драйвера при фиксации (например SQLSTATE 40001).
func WithConflictRetry(attempts int, isConflict func(error) bool) Option {
	return func(m *TransactionManager) {
		if attempts > 0 {
			m.attempts = attempts
		}
		m.isConflict = isConflict
	}
}

// TransactionManager выполняет функцию в транзакции, передавая её через контекст
type TransactionManager struct {
	db         TxBeginner
	attempts   int
	isConflict func(error) bool
}

func NewTransactionManager(db TxBeginner, opts ...Option) *TransactionManager {
	m := &TransactionManager{db: db, attempts: 1}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, nil, fn)
}

// DoSerializable выполняет fn в сериализуемой транзакции
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	// Вложенный вызов переиспользует уже открытую транзакцию, повторяет только внешний
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	var err error
	for attempt := 1; attempt <= m.attempts; attempt++ {
		err = m.once(ctx, opts, fn)
		if !errors.Is(err, ErrConflict) {
			return err
		}
	}
	return err
}

func (m *TransactionManager) once(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: begin: %w", ErrTransaction, err)
	}

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		if m.isConflict != nil && m.isConflict(err) {
			return fmt.Errorf("%w: commit: %w", ErrConflict, err)
		}
		return fmt.Errorf("%w: commit: %w", ErrTransaction, err)
	}

	return nil
}
