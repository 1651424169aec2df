package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ShopBooking/pkg/dbmetrics"
)

type fakeTx struct {
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *fakeTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (t *fakeTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (t *fakeTx) Commit() error {
	t.committed = true
	return t.commitErr
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

type fakeBeginner struct {
	tx       *fakeTx
	begins   int
	lastOpts *sql.TxOptions
	// commitErrs ошибки фиксации по номеру транзакции, дальше используется tx.commitErr
	commitErrs []error
}

func (b *fakeBeginner) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	b.begins++
	b.lastOpts = opts
	if b.begins <= len(b.commitErrs) {
		b.tx.commitErr = b.commitErrs[b.begins-1]
	}
	return b.tx, nil
}

func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "40001"
}

func TestTransactionManager_CommitsOnSuccess(t *testing.T) {
	db := &fakeBeginner{tx: &fakeTx{}}
	m := NewTransactionManager(db)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
	assert.True(t, db.tx.committed)
	assert.False(t, db.tx.rolledBack)
	assert.Equal(t, sql.LevelSerializable, db.lastOpts.Isolation)
}

func TestTransactionManager_RollsBackOnError(t *testing.T) {
	db := &fakeBeginner{tx: &fakeTx{}}
	m := NewTransactionManager(db)
	boom := errors.New("boom")

	err := m.Do(context.Background(), func(ctx context.Context) error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.True(t, db.tx.rolledBack)
	assert.False(t, db.tx.committed)
}

func TestTransactionManager_NestedReusesTx(t *testing.T) {
	db := &fakeBeginner{tx: &fakeTx{}}
	m := NewTransactionManager(db)

	err := m.Do(context.Background(), func(ctx context.Context) error {
		return m.DoSerializable(ctx, func(context.Context) error { return nil })
	})

	require.NoError(t, err)
	assert.Equal(t, 1, db.begins)
}

func TestTransactionManager_CommitError(t *testing.T) {
	db := &fakeBeginner{tx: &fakeTx{commitErr: errors.New("serialization failure")}}
	m := NewTransactionManager(db)

	err := m.Do(context.Background(), func(context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrTransaction)
}

func TestTransactionManager_RetriesSerializationFailureOnCommit(t *testing.T) {
	db := &fakeBeginner{tx: &fakeTx{}, commitErrs: []error{&pq.Error{Code: "40001"}, nil}}
	m := NewTransactionManager(db, WithConflictRetry(3, isSerializationFailure))

	runs := 0
	err := m.DoSerializable(context.Background(), func(context.Context) error {
		runs++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, runs)
	assert.Equal(t, 2, db.begins)
}

func TestTransactionManager_RetriesConflictFromFn(t *testing.T) {
	db := &fakeBeginner{tx: &fakeTx{}}
	m := NewTransactionManager(db, WithConflictRetry(3, isSerializationFailure))

	runs := 0
	err := m.DoSerializable(context.Background(), func(context.Context) error {
		runs++
		if runs == 1 {
			return fmt.Errorf("%w: claim slot", ErrConflict)
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, runs)
	assert.True(t, db.tx.rolledBack)
}

func TestTransactionManager_ConflictRetriesExhausted(t *testing.T) {
	pqErr := &pq.Error{Code: "40001", Message: "could not serialize access due to concurrent update"}
	db := &fakeBeginner{tx: &fakeTx{commitErr: pqErr}}
	m := NewTransactionManager(db, WithConflictRetry(2, isSerializationFailure))

	err := m.DoSerializable(context.Background(), func(context.Context) error { return nil })

	assert.ErrorIs(t, err, ErrConflict)
	var got *pq.Error
	require.ErrorAs(t, err, &got)
	assert.Equal(t, pq.ErrorCode("40001"), got.Code)
	assert.Equal(t, 2, db.begins)
}

func TestTransactionManager_NoRetryWithoutOption(t *testing.T) {
	db := &fakeBeginner{tx: &fakeTx{}}
	m := NewTransactionManager(db)

	runs := 0
	err := m.Do(context.Background(), func(context.Context) error {
		runs++
		return ErrConflict
	})

	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, 1, runs)
}

func TestTransactionManager_OtherErrorsAreNotRetried(t *testing.T) {
	db := &fakeBeginner{tx: &fakeTx{}}
	m := NewTransactionManager(db, WithConflictRetry(3, isSerializationFailure))
	boom := errors.New("boom")

	runs := 0
	err := m.DoSerializable(context.Background(), func(context.Context) error {
		runs++
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, runs)
}
