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

	"github.com/m04kA/SMC-InterviewScheduler/pkg/dbmetrics"
)

type fakeTx struct {
	committed  bool
	rolledBack bool
	commitErr  error
}

func (f *fakeTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (f *fakeTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (f *fakeTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (f *fakeTx) Commit() error {
	f.committed = true
	return f.commitErr
}

func (f *fakeTx) Rollback() error {
	f.rolledBack = true
	return nil
}

type fakeBeginner struct {
	txs       []*fakeTx
	opts      []*sql.TxOptions
	commitErr []error
	beginErr  error
}

func (f *fakeBeginner) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	tx := &fakeTx{}
	if n := len(f.txs); n < len(f.commitErr) {
		tx.commitErr = f.commitErr[n]
	}
	f.txs = append(f.txs, tx)
	f.opts = append(f.opts, opts)
	return tx, nil
}

func deadlockDetected() error {
	return fmt.Errorf("wrapped: %w", &pq.Error{Code: "40P01", Message: "deadlock detected"})
}

func TestDo_CommitsOnSuccess(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)

	var sawTx bool
	err := m.Do(context.Background(), func(ctx context.Context) error {
		sawTx = dbmetrics.IsInTransaction(ctx)
		return nil
	})

	require.NoError(t, err)
	assert.True(t, sawTx)
	require.Len(t, db.txs, 1)
	assert.True(t, db.txs[0].committed)
	assert.Equal(t, sql.LevelReadCommitted, db.opts[0].Isolation)
}

func TestDo_RollsBackOnError(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)
	domainErr := errors.New("slot taken")

	err := m.Do(context.Background(), func(context.Context) error {
		return domainErr
	})

	assert.ErrorIs(t, err, domainErr)
	require.Len(t, db.txs, 1)
	assert.True(t, db.txs[0].rolledBack)
	assert.False(t, db.txs[0].committed)
}

func TestDo_RetriesDeadlock(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db, WithMaxRetries(2))

	calls := 0
	err := m.Do(context.Background(), func(context.Context) error {
		calls++
		if calls == 1 {
			return deadlockDetected()
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Len(t, db.txs, 2)
}

func TestDo_RetriesCommitConflict(t *testing.T) {
	db := &fakeBeginner{commitErr: []error{&pq.Error{Code: "40001"}}}
	m := NewTransactionManager(db)

	err := m.Do(context.Background(), func(context.Context) error { return nil })

	require.NoError(t, err)
	assert.Len(t, db.txs, 2)
}

func TestDo_RetriesExhausted(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db, WithMaxRetries(1))

	err := m.Do(context.Background(), func(context.Context) error {
		return deadlockDetected()
	})

	assert.ErrorIs(t, err, ErrRetriesExhausted)
	assert.True(t, IsRetryable(err))
	assert.Len(t, db.txs, 2)
}

func TestDo_NestedReusesOuterTransaction(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)

	err := m.Do(context.Background(), func(ctx context.Context) error {
		return m.Do(ctx, func(context.Context) error { return nil })
	})

	require.NoError(t, err)
	assert.Len(t, db.txs, 1)
}

func TestDo_BeginError(t *testing.T) {
	db := &fakeBeginner{beginErr: errors.New("pool exhausted")}
	m := NewTransactionManager(db)

	err := m.Do(context.Background(), func(context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrBeginTx)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(&pq.Error{Code: "40P01"}))
	assert.False(t, IsRetryable(&pq.Error{Code: "23505"}))
	assert.False(t, IsRetryable(errors.New("plain")))
}
