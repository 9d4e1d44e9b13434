package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/verbatim-app/verbatim/internal/errs"
	"github.com/verbatim-app/verbatim/internal/repository"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newMock(t *testing.T) (*Store, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	s := NewStore(&DB{Pool: mock}, func() time.Time { return fixedNow }, time.Second)
	return s, mock
}

func TestStore_WithTx_CommitOnSuccess(t *testing.T) {
	s, mock := newMock(t)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := s.WithTx(context.Background(), func(tx repository.Tx) error { return nil })
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_WithTx_RollbackOnError(t *testing.T) {
	s, mock := newMock(t)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := s.WithTx(context.Background(), func(tx repository.Tx) error { return boom })
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_WithTx_SerializationFailureIsRetryable(t *testing.T) {
	s, mock := newMock(t)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(&pgconn.PgError{Code: "40001"})

	err := s.WithTx(context.Background(), func(tx repository.Tx) error { return nil })
	require.ErrorIs(t, err, errs.ErrTxConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_WithTx_DeadlockInsideFnIsRetryable(t *testing.T) {
	s, mock := newMock(t)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := s.WithTx(context.Background(), func(tx repository.Tx) error {
		return &pgconn.PgError{Code: "40P01"}
	})
	require.ErrorIs(t, err, errs.ErrTxConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_WithTx_SentinelsPassThrough(t *testing.T) {
	s, mock := newMock(t)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := s.WithTx(context.Background(), func(tx repository.Tx) error { return errs.ErrNotFound })
	require.ErrorIs(t, err, errs.ErrNotFound)
	require.NotErrorIs(t, err, errs.ErrTxConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}
