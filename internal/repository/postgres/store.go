package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/verbatim-app/verbatim/internal/errs"
	"github.com/verbatim-app/verbatim/internal/repository"
)

// DefaultTxTimeout bounds a single store transaction.
const DefaultTxTimeout = 5 * time.Second

// Store implements repository.Store on PostgreSQL. Each WithTx call is one
// transaction: the authorization reads and the mutation observe the same data
// version, and either all of it commits or none of it does.
type Store struct {
	db      *DB
	clock   func() time.Time
	timeout time.Duration
}

// NewStore constructs a Store. A nil clock defaults to time.Now (UTC); the
// clock is injected so tests can pin modification timestamps.
func NewStore(db *DB, clock func() time.Time, timeout time.Duration) *Store {
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	if timeout <= 0 {
		timeout = DefaultTxTimeout
	}
	return &Store{db: db, clock: clock, timeout: timeout}
}

// WithTx runs fn inside one bounded transaction.
func (s *Store) WithTx(ctx context.Context, fn func(tx repository.Tx) error) (err error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	tx, err := s.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return mapConflict(err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if e := tx.Commit(ctx); e != nil {
			err = mapConflict(e)
		}
	}()

	if err = fn(&txView{q: tx, clock: s.clock}); err != nil {
		return mapConflict(err)
	}
	return nil
}

// txView is the repository.Tx implementation bound to one open transaction.
type txView struct {
	q     querier
	clock func() time.Time
}

var _ repository.Tx = (*txView)(nil)

// mapConflict translates retryable concurrency failures to errs.ErrTxConflict.
// Everything else passes through unchanged.
func mapConflict(err error) error {
	if err == nil {
		return nil
	}
	if isSerializationFailure(err) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", errs.ErrTxConflict, err)
	}
	return err
}
