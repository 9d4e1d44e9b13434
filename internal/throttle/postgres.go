package throttle

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PG is a PostgreSQL-backed throttle with a sliding failure window and a
// fixed-length lockout once the window fills up.
type PG struct {
	pool     pgxQuerier
	window   time.Duration
	maxFails int
	blockFor time.Duration
}

type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// NewPG constructs a PostgreSQL-backed throttle.
func NewPG(pool *pgxpool.Pool, window time.Duration, maxFails int, blockFor time.Duration) *PG {
	return &PG{pool: pool, window: window, maxFails: maxFails, blockFor: blockFor}
}

// NewPGWithQuerier is NewPG for tests that supply their own querier.
func NewPGWithQuerier(q pgxQuerier, window time.Duration, maxFails int, blockFor time.Duration) *PG {
	return &PG{pool: q, window: window, maxFails: maxFails, blockFor: blockFor}
}

// Allow reports whether a sign-in may proceed and a retry-after duration.
func (t *PG) Allow(ctx context.Context, email string, clientHash []byte) (bool, time.Duration, error) {
	const q = `SELECT blocked_until FROM login_throttle WHERE email=$1 AND client_hash=$2`
	var blockedUntil time.Time
	err := t.pool.QueryRow(ctx, q, email, clientHash).Scan(&blockedUntil)
	switch err {
	case nil:
		if blockedUntil.After(time.Now()) {
			return false, time.Until(blockedUntil), nil
		}
		return true, 0, nil
	case pgx.ErrNoRows:
		return true, 0, nil
	default:
		return false, 0, err
	}
}

// Success resets counters for (email, client).
func (t *PG) Success(ctx context.Context, email string, clientHash []byte) error {
	const q = `
INSERT INTO login_throttle (email, client_hash, fail_count, blocked_until, last_attempt)
VALUES ($1,$2,0,'epoch',now())
ON CONFLICT (email, client_hash)
DO UPDATE SET fail_count=0, blocked_until='epoch', last_attempt=now()`
	_, err := t.pool.Exec(ctx, q, email, clientHash)
	return err
}

// Failure records a failed attempt. A quiet period longer than the window
// restarts the count; reaching maxFails places a block.
func (t *PG) Failure(ctx context.Context, email string, clientHash []byte) (bool, time.Duration, error) {
	const q = `
INSERT INTO login_throttle (email, client_hash, fail_count, blocked_until, last_attempt)
VALUES ($1,$2,1,'epoch',now())
ON CONFLICT (email, client_hash) DO UPDATE
SET
  fail_count = CASE WHEN EXCLUDED.last_attempt - login_throttle.last_attempt > $3::interval THEN 1 ELSE login_throttle.fail_count + 1 END,
  last_attempt = now()
RETURNING fail_count`
	var fails int
	if err := t.pool.QueryRow(ctx, q, email, clientHash, t.window).Scan(&fails); err != nil {
		return false, 0, err
	}
	if fails < t.maxFails {
		return false, 0, nil
	}
	const upd = `UPDATE login_throttle SET blocked_until=$3 WHERE email=$1 AND client_hash=$2`
	if _, err := t.pool.Exec(ctx, upd, email, clientHash, time.Now().Add(t.blockFor)); err != nil {
		return false, 0, err
	}
	return true, t.blockFor, nil
}
