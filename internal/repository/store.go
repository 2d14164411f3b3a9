package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"arena-manager/internal/config"
	"arena-manager/internal/domain"

	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries runs the roster/ledger statements against a connection or a
// transaction.
type Queries struct {
	db  DBTX
	now func() time.Time
}

func New(db DBTX) *Queries {
	return &Queries{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx, now: q.now}
}

type RetryPolicy struct {
	Attempts uint64
	Base     time.Duration
}

type Store struct {
	db      *sql.DB
	queries *Queries
	policy  RetryPolicy
	logger  zerolog.Logger
}

func NewStore(sqlDB *sql.DB, cfg *config.Config, logger zerolog.Logger) *Store {
	return NewStoreWithPolicy(sqlDB, RetryPolicy{Attempts: cfg.StoreRetryAttempts, Base: cfg.StoreRetryBase}, logger)
}

func NewStoreWithPolicy(sqlDB *sql.DB, policy RetryPolicy, logger zerolog.Logger) *Store {
	return &Store{db: sqlDB, queries: New(sqlDB), policy: policy, logger: logger}
}

// Queries returns statements bound to the pool, outside any transaction.
func (s *Store) Queries() *Queries {
	return s.queries
}

// InTx runs fn in one transaction and commits if it returns nil. When sqlite
// reports the database busy or locked the whole transaction, fn included, is
// run again up to the configured number of retries.
func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context, q *Queries) error) error {
	backoff := retry.WithMaxRetries(s.policy.Attempts, retry.NewExponential(s.policy.Base))
	attempt := 0

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		err := s.runTx(ctx, fn)
		if err != nil && isRetryable(err) {
			s.logger.Warn().Err(err).Int("attempt", attempt).Msg("store busy, retrying transaction")
			return retry.RetryableError(err)
		}
		return err
	})
}

func (s *Store) runTx(ctx context.Context, fn func(ctx context.Context, q *Queries) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &domain.PersistenceError{Op: "begin transaction", Err: err}
	}
	defer tx.Rollback()

	if err := fn(ctx, s.queries.WithTx(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return &domain.PersistenceError{Op: "commit", Err: err}
	}
	return nil
}

func isRetryable(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
}

// wrap turns a driver failure into a PersistenceError, passing domain
// sentinels through untouched.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &domain.PersistenceError{Op: op, Err: err}
}

func rowsAffected(res sql.Result, op string) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, wrap(fmt.Sprintf("%s rows affected", op), err)
	}
	return n, nil
}
