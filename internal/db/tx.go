package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/alvimrfg/sistema-socio-40graus/internal/apperror"
	"github.com/alvimrfg/sistema-socio-40graus/internal/logger"
	"github.com/alvimrfg/sistema-socio-40graus/internal/metrics"
)

// TxFunc is the body of a transaction. It must not keep q after returning.
type TxFunc func(q sqlx.ExtContext) error

// TxRunner executes state-changing work as one serializable transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn TxFunc) error
}

type txRunner struct {
	db          *sqlx.DB
	maxAttempts int
}

func NewTxRunner(db *sqlx.DB, maxAttempts int) TxRunner {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &txRunner{db: db, maxAttempts: maxAttempts}
}

// WithTx runs fn under SERIALIZABLE isolation. Serialization failures and
// deadlocks are retried up to maxAttempts, after which ErrConflict is returned.
// Any other error rolls the transaction back and is returned as is.
func (r *txRunner) WithTx(ctx context.Context, fn TxFunc) error {
	var lastErr error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		err := r.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if !isRetryable(err) {
			return err
		}

		lastErr = err
		metrics.RecordTxRetry()
		logger.Debug("retrying transaction", "attempt", attempt, "error", err.Error())
	}

	metrics.RecordTxConflict()
	return fmt.Errorf("%w: gave up after %d attempts: %v", apperror.ErrConflict, r.maxAttempts, lastErr)
}

func (r *txRunner) runOnce(ctx context.Context, fn TxFunc) error {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return apperror.Storage(err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperror.Storage(err)
	}
	return nil
}

func isRetryable(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	switch pqErr.Code {
	case "40001", "40P01":
		return true
	}
	return false
}
