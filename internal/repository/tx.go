package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/osse101/GardenSim_Go/internal/logger"
)

// Tx is the commit and rollback surface shared by driver transactions
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// ErrMsgTxClosed is the error text pgx reports when rolling back a finished transaction
const ErrMsgTxClosed = "tx is closed"

// LogMsgRollbackFailed is logged when a deferred rollback fails for a live transaction
const LogMsgRollbackFailed = "Failed to rollback transaction"

// SafeRollback is deferred right after Begin. It is a no-op once the
// transaction has committed and logs any other rollback failure.
func SafeRollback(ctx context.Context, tx Tx) {
	err := tx.Rollback(ctx)
	if err == nil || txFinished(err) {
		return
	}
	logger.FromContext(ctx).Error(LogMsgRollbackFailed, "error", err)
}

func txFinished(err error) bool {
	return errors.Is(err, sql.ErrTxDone) || err.Error() == ErrMsgTxClosed
}
