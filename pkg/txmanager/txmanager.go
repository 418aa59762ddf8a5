// Package txmanager runs functions inside a database transaction using the
// instrumented dbmetrics executors. Correctness of concurrent booking
// creation relies on row and advisory locks taken inside the transaction,
// so plain read-committed isolation is sufficient and never aborts with
// serialization failures.
package txmanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roccadavide/beauty-room-sub000/pkg/dbmetrics"
)

// TxBeginner starts transactions. Satisfied by *dbmetrics.DB.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager runs functions in a transaction carried via context.
type TransactionManager struct {
	db TxBeginner
}

// NewTransactionManager creates a transaction manager on top of db.
func NewTransactionManager(db TxBeginner) *TransactionManager {
	return &TransactionManager{db: db}
}

// Do executes fn inside a transaction. The transaction is stored in the
// context so repositories called from fn transparently use it. Commit
// happens only if fn returns nil; any error triggers a rollback.
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("txmanager: begin transaction: %w", err)
	}

	txCtx := dbmetrics.WithExecutor(ctx, tx)

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("txmanager: rollback after error %v: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("txmanager: commit transaction: %w", err)
	}

	return nil
}
