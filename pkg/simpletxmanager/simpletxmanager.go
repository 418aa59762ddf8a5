// Package simpletxmanager is the metrics-free counterpart of txmanager,
// used when metrics collection is disabled.
package simpletxmanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roccadavide/beauty-room-sub000/pkg/dbmetrics"
)

// TransactionManager runs functions in a plain *sql.DB transaction.
type TransactionManager struct {
	db *sql.DB
}

// NewTransactionManager creates a transaction manager on top of db.
func NewTransactionManager(db *sql.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// Do executes fn inside a read-committed transaction carried via context.
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("simpletxmanager: begin transaction: %w", err)
	}

	txCtx := dbmetrics.WithExecutor(ctx, tx)

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("simpletxmanager: rollback after error %v: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("simpletxmanager: commit transaction: %w", err)
	}

	return nil
}
