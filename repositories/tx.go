package repositories

import (
	"context"
	"database/sql"
	"fmt"
)

// Transactor runs a function as one atomic unit of work. Fixture generation
// and result processing both go through it: any error rolls the whole unit
// back so a partially advanced graph can never be observed.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(exec SQLExecutor) error) error
}

type sqlTransactor struct {
	db *sql.DB
}

func NewSQLTransactor(db *sql.DB) Transactor {
	return &sqlTransactor{db: db}
}

func (t *sqlTransactor) WithinTransaction(ctx context.Context, fn func(exec SQLExecutor) error) error {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction error: %w (rollback also failed: %v)", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
