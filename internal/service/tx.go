package service

import (
    "context"
    "database/sql"
)

// TxRunner runs a function inside a database transaction, committing on
// nil and rolling back on error. Services depend on this instead of
// *sql.DB directly so their sequencing can be tested without a live
// database.
type TxRunner interface {
    InTx(ctx context.Context, fn func(tx *sql.Tx) error) error
}

// SQLRunner is the production TxRunner over *sql.DB.
type SQLRunner struct {
    DB *sql.DB
}

// InTx begins a transaction, runs fn and commits, rolling back when fn
// or the commit fails.
func (r SQLRunner) InTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
    tx, err := r.DB.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()
    if err := fn(tx); err != nil {
        return err
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}
