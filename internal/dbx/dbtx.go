// Package dbx holds the database plumbing the messenger repositories share.
// DBTX lets a repository run against either a pool or an open transaction,
// WithTx scopes a unit of work, Open picks the driver, and driver errors are
// translated into common sentinels.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is what a repository needs to run its queries. *sql.DB and *sql.Tx
// both implement it, so repomanager can hand either one to Users or Messages.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx runs fn inside one transaction on db. A nil return commits, an error
// rolls back and is returned as is, and a panic rolls back before it
// propagates.
//
// Every query in fn has to go through tx. SQLite runs with one connection,
// so touching db from inside fn deadlocks.
//
// Sending a message checks both parties and stores the row atomically:
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    for _, name := range []string{from, to} {
//	        if _, err := rm.Users(tx).GetByUsername(ctx, name); err != nil {
//	            return err
//	        }
//	    }
//	    _, err := rm.Messages(tx).Create(ctx, msg)
//	    return err
//	})
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}
