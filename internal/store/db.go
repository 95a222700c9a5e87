// Package store persists the domain entities in a relational database.
//
// The same SQL runs on Postgres, through the pgx database/sql bridge, and on
// SQLite, which backs tests and single-node deployments. Queries are written
// with '?' placeholders and rebound for the driver in use.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Store is the entry point used by the services: every repository method
// plus a unit of work.
type Store interface {
	Repository

	// WithTx runs fn inside a single transaction. The transaction is
	// committed if fn returns nil and rolled back otherwise.
	WithTx(ctx context.Context, fn func(Repository) error) error
}

type DB struct {
	*Queries
	db *sqlx.DB
}

func New(db *sqlx.DB) *DB {
	return &DB{
		Queries: &Queries{ext: db},
		db:      db,
	}
}

// NewPostgres wraps a pgx pool. Closing the returned DB does not close the
// pool.
func NewPostgres(pool *pgxpool.Pool) *DB {
	return New(sqlx.NewDb(stdlib.OpenDBFromPool(pool), "pgx"))
}

// OpenSQLite opens the database file at path, or a private in-memory
// database when path is ":memory:". Foreign keys are enforced on every
// connection and timestamps are written in a textual format that sorts
// chronologically for a fixed offset.
func OpenSQLite(path string) (*DB, error) {
	dsn := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"
	db, err := sqlx.Open(DriverSQLite, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// SQLite allows a single writer and every in-memory connection is a
	// separate database.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if _, err = db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}
	return New(db), nil
}

func (d *DB) DriverName() string {
	return d.db.DriverName()
}

func (d *DB) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) WithTx(ctx context.Context, fn func(Repository) error) error {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	err = fn(&Queries{ext: tx})
	if err != nil {
		return err
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Queries implements Repository on top of either the database handle or an
// open transaction.
type Queries struct {
	ext sqlx.ExtContext
}

func (q *Queries) get(ctx context.Context, dest any, query string, args ...any) error {
	return sqlx.GetContext(ctx, q.ext, dest, q.ext.Rebind(query), args...)
}

func (q *Queries) selectAll(ctx context.Context, dest any, query string, args ...any) error {
	return sqlx.SelectContext(ctx, q.ext, dest, q.ext.Rebind(query), args...)
}

func (q *Queries) exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := q.ext.ExecContext(ctx, q.ext.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// selectIn expands slice arguments into IN lists before running the query.
func (q *Queries) selectIn(ctx context.Context, dest any, query string, args ...any) error {
	query, args, err := sqlx.In(query, args...)
	if err != nil {
		return err
	}
	return q.selectAll(ctx, dest, query, args...)
}
