package persistence

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type pgTxKey struct{}

// PgTxInfo holds the Postgres transaction and ownership info. Nested units
// of work reuse the outer transaction and leave commit/rollback to it.
type PgTxInfo struct {
	Tx    pgx.Tx
	Owned bool
}

// WithPgTx stores Postgres transaction info in the context.
func WithPgTx(ctx context.Context, tx pgx.Tx, owned bool) context.Context {
	return context.WithValue(ctx, pgTxKey{}, PgTxInfo{Tx: tx, Owned: owned})
}

// PgTxInfoFromContext extracts Postgres transaction info from the context.
func PgTxInfoFromContext(ctx context.Context) (PgTxInfo, bool) {
	info, ok := ctx.Value(pgTxKey{}).(PgTxInfo)
	if !ok || info.Tx == nil {
		return PgTxInfo{}, false
	}
	return info, true
}

// PgUnitOfWork provides transactional support for Postgres.
type PgUnitOfWork struct {
	pool *pgxpool.Pool
}

// NewPgUnitOfWork creates a new PgUnitOfWork.
func NewPgUnitOfWork(pool *pgxpool.Pool) *PgUnitOfWork {
	return &PgUnitOfWork{pool: pool}
}

// Begin starts a transaction and stores it in the context.
func (u *PgUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	if info, ok := PgTxInfoFromContext(ctx); ok {
		return WithPgTx(ctx, info.Tx, false), nil
	}

	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}

	return WithPgTx(ctx, tx, true), nil
}

// Commit commits the transaction if this unit owns it.
func (u *PgUnitOfWork) Commit(ctx context.Context) error {
	info, ok := PgTxInfoFromContext(ctx)
	if !ok {
		return errors.New("no transaction in context")
	}
	if !info.Owned {
		return nil
	}
	return info.Tx.Commit(ctx)
}

// Rollback rolls back the transaction if this unit owns it.
func (u *PgUnitOfWork) Rollback(ctx context.Context) error {
	info, ok := PgTxInfoFromContext(ctx)
	if !ok {
		return errors.New("no transaction in context")
	}
	if !info.Owned {
		return nil
	}
	return info.Tx.Rollback(ctx)
}
