// Package db carries the transaction plumbing shared by all repositories.
//
// Every capacity-mutating operation (allocation, release, renewal
// reconciliation) must read, check, and write a coach's slot sources as one
// atomic unit. The manager opens the transaction and threads the *gorm.DB
// handle through the context, so use cases stay free of gorm imports and
// repositories pick the right handle without knowing whether they run
// inside a transaction.
package db

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// TransactionManager wraps a base gorm handle and runs closures inside a
// single transaction. Row locks taken within (assignment first, then
// tokens, always in that order) serialize concurrent capacity changes for
// one coach while leaving other coaches untouched.
type TransactionManager struct {
	db *gorm.DB
}

func NewTransactionManager(db *gorm.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// RunInTransaction runs fn inside one transaction. The ctx handed to fn
// carries the transaction handle; any repository call made with it joins
// the same transaction. fn returning an error rolls everything back.
func (tm *TransactionManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// GetTx returns the transaction carried by ctx, or the base handle when
// called outside a transaction.
func (tm *TransactionManager) GetTx(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return tm.db.WithContext(ctx)
}

// GetTxFromContext is the repository-side accessor: it joins the ambient
// transaction when one is present and falls back to the given handle for
// plain reads.
func GetTxFromContext(ctx context.Context, defaultDB *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return defaultDB.WithContext(ctx)
}
