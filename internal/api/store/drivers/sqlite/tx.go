package sqlite

import (
	"context"
	"database/sql"

	"github.com/breathehq/breathe/internal/api/store"
)

type txStore struct {
	tx *sql.Tx
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error { return nil } // outer DB stays open; caller commits/rolls back

// Ping is a no-op inside a transaction; the connection already exists.
func (t *txStore) Ping(ctx context.Context) error { return nil }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested transactions are not supported.
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) ApplyMigrations() error { return nil } // applied on the root store before any tx

func (t *txStore) Users() store.Users                 { return &usersRepo{q: t.tx} }
func (t *txStore) Customers() store.Customers         { return &customersRepo{q: t.tx} }
func (t *txStore) Credentials() store.Credentials     { return &credentialsRepo{q: t.tx} }
func (t *txStore) Settings() store.Settings           { return &settingsRepo{q: t.tx} }
func (t *txStore) Bookmarks() store.Bookmarks         { return &bookmarksRepo{q: t.tx} }
func (t *txStore) ScreenTime() store.ScreenTime       { return &screenTimeRepo{q: t.tx} }
func (t *txStore) Improvements() store.Improvements   { return &improvementsRepo{q: t.tx} }
func (t *txStore) UserColors() store.UserColors       { return &userColorsRepo{q: t.tx} }
func (t *txStore) Devices() store.Devices             { return &devicesRepo{q: t.tx} }
func (t *txStore) Subscriptions() store.Subscriptions { return &subscriptionsRepo{q: t.tx} }
