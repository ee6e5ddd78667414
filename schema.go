package auth

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// OpenDatabase opens a SQLite-backed Bun handle for the given DSN. Use
// "file::memory:?cache=shared" for an ephemeral database.
func OpenDatabase(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, wrapInternal(err, "failed to open database")
	}
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// BootstrapSchema creates the accounts table if it does not exist yet. It
// is idempotent and safe to run on every startup.
func BootstrapSchema(ctx context.Context, db *bun.DB) error {
	if _, err := db.NewCreateTable().
		Model((*Account)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return wrapInternal(err, "failed to create accounts table")
	}

	return nil
}
