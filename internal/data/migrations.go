package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

// migrations are registered in version order. Each step builds its DDL through
// bun so the same schema works on postgres and sqlite.
var migrations = []struct {
	version int64
	up      func(ctx context.Context, db *bun.DB) error
	down    func(ctx context.Context, db *bun.DB) error
}{
	{1, createCatalogTables, dropTables((*MovieActor)(nil), (*MovieGenre)(nil), (*Movie)(nil), (*Actor)(nil), (*Genre)(nil))},
	{2, createAuthTables, dropTables((*Token)(nil), (*User)(nil))},
}

func createCatalogTables(ctx context.Context, db *bun.DB) error {
	for _, model := range []interface{}{(*Genre)(nil), (*Actor)(nil), (*Movie)(nil)} {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}
	_, err := db.NewCreateTable().Model((*MovieGenre)(nil)).IfNotExists().
		ForeignKey(`("movie_id") REFERENCES "movies" ("id") ON DELETE CASCADE`).
		ForeignKey(`("genre_id") REFERENCES "genres" ("id") ON DELETE CASCADE`).
		Exec(ctx)
	if err != nil {
		return err
	}
	_, err = db.NewCreateTable().Model((*MovieActor)(nil)).IfNotExists().
		ForeignKey(`("movie_id") REFERENCES "movies" ("id") ON DELETE CASCADE`).
		ForeignKey(`("actor_id") REFERENCES "actors" ("id") ON DELETE CASCADE`).
		Exec(ctx)
	return err
}

func createAuthTables(ctx context.Context, db *bun.DB) error {
	if _, err := db.NewCreateTable().Model((*User)(nil)).IfNotExists().Exec(ctx); err != nil {
		return err
	}
	_, err := db.NewCreateTable().Model((*Token)(nil)).IfNotExists().
		ForeignKey(`("user_id") REFERENCES "users" ("id") ON DELETE CASCADE`).
		Exec(ctx)
	return err
}

func dropTables(models ...interface{}) func(ctx context.Context, db *bun.DB) error {
	return func(ctx context.Context, db *bun.DB) error {
		for _, model := range models {
			if _, err := db.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	}
}

// Migrate applies every pending schema migration to db.
func Migrate(ctx context.Context, db *bun.DB) ([]*goose.MigrationResult, error) {
	provider, err := newMigrationProvider(db)
	if err != nil {
		return nil, err
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return results, fmt.Errorf("goose up: %w", err)
	}
	return results, nil
}

// MigrationStatus reports the applied state of every known migration.
func MigrationStatus(ctx context.Context, db *bun.DB) ([]*goose.MigrationStatus, error) {
	provider, err := newMigrationProvider(db)
	if err != nil {
		return nil, err
	}
	return provider.Status(ctx)
}

func newMigrationProvider(db *bun.DB) (*goose.Provider, error) {
	var gooseDialect goose.Dialect
	switch db.Dialect().Name() {
	case dialect.PG:
		gooseDialect = goose.DialectPostgres
	case dialect.SQLite:
		gooseDialect = goose.DialectSQLite3
	default:
		return nil, fmt.Errorf("no migration support for dialect %s", db.Dialect().Name())
	}

	registerModels(db)
	goMigrations := make([]*goose.Migration, 0, len(migrations))
	for _, m := range migrations {
		goMigrations = append(goMigrations, goose.NewGoMigration(m.version,
			&goose.GoFunc{RunDB: runWithBun(db, m.up)},
			&goose.GoFunc{RunDB: runWithBun(db, m.down)},
		))
	}

	provider, err := goose.NewProvider(gooseDialect, db.DB, nil,
		goose.WithDisableGlobalRegistry(true),
		goose.WithGoMigrations(goMigrations...),
	)
	if err != nil {
		return nil, fmt.Errorf("goose provider: %w", err)
	}
	return provider, nil
}

func runWithBun(db *bun.DB, fn func(ctx context.Context, db *bun.DB) error) func(ctx context.Context, _ *sql.DB) error {
	return func(ctx context.Context, _ *sql.DB) error {
		return fn(ctx, db)
	}
}
