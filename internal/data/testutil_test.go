package data

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()
	sqldb, err := sql.Open(SQLiteDriver, filepath.Join(t.TempDir(), "cinema.db")+"?_foreign_keys=on&_busy_timeout=5000")
	require.NoError(t, err)
	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { db.Close() })

	_, err = Migrate(context.Background(), db)
	require.NoError(t, err, "migrating the test database")
	return db
}

type catalogFixture struct {
	comedy, action *Genre
	john, jane     *Actor
	funny, actionM *Movie
}

// seedCatalog creates two genres, two actors and one movie per genre/actor pair.
func seedCatalog(t *testing.T, models *Models) catalogFixture {
	t.Helper()
	ctx := context.Background()
	f := catalogFixture{
		comedy: &Genre{Name: "Comedy"},
		action: &Genre{Name: "Action"},
		john:   &Actor{FirstName: "John", LastName: "Doe"},
		jane:   &Actor{FirstName: "Jane", LastName: "Smith"},
	}
	require.NoError(t, models.Genres.Insert(ctx, f.comedy))
	require.NoError(t, models.Genres.Insert(ctx, f.action))
	require.NoError(t, models.Actors.Insert(ctx, f.john))
	require.NoError(t, models.Actors.Insert(ctx, f.jane))

	f.funny = &Movie{Title: "Funny Movie", Description: "A very funny movie", Duration: 90}
	require.NoError(t, models.Movies.Insert(ctx, f.funny, []int64{f.comedy.ID}, []int64{f.john.ID}))
	f.actionM = &Movie{Title: "Action Movie", Description: "Full of action", Duration: 120}
	require.NoError(t, models.Movies.Insert(ctx, f.actionM, []int64{f.action.ID}, []int64{f.jane.ID}))
	return f
}
