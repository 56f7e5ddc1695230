package data

import (
	"database/sql"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// SQLiteDriver is the database/sql driver name to open sqlite databases with.
// Connections get a casefold(text) function since the built-in lower() only
// folds ASCII.
const SQLiteDriver = "sqlite3_cinema"

func init() {
	sql.Register(SQLiteDriver, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("casefold", strings.ToLower, true)
		},
	})
}
