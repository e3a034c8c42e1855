package database

import (
	"database/sql"
	"strings"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SQLiteDriverName is the database/sql driver registered for SQLite
// connections. It replaces the built-in lower(), which only folds ASCII, with
// Go's Unicode case folding so case-insensitive searches match what
// strings.ToLower produces for the search term.
const SQLiteDriverName = "sqlite3_recipes"

func init() {
	sql.Register(SQLiteDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("lower", strings.ToLower, true)
		},
	})
}

// OpenSQLite returns a gorm dialector for dsn on the Unicode-aware driver
func OpenSQLite(dsn string) gorm.Dialector {
	return sqlite.New(sqlite.Config{DriverName: SQLiteDriverName, DSN: dsn})
}
