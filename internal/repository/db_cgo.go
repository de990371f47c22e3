//go:build cgo_sqlite

package repository

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

func openSQLite(dataSource string) (*sql.DB, error) {
	return sql.Open("sqlite3", dataSource)
}
