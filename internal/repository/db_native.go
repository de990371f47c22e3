//go:build !cgo_sqlite

package repository

import (
	"database/sql"

	_ "modernc.org/sqlite"
)

func openSQLite(dataSource string) (*sql.DB, error) {
	return sql.Open("sqlite", dataSource)
}
