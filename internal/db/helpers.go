package db

import (
	"database/sql"
	"database/sql/driver"
	"errors"
)

// QueryRower is the slice of *sql.DB that the schema probes need, so tests
// can hand in a mock connection.
type QueryRower interface {
	QueryRow(query string, args ...any) *sql.Row
}

// NullIfEmpty stores optional strings as NULL instead of empty text.
func NullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// HasTable reports whether the current schema has the table. Probe errors
// (including bad connections) read as "not there"; callers degrade instead
// of failing.
func HasTable(q QueryRower, table string) bool {
	var name sql.NullString
	err := q.QueryRow(`
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		LIMIT 1
	`, table).Scan(&name)

	if err != nil {
		// bad conn atau schema tidak terbaca: anggap tabel tidak ada
		return false
	}
	return name.Valid && name.String != ""
}

// HasColumn reports whether the table carries the column.
func HasColumn(q QueryRower, table, column string) bool {
	var name sql.NullString
	err := q.QueryRow(`
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		  AND column_name = ?
		LIMIT 1
	`, table, column).Scan(&name)

	if err != nil {
		// jangan log per kolom, cukup false (spam)
		if errors.Is(err, driver.ErrBadConn) {
			return false
		}
		return false
	}
	return name.Valid && name.String != ""
}
