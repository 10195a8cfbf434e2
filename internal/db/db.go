// Package db owns the SQLite connection and schema migrations for the
// plan document store.
package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Open opens (creating if needed) the plan database at path. A single
// connection avoids SQLITE_BUSY between the CLI's short-lived statements;
// foreign keys are on because composite children cascade with their parent.
func Open(path string) (*sql.DB, error) {
	sqldb, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open plan database: %w", err)
	}
	sqldb.SetMaxOpenConns(1)

	for _, pragma := range []string{
		`PRAGMA foreign_keys = ON;`,
		`PRAGMA busy_timeout = 5000;`,
	} {
		if _, err := sqldb.Exec(pragma); err != nil {
			sqldb.Close()
			return nil, fmt.Errorf("apply %s: %w", pragma, err)
		}
	}
	if err := sqldb.Ping(); err != nil {
		sqldb.Close()
		return nil, fmt.Errorf("ping plan database: %w", err)
	}
	return sqldb, nil
}
