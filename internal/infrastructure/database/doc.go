// Package database provides SQLite connectivity for rig-calc.
//
// This package manages:
//   - The connection, with WAL mode and a busy timeout for file databases
//   - Versioned schema migrations embedded in the binary
//   - A single-connection pool matching SQLite's single writer
//
// All queries use parameterised statements. The database file is restricted
// to 0600.
//
// Usage:
//
//	db, err := database.Open(cfg.Database)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx); err != nil {
//	    return err
//	}
//
// Migration files are named YYYYMMDD_HHMMSS_description.up.sql with a
// matching .down.sql, and live in the top-level migrations package.
package database
