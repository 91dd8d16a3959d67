package db

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Supported driver names. "pgx" is the production postgres driver; "sqlite"
// keeps local development and demos on a single file.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

// InitDB opens the database for the given driver and ensures the schema
// exists. The repositories share one SQL dialect: `$1` placeholders and
// `INSERT ... RETURNING id` work on both drivers, so only the DDL differs.
func InitDB(driver, dsn string) (*sql.DB, error) {
	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, fmt.Errorf("unsupported db driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s at %q: %w", driver, dsn, err)
	}

	if driver == DriverSQLite {
		// Conservative pool settings; SQLite is not great with many writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)

		for _, pragma := range []string{
			"PRAGMA journal_mode = WAL;",
			"PRAGMA foreign_keys = ON;",
			"PRAGMA busy_timeout = 5000;",
		} {
			if _, err := db.Exec(pragma); err != nil {
				_ = db.Close()
				return nil, fmt.Errorf("set %s: %w", pragma, err)
			}
		}
	}

	if err := ensureSchema(db, driver); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Fail fast if the DB cannot be reached
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	return db, nil
}

const schemaUsersSQLite = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT UNIQUE NOT NULL,
    email TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL,
    year TEXT NOT NULL DEFAULT '',
    department TEXT NOT NULL DEFAULT '',
    amount_paid REAL NOT NULL DEFAULT 0,
    balance REAL NOT NULL DEFAULT 0,
    profile_pic BLOB,
    pic_mimetype TEXT NOT NULL DEFAULT '',
    is_admin BOOLEAN NOT NULL DEFAULT FALSE
);
`

const schemaFilesSQLite = `
CREATE TABLE IF NOT EXISTS files (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    filename TEXT NOT NULL,
    filetype TEXT NOT NULL DEFAULT '',
    year TEXT NOT NULL DEFAULT '',
    data BLOB NOT NULL
);
`

const schemaAnnouncementsSQLite = `
CREATE TABLE IF NOT EXISTS announcements (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    header TEXT NOT NULL DEFAULT '',
    content TEXT NOT NULL DEFAULT ''
);
`

const schemaUsersPostgres = `
CREATE TABLE IF NOT EXISTS users (
    id SERIAL PRIMARY KEY,
    username TEXT UNIQUE NOT NULL,
    email TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL,
    year TEXT NOT NULL DEFAULT '',
    department TEXT NOT NULL DEFAULT '',
    amount_paid DOUBLE PRECISION NOT NULL DEFAULT 0,
    balance DOUBLE PRECISION NOT NULL DEFAULT 0,
    profile_pic BYTEA,
    pic_mimetype TEXT NOT NULL DEFAULT '',
    is_admin BOOLEAN NOT NULL DEFAULT FALSE
);
`

const schemaFilesPostgres = `
CREATE TABLE IF NOT EXISTS files (
    id SERIAL PRIMARY KEY,
    filename TEXT NOT NULL,
    filetype TEXT NOT NULL DEFAULT '',
    year TEXT NOT NULL DEFAULT '',
    data BYTEA NOT NULL
);
`

const schemaAnnouncementsPostgres = `
CREATE TABLE IF NOT EXISTS announcements (
    id SERIAL PRIMARY KEY,
    header TEXT NOT NULL DEFAULT '',
    content TEXT NOT NULL DEFAULT ''
);
`

func schemaFor(driver string) []string {
	if driver == DriverPostgres {
		return []string{schemaUsersPostgres, schemaFilesPostgres, schemaAnnouncementsPostgres}
	}
	return []string{schemaUsersSQLite, schemaFilesSQLite, schemaAnnouncementsSQLite}
}

func ensureSchema(db *sql.DB, driver string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		// In case of panic, rollback to avoid leaving an open transaction
		_ = tx.Rollback()
	}()

	for i, stmt := range schemaFor(driver) {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}
