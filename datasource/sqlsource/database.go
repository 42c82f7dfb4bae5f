// Package sqlsource loads records from a SQL database, standing in for the
// data layer which feeds the in memory query engine.
package sqlsource

import (
	"github.com/jmoiron/sqlx"
	// Registers the sqlite3 driver.
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// DatabaseConnector is the central connector interface for gridquery to
// access a database implementation.
type DatabaseConnector interface {
	DatabaseVersion() (string, error)
	DatabaseObject() *sqlx.DB

	Close() error
}

// CommonDatabaseConnector encapsulates the actual database interface, so
// that implementing a DatabaseConnector only involves filling in the
// database specific methods.
type CommonDatabaseConnector struct {
	db *sqlx.DB
}

// NewCommonDatabaseConnector constructs a new CommonDatabaseConnector instance,
// encapsulating the given database interface.
func NewCommonDatabaseConnector(db *sqlx.DB) *CommonDatabaseConnector {
	return &CommonDatabaseConnector{db: db}
}

// Close is a shortcut to closing the underlying database of the connector.
func (sqlDatabase CommonDatabaseConnector) Close() error {
	return sqlDatabase.db.Close()
}

// DatabaseObject exposes the raw database interface
func (sqlDatabase CommonDatabaseConnector) DatabaseObject() *sqlx.DB {
	return sqlDatabase.db
}

// SQLiteConnector is a DatabaseConnector for SQLite databases.
type SQLiteConnector struct {
	*CommonDatabaseConnector
}

// NewSQLiteConnector opens the SQLite database designated by the dsn, e.g.
// "file:records.db?mode=ro" or ":memory:".
func NewSQLiteConnector(dsn string) (*SQLiteConnector, error) {
	db, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "open sqlite database %s", dsn)
	}

	return &SQLiteConnector{CommonDatabaseConnector: NewCommonDatabaseConnector(db)}, nil
}

// DatabaseVersion returns the version of the SQLite library.
func (connector SQLiteConnector) DatabaseVersion() (string, error) {
	var version string
	if err := connector.db.Get(&version, "SELECT sqlite_version()"); err != nil {
		return "", err
	}

	return version, nil
}
