package database

import (
	"database/sql"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/hashicorp/go-multierror"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

// CampusEats is the shared connection pool. Opened once at startup by
// ConnectAndMigrate and used by every dbhelper.
var CampusEats *sql.DB

const (
	maxOpenConns    = 25
	maxIdleConns    = 25
	connMaxLifetime = 5 * time.Minute
)

func ConnectAndMigrate(url, migrationsPath string) error {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return err
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	if err := db.Ping(); err != nil {
		return err
	}

	CampusEats = db
	return migrateUp(db, migrationsPath)
}

func migrateUp(db *sql.DB, migrationsPath string) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(migrationsPath, "postgres", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	logrus.Info("database migrations applied")
	return nil
}

func ShutdownDatabase() error {
	return CampusEats.Close()
}

// Tx runs fn inside a transaction. A failure in fn rolls back; rollback
// errors are aggregated with the original so neither is lost.
func Tx(fn func(tx *sql.Tx) error) error {
	tx, err := CampusEats.Begin()
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return multierror.Append(err, rbErr)
		}
		return err
	}

	return tx.Commit()
}
