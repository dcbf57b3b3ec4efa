// Package migrate handles SQL database migration for the internal Fyyur database
package migrate

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/derWhity/fyyur/internal/repos"
)

var migrations []dbMigration

type dbMigration struct {
	Version uint
	Queries []string
}

// Execute runs the current DB migration on the given database
// All queries of a migration are executed in one transaction, so a failed migration leaves no half-applied schema
func (mig *dbMigration) Execute(db *sqlx.DB, logger *logrus.Entry) error {
	// Check if the migration has already run
	query := `SELECT success FROM Migrations WHERE version = ?`
	var success = false
	err := db.QueryRow(query, mig.Version).Scan(&success)
	if err != nil && err != sql.ErrNoRows {
		logger.WithError(err).Error("Failed to fetch version information")
		return err
	}
	if success {
		return nil
	}
	logger.Infof("Executing DB migration #%d", mig.Version)
	tx, err := db.Beginx()
	if err != nil {
		return errors.Wrap(err, "Execute: Failed to start transaction")
	}
	for i, query := range mig.Queries {
		logger.Debugf("Query %d of %d...", (i + 1), len(mig.Queries))
		if _, err := tx.Exec(query); err != nil {
			logger.WithError(err).Errorf("Query #%d failed", (i + 1))
			err = repos.DoRollback(tx, errors.Wrapf(err, "Execute: Query #%d of migration #%d failed", i+1, mig.Version))
			db.Exec(`REPLACE INTO Migrations(version, success) VALUES(?, 0)`, mig.Version)
			return err
		}
	}
	if _, err := tx.Exec(`REPLACE INTO Migrations(version, success) VALUES(?, 1)`, mig.Version); err != nil {
		return repos.DoRollback(tx, errors.Wrap(err, "Execute: Failed to store migration status"))
	}
	return errors.Wrap(tx.Commit(), "Execute: Failed to commit migration")
}

// ExecuteMigrationsOnDb executes the database migrations on the given database instance
func ExecuteMigrationsOnDb(db *sqlx.DB, logger *logrus.Entry) error {
	// Create the migrations table if it does not exist, yet
	query := `CREATE TABLE IF NOT EXISTS Migrations (
                version   INTEGER NOT NULL,
                success   INTEGER NOT NULL DEFAULT 0,
                PRIMARY KEY(version)
            )`
	if _, err := db.Exec(query); err != nil {
		logger.WithError(err).Error("Failed to create migrations table")
		return err
	}
	for _, mig := range migrations {
		if err := mig.Execute(db, logger); err != nil {
			logger.WithError(err).Errorf("Failed to execute migration #%d", mig.Version)
			return err
		}
	}
	return nil
}

// LatestVersion returns the schema version the database has after all migrations ran
func LatestVersion() uint {
	if len(migrations) == 0 {
		return 0
	}
	return migrations[len(migrations)-1].Version
}

// For now, the migrations are part of the package...
func init() {
	migrations = []dbMigration{
		{
			Version: 1,
			Queries: []string{
				`CREATE TABLE "Venues" (
                    id INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT,
                    name VARCHAR(255) NOT NULL,
                    city VARCHAR(120) NOT NULL,
                    state VARCHAR(120) NOT NULL,
                    address VARCHAR(120) NOT NULL,
                    phone VARCHAR(120) NOT NULL,
                    imageLink VARCHAR(500) NOT NULL DEFAULT '',
                    facebookLink VARCHAR(120) NOT NULL DEFAULT '',
                    seekingTalent INTEGER NOT NULL DEFAULT 1,
                    createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
                    updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
                );`,
				`CREATE TABLE "Artists" (
                    id INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT,
                    name VARCHAR(255) NOT NULL,
                    city VARCHAR(120) NOT NULL,
                    state VARCHAR(120) NOT NULL,
                    phone VARCHAR(120) NOT NULL,
                    genres VARCHAR(120) NOT NULL,
                    imageLink VARCHAR(500) NOT NULL DEFAULT '',
                    facebookLink VARCHAR(120) NOT NULL DEFAULT '',
                    seekingVenue INTEGER NOT NULL DEFAULT 1,
                    seekingDescription TEXT NOT NULL DEFAULT '',
                    createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
                    updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
                );`,
				`CREATE TABLE "Shows" (
                    id INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT,
                    artistId INTEGER NOT NULL REFERENCES Artists(id),
                    venueId INTEGER NOT NULL REFERENCES Venues(id),
                    startTime DATETIME NOT NULL,
                    createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
                );`,
				`CREATE INDEX idx_venue_locality ON Venues (city ASC, state ASC);`,
			},
		},
		{
			Version: 2,
			Queries: []string{
				`ALTER TABLE Artists ADD COLUMN website VARCHAR(255) NOT NULL DEFAULT '';`,
				`ALTER TABLE Venues ADD COLUMN seekingDescription TEXT NOT NULL DEFAULT '';`,
				`ALTER TABLE Venues ADD COLUMN website VARCHAR(255) NOT NULL DEFAULT '';`,
			},
		},
		{
			Version: 3,
			Queries: []string{
				`ALTER TABLE Venues ADD COLUMN version INTEGER NOT NULL DEFAULT 1;`,
				`ALTER TABLE Artists ADD COLUMN version INTEGER NOT NULL DEFAULT 1;`,
				`CREATE INDEX idx_show_venue ON Shows (venueId ASC, startTime ASC);`,
				`CREATE INDEX idx_show_artist ON Shows (artistId ASC, startTime ASC);`,
			},
		},
	}
}
