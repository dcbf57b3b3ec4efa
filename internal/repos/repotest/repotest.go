// Package repotest provides a migrated in-memory database and some fixtures for testing code that works on the
// SQLite repositories
package repotest

import (
	"io/ioutil"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // Just needed for the sqlite driver
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/derWhity/fyyur/internal/migrate"
	"github.com/derWhity/fyyur/internal/models"
)

// Logger returns a logger that throws away everything written to it
func Logger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(ioutil.Discard)
	return logrus.NewEntry(l)
}

// OpenDB opens a fresh in-memory database and runs all migrations on it
// The pool is limited to a single connection since every new SQLite connection to ":memory:" opens another empty
// database
func OpenDB(t testing.TB) *sqlx.DB {
	db, err := sqlx.Open("sqlite3", ":memory:?_foreign_keys=1")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, migrate.ExecuteMigrationsOnDb(db, Logger()))
	return db
}

// Venue returns a venue that passes all checks and can be stored as it is
func Venue(name, city, state string) *models.Venue {
	return &models.Venue{
		Name:          name,
		City:          city,
		State:         state,
		Address:       "1 Main St",
		Phone:         "415-555-0100",
		ImageLink:     "https://example.com/" + name + ".png",
		SeekingTalent: true,
	}
}

// Artist returns an artist that passes all checks and can be stored as it is
func Artist(name string) *models.Artist {
	return &models.Artist{
		Name:         name,
		City:         "San Francisco",
		State:        "CA",
		Phone:        "326-123-5000",
		Genres:       "Jazz",
		ImageLink:    "https://example.com/" + name + ".png",
		SeekingVenue: true,
	}
}
