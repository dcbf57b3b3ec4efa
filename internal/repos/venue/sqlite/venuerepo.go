// Package sqlite provides a venue repository that stores its data inside a SQLite database
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/derWhity/fyyur/internal/log"
	"github.com/derWhity/fyyur/internal/models"
	"github.com/derWhity/fyyur/internal/repos"
)

const (
	venueFields = `name, city, state, address, phone, imageLink, facebookLink, website, seekingTalent,
        seekingDescription, version, createdAt, updatedAt`
	venueListSelect = `SELECT
						v.id AS id,
						v.name AS name,
						v.city AS city,
						v.state AS state,
						(SELECT COUNT(*) FROM Shows s WHERE s.venueId = v.id AND s.startTime > ?) AS numUpcomingShows
					FROM
						Venues v
					ORDER BY v.id`
)

var _ repos.VenueRepo = (*VenueRepo)(nil)

// VenueRepo is a venue repository that stores its data inside a SQLite database
type VenueRepo struct {
	db     *sqlx.DB
	logger *logrus.Entry
}

// New creates a new venue repository instance with the given database and logger
func New(db *sqlx.DB, logger *logrus.Entry) *VenueRepo {
	return &VenueRepo{
		db:     db,
		logger: logger,
	}
}

// Create creates a new venue
func (r *VenueRepo) Create(v *models.Venue) error {
	r.logger.WithField("name", v.Name).Debug("Adding new venue")
	query := fmt.Sprintf(
		"INSERT INTO Venues(%s) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1, datetime('now'), datetime('now'))",
		venueFields,
	)
	res, err := r.db.Exec(
		query,
		v.Name, v.City, v.State, v.Address, v.Phone, v.ImageLink, v.FacebookLink, v.Website, v.SeekingTalent,
		v.SeekingDescription,
	)
	if err != nil {
		return errors.Wrap(err, "Create: Failed to insert venue")
	}
	v.Version = 1
	v.CreatedAt = time.Now()
	v.UpdatedAt = v.CreatedAt
	var id int64
	if id, err = res.LastInsertId(); err == nil {
		v.ID = uint(id)
	}
	return err
}

// Update overwrites all fields of the given venue and reloads it afterwards
func (r *VenueRepo) Update(v *models.Venue) error {
	r.logger.WithFields(logrus.Fields{log.FldID: v.ID, "version": v.Version}).Debug("Updating venue")
	query := `UPDATE Venues SET name = ?, city = ?, state = ?, address = ?, phone = ?, imageLink = ?,
        facebookLink = ?, website = ?, seekingTalent = ?, seekingDescription = ?, version = version + 1,
        updatedAt = datetime('now') WHERE id = ?`
	args := []interface{}{
		v.Name, v.City, v.State, v.Address, v.Phone, v.ImageLink, v.FacebookLink, v.Website, v.SeekingTalent,
		v.SeekingDescription, v.ID,
	}
	if v.Version > 0 {
		query += " AND version = ?"
		args = append(args, v.Version)
	}
	return repos.InTx(r.db, func(tx *sqlx.Tx) error {
		res, err := tx.Exec(query, args...)
		if err != nil {
			return errors.Wrap(err, "Update: Failed to update venue")
		}
		if num, err := res.RowsAffected(); err != nil {
			return err
		} else if num == 0 {
			return missingOrConflict(tx, v.ID)
		}
		return errors.Wrap(
			tx.Get(v, fmt.Sprintf("SELECT id, %s FROM Venues WHERE id = ?", venueFields), v.ID),
			"Update: Failed to reload venue",
		)
	})
}

// missingOrConflict finds out why an update did not touch any row
func missingOrConflict(tx *sqlx.Tx, id uint) error {
	var version uint
	err := tx.Get(&version, "SELECT version FROM Venues WHERE id = ?", id)
	if err == sql.ErrNoRows {
		return repos.ErrEntityNotExisting
	}
	if err != nil {
		return err
	}
	return repos.ErrVersionConflict
}

// Delete removes the venue with the given ID. Shows of the venue are removed as well if cascade is set - otherwise
// the deletion is refused as long as there are shows
func (r *VenueRepo) Delete(id uint, cascade bool) error {
	r.logger.WithFields(logrus.Fields{log.FldID: id, "cascade": cascade}).Debug("Deleting venue")
	return repos.InTx(r.db, func(tx *sqlx.Tx) error {
		var numShows uint
		if err := tx.Get(&numShows, "SELECT COUNT(*) FROM Shows WHERE venueId = ?", id); err != nil {
			return errors.Wrap(err, "Delete: Failed to count shows of venue")
		}
		if numShows > 0 {
			if !cascade {
				return repos.ErrEntityInUse
			}
			if _, err := tx.Exec("DELETE FROM Shows WHERE venueId = ?", id); err != nil {
				return errors.Wrap(err, "Delete: Failed to remove shows of venue")
			}
		}
		res, err := tx.Exec("DELETE FROM Venues WHERE id = ?", id)
		if err != nil {
			return errors.Wrap(err, "Delete: Failed to remove venue")
		}
		if num, err := res.RowsAffected(); err != nil {
			return err
		} else if num == 0 {
			return repos.ErrEntityNotExisting
		}
		return nil
	})
}

// GetByID returns the venue with the given ID
func (r *VenueRepo) GetByID(id uint) (*models.Venue, error) {
	r.logger.WithField(log.FldID, id).Debug("Loading venue")
	query := fmt.Sprintf("SELECT id, %s FROM Venues WHERE id = ?", venueFields)
	var v models.Venue
	err := r.db.Get(&v, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			// Nothing found
			return nil, repos.ErrEntityNotExisting
		}
		return nil, err
	}
	return &v, nil
}

// List returns all venues in the order they have been created
func (r *VenueRepo) List(now time.Time) ([]models.VenueListing, error) {
	ret := []models.VenueListing{}
	if err := r.db.Select(&ret, venueListSelect, now.UTC()); err != nil {
		return nil, errors.Wrap(err, "List: Failed to query venues")
	}
	return ret, nil
}

// Find returns all venues whose name contains the search string
func (r *VenueRepo) Find(search string) ([]models.EntityRef, error) {
	r.logger.WithField(log.FldSearch, search).Debug("Searching for venue")
	var all []models.EntityRef
	if err := r.db.Select(&all, "SELECT id, name FROM Venues ORDER BY id"); err != nil {
		return nil, errors.Wrap(err, "Find: Failed to query venues")
	}
	return repos.FilterByName(all, search), nil
}
