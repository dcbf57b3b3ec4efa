// Package sqlite provides an artist repository that stores its data inside a SQLite database
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
	artistFields = `name, city, state, phone, genres, imageLink, facebookLink, website, seekingVenue,
        seekingDescription, version, createdAt, updatedAt`
)

var _ repos.ArtistRepo = (*ArtistRepo)(nil)

// ArtistRepo is an artist repository that stores its data inside a SQLite database
type ArtistRepo struct {
	db     *sqlx.DB
	logger *logrus.Entry
}

// New creates a new ArtistRepo instance with the given DB and logger instances
func New(db *sqlx.DB, logger *logrus.Entry) *ArtistRepo {
	return &ArtistRepo{db, logger}
}

// Create creates a new artist
func (r *ArtistRepo) Create(a *models.Artist) error {
	r.logger.WithField("name", a.Name).Debug("Adding new artist")
	query := fmt.Sprintf(
		"INSERT INTO Artists(%s) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1, datetime('now'), datetime('now'))",
		artistFields,
	)
	res, err := r.db.Exec(
		query,
		a.Name, a.City, a.State, a.Phone, a.Genres, a.ImageLink, a.FacebookLink, a.Website, a.SeekingVenue,
		a.SeekingDescription,
	)
	if err != nil {
		return errors.Wrap(err, "Create: Failed to insert artist")
	}
	a.Version = 1
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	id, err := res.LastInsertId()
	if err != nil {
		return errors.Wrap(err, "Create: Failed to retrieve last insert ID")
	}
	a.ID = uint(id)
	return nil
}

// Update overwrites all fields of the given artist and reloads it afterwards
func (r *ArtistRepo) Update(a *models.Artist) error {
	r.logger.WithFields(logrus.Fields{log.FldID: a.ID, "version": a.Version}).Debug("Updating artist")
	query := `UPDATE
				Artists
			SET
				name = ?,
				city = ?,
				state = ?,
				phone = ?,
				genres = ?,
				imageLink = ?,
				facebookLink = ?,
				website = ?,
				seekingVenue = ?,
				seekingDescription = ?,
				version = version + 1,
				updatedAt = datetime('now')
			WHERE id = ?`
	args := []interface{}{
		a.Name, a.City, a.State, a.Phone, a.Genres, a.ImageLink, a.FacebookLink, a.Website, a.SeekingVenue,
		a.SeekingDescription, a.ID,
	}
	if a.Version > 0 {
		query += " AND version = ?"
		args = append(args, a.Version)
	}
	return repos.InTx(r.db, func(tx *sqlx.Tx) error {
		res, err := tx.Exec(query, args...)
		if err != nil {
			return errors.Wrap(err, "Update: Failed to update artist")
		}
		if num, _ := res.RowsAffected(); num == 0 {
			var version uint
			err := tx.Get(&version, "SELECT version FROM Artists WHERE id = ?", a.ID)
			switch {
			case err == sql.ErrNoRows:
				return repos.ErrEntityNotExisting
			case err != nil:
				return err
			}
			return repos.ErrVersionConflict
		}
		query := fmt.Sprintf("SELECT id, %s FROM Artists WHERE id = ?", artistFields)
		return errors.Wrap(tx.Get(a, query, a.ID), "Update: Failed to reload artist")
	})
}

// GetByID returns the artist with the given ID
func (r *ArtistRepo) GetByID(id uint) (*models.Artist, error) {
	r.logger.WithField(log.FldID, id).Debug("Loading artist")
	query := fmt.Sprintf("SELECT id, %s FROM Artists WHERE id = ?", artistFields)
	var a models.Artist
	err := r.db.Get(&a, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repos.ErrEntityNotExisting
		}
		return nil, err
	}
	return &a, nil
}

// List returns the IDs and names of all artists
func (r *ArtistRepo) List() ([]models.EntityRef, error) {
	ret := []models.EntityRef{}
	if err := r.db.Select(&ret, "SELECT id, name FROM Artists ORDER BY id"); err != nil {
		return nil, errors.Wrap(err, "List: Failed to query artists")
	}
	return ret, nil
}

// Find returns all artists whose name contains the search string
func (r *ArtistRepo) Find(search string) ([]models.EntityRef, error) {
	r.logger.WithField(log.FldSearch, search).Debug("Searching for artist")
	all, err := r.List()
	if err != nil {
		return nil, err
	}
	return repos.FilterByName(all, search), nil
}
