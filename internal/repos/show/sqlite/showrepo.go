// Package sqlite contains a repository for shows that stores its data inside a SQLite database
package sqlite

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/derWhity/fyyur/internal/log"
	"github.com/derWhity/fyyur/internal/models"
	"github.com/derWhity/fyyur/internal/repos"
)

const (
	showListSelect = `SELECT
						s.id AS id,
						s.venueId AS venueId,
						v.name AS venueName,
						s.artistId AS artistId,
						a.name AS artistName,
						a.imageLink AS artistImageLink,
						s.startTime AS startTime
					FROM
						Shows s
					INNER JOIN
						Venues v ON v.id = s.venueId
					INNER JOIN
						Artists a ON a.id = s.artistId
					ORDER BY s.id`
	venueShowSelect = `SELECT
						s.id AS id,
						s.artistId AS artistId,
						a.name AS artistName,
						a.imageLink AS artistImageLink,
						s.startTime AS startTime
					FROM
						Shows s
					INNER JOIN
						Artists a ON a.id = s.artistId
					WHERE s.venueId = ?
					ORDER BY s.startTime, s.id`
	artistShowSelect = `SELECT
						s.id AS id,
						s.venueId AS venueId,
						v.name AS venueName,
						v.imageLink AS venueImageLink,
						s.startTime AS startTime
					FROM
						Shows s
					INNER JOIN
						Venues v ON v.id = s.venueId
					WHERE s.artistId = ?
					ORDER BY s.startTime, s.id`
)

var _ repos.ShowRepo = (*ShowRepo)(nil)

// ShowRepo is a show repository that stores its data inside a SQLite database
type ShowRepo struct {
	db     *sqlx.DB
	logger *logrus.Entry
}

// New creates a new ShowRepo instance with the given DB and logger instances
func New(db *sqlx.DB, logger *logrus.Entry) *ShowRepo {
	return &ShowRepo{db, logger}
}

// Create checks that artist and venue of the show exist and stores the show
// Start times are stored in UTC with second precision so they can be compared as strings inside the database
func (r *ShowRepo) Create(s *models.Show) error {
	r.logger.WithFields(logrus.Fields{
		log.FldArtist: s.ArtistID,
		log.FldVenue:  s.VenueID,
	}).Debug("Adding new show")
	startTime := s.StartTime.UTC().Truncate(time.Second)
	return repos.InTx(r.db, func(tx *sqlx.Tx) error {
		var num uint
		if err := tx.Get(&num, "SELECT COUNT(*) FROM Artists WHERE id = ?", s.ArtistID); err != nil {
			return errors.Wrap(err, "Create: Failed to look up artist")
		}
		if num == 0 {
			return repos.ErrArtistNotExisting
		}
		if err := tx.Get(&num, "SELECT COUNT(*) FROM Venues WHERE id = ?", s.VenueID); err != nil {
			return errors.Wrap(err, "Create: Failed to look up venue")
		}
		if num == 0 {
			return repos.ErrVenueNotExisting
		}
		res, err := tx.Exec(
			"INSERT INTO Shows(artistId, venueId, startTime, createdAt) VALUES(?, ?, ?, datetime('now'))",
			s.ArtistID, s.VenueID, startTime,
		)
		if err != nil {
			return errors.Wrap(err, "Create: Failed to insert show")
		}
		id, err := res.LastInsertId()
		if err != nil {
			return errors.Wrap(err, "Create: Failed to retrieve last insert ID")
		}
		s.ID = uint(id)
		s.StartTime = startTime
		s.CreatedAt = time.Now()
		return nil
	})
}

// List returns all shows joined with their artist's and venue's data
func (r *ShowRepo) List() ([]models.ShowDetails, error) {
	ret := []models.ShowDetails{}
	if err := r.db.Select(&ret, showListSelect); err != nil {
		return nil, errors.Wrap(err, "List: Failed to query shows")
	}
	return ret, nil
}

// GetByVenue returns all shows taking place at the given venue ordered by their start time
func (r *ShowRepo) GetByVenue(venueID uint) ([]models.VenueShow, error) {
	r.logger.WithField(log.FldVenue, venueID).Debug("Loading shows of venue")
	ret := []models.VenueShow{}
	if err := r.db.Select(&ret, venueShowSelect, venueID); err != nil {
		return nil, errors.Wrap(err, "GetByVenue: Failed to query shows")
	}
	return ret, nil
}

// GetByArtist returns all shows of the given artist ordered by their start time
func (r *ShowRepo) GetByArtist(artistID uint) ([]models.ArtistShow, error) {
	r.logger.WithField(log.FldArtist, artistID).Debug("Loading shows of artist")
	ret := []models.ArtistShow{}
	if err := r.db.Select(&ret, artistShowSelect, artistID); err != nil {
		return nil, errors.Wrap(err, "GetByArtist: Failed to query shows")
	}
	return ret, nil
}
