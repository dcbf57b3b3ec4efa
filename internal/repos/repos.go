// Package repos contains the repository interfaces needed in Fyyur
// It exists to prevent circular dependencies between fyyur and the repo implementations
package repos

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/derWhity/fyyur/internal/models"
)

var (
	// ErrEntityNotExisting is fired by a repository when an entity that is updated or deleted does not exist
	ErrEntityNotExisting = fmt.Errorf("cannot update: Entity does not exist")
	// ErrArtistNotExisting is returned when a show references an artist that does not exist
	ErrArtistNotExisting = fmt.Errorf("referenced artist does not exist")
	// ErrVenueNotExisting is returned when a show references a venue that does not exist
	ErrVenueNotExisting = fmt.Errorf("referenced venue does not exist")
	// ErrVersionConflict is returned when an entity has been changed by somebody else since it has been loaded
	ErrVersionConflict = fmt.Errorf("entity has been modified concurrently")
	// ErrEntityInUse is returned when an entity cannot be removed because other entities still reference it
	ErrEntityInUse = fmt.Errorf("entity is still referenced")
)

// VenueRepo defines a repository that handles storing and querying venues
type VenueRepo interface {
	// Create creates a new venue
	Create(v *models.Venue) error
	// Update overwrites all fields of an existing venue. If v.Version is not 0, the update only succeeds if the
	// stored venue still has this version
	Update(v *models.Venue) error
	// Delete removes the venue with the given ID. If cascade is not set, venues that still have shows will not be
	// removed and ErrEntityInUse is returned
	Delete(id uint, cascade bool) error
	// GetByID returns the venue with the given ID
	GetByID(id uint) (*models.Venue, error)
	// List returns all venues together with the number of their shows starting after the given point in time
	List(now time.Time) ([]models.VenueListing, error)
	// Find returns all venues whose name contains the search string, ignoring case
	Find(search string) ([]models.EntityRef, error)
}

// ArtistRepo defines a repository that handles storing and querying artists
type ArtistRepo interface {
	// Create creates a new artist
	Create(a *models.Artist) error
	// Update overwrites all fields of an existing artist. If a.Version is not 0, the update only succeeds if the
	// stored artist still has this version
	Update(a *models.Artist) error
	// GetByID returns the artist with the given ID
	GetByID(id uint) (*models.Artist, error)
	// List returns the IDs and names of all artists
	List() ([]models.EntityRef, error)
	// Find returns all artists whose name contains the search string, ignoring case
	Find(search string) ([]models.EntityRef, error)
}

// ShowRepo defines a repository that handles storing and querying shows
type ShowRepo interface {
	// Create creates a new show. Returns ErrArtistNotExisting or ErrVenueNotExisting if one of the referenced
	// entities is missing
	Create(s *models.Show) error
	// List returns all shows joined with their artist's and venue's data
	List() ([]models.ShowDetails, error)
	// GetByVenue returns all shows taking place at the given venue
	GetByVenue(venueID uint) ([]models.VenueShow, error)
	// GetByArtist returns all shows the given artist plays
	GetByArtist(artistID uint) ([]models.ArtistShow, error)
}

// -- Helpers for SQLX repos -------------------------------------------------------------------------------------------

// DoRollback rolls back a transaction and catches any error resulting from it while appending the original error
func DoRollback(tx *sqlx.Tx, originalError error) error {
	if err := tx.Rollback(); err != nil {
		return fmt.Errorf("doRollback: Transaction rollback failed: %v; Recent error: %v", err, originalError)
	}
	return originalError
}

// InTx runs fn inside a transaction. The transaction is committed if fn returns nil and rolled back otherwise
func InTx(db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("InTx: Failed to start transaction: %v", err)
	}
	if err = fn(tx); err != nil {
		return DoRollback(tx, err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("InTx: Failed to commit transaction: %v", err)
	}
	return nil
}
