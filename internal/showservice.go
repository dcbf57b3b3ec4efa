package internal

import (
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"github.com/derWhity/fyyur/internal/ctxhelper"
	"github.com/derWhity/fyyur/internal/log"
	"github.com/derWhity/fyyur/internal/models"
	"github.com/derWhity/fyyur/internal/repos"
)

// ShowService provides functionality for listing and booking shows
type ShowService interface {
	// List returns all shows together with the names of their venues and artists
	List(ctx context.Context) ([]models.ShowListing, error)
	// Create validates the form and stores a new show from it
	Create(ctx context.Context, form *ShowForm) (*models.Show, error)
}

// -- ShowService implementation ---------------------------------------------------------------------------------------

type showService struct {
	logger *logrus.Entry
	repo   repos.ShowRepo
}

// NewShowService creates a new showService instance to use for creating endpoints
func NewShowService(sRepo repos.ShowRepo, logger *logrus.Entry) ShowService {
	return &showService{logger, sRepo}
}

// formatStartTime formats the start time of a show for presentation
func formatStartTime(t time.Time) string {
	return t.Local().Format(models.ShowTimeLayout)
}

// List returns all shows together with the names of their venues and artists
func (s *showService) List(ctx context.Context) ([]models.ShowListing, error) {
	shows, err := s.repo.List()
	if err != nil {
		ctxhelper.LoggerOr(ctx, s.logger).WithError(err).Error("Show list query failed")
		return nil, MakeErrorWithData(
			http.StatusInternalServerError,
			ErrCodeRepoError,
			"Failed to load show information from storage",
			err,
		)
	}
	ret := make([]models.ShowListing, len(shows))
	for i, show := range shows {
		ret[i] = models.ShowListing{
			VenueID:         show.VenueID,
			VenueName:       show.VenueName,
			ArtistID:        show.ArtistID,
			ArtistName:      show.ArtistName,
			ArtistImageLink: show.ArtistImageLink,
			StartTime:       formatStartTime(show.StartTime),
		}
	}
	return ret, nil
}

// Create validates the form and stores a new show from it. Artist and venue of the show must exist
func (s *showService) Create(ctx context.Context, form *ShowForm) (*models.Show, error) {
	if err := form.Validate(); err != nil {
		return nil, formError(err)
	}
	show := form.Show()
	err := s.repo.Create(show)
	switch errors.Cause(err) {
	case nil:
		return show, nil
	case repos.ErrArtistNotExisting:
		return nil, MakeError(
			http.StatusBadRequest,
			ErrCodeArtistNotFound,
			fmt.Sprintf("An error occurred. Show could not be listed: there is no artist with ID %d", show.ArtistID),
		)
	case repos.ErrVenueNotExisting:
		return nil, MakeError(
			http.StatusBadRequest,
			ErrCodeVenueNotFound,
			fmt.Sprintf("An error occurred. Show could not be listed: there is no venue with ID %d", show.VenueID),
		)
	}
	ctxhelper.LoggerOr(ctx, s.logger).WithError(err).WithFields(logrus.Fields{
		log.FldArtist: show.ArtistID,
		log.FldVenue:  show.VenueID,
	}).Error("Show creation failed")
	return nil, MakeErrorWithData(
		http.StatusBadRequest,
		ErrCodeRepoWriteError,
		"An error occurred. Show could not be listed.",
		err,
	)
}
