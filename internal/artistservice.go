package internal

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"github.com/derWhity/fyyur/internal/ctxhelper"
	"github.com/derWhity/fyyur/internal/log"
	"github.com/derWhity/fyyur/internal/models"
	"github.com/derWhity/fyyur/internal/repos"
)

// ArtistService provides functionality for listing and managing artists
type ArtistService interface {
	// List returns the IDs and names of all artists
	List(ctx context.Context) ([]models.EntityRef, error)
	// Search returns all artists whose name contains the search text
	Search(ctx context.Context, search *Search) (*models.SearchResult, error)
	// Get returns the artist with the given ID
	Get(ctx context.Context, id uint) (*models.Artist, error)
	// Detail returns the artist with the given ID together with the artist's past and upcoming shows
	Detail(ctx context.Context, id uint) (*models.ArtistDetail, error)
	// Create validates the form and stores a new artist from it
	Create(ctx context.Context, form *ArtistForm) (*models.Artist, error)
	// Update validates the form and overwrites the artist with the given ID with its contents
	Update(ctx context.Context, id uint, form *ArtistForm) (*models.Artist, error)
}

// -- ArtistService implementation -------------------------------------------------------------------------------------

type artistService struct {
	logger *logrus.Entry
	repo   repos.ArtistRepo
	shows  repos.ShowRepo
	now    Clock
}

// NewArtistService creates a new artistService instance to use for creating endpoints
func NewArtistService(aRepo repos.ArtistRepo, sRepo repos.ShowRepo, now Clock, logger *logrus.Entry) ArtistService {
	return &artistService{logger, aRepo, sRepo, now}
}

// List returns the IDs and names of all artists
func (s *artistService) List(ctx context.Context) ([]models.EntityRef, error) {
	refs, err := s.repo.List()
	if err != nil {
		ctxhelper.LoggerOr(ctx, s.logger).WithError(err).Error("Artist list query failed")
		return nil, MakeErrorWithData(
			http.StatusInternalServerError,
			ErrCodeRepoError,
			"Failed to load artist information from storage",
			err,
		)
	}
	return refs, nil
}

// Search returns all artists whose name contains the search text
func (s *artistService) Search(ctx context.Context, search *Search) (*models.SearchResult, error) {
	refs, err := s.repo.Find(search.Text)
	if err != nil {
		ctxhelper.LoggerOr(ctx, s.logger).WithError(err).WithField(log.FldSearch, search.Text).Error("Artist search failed")
		return nil, MakeErrorWithData(
			http.StatusInternalServerError,
			ErrCodeRepoError,
			"Failed to search for artists",
			err,
		)
	}
	ctxhelper.LoggerOr(ctx, s.logger).WithFields(logrus.Fields{
		log.FldSearch: search.Text,
		log.FldCount:  len(refs),
	}).Debug("Artist search finished")
	return &models.SearchResult{Count: len(refs), Data: refs, SearchTerm: search.DisplayTerm()}, nil
}

// Get returns the artist with the given ID
func (s *artistService) Get(ctx context.Context, id uint) (*models.Artist, error) {
	artist, err := s.repo.GetByID(id)
	if err != nil {
		if err == repos.ErrEntityNotExisting {
			return nil, artistNotFound(id)
		}
		ctxhelper.LoggerOr(ctx, s.logger).WithError(err).WithField(log.FldID, id).Error("Artist query failed")
		return nil, MakeErrorWithData(
			http.StatusInternalServerError,
			ErrCodeRepoError,
			"Failed to load artist information from storage",
			err,
		)
	}
	return artist, nil
}

// Detail returns the artist with the given ID together with the artist's past and upcoming shows
// Every show is resolved against its own venue
func (s *artistService) Detail(ctx context.Context, id uint) (*models.ArtistDetail, error) {
	artist, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	shows, err := s.shows.GetByArtist(id)
	if err != nil {
		ctxhelper.LoggerOr(ctx, s.logger).WithError(err).WithField(log.FldID, id).Error("Show query failed")
		return nil, MakeErrorWithData(
			http.StatusInternalServerError,
			ErrCodeRepoError,
			"Failed to load the shows of the artist from storage",
			err,
		)
	}
	now := s.now()
	detail := &models.ArtistDetail{
		Artist:        *artist,
		PastShows:     []models.ArtistShowView{},
		UpcomingShows: []models.ArtistShowView{},
	}
	for _, show := range shows {
		view := models.ArtistShowView{
			VenueID:        show.VenueID,
			VenueName:      show.VenueName,
			VenueImageLink: show.VenueImageLink,
			StartTime:      formatStartTime(show.StartTime),
		}
		if show.StartTime.After(now) {
			detail.UpcomingShows = append(detail.UpcomingShows, view)
		} else {
			detail.PastShows = append(detail.PastShows, view)
		}
	}
	detail.PastShowsCount = len(detail.PastShows)
	detail.UpcomingShowsCount = len(detail.UpcomingShows)
	return detail, nil
}

// Create validates the form and stores a new artist from it
func (s *artistService) Create(ctx context.Context, form *ArtistForm) (*models.Artist, error) {
	if err := form.Validate(); err != nil {
		return nil, formError(err)
	}
	artist := form.Artist()
	if err := s.repo.Create(artist); err != nil {
		ctxhelper.LoggerOr(ctx, s.logger).WithError(err).WithField(log.FldArtist, artist.Name).Error("Artist creation failed")
		return nil, MakeErrorWithData(
			http.StatusBadRequest,
			ErrCodeRepoWriteError,
			fmt.Sprintf("An error occurred. Artist %s could not be listed.", artist.Name),
			err,
		)
	}
	return artist, nil
}

// Update validates the form and overwrites the artist with the given ID with its contents
func (s *artistService) Update(ctx context.Context, id uint, form *ArtistForm) (*models.Artist, error) {
	if err := form.Validate(); err != nil {
		return nil, formError(err)
	}
	artist := form.Artist()
	artist.ID = id
	err := s.repo.Update(artist)
	switch errors.Cause(err) {
	case nil:
		return artist, nil
	case repos.ErrEntityNotExisting:
		return nil, artistNotFound(id)
	case repos.ErrVersionConflict:
		return nil, MakeError(
			http.StatusConflict,
			ErrCodeVersionConflict,
			fmt.Sprintf("Artist %s has been changed in the meantime. Please reload and try again.", artist.Name),
		)
	}
	ctxhelper.LoggerOr(ctx, s.logger).WithError(err).WithField(log.FldID, id).Error("Artist update failed")
	return nil, MakeErrorWithData(
		http.StatusBadRequest,
		ErrCodeRepoWriteError,
		fmt.Sprintf("An error occurred. Artist %s could not be updated.", artist.Name),
		err,
	)
}

func artistNotFound(id uint) error {
	return MakeError(http.StatusNotFound, ErrCodeArtistNotFound, fmt.Sprintf("There is no artist with ID %d", id))
}
