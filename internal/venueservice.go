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

// VenueService provides functionality for listing and managing venues
type VenueService interface {
	// ListByLocality returns all venues grouped by the city and state they are located in
	ListByLocality(ctx context.Context) ([]models.Locality, error)
	// Refs returns the IDs and names of all venues
	Refs(ctx context.Context) ([]models.EntityRef, error)
	// Search returns all venues whose name contains the search text
	Search(ctx context.Context, search *Search) (*models.SearchResult, error)
	// Get returns the venue with the given ID
	Get(ctx context.Context, id uint) (*models.Venue, error)
	// Detail returns the venue with the given ID together with its past and upcoming shows
	Detail(ctx context.Context, id uint) (*models.VenueDetail, error)
	// Create validates the form and stores a new venue from it
	Create(ctx context.Context, form *VenueForm) (*models.Venue, error)
	// Update validates the form and overwrites the venue with the given ID with its contents
	Update(ctx context.Context, id uint, form *VenueForm) (*models.Venue, error)
	// Delete removes the venue with the given ID
	Delete(ctx context.Context, id uint) (*models.Venue, error)
}

// -- VenueService implementation --------------------------------------------------------------------------------------

type venueService struct {
	logger *logrus.Entry
	repo   repos.VenueRepo
	shows  repos.ShowRepo
	config ConfigService
	now    Clock
}

// NewVenueService creates a new venueService instance to use for creating endpoints
func NewVenueService(
	vRepo repos.VenueRepo,
	sRepo repos.ShowRepo,
	cs ConfigService,
	now Clock,
	logger *logrus.Entry,
) VenueService {
	return &venueService{logger, vRepo, sRepo, cs, now}
}

// ListByLocality returns all venues grouped by the city and state they are located in
func (s *venueService) ListByLocality(ctx context.Context) ([]models.Locality, error) {
	venues, err := s.repo.List(s.now())
	if err != nil {
		ctxhelper.LoggerOr(ctx, s.logger).WithError(err).Error("Venue list query failed")
		return nil, MakeErrorWithData(
			http.StatusInternalServerError,
			ErrCodeRepoError,
			"Failed to load venue information from storage",
			err,
		)
	}
	return groupByLocality(venues), nil
}

type locality struct {
	city  string
	state string
}

// groupByLocality groups the venues by their city and state. Groups are returned in the order of their first
// appearance in the list
func groupByLocality(venues []models.VenueListing) []models.Locality {
	ret := []models.Locality{}
	index := map[locality]int{}
	for _, v := range venues {
		key := locality{v.City, v.State}
		pos, ok := index[key]
		if !ok {
			pos = len(ret)
			index[key] = pos
			ret = append(ret, models.Locality{City: v.City, State: v.State, Venues: []models.VenueListing{}})
		}
		ret[pos].Venues = append(ret[pos].Venues, v)
	}
	return ret
}

// Refs returns the IDs and names of all venues
func (s *venueService) Refs(ctx context.Context) ([]models.EntityRef, error) {
	refs, err := s.repo.Find("")
	if err != nil {
		ctxhelper.LoggerOr(ctx, s.logger).WithError(err).Error("Venue list query failed")
		return nil, MakeErrorWithData(
			http.StatusInternalServerError,
			ErrCodeRepoError,
			"Failed to load venue information from storage",
			err,
		)
	}
	return refs, nil
}

// Search returns all venues whose name contains the search text
func (s *venueService) Search(ctx context.Context, search *Search) (*models.SearchResult, error) {
	refs, err := s.repo.Find(search.Text)
	if err != nil {
		ctxhelper.LoggerOr(ctx, s.logger).WithError(err).WithField(log.FldSearch, search.Text).Error("Venue search failed")
		return nil, MakeErrorWithData(
			http.StatusInternalServerError,
			ErrCodeRepoError,
			"Failed to search for venues",
			err,
		)
	}
	ctxhelper.LoggerOr(ctx, s.logger).WithFields(logrus.Fields{
		log.FldSearch: search.Text,
		log.FldCount:  len(refs),
	}).Debug("Venue search finished")
	return &models.SearchResult{Count: len(refs), Data: refs, SearchTerm: search.DisplayTerm()}, nil
}

// Get returns the venue with the given ID
func (s *venueService) Get(ctx context.Context, id uint) (*models.Venue, error) {
	venue, err := s.repo.GetByID(id)
	if err != nil {
		if err == repos.ErrEntityNotExisting {
			return nil, venueNotFound(id)
		}
		ctxhelper.LoggerOr(ctx, s.logger).WithError(err).WithField(log.FldID, id).Error("Venue query failed")
		return nil, MakeErrorWithData(
			http.StatusInternalServerError,
			ErrCodeRepoError,
			"Failed to load venue information from storage",
			err,
		)
	}
	return venue, nil
}

// Detail returns the venue with the given ID together with its past and upcoming shows
func (s *venueService) Detail(ctx context.Context, id uint) (*models.VenueDetail, error) {
	venue, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	shows, err := s.shows.GetByVenue(id)
	if err != nil {
		ctxhelper.LoggerOr(ctx, s.logger).WithError(err).WithField(log.FldID, id).Error("Show query failed")
		return nil, MakeErrorWithData(
			http.StatusInternalServerError,
			ErrCodeRepoError,
			"Failed to load the shows of the venue from storage",
			err,
		)
	}
	now := s.now()
	detail := &models.VenueDetail{
		Venue:         *venue,
		PastShows:     []models.VenueShowView{},
		UpcomingShows: []models.VenueShowView{},
	}
	for _, show := range shows {
		view := models.VenueShowView{
			ArtistID:        show.ArtistID,
			ArtistName:      show.ArtistName,
			ArtistImageLink: show.ArtistImageLink,
			StartTime:       formatStartTime(show.StartTime),
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

// Create validates the form and stores a new venue from it
func (s *venueService) Create(ctx context.Context, form *VenueForm) (*models.Venue, error) {
	if err := form.Validate(); err != nil {
		return nil, formError(err)
	}
	venue := form.Venue()
	if err := s.repo.Create(venue); err != nil {
		ctxhelper.LoggerOr(ctx, s.logger).WithError(err).WithField(log.FldVenue, venue.Name).Error("Venue creation failed")
		return nil, MakeErrorWithData(
			http.StatusBadRequest,
			ErrCodeRepoWriteError,
			fmt.Sprintf("An error occurred. Venue %s could not be listed.", venue.Name),
			err,
		)
	}
	return venue, nil
}

// Update validates the form and overwrites the venue with the given ID with its contents
func (s *venueService) Update(ctx context.Context, id uint, form *VenueForm) (*models.Venue, error) {
	if err := form.Validate(); err != nil {
		return nil, formError(err)
	}
	venue := form.Venue()
	venue.ID = id
	err := s.repo.Update(venue)
	switch errors.Cause(err) {
	case nil:
		return venue, nil
	case repos.ErrEntityNotExisting:
		return nil, venueNotFound(id)
	case repos.ErrVersionConflict:
		return nil, MakeError(
			http.StatusConflict,
			ErrCodeVersionConflict,
			fmt.Sprintf("Venue %s has been changed in the meantime. Please reload and try again.", venue.Name),
		)
	}
	ctxhelper.LoggerOr(ctx, s.logger).WithError(err).WithField(log.FldID, id).Error("Venue update failed")
	return nil, MakeErrorWithData(
		http.StatusBadRequest,
		ErrCodeRepoWriteError,
		fmt.Sprintf("An error occurred. Venue %s could not be updated.", venue.Name),
		err,
	)
}

// Delete removes the venue with the given ID. Whether shows of the venue are removed along with it or prevent the
// deletion depends on the configured delete policy
func (s *venueService) Delete(ctx context.Context, id uint) (*models.Venue, error) {
	venue, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	policy := s.config.GetConfig(ctx).VenueDeletePolicy
	logger := ctxhelper.LoggerOr(ctx, s.logger).WithFields(logrus.Fields{
		log.FldID:     id,
		log.FldPolicy: policy,
	})
	err = s.repo.Delete(id, policy == models.DeletePolicyCascade)
	switch errors.Cause(err) {
	case nil:
		logger.Info("Venue deleted")
		return venue, nil
	case repos.ErrEntityNotExisting:
		return nil, venueNotFound(id)
	case repos.ErrEntityInUse:
		return nil, MakeError(
			http.StatusConflict,
			ErrCodeVenueHasShows,
			fmt.Sprintf("Venue %s still has shows and cannot be deleted.", venue.Name),
		)
	}
	logger.WithError(err).Error("Venue deletion failed")
	return nil, MakeErrorWithData(
		http.StatusBadRequest,
		ErrCodeRepoWriteError,
		fmt.Sprintf("An error occurred. Venue %s could not be deleted.", venue.Name),
		err,
	)
}

func venueNotFound(id uint) error {
	return MakeError(http.StatusNotFound, ErrCodeVenueNotFound, fmt.Sprintf("There is no venue with ID %d", id))
}
