package internal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/context"

	"github.com/derWhity/fyyur/internal/models"
	artistrepo "github.com/derWhity/fyyur/internal/repos/artist/sqlite"
	"github.com/derWhity/fyyur/internal/repos/repotest"
	showrepo "github.com/derWhity/fyyur/internal/repos/show/sqlite"
	venuerepo "github.com/derWhity/fyyur/internal/repos/venue/sqlite"
)

// The point in time all tests run at
var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)

func fixedClock() time.Time {
	return testNow
}

// staticConfig is a ConfigService that only hands out the configuration it has been created with
type staticConfig struct {
	conf models.AppConfig
}

func (c *staticConfig) Load(ctx context.Context) error                          { return nil }
func (c *staticConfig) LoadFromFile(ctx context.Context, filename string) error { return nil }
func (c *staticConfig) Write(ctx context.Context) error                         { return nil }
func (c *staticConfig) WriteToFile(ctx context.Context, filename string) error  { return nil }
func (c *staticConfig) GetConfig(ctx context.Context) models.AppConfig          { return c.conf }

type testEnv struct {
	ctx     context.Context
	venues  VenueService
	artists ArtistService
	shows   ShowService
}

func newTestEnv(t *testing.T, deletePolicy string) *testEnv {
	db := repotest.OpenDB(t)
	logger := repotest.Logger()
	vRepo := venuerepo.New(db, logger)
	aRepo := artistrepo.New(db, logger)
	sRepo := showrepo.New(db, logger)
	cs := &staticConfig{models.AppConfig{ListenAddress: ":5000", LogLevel: "info", VenueDeletePolicy: deletePolicy}}
	return &testEnv{
		ctx:     context.Background(),
		venues:  NewVenueService(vRepo, sRepo, cs, fixedClock, logger),
		artists: NewArtistService(aRepo, sRepo, fixedClock, logger),
		shows:   NewShowService(sRepo, logger),
	}
}

func venueForm(name, city, state string) *VenueForm {
	return &VenueForm{
		Name:         name,
		City:         city,
		State:        state,
		Address:      "1015 Folsom Street",
		Phone:        "123-123-1234",
		ImageLink:    "https://images.example.com/venue.png",
		FacebookLink: "https://www.facebook.com/venue",
		Website:      "https://www.venue.example.com",
	}
}

func artistForm(name string, genres ...string) *ArtistForm {
	return &ArtistForm{
		Name:   name,
		City:   "San Francisco",
		State:  "CA",
		Phone:  "326-123-5000",
		Genres: genres,
	}
}

func (e *testEnv) addVenue(t *testing.T, name, city, state string) *models.Venue {
	v, err := e.venues.Create(e.ctx, venueForm(name, city, state))
	require.NoError(t, err)
	return v
}

func (e *testEnv) addArtist(t *testing.T, name string) *models.Artist {
	a, err := e.artists.Create(e.ctx, artistForm(name, "Jazz"))
	require.NoError(t, err)
	return a
}

func (e *testEnv) addShow(t *testing.T, artistID, venueID uint, start time.Time) *models.Show {
	s, err := e.shows.Create(e.ctx, &ShowForm{
		ArtistID:  artistID,
		VenueID:   venueID,
		StartTime: start.Format(models.ShowTimeLayout),
	})
	require.NoError(t, err)
	return s
}

// requireHTTPError checks that err is an HTTPError with the given status and code
func requireHTTPError(t *testing.T, err error, status int, code string) *HTTPError {
	t.Helper()
	require.Error(t, err)
	httpErr, ok := err.(*HTTPError)
	require.True(t, ok, "expected *HTTPError, got %T: %v", err, err)
	assert.Equal(t, status, httpErr.Status())
	assert.Equal(t, code, httpErr.ErrorCode())
	return httpErr
}
