package sqlite_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derWhity/fyyur/internal/models"
	"github.com/derWhity/fyyur/internal/repos"
	artistrepo "github.com/derWhity/fyyur/internal/repos/artist/sqlite"
	"github.com/derWhity/fyyur/internal/repos/repotest"
	showrepo "github.com/derWhity/fyyur/internal/repos/show/sqlite"
	venuerepo "github.com/derWhity/fyyur/internal/repos/venue/sqlite"
)

type fixture struct {
	venues  *venuerepo.VenueRepo
	artists *artistrepo.ArtistRepo
	shows   *showrepo.ShowRepo
}

func setup(t *testing.T) fixture {
	db := repotest.OpenDB(t)
	logger := repotest.Logger()
	return fixture{
		venues:  venuerepo.New(db, logger),
		artists: artistrepo.New(db, logger),
		shows:   showrepo.New(db, logger),
	}
}

func (f fixture) addShow(t *testing.T, artistID, venueID uint, at time.Time) {
	require.NoError(t, f.shows.Create(&models.Show{ArtistID: artistID, VenueID: venueID, StartTime: at}))
}

func TestCreateAndGetByID(t *testing.T) {
	f := setup(t)
	v := repotest.Venue("The Fillmore", "San Francisco", "CA")
	v.SeekingDescription = "Looking for local bands"
	require.NoError(t, f.venues.Create(v))
	assert.NotZero(t, v.ID)
	assert.EqualValues(t, 1, v.Version)

	got, err := f.venues.GetByID(v.ID)
	require.NoError(t, err)
	assert.Equal(t, "The Fillmore", got.Name)
	assert.Equal(t, "San Francisco", got.City)
	assert.Equal(t, "CA", got.State)
	assert.Equal(t, v.Address, got.Address)
	assert.Equal(t, v.ImageLink, got.ImageLink)
	assert.True(t, got.SeekingTalent)
	assert.Equal(t, "Looking for local bands", got.SeekingDescription)
}

func TestGetByIDMissing(t *testing.T) {
	f := setup(t)
	_, err := f.venues.GetByID(42)
	assert.Equal(t, repos.ErrEntityNotExisting, err)
}

func TestUpdateOverwritesAllFields(t *testing.T) {
	f := setup(t)
	v := repotest.Venue("Old Name", "Oakland", "CA")
	v.Website = "https://old.example.com"
	require.NoError(t, f.venues.Create(v))

	upd := models.Venue{
		ID:            v.ID,
		Name:          "New Name",
		City:          "New York",
		State:         "NY",
		Address:       "2 Broadway",
		Phone:         "212-555-0199",
		SeekingTalent: false,
		Version:       v.Version,
	}
	require.NoError(t, f.venues.Update(&upd))
	assert.EqualValues(t, 2, upd.Version)

	got, err := f.venues.GetByID(v.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Name", got.Name)
	assert.Equal(t, "New York", got.City)
	assert.Equal(t, "NY", got.State)
	assert.Equal(t, "2 Broadway", got.Address)
	assert.Equal(t, "212-555-0199", got.Phone)
	assert.Empty(t, got.Website)
	assert.Empty(t, got.ImageLink)
	assert.False(t, got.SeekingTalent)
	assert.EqualValues(t, 2, got.Version)
}

func TestUpdateWithStaleVersionConflicts(t *testing.T) {
	f := setup(t)
	v := repotest.Venue("Venue", "Austin", "TX")
	require.NoError(t, f.venues.Create(v))

	first := *v
	first.Name = "First writer"
	require.NoError(t, f.venues.Update(&first))

	second := *v
	second.Name = "Second writer"
	assert.Equal(t, repos.ErrVersionConflict, f.venues.Update(&second))

	got, err := f.venues.GetByID(v.ID)
	require.NoError(t, err)
	assert.Equal(t, "First writer", got.Name)
}

func TestUpdateWithoutVersionLastWriterWins(t *testing.T) {
	f := setup(t)
	v := repotest.Venue("Venue", "Austin", "TX")
	require.NoError(t, f.venues.Create(v))
	for _, name := range []string{"One", "Two"} {
		upd := *v
		upd.Version = 0
		upd.Name = name
		require.NoError(t, f.venues.Update(&upd))
	}
	got, err := f.venues.GetByID(v.ID)
	require.NoError(t, err)
	assert.Equal(t, "Two", got.Name)
	assert.EqualValues(t, 3, got.Version)
}

func TestUpdateMissing(t *testing.T) {
	f := setup(t)
	v := repotest.Venue("Ghost", "Austin", "TX")
	v.ID = 99
	assert.Equal(t, repos.ErrEntityNotExisting, f.venues.Update(v))
	v.Version = 3
	assert.Equal(t, repos.ErrEntityNotExisting, f.venues.Update(v))
}

func TestDelete(t *testing.T) {
	f := setup(t)
	v := repotest.Venue("Short lived", "Austin", "TX")
	require.NoError(t, f.venues.Create(v))
	require.NoError(t, f.venues.Delete(v.ID, false))
	_, err := f.venues.GetByID(v.ID)
	assert.Equal(t, repos.ErrEntityNotExisting, err)
	assert.Equal(t, repos.ErrEntityNotExisting, f.venues.Delete(v.ID, false))
}

func TestDeleteRejectsVenueWithShows(t *testing.T) {
	f := setup(t)
	v := repotest.Venue("Busy", "Austin", "TX")
	require.NoError(t, f.venues.Create(v))
	a := repotest.Artist("Band")
	require.NoError(t, f.artists.Create(a))
	f.addShow(t, a.ID, v.ID, time.Now())

	assert.Equal(t, repos.ErrEntityInUse, f.venues.Delete(v.ID, false))
	_, err := f.venues.GetByID(v.ID)
	assert.NoError(t, err)
	shows, err := f.shows.GetByVenue(v.ID)
	require.NoError(t, err)
	assert.Len(t, shows, 1)
}

func TestDeleteCascadesToShows(t *testing.T) {
	f := setup(t)
	v := repotest.Venue("Busy", "Austin", "TX")
	require.NoError(t, f.venues.Create(v))
	other := repotest.Venue("Other", "Austin", "TX")
	require.NoError(t, f.venues.Create(other))
	a := repotest.Artist("Band")
	require.NoError(t, f.artists.Create(a))
	f.addShow(t, a.ID, v.ID, time.Now())
	f.addShow(t, a.ID, v.ID, time.Now().Add(time.Hour))
	f.addShow(t, a.ID, other.ID, time.Now())

	require.NoError(t, f.venues.Delete(v.ID, true))
	_, err := f.venues.GetByID(v.ID)
	assert.Equal(t, repos.ErrEntityNotExisting, err)
	all, err := f.shows.List()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, other.ID, all[0].VenueID)
}

func TestListCountsUpcomingShows(t *testing.T) {
	f := setup(t)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	v1 := repotest.Venue("First", "Austin", "TX")
	v2 := repotest.Venue("Second", "Dallas", "TX")
	require.NoError(t, f.venues.Create(v1))
	require.NoError(t, f.venues.Create(v2))
	a := repotest.Artist("Band")
	require.NoError(t, f.artists.Create(a))
	f.addShow(t, a.ID, v1.ID, now.Add(-time.Hour))
	f.addShow(t, a.ID, v1.ID, now)
	f.addShow(t, a.ID, v1.ID, now.Add(time.Second))
	f.addShow(t, a.ID, v1.ID, now.AddDate(1, 0, 0))

	list, err := f.venues.List(now)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, v1.ID, list[0].ID)
	assert.Equal(t, "Austin", list[0].City)
	assert.EqualValues(t, 2, list[0].NumUpcomingShows)
	assert.Equal(t, v2.ID, list[1].ID)
	assert.EqualValues(t, 0, list[1].NumUpcomingShows)
}

func TestFind(t *testing.T) {
	f := setup(t)
	for _, name := range []string{"The Musical Hop", "Park Square Live Music & Coffee", "The Dueling Pianos Bar", "100%_Club"} {
		require.NoError(t, f.venues.Create(repotest.Venue(name, "San Francisco", "CA")))
	}

	res, err := f.venues.Find("music")
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "The Musical Hop", res[0].Name)
	assert.Equal(t, "Park Square Live Music & Coffee", res[1].Name)

	res, err = f.venues.Find("")
	require.NoError(t, err)
	assert.Len(t, res, 4)

	res, err = f.venues.Find("%")
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "100%_Club", res[0].Name)

	res, err = f.venues.Find("nothing like this")
	require.NoError(t, err)
	assert.Empty(t, res)
}
