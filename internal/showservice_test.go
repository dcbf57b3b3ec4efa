package internal

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derWhity/fyyur/internal/models"
)

func TestShowList(t *testing.T) {
	env := newTestEnv(t, models.DeletePolicyReject)
	hop := env.addVenue(t, "The Musical Hop", "San Francisco", "CA")
	park := env.addVenue(t, "Park Square Live Music & Coffee", "San Francisco", "CA")
	petals := env.addArtist(t, "Guns N Petals")
	sax := env.addArtist(t, "The Wild Sax Band")
	env.addShow(t, petals.ID, hop.ID, time.Date(2019, 5, 21, 21, 30, 0, 0, time.Local))
	env.addShow(t, sax.ID, park.ID, time.Date(2035, 4, 1, 20, 0, 0, 0, time.Local))

	shows, err := env.shows.List(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.ShowListing{
		{
			VenueID:         hop.ID,
			VenueName:       hop.Name,
			ArtistID:        petals.ID,
			ArtistName:      petals.Name,
			ArtistImageLink: petals.ImageLink,
			StartTime:       "2019-05-21 21:30:00",
		},
		{
			VenueID:         park.ID,
			VenueName:       park.Name,
			ArtistID:        sax.ID,
			ArtistName:      sax.Name,
			ArtistImageLink: sax.ImageLink,
			StartTime:       "2035-04-01 20:00:00",
		},
	}, shows)
}

func TestShowListEmpty(t *testing.T) {
	env := newTestEnv(t, models.DeletePolicyReject)
	shows, err := env.shows.List(env.ctx)
	require.NoError(t, err)
	assert.NotNil(t, shows)
	assert.Empty(t, shows)
}

func TestShowCreateAppearsOnBothSides(t *testing.T) {
	env := newTestEnv(t, models.DeletePolicyReject)
	hop := env.addVenue(t, "The Musical Hop", "San Francisco", "CA")
	petals := env.addArtist(t, "Guns N Petals")

	show, err := env.shows.Create(env.ctx, &ShowForm{ArtistID: petals.ID, VenueID: hop.ID, StartTime: "2020-01-01 20:00:00"})
	require.NoError(t, err)
	assert.NotZero(t, show.ID)

	venue, err := env.venues.Detail(env.ctx, hop.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, venue.PastShowsCount)
	assert.Equal(t, 0, venue.UpcomingShowsCount)
	assert.Equal(t, petals.Name, venue.PastShows[0].ArtistName)

	artist, err := env.artists.Detail(env.ctx, petals.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, artist.PastShowsCount)
	assert.Equal(t, hop.Name, artist.PastShows[0].VenueName)
}

func TestShowCreateChecksReferences(t *testing.T) {
	env := newTestEnv(t, models.DeletePolicyReject)
	hop := env.addVenue(t, "The Musical Hop", "San Francisco", "CA")
	petals := env.addArtist(t, "Guns N Petals")

	_, err := env.shows.Create(env.ctx, &ShowForm{ArtistID: 999, VenueID: hop.ID, StartTime: "2035-04-01 20:00:00"})
	requireHTTPError(t, err, http.StatusBadRequest, ErrCodeArtistNotFound)

	_, err = env.shows.Create(env.ctx, &ShowForm{ArtistID: petals.ID, VenueID: 999, StartTime: "2035-04-01 20:00:00"})
	requireHTTPError(t, err, http.StatusBadRequest, ErrCodeVenueNotFound)

	shows, err := env.shows.List(env.ctx)
	require.NoError(t, err)
	assert.Empty(t, shows)
}

func TestShowCreateInvalid(t *testing.T) {
	env := newTestEnv(t, models.DeletePolicyReject)
	_, err := env.shows.Create(env.ctx, &ShowForm{ArtistID: 1, VenueID: 1, StartTime: "soon"})
	requireHTTPError(t, err, http.StatusBadRequest, ErrCodeIllegalValue)

	_, err = env.shows.Create(env.ctx, &ShowForm{VenueID: 1, StartTime: "2035-04-01 20:00:00"})
	requireHTTPError(t, err, http.StatusBadRequest, ErrCodeRequiredFieldMissing)
}
