package internal

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derWhity/fyyur/internal/models"
)

func TestArtistList(t *testing.T) {
	env := newTestEnv(t, models.DeletePolicyReject)
	petals := env.addArtist(t, "Guns N Petals")
	quevedo := env.addArtist(t, "Matt Quevedo")

	artists, err := env.artists.List(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.EntityRef{
		{ID: petals.ID, Name: "Guns N Petals"},
		{ID: quevedo.ID, Name: "Matt Quevedo"},
	}, artists)
}

func TestArtistSearch(t *testing.T) {
	env := newTestEnv(t, models.DeletePolicyReject)
	env.addArtist(t, "Guns N Petals")
	quevedo := env.addArtist(t, "Matt Quevedo")
	sax := env.addArtist(t, "The Wild Sax Band")

	res, err := env.artists.Search(env.ctx, &Search{Text: "A"})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Count)

	res, err = env.artists.Search(env.ctx, &Search{Text: "band"})
	require.NoError(t, err)
	assert.Equal(t, []models.EntityRef{{ID: sax.ID, Name: sax.Name}}, res.Data)

	res, err = env.artists.Search(env.ctx, &Search{Text: "QUEV"})
	require.NoError(t, err)
	require.Equal(t, 1, res.Count)
	assert.Equal(t, quevedo.ID, res.Data[0].ID)
	assert.Equal(t, "QUEV", res.SearchTerm)
}

func TestArtistDetailResolvesEachVenue(t *testing.T) {
	env := newTestEnv(t, models.DeletePolicyReject)
	hop := env.addVenue(t, "The Musical Hop", "San Francisco", "CA")
	park := env.addVenue(t, "Park Square Live Music & Coffee", "San Francisco", "CA")
	sax := env.addArtist(t, "The Wild Sax Band")

	env.addShow(t, sax.ID, hop.ID, time.Date(2019, 6, 15, 23, 0, 0, 0, time.Local))
	env.addShow(t, sax.ID, park.ID, time.Date(2035, 4, 1, 20, 0, 0, 0, time.Local))
	env.addShow(t, sax.ID, hop.ID, time.Date(2035, 4, 8, 20, 0, 0, 0, time.Local))

	detail, err := env.artists.Detail(env.ctx, sax.ID)
	require.NoError(t, err)
	assert.Equal(t, "The Wild Sax Band", detail.Name)
	assert.Equal(t, 1, detail.PastShowsCount)
	assert.Equal(t, 2, detail.UpcomingShowsCount)
	assert.Equal(t, detail.PastShowsCount+detail.UpcomingShowsCount, 3)

	assert.Equal(t, hop.ID, detail.PastShows[0].VenueID)
	assert.Equal(t, "2019-06-15 23:00:00", detail.PastShows[0].StartTime)
	assert.Equal(t, models.ArtistShowView{
		VenueID:        park.ID,
		VenueName:      park.Name,
		VenueImageLink: park.ImageLink,
		StartTime:      "2035-04-01 20:00:00",
	}, detail.UpcomingShows[0])
	assert.Equal(t, hop.ID, detail.UpcomingShows[1].VenueID)
	assert.Equal(t, hop.Name, detail.UpcomingShows[1].VenueName)
}

func TestArtistDetailMissing(t *testing.T) {
	env := newTestEnv(t, models.DeletePolicyReject)
	_, err := env.artists.Detail(env.ctx, 7)
	requireHTTPError(t, err, http.StatusNotFound, ErrCodeArtistNotFound)
}

func TestArtistCreate(t *testing.T) {
	env := newTestEnv(t, models.DeletePolicyReject)
	form := artistForm("Guns N Petals", "Rock n Roll", "Jazz")
	form.SeekingVenue = "off"
	artist, err := env.artists.Create(env.ctx, form)
	require.NoError(t, err)

	got, err := env.artists.Get(env.ctx, artist.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rock n Roll, Jazz", got.Genres)
	assert.False(t, got.SeekingVenue)
	assert.EqualValues(t, 1, got.Version)
}

func TestArtistCreateInvalid(t *testing.T) {
	env := newTestEnv(t, models.DeletePolicyReject)
	_, err := env.artists.Create(env.ctx, artistForm("Guns N Petals"))
	requireHTTPError(t, err, http.StatusBadRequest, ErrCodeRequiredFieldMissing)

	form := artistForm("Guns N Petals", "Jazz")
	form.FacebookLink = "facebook dot com"
	_, err = env.artists.Create(env.ctx, form)
	requireHTTPError(t, err, http.StatusBadRequest, ErrCodeIllegalValue)

	artists, err := env.artists.List(env.ctx)
	require.NoError(t, err)
	assert.Empty(t, artists)
}

func TestArtistUpdate(t *testing.T) {
	env := newTestEnv(t, models.DeletePolicyReject)
	artist := env.addArtist(t, "Guns N Petals")

	form := artistForm("Guns N Roses", "Rock n Roll")
	form.State = "NY"
	form.City = "New York"
	form.Version = artist.Version
	_, err := env.artists.Update(env.ctx, artist.ID, form)
	require.NoError(t, err)

	got, err := env.artists.Get(env.ctx, artist.ID)
	require.NoError(t, err)
	assert.Equal(t, "Guns N Roses", got.Name)
	assert.Equal(t, "New York", got.City)
	assert.Equal(t, "NY", got.State)
	assert.Equal(t, "Rock n Roll", got.Genres)
	assert.EqualValues(t, 2, got.Version)

	_, err = env.artists.Update(env.ctx, artist.ID, form)
	requireHTTPError(t, err, http.StatusConflict, ErrCodeVersionConflict)

	_, err = env.artists.Update(env.ctx, 99, artistForm("Nobody", "Jazz"))
	requireHTTPError(t, err, http.StatusNotFound, ErrCodeArtistNotFound)
}
