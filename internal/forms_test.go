package internal

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlag(t *testing.T) {
	for _, tc := range []struct {
		in   string
		def  bool
		want bool
	}{
		{"", true, true},
		{"", false, false},
		{"y", false, true},
		{"Yes", false, true},
		{"on", false, true},
		{"TRUE", false, true},
		{"1", false, true},
		{"n", true, false},
		{"no", true, false},
		{" off ", true, false},
		{"false", true, false},
		{"0", true, false},
	} {
		got, err := parseFlag(tc.in, tc.def)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
	_, err := parseFlag("maybe", true)
	assert.Error(t, err)
}

func TestParseStartTime(t *testing.T) {
	want := time.Date(2035, 4, 1, 20, 0, 0, 0, time.Local)
	for _, in := range []string{"2035-04-01 20:00:00", "2035-04-01T20:00", "2035-04-01T20:00:00"} {
		got, err := parseStartTime(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), in)
	}

	got, err := parseStartTime("2035-04-01T20:00:00Z")
	require.NoError(t, err)
	assert.True(t, time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC).Equal(got))

	for _, in := range []string{"", "tomorrow", "2035-13-01 20:00:00", "01.04.2035"} {
		_, err := parseStartTime(in)
		assert.Error(t, err, in)
	}
}

func TestVenueFormValid(t *testing.T) {
	f := venueForm("  The Musical Hop ", "San Francisco", "ca")
	f.SeekingTalent = "n"
	f.SeekingDescription = " We are on the lookout "
	require.NoError(t, f.Validate())

	v := f.Venue()
	assert.Equal(t, "The Musical Hop", v.Name)
	assert.Equal(t, "CA", v.State)
	assert.False(t, v.SeekingTalent)
	assert.Equal(t, "We are on the lookout", v.SeekingDescription)
}

func TestVenueFormDefaultsSeekingTalent(t *testing.T) {
	f := venueForm("The Musical Hop", "San Francisco", "CA")
	require.NoError(t, f.Validate())
	assert.True(t, f.Venue().SeekingTalent)
}

func TestVenueFormOptionalLinks(t *testing.T) {
	f := venueForm("The Musical Hop", "San Francisco", "CA")
	f.ImageLink, f.FacebookLink, f.Website = "", "", ""
	assert.NoError(t, f.Validate())
}

func TestVenueFormMissingFields(t *testing.T) {
	f := &VenueForm{State: "CA"}
	httpErr := requireHTTPError(t, formError(f.Validate()), http.StatusBadRequest, ErrCodeRequiredFieldMissing)
	details, ok := httpErr.Data().(map[string]string)
	require.True(t, ok)
	for _, field := range []string{"name", "city", "address", "phone"} {
		assert.Contains(t, details, field)
	}
	assert.NotContains(t, details, "state")
}

func TestVenueFormIllegalValues(t *testing.T) {
	f := venueForm("The Musical Hop", "San Francisco", "ZZ")
	f.Phone = "call me"
	f.Website = "not a url"
	f.SeekingTalent = "perhaps"
	httpErr := requireHTTPError(t, formError(f.Validate()), http.StatusBadRequest, ErrCodeIllegalValue)
	details := httpErr.Data().(map[string]string)
	assert.Len(t, details, 4)
	for _, field := range []string{"state", "phone", "website", "seeking_talent"} {
		assert.Contains(t, details, field)
	}
}

func TestArtistFormGenres(t *testing.T) {
	f := artistForm("Guns N Petals", "Rock n Roll", " ", "Jazz ")
	require.NoError(t, f.Validate())
	a := f.Artist()
	assert.Equal(t, "Rock n Roll, Jazz", a.Genres)
	assert.True(t, a.SeekingVenue)

	f = artistForm("Guns N Petals")
	httpErr := requireHTTPError(t, formError(f.Validate()), http.StatusBadRequest, ErrCodeRequiredFieldMissing)
	assert.Contains(t, httpErr.Data(), "genres")
}

func TestShowForm(t *testing.T) {
	f := &ShowForm{ArtistID: 4, VenueID: 1, StartTime: "2019-05-21T21:30"}
	require.NoError(t, f.Validate())
	s := f.Show()
	assert.EqualValues(t, 4, s.ArtistID)
	assert.EqualValues(t, 1, s.VenueID)
	assert.True(t, time.Date(2019, 5, 21, 21, 30, 0, 0, time.Local).Equal(s.StartTime))

	f = &ShowForm{StartTime: "next friday"}
	httpErr := requireHTTPError(t, formError(f.Validate()), http.StatusBadRequest, ErrCodeRequiredFieldMissing)
	details := httpErr.Data().(map[string]string)
	assert.Contains(t, details, "artist_id")
	assert.Contains(t, details, "venue_id")
	assert.Contains(t, details, "start_time")
}

func TestDecodeForm(t *testing.T) {
	var f ArtistForm
	require.NoError(t, decodeForm(&f, url.Values{
		"name":    {"The Wild Sax Band"},
		"genres":  {"Jazz", "Classical"},
		"unknown": {"ignored"},
	}))
	assert.Equal(t, "The Wild Sax Band", f.Name)
	assert.Equal(t, []string{"Jazz", "Classical"}, f.Genres)

	var s ShowForm
	err := decodeForm(&s, url.Values{"artist_id": {"one"}})
	httpErr := requireHTTPError(t, err, http.StatusBadRequest, ErrCodeIllegalValue)
	assert.Contains(t, httpErr.Data(), "artist_id")
}
