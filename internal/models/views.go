package models

// The types in this file are produced by the query layer for presentation only. They are never persisted.

// EntityRef is the reduced form of a venue or artist used in lists and search results
type EntityRef struct {
	ID   uint   `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// VenueListing is a venue as shown in the venue overview
type VenueListing struct {
	ID               uint   `db:"id" json:"id"`
	Name             string `db:"name" json:"name"`
	City             string `db:"city" json:"-"`
	State            string `db:"state" json:"-"`
	NumUpcomingShows uint   `db:"numUpcomingShows" json:"num_upcoming_shows"`
}

// Locality groups all venues located in the same city of the same state
type Locality struct {
	City   string         `json:"city"`
	State  string         `json:"state"`
	Venues []VenueListing `json:"venues"`
}

// SearchResult is the outcome of a search by name
type SearchResult struct {
	Count int         `json:"count"`
	Data  []EntityRef `json:"data"`
	// The search term as entered by the user - only echoed back for display
	SearchTerm string `json:"search_term"`
}

// VenueShowView is a show on the detail page of a venue
type VenueShowView struct {
	ArtistID        uint   `json:"artist_id"`
	ArtistName      string `json:"artist_name"`
	ArtistImageLink string `json:"artist_image_link"`
	StartTime       string `json:"start_time"`
}

// VenueDetail is a venue together with its shows split into past and upcoming ones
type VenueDetail struct {
	Venue
	PastShows          []VenueShowView `json:"past_shows"`
	PastShowsCount     int             `json:"past_shows_count"`
	UpcomingShows      []VenueShowView `json:"upcoming_shows"`
	UpcomingShowsCount int             `json:"upcoming_shows_count"`
}

// ArtistShowView is a show on the detail page of an artist
type ArtistShowView struct {
	VenueID        uint   `json:"venue_id"`
	VenueName      string `json:"venue_name"`
	VenueImageLink string `json:"venue_image_link"`
	StartTime      string `json:"start_time"`
}

// ArtistDetail is an artist together with the artist's shows split into past and upcoming ones
type ArtistDetail struct {
	Artist
	PastShows          []ArtistShowView `json:"past_shows"`
	PastShowsCount     int              `json:"past_shows_count"`
	UpcomingShows      []ArtistShowView `json:"upcoming_shows"`
	UpcomingShowsCount int              `json:"upcoming_shows_count"`
}

// ShowListing is a show in the list of all shows
type ShowListing struct {
	VenueID         uint   `json:"venue_id"`
	VenueName       string `json:"venue_name"`
	ArtistID        uint   `json:"artist_id"`
	ArtistName      string `json:"artist_name"`
	ArtistImageLink string `json:"artist_image_link"`
	StartTime       string `json:"start_time"`
}
