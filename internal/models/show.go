package models

import "time"

// ShowTimeLayout is the format show start times are presented in
const ShowTimeLayout = "2006-01-02 15:04:05"

// Show is a booking of an artist at a venue at a given point in time
// Shows cannot be changed after they have been created
type Show struct {
	ID        uint      `db:"id" json:"id"`
	ArtistID  uint      `db:"artistId" json:"artist_id"`
	VenueID   uint      `db:"venueId" json:"venue_id"`
	StartTime time.Time `db:"startTime" json:"start_time"`
	CreatedAt time.Time `db:"createdAt" json:"createdAt"`
}

// VenueShow is a show of a venue joined with the data of the artist playing it
type VenueShow struct {
	ID              uint      `db:"id"`
	ArtistID        uint      `db:"artistId"`
	ArtistName      string    `db:"artistName"`
	ArtistImageLink string    `db:"artistImageLink"`
	StartTime       time.Time `db:"startTime"`
}

// ArtistShow is a show of an artist joined with the data of the venue it takes place at
type ArtistShow struct {
	ID             uint      `db:"id"`
	VenueID        uint      `db:"venueId"`
	VenueName      string    `db:"venueName"`
	VenueImageLink string    `db:"venueImageLink"`
	StartTime      time.Time `db:"startTime"`
}

// ShowDetails is a show joined with the names of both, venue and artist
type ShowDetails struct {
	ID              uint      `db:"id"`
	VenueID         uint      `db:"venueId"`
	VenueName       string    `db:"venueName"`
	ArtistID        uint      `db:"artistId"`
	ArtistName      string    `db:"artistName"`
	ArtistImageLink string    `db:"artistImageLink"`
	StartTime       time.Time `db:"startTime"`
}
