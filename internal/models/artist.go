package models

import "time"

// Artist is a performer that can be booked for shows
type Artist struct {
	// Internal ID
	ID   uint   `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	City string `db:"city" json:"city"`
	// Two-letter state code
	State string `db:"state" json:"state"`
	Phone string `db:"phone" json:"phone"`
	// Comma separated list of genres the artist plays
	Genres       string `db:"genres" json:"genres"`
	ImageLink    string `db:"imageLink" json:"image_link"`
	FacebookLink string `db:"facebookLink" json:"facebook_link"`
	Website      string `db:"website" json:"website"`
	// Is the artist looking for venues to play at?
	SeekingVenue       bool   `db:"seekingVenue" json:"seeking_venue"`
	SeekingDescription string `db:"seekingDescription" json:"seeking_description"`
	// Incremented on every update. Used to detect concurrent edits
	Version   uint      `db:"version" json:"version"`
	CreatedAt time.Time `db:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `db:"updatedAt" json:"updatedAt"`
}
