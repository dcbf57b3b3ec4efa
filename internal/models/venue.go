package models

import "time"

// Venue is a location where artists can play shows
type Venue struct {
	// Internal ID
	ID uint `db:"id" json:"id"`
	// Name of the venue
	Name string `db:"name" json:"name"`
	City string `db:"city" json:"city"`
	// Two-letter state code
	State   string `db:"state" json:"state"`
	Address string `db:"address" json:"address"`
	Phone   string `db:"phone" json:"phone"`
	// Link to a picture of the venue
	ImageLink    string `db:"imageLink" json:"image_link"`
	FacebookLink string `db:"facebookLink" json:"facebook_link"`
	Website      string `db:"website" json:"website"`
	// Is the venue looking for artists to book?
	SeekingTalent bool `db:"seekingTalent" json:"seeking_talent"`
	// Free text describing what kind of talent is wanted
	SeekingDescription string `db:"seekingDescription" json:"seeking_description"`
	// Incremented on every update. Used to detect concurrent edits
	Version uint `db:"version" json:"version"`
	// Creation date of this entry
	CreatedAt time.Time `db:"createdAt" json:"createdAt"`
	// Date of the last update of this entry
	UpdatedAt time.Time `db:"updatedAt" json:"updatedAt"`
}
