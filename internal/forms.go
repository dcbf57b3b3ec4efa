package internal

import (
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/gorilla/schema"

	"github.com/derWhity/fyyur/internal/models"
)

// USStates are the state codes a venue or an artist can be located in
var USStates = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "DC", "FL", "GA", "HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA",
	"ME", "MT", "NE", "NV", "NH", "NJ", "NM", "NY", "NC", "ND", "OH", "OK", "OR", "MD", "MA", "MI", "MN", "MS", "MO",
	"PA", "RI", "SC", "SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI", "WY",
}

// Layouts accepted for the start time of a show - all of them are interpreted in local time unless they contain a zone
var startTimeLayouts = []string{
	models.ShowTimeLayout,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.RFC3339,
}

var (
	formDecoder  = newFormDecoder()
	phonePattern = regexp.MustCompile(`^[0-9+()\-. ]{7,20}$`)
	stateRule    = validation.In(toInterfaces(USStates)...).Error("must be a two-letter US state code")
	phoneRule    = validation.Match(phonePattern).Error("must be a phone number like 415-555-0100")
	flagRule     = validation.By(func(value interface{}) error {
		_, err := parseFlag(value.(string), true)
		return err
	})
)

func newFormDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	dec.SetAliasTag("schema")
	return dec
}

func toInterfaces(values []string) []interface{} {
	ret := make([]interface{}, len(values))
	for i, v := range values {
		ret[i] = v
	}
	return ret
}

// decodeForm fills the given form struct from submitted form values
func decodeForm(dst interface{}, values url.Values) error {
	if err := formDecoder.Decode(dst, values); err != nil {
		details := map[string]string{}
		if multi, ok := err.(schema.MultiError); ok {
			for field, e := range multi {
				details[field] = e.Error()
			}
		} else {
			details["form"] = err.Error()
		}
		return MakeErrorWithData(http.StatusBadRequest, ErrCodeIllegalValue, "The submitted form cannot be read", details)
	}
	return nil
}

// parseFlag parses the value of a check box. Empty values result in the given default
func parseFlag(value string, def bool) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "":
		return def, nil
	case "y", "yes", "on", "true", "1":
		return true, nil
	case "n", "no", "off", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("must be either yes or no")
}

// parseStartTime parses the start time of a show in one of the supported layouts
func parseStartTime(value string) (time.Time, error) {
	for _, layout := range startTimeLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("must be a date and time like 2020-01-01 20:00:00")
}

// formError converts the result of a form validation into an error for the client
func formError(err error) error {
	errs, ok := err.(validation.Errors)
	if !ok {
		return MakeErrorWithData(http.StatusInternalServerError, ErrCodeUnknown, "Failed to validate the submitted form", err)
	}
	code := ErrCodeIllegalValue
	details := map[string]string{}
	fields := make([]string, 0, len(errs))
	for field, e := range errs {
		details[field] = e.Error()
		fields = append(fields, field)
		if ve, ok := e.(validation.Error); ok && ve.Code() == validation.ErrRequired.Code() {
			code = ErrCodeRequiredFieldMissing
		}
	}
	sort.Strings(fields)
	return MakeErrorWithData(
		http.StatusBadRequest,
		code,
		fmt.Sprintf("The submitted form is not valid: %s", strings.Join(fields, ", ")),
		details,
	)
}

// -- Venue ------------------------------------------------------------------------------------------------------------

// VenueForm contains the fields submitted for creating or editing a venue
type VenueForm struct {
	Name               string `schema:"name" json:"name"`
	City               string `schema:"city" json:"city"`
	State              string `schema:"state" json:"state"`
	Address            string `schema:"address" json:"address"`
	Phone              string `schema:"phone" json:"phone"`
	ImageLink          string `schema:"image_link" json:"image_link"`
	FacebookLink       string `schema:"facebook_link" json:"facebook_link"`
	Website            string `schema:"website" json:"website"`
	SeekingTalent      string `schema:"seeking_talent" json:"seeking_talent"`
	SeekingDescription string `schema:"seeking_description" json:"seeking_description"`
	// The version of the venue the edit is based on. 0 skips the concurrency check
	Version uint `schema:"version" json:"version"`
}

func (f *VenueForm) normalize() {
	for _, s := range []*string{
		&f.Name, &f.City, &f.Address, &f.Phone, &f.ImageLink, &f.FacebookLink, &f.Website, &f.SeekingDescription,
	} {
		*s = strings.TrimSpace(*s)
	}
	f.State = strings.ToUpper(strings.TrimSpace(f.State))
}

// Validate checks all fields of the form
func (f *VenueForm) Validate() error {
	f.normalize()
	return validation.ValidateStruct(f,
		validation.Field(&f.Name, validation.Required.Error("name is required"), validation.RuneLength(1, 255)),
		validation.Field(&f.City, validation.Required.Error("city is required"), validation.RuneLength(1, 120)),
		validation.Field(&f.State, validation.Required.Error("state is required"), stateRule),
		validation.Field(&f.Address, validation.Required.Error("address is required"), validation.RuneLength(1, 120)),
		validation.Field(&f.Phone, validation.Required.Error("phone is required"), phoneRule),
		validation.Field(&f.ImageLink, is.URL, validation.RuneLength(0, 500)),
		validation.Field(&f.FacebookLink, is.URL, validation.RuneLength(0, 120)),
		validation.Field(&f.Website, is.URL, validation.RuneLength(0, 255)),
		validation.Field(&f.SeekingTalent, flagRule),
	)
}

// Venue turns the (validated) form into a venue
func (f *VenueForm) Venue() *models.Venue {
	seeking, _ := parseFlag(f.SeekingTalent, true)
	return &models.Venue{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Address:            f.Address,
		Phone:              f.Phone,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		Website:            f.Website,
		SeekingTalent:      seeking,
		SeekingDescription: f.SeekingDescription,
		Version:            f.Version,
	}
}

// -- Artist -----------------------------------------------------------------------------------------------------------

// ArtistForm contains the fields submitted for creating or editing an artist
type ArtistForm struct {
	Name  string `schema:"name" json:"name"`
	City  string `schema:"city" json:"city"`
	State string `schema:"state" json:"state"`
	Phone string `schema:"phone" json:"phone"`
	// Multi-select field - every selected genre is sent as a separate value
	Genres             []string `schema:"genres" json:"genres"`
	ImageLink          string   `schema:"image_link" json:"image_link"`
	FacebookLink       string   `schema:"facebook_link" json:"facebook_link"`
	Website            string   `schema:"website" json:"website"`
	SeekingVenue       string   `schema:"seeking_venue" json:"seeking_venue"`
	SeekingDescription string   `schema:"seeking_description" json:"seeking_description"`
	// The version of the artist the edit is based on. 0 skips the concurrency check
	Version uint `schema:"version" json:"version"`
}

func (f *ArtistForm) normalize() {
	for _, s := range []*string{
		&f.Name, &f.City, &f.Phone, &f.ImageLink, &f.FacebookLink, &f.Website, &f.SeekingDescription,
	} {
		*s = strings.TrimSpace(*s)
	}
	f.State = strings.ToUpper(strings.TrimSpace(f.State))
	genres := []string{}
	for _, g := range f.Genres {
		if g = strings.TrimSpace(g); g != "" {
			genres = append(genres, g)
		}
	}
	f.Genres = genres
}

func (f *ArtistForm) genreString() string {
	return strings.Join(f.Genres, ", ")
}

// Validate checks all fields of the form
func (f *ArtistForm) Validate() error {
	f.normalize()
	return validation.ValidateStruct(f,
		validation.Field(&f.Name, validation.Required.Error("name is required"), validation.RuneLength(1, 255)),
		validation.Field(&f.City, validation.Required.Error("city is required"), validation.RuneLength(1, 120)),
		validation.Field(&f.State, validation.Required.Error("state is required"), stateRule),
		validation.Field(&f.Phone, validation.Required.Error("phone is required"), phoneRule),
		validation.Field(&f.Genres,
			validation.Required.Error("at least one genre is required"),
			validation.By(func(interface{}) error {
				if len([]rune(f.genreString())) > 120 {
					return fmt.Errorf("too many genres selected")
				}
				return nil
			}),
		),
		validation.Field(&f.ImageLink, is.URL, validation.RuneLength(0, 500)),
		validation.Field(&f.FacebookLink, is.URL, validation.RuneLength(0, 120)),
		validation.Field(&f.Website, is.URL, validation.RuneLength(0, 255)),
		validation.Field(&f.SeekingVenue, flagRule),
	)
}

// Artist turns the (validated) form into an artist
func (f *ArtistForm) Artist() *models.Artist {
	seeking, _ := parseFlag(f.SeekingVenue, true)
	return &models.Artist{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Phone:              f.Phone,
		Genres:             f.genreString(),
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		Website:            f.Website,
		SeekingVenue:       seeking,
		SeekingDescription: f.SeekingDescription,
		Version:            f.Version,
	}
}

// -- Show -------------------------------------------------------------------------------------------------------------

// ShowForm contains the fields submitted for creating a show
type ShowForm struct {
	ArtistID  uint   `schema:"artist_id" json:"artist_id"`
	VenueID   uint   `schema:"venue_id" json:"venue_id"`
	StartTime string `schema:"start_time" json:"start_time"`
}

// Validate checks all fields of the form
func (f *ShowForm) Validate() error {
	f.StartTime = strings.TrimSpace(f.StartTime)
	return validation.ValidateStruct(f,
		validation.Field(&f.ArtistID, validation.Required.Error("artist_id is required")),
		validation.Field(&f.VenueID, validation.Required.Error("venue_id is required")),
		validation.Field(&f.StartTime,
			validation.Required.Error("start_time is required"),
			validation.By(func(value interface{}) error {
				_, err := parseStartTime(value.(string))
				return err
			}),
		),
	)
}

// Show turns the (validated) form into a show
func (f *ShowForm) Show() *models.Show {
	start, _ := parseStartTime(f.StartTime)
	return &models.Show{
		ArtistID:  f.ArtistID,
		VenueID:   f.VenueID,
		StartTime: start,
	}
}
