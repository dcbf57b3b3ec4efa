package internal

import (
	"fmt"
	"time"

	"github.com/go-kit/kit/endpoint"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"github.com/derWhity/fyyur/internal/models"
)

// VenueEndpoints is a collection of endpoints to the venue service
type VenueEndpoints struct {
	List       endpoint.Endpoint
	Search     endpoint.Endpoint
	Get        endpoint.Endpoint
	CreateForm endpoint.Endpoint
	Create     endpoint.Endpoint
	EditForm   endpoint.Endpoint
	Update     endpoint.Endpoint
	Delete     endpoint.Endpoint
}

// ArtistEndpoints is a collection of endpoints to the artist service
type ArtistEndpoints struct {
	List       endpoint.Endpoint
	Search     endpoint.Endpoint
	Get        endpoint.Endpoint
	CreateForm endpoint.Endpoint
	Create     endpoint.Endpoint
	EditForm   endpoint.Endpoint
	Update     endpoint.Endpoint
}

// ShowEndpoints is a collection of endpoints to the show service
type ShowEndpoints struct {
	List       endpoint.Endpoint
	CreateForm endpoint.Endpoint
	Create     endpoint.Endpoint
}

// The base for all responses which always contains an "ok" property to show if the call was successful and a
// data element containing the result of the request
type basicResponse struct {
	OK   bool        `json:"ok"`
	Data interface{} `json:"data,omitempty"`
	// Message to show to the user after a change
	Message string `json:"message,omitempty"`
}

// Contents of a venue or artist form
type entityFormResponse struct {
	// The values to fill the form with
	Form interface{} `json:"form"`
	// The selectable state codes
	States []string `json:"states"`
}

// Contents of the form for booking a show
type showFormResponse struct {
	Form    ShowForm           `json:"form"`
	Artists []models.EntityRef `json:"artists"`
	Venues  []models.EntityRef `json:"venues"`
}

type venueFormRequest struct {
	ID   uint
	Form VenueForm
}

type artistFormRequest struct {
	ID   uint
	Form ArtistForm
}

// -- Venues -----------------------------------------------------------------------------------------------------------

// MakeVenueEndpoints creates the endpoints needed to use the venue service
func MakeVenueEndpoints(s VenueService, logger *logrus.Entry) VenueEndpoints {
	return VenueEndpoints{
		List:       LogCalls("venues.list", logger)(MakeVenueListEndpoint(s)),
		Search:     LogCalls("venues.search", logger)(MakeVenueSearchEndpoint(s)),
		Get:        LogCalls("venues.get", logger)(MakeVenueGetEndpoint(s)),
		CreateForm: LogCalls("venues.createForm", logger)(MakeVenueCreateFormEndpoint()),
		Create:     LogCalls("venues.create", logger)(MakeVenueCreateEndpoint(s)),
		EditForm:   LogCalls("venues.editForm", logger)(MakeVenueEditFormEndpoint(s)),
		Update:     LogCalls("venues.update", logger)(MakeVenueUpdateEndpoint(s)),
		Delete:     LogCalls("venues.delete", logger)(MakeVenueDeleteEndpoint(s)),
	}
}

// MakeVenueListEndpoint returns an endpoint listing all venues grouped by locality
func MakeVenueListEndpoint(s VenueService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		areas, err := s.ListByLocality(ctx)
		if err != nil {
			return nil, err
		}
		return basicResponse{OK: true, Data: areas}, nil
	}
}

// MakeVenueSearchEndpoint returns an endpoint searching venues by name
func MakeVenueSearchEndpoint(s VenueService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		search := request.(Search)
		res, err := s.Search(ctx, &search)
		if err != nil {
			return nil, err
		}
		return basicResponse{OK: true, Data: res}, nil
	}
}

// MakeVenueGetEndpoint returns an endpoint returning a venue together with its shows
func MakeVenueGetEndpoint(s VenueService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		detail, err := s.Detail(ctx, request.(uint))
		if err != nil {
			return nil, err
		}
		return basicResponse{OK: true, Data: detail}, nil
	}
}

// MakeVenueCreateFormEndpoint returns an endpoint returning the defaults of an empty venue form
func MakeVenueCreateFormEndpoint() endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		return basicResponse{
			OK:   true,
			Data: entityFormResponse{Form: VenueForm{SeekingTalent: "y"}, States: USStates},
		}, nil
	}
}

// MakeVenueCreateEndpoint returns an endpoint creating a new venue from a submitted form
func MakeVenueCreateEndpoint(s VenueService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(venueFormRequest)
		venue, err := s.Create(ctx, &req.Form)
		if err != nil {
			return nil, err
		}
		return basicResponse{
			OK:      true,
			Data:    venue,
			Message: fmt.Sprintf("Venue %s was successfully listed!", venue.Name),
		}, nil
	}
}

// MakeVenueEditFormEndpoint returns an endpoint returning the current state of a venue to fill the edit form with
func MakeVenueEditFormEndpoint(s VenueService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		venue, err := s.Get(ctx, request.(uint))
		if err != nil {
			return nil, err
		}
		return basicResponse{OK: true, Data: entityFormResponse{Form: venue, States: USStates}}, nil
	}
}

// MakeVenueUpdateEndpoint returns an endpoint overwriting a venue with the contents of a submitted form
func MakeVenueUpdateEndpoint(s VenueService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(venueFormRequest)
		venue, err := s.Update(ctx, req.ID, &req.Form)
		if err != nil {
			return nil, err
		}
		return basicResponse{
			OK:      true,
			Data:    venue,
			Message: fmt.Sprintf("Venue %s was successfully updated!", venue.Name),
		}, nil
	}
}

// MakeVenueDeleteEndpoint returns an endpoint removing a venue
func MakeVenueDeleteEndpoint(s VenueService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		venue, err := s.Delete(ctx, request.(uint))
		if err != nil {
			return nil, err
		}
		return basicResponse{
			OK:      true,
			Message: fmt.Sprintf("Venue %s was successfully deleted!", venue.Name),
		}, nil
	}
}

// -- Artists ----------------------------------------------------------------------------------------------------------

// MakeArtistEndpoints creates the endpoints needed to use the artist service
func MakeArtistEndpoints(s ArtistService, logger *logrus.Entry) ArtistEndpoints {
	return ArtistEndpoints{
		List:       LogCalls("artists.list", logger)(MakeArtistListEndpoint(s)),
		Search:     LogCalls("artists.search", logger)(MakeArtistSearchEndpoint(s)),
		Get:        LogCalls("artists.get", logger)(MakeArtistGetEndpoint(s)),
		CreateForm: LogCalls("artists.createForm", logger)(MakeArtistCreateFormEndpoint()),
		Create:     LogCalls("artists.create", logger)(MakeArtistCreateEndpoint(s)),
		EditForm:   LogCalls("artists.editForm", logger)(MakeArtistEditFormEndpoint(s)),
		Update:     LogCalls("artists.update", logger)(MakeArtistUpdateEndpoint(s)),
	}
}

// MakeArtistListEndpoint returns an endpoint listing the IDs and names of all artists
func MakeArtistListEndpoint(s ArtistService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		artists, err := s.List(ctx)
		if err != nil {
			return nil, err
		}
		return basicResponse{OK: true, Data: artists}, nil
	}
}

// MakeArtistSearchEndpoint returns an endpoint searching artists by name
func MakeArtistSearchEndpoint(s ArtistService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		search := request.(Search)
		res, err := s.Search(ctx, &search)
		if err != nil {
			return nil, err
		}
		return basicResponse{OK: true, Data: res}, nil
	}
}

// MakeArtistGetEndpoint returns an endpoint returning an artist together with the artist's shows
func MakeArtistGetEndpoint(s ArtistService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		detail, err := s.Detail(ctx, request.(uint))
		if err != nil {
			return nil, err
		}
		return basicResponse{OK: true, Data: detail}, nil
	}
}

// MakeArtistCreateFormEndpoint returns an endpoint returning the defaults of an empty artist form
func MakeArtistCreateFormEndpoint() endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		return basicResponse{
			OK:   true,
			Data: entityFormResponse{Form: ArtistForm{Genres: []string{}, SeekingVenue: "y"}, States: USStates},
		}, nil
	}
}

// MakeArtistCreateEndpoint returns an endpoint creating a new artist from a submitted form
func MakeArtistCreateEndpoint(s ArtistService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(artistFormRequest)
		artist, err := s.Create(ctx, &req.Form)
		if err != nil {
			return nil, err
		}
		return basicResponse{
			OK:      true,
			Data:    artist,
			Message: fmt.Sprintf("Artist %s was successfully listed!", artist.Name),
		}, nil
	}
}

// MakeArtistEditFormEndpoint returns an endpoint returning the current state of an artist to fill the edit form with
func MakeArtistEditFormEndpoint(s ArtistService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		artist, err := s.Get(ctx, request.(uint))
		if err != nil {
			return nil, err
		}
		return basicResponse{OK: true, Data: entityFormResponse{Form: artist, States: USStates}}, nil
	}
}

// MakeArtistUpdateEndpoint returns an endpoint overwriting an artist with the contents of a submitted form
func MakeArtistUpdateEndpoint(s ArtistService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(artistFormRequest)
		artist, err := s.Update(ctx, req.ID, &req.Form)
		if err != nil {
			return nil, err
		}
		return basicResponse{
			OK:      true,
			Data:    artist,
			Message: fmt.Sprintf("Artist %s was successfully updated!", artist.Name),
		}, nil
	}
}

// -- Shows ------------------------------------------------------------------------------------------------------------

// MakeShowEndpoints creates the endpoints needed to use the show service. The form endpoint needs the other services
// to offer the artists and venues to choose from
func MakeShowEndpoints(s ShowService, as ArtistService, vs VenueService, logger *logrus.Entry) ShowEndpoints {
	return ShowEndpoints{
		List:       LogCalls("shows.list", logger)(MakeShowListEndpoint(s)),
		CreateForm: LogCalls("shows.createForm", logger)(MakeShowCreateFormEndpoint(as, vs)),
		Create:     LogCalls("shows.create", logger)(MakeShowCreateEndpoint(s)),
	}
}

// MakeShowListEndpoint returns an endpoint listing all shows
func MakeShowListEndpoint(s ShowService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		shows, err := s.List(ctx)
		if err != nil {
			return nil, err
		}
		return basicResponse{OK: true, Data: shows}, nil
	}
}

// MakeShowCreateFormEndpoint returns an endpoint returning an empty show form together with the selectable artists
// and venues
func MakeShowCreateFormEndpoint(as ArtistService, vs VenueService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		artists, err := as.List(ctx)
		if err != nil {
			return nil, err
		}
		venues, err := vs.Refs(ctx)
		if err != nil {
			return nil, err
		}
		return basicResponse{
			OK:   true,
			Data: showFormResponse{
				Form:    ShowForm{StartTime: time.Now().Format(models.ShowTimeLayout)},
				Artists: artists,
				Venues:  venues,
			},
		}, nil
	}
}

// MakeShowCreateEndpoint returns an endpoint booking a new show from a submitted form
func MakeShowCreateEndpoint(s ShowService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		form := request.(ShowForm)
		show, err := s.Create(ctx, &form)
		if err != nil {
			return nil, err
		}
		return basicResponse{OK: true, Data: show, Message: "Show was successfully listed!"}, nil
	}
}
