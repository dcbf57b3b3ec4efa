package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"github.com/derWhity/fyyur/internal/ctxhelper"
	"github.com/derWhity/fyyur/internal/log"
)

const (
	// HeaderRequestID is the header the ID of a request is transferred in
	HeaderRequestID = "X-Request-ID"
)

// Defines an error that defines the HTTP status that should be returned
type httpStatuser interface {
	Status() int
}

// Defines an error that returns a machine-readable error code
type errorCoder interface {
	ErrorCode() string
}

// Defines an error that contains a data field with additional information
type dataBearer interface {
	Data() interface{}
}

type errorResponse struct {
	basicResponse
	// The error code
	Error   string      `json:"error"`
	Message string      `json:"errorMessage"`
	Details interface{} `json:"errorDetails,omitempty"`
}

// MakeHTTPHandler creates the main HTTP handler for the Fyyur service
// Everything that is not handled by the API is served from the given UI directory
func MakeHTTPHandler(
	vs VenueService,
	as ArtistService,
	ss ShowService,
	uiDir string,
	logger *logrus.Entry,
) http.Handler {
	r := mux.NewRouter()

	options := []httptransport.ServerOption{
		httptransport.ServerErrorEncoder(encodeError),
		httptransport.ServerBefore(makeContextInjector(logger)),
		httptransport.ServerAfter(writeRequestID),
	}

	// -- Venue service --------------------------------
	{
		vEp := MakeVenueEndpoints(vs, logger)

		// List
		r.Methods(http.MethodGet).Path("/venues").Handler(httptransport.NewServer(
			vEp.List,
			decodeNilRequest,
			encodeJSONResponse,
			options...,
		))

		// Search
		r.Methods(http.MethodPost).Path("/venues/search").Handler(httptransport.NewServer(
			vEp.Search,
			decodeSearchRequest,
			encodeJSONResponse,
			options...,
		))

		// CreateForm
		r.Methods(http.MethodGet).Path("/venues/create").Handler(httptransport.NewServer(
			vEp.CreateForm,
			decodeNilRequest,
			encodeJSONResponse,
			options...,
		))

		// Create
		r.Methods(http.MethodPost).Path("/venues/create").Handler(httptransport.NewServer(
			vEp.Create,
			decodeVenueFormRequest,
			encodeJSONResponse,
			options...,
		))

		// Get
		r.Methods(http.MethodGet).Path("/venues/{id:[0-9]+}").Handler(httptransport.NewServer(
			vEp.Get,
			decodeIDFromPath,
			encodeJSONResponse,
			options...,
		))

		// EditForm
		r.Methods(http.MethodGet).Path("/venues/{id:[0-9]+}/edit").Handler(httptransport.NewServer(
			vEp.EditForm,
			decodeIDFromPath,
			encodeJSONResponse,
			options...,
		))

		// Update
		r.Methods(http.MethodPost).Path("/venues/{id:[0-9]+}/edit").Handler(httptransport.NewServer(
			vEp.Update,
			decodeVenueFormRequest,
			encodeJSONResponse,
			options...,
		))

		// Delete - POST is accepted for plain HTML forms
		r.Methods(http.MethodDelete, http.MethodPost).Path("/venues/{id:[0-9]+}/delete").Handler(httptransport.NewServer(
			vEp.Delete,
			decodeIDFromPath,
			encodeJSONResponse,
			options...,
		))
	}

	// -- Artist service -------------------------------
	{
		aEp := MakeArtistEndpoints(as, logger)

		// List
		r.Methods(http.MethodGet).Path("/artists").Handler(httptransport.NewServer(
			aEp.List,
			decodeNilRequest,
			encodeJSONResponse,
			options...,
		))

		// Search
		r.Methods(http.MethodPost).Path("/artists/search").Handler(httptransport.NewServer(
			aEp.Search,
			decodeSearchRequest,
			encodeJSONResponse,
			options...,
		))

		// CreateForm
		r.Methods(http.MethodGet).Path("/artists/create").Handler(httptransport.NewServer(
			aEp.CreateForm,
			decodeNilRequest,
			encodeJSONResponse,
			options...,
		))

		// Create
		r.Methods(http.MethodPost).Path("/artists/create").Handler(httptransport.NewServer(
			aEp.Create,
			decodeArtistFormRequest,
			encodeJSONResponse,
			options...,
		))

		// Get
		r.Methods(http.MethodGet).Path("/artists/{id:[0-9]+}").Handler(httptransport.NewServer(
			aEp.Get,
			decodeIDFromPath,
			encodeJSONResponse,
			options...,
		))

		// EditForm
		r.Methods(http.MethodGet).Path("/artists/{id:[0-9]+}/edit").Handler(httptransport.NewServer(
			aEp.EditForm,
			decodeIDFromPath,
			encodeJSONResponse,
			options...,
		))

		// Update
		r.Methods(http.MethodPost).Path("/artists/{id:[0-9]+}/edit").Handler(httptransport.NewServer(
			aEp.Update,
			decodeArtistFormRequest,
			encodeJSONResponse,
			options...,
		))
	}

	// -- Show service ---------------------------------
	{
		sEp := MakeShowEndpoints(ss, as, vs, logger)

		// List
		r.Methods(http.MethodGet).Path("/shows").Handler(httptransport.NewServer(
			sEp.List,
			decodeNilRequest,
			encodeJSONResponse,
			options...,
		))

		// CreateForm
		r.Methods(http.MethodGet).Path("/shows/create").Handler(httptransport.NewServer(
			sEp.CreateForm,
			decodeNilRequest,
			encodeJSONResponse,
			options...,
		))

		// Create
		r.Methods(http.MethodPost).Path("/shows/create").Handler(httptransport.NewServer(
			sEp.Create,
			decodeShowFormRequest,
			encodeJSONResponse,
			options...,
		))
	}

	// Simple alive answer for checking if HTTP can be reached
	r.Methods(http.MethodGet).Path("/alive").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		data := map[string]bool{"ok": true}
		json.NewEncoder(w).Encode(data)
	})

	// Plain file service for the UI - the home page and its assets
	r.Methods(http.MethodGet).PathPrefix("/").Handler(http.FileServer(http.Dir(uiDir)))

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		encodeError(req.Context(), ErrNotFound, w)
	})

	return r
}

// decodeNilRequest just does nothing with the request. It is used for endpoints that don't need anything to be passed
func decodeNilRequest(_ context.Context, r *http.Request) (request interface{}, err error) {
	return nil, nil
}

// parseForm parses the submitted form values of the request - both, URL-encoded and multipart
func parseForm(r *http.Request) error {
	if err := r.ParseMultipartForm(32 << 20); err != nil && err != http.ErrNotMultipart {
		return MakeError(
			http.StatusBadRequest,
			ErrCodeIllegalForm,
			fmt.Sprintf("Failed to parse the submitted form: %v", err),
		)
	}
	return nil
}

// decodeSearchRequest decodes the parameters of a search from the form fields "text" and "search_term"
func decodeSearchRequest(_ context.Context, r *http.Request) (interface{}, error) {
	if err := parseForm(r); err != nil {
		return nil, err
	}
	var search Search
	if err := decodeForm(&search, r.Form); err != nil {
		return nil, err
	}
	return search, nil
}

// decodeVenueFormRequest decodes a submitted venue form. The ID of the venue is read from the path if present
func decodeVenueFormRequest(_ context.Context, r *http.Request) (interface{}, error) {
	var req venueFormRequest
	if _, ok := mux.Vars(r)["id"]; ok {
		id, err := getUintFromPath("id", r)
		if err != nil {
			return nil, err
		}
		req.ID = id
	}
	if err := parseForm(r); err != nil {
		return nil, err
	}
	if err := decodeForm(&req.Form, r.Form); err != nil {
		return nil, err
	}
	return req, nil
}

// decodeArtistFormRequest decodes a submitted artist form. The ID of the artist is read from the path if present
func decodeArtistFormRequest(_ context.Context, r *http.Request) (interface{}, error) {
	var req artistFormRequest
	if _, ok := mux.Vars(r)["id"]; ok {
		id, err := getUintFromPath("id", r)
		if err != nil {
			return nil, err
		}
		req.ID = id
	}
	if err := parseForm(r); err != nil {
		return nil, err
	}
	if err := decodeForm(&req.Form, r.Form); err != nil {
		return nil, err
	}
	return req, nil
}

// decodeShowFormRequest decodes a submitted show form
func decodeShowFormRequest(_ context.Context, r *http.Request) (interface{}, error) {
	if err := parseForm(r); err != nil {
		return nil, err
	}
	var form ShowForm
	if err := decodeForm(&form, r.Form); err != nil {
		return nil, err
	}
	return form, nil
}

// getUintFromPath is a helper function that gets a uint from the given path variable
func getUintFromPath(varname string, r *http.Request) (uint, error) {
	errmsg := fmt.Sprintf("Value for '%s' is no valid unsigned integer", varname)
	vars := mux.Vars(r)
	str, ok := vars[varname]
	if !ok {
		return 0, MakeError(http.StatusBadRequest, ErrCodeInvalidUint, errmsg)
	}
	id, err := strconv.ParseUint(str, 10, 64)
	if err != nil {
		return 0, MakeError(http.StatusBadRequest, ErrCodeInvalidUint, errmsg)
	}
	return uint(id), nil
}

// Decodes an ID from the "id" path variable provided by GoRilla
func decodeIDFromPath(ctx context.Context, r *http.Request) (interface{}, error) {
	return getUintFromPath("id", r)
}

// Encodes a typical JSON response
func encodeJSONResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	return json.NewEncoder(w).Encode(response)
}

// Builds an error response based on the incoming error
func encodeError(ctx context.Context, err error, w http.ResponseWriter) {
	if err == nil {
		panic("encodeError with nil error")
	}
	writeRequestID(ctx, w)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if st, ok := err.(httpStatuser); ok {
		w.WriteHeader(st.Status())
	} else {
		w.WriteHeader(http.StatusInternalServerError)
	}
	ret := errorResponse{
		basicResponse: basicResponse{OK: false},
		Message:       err.Error(),
		Error:         ErrCodeUnknown,
	}
	if cd, ok := err.(errorCoder); ok {
		ret.Error = cd.ErrorCode()
	}
	if db, ok := err.(dataBearer); ok {
		if data := db.Data(); data != nil {
			if err, ok := data.(error); ok {
				ret.Details = err.Error()
			} else {
				ret.Details = data
			}
		}
	}
	json.NewEncoder(w).Encode(&ret)
}

// writeRequestID returns the ID of the current request to the client
func writeRequestID(ctx context.Context, w http.ResponseWriter) context.Context {
	if id := ctxhelper.RequestID(ctx); id != "" {
		w.Header().Set(HeaderRequestID, id)
	}
	return ctx
}

// makeContextInjector returns a function that assigns an ID to every request and puts a logger carrying it into the
// request's context. A valid request ID sent by the client (e.g. a proxy) is kept
func makeContextInjector(logger *logrus.Entry) httptransport.RequestFunc {
	return func(ctx context.Context, r *http.Request) context.Context {
		id := r.Header.Get(HeaderRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.New().String()
		}
		ctx = context.WithValue(ctx, ctxhelper.KeyRequestID, id)
		return context.WithValue(ctx, ctxhelper.KeyLogger, logger.WithFields(logrus.Fields{
			log.FldRequest: id,
			log.FldMethod:  r.Method,
			log.FldPath:    r.URL.Path,
		}))
	}
}
