package internal

import "net/http"

const (
	// ErrCodeUnknown is the error code for unknown errors
	ErrCodeUnknown = "UNKNOWN_ERROR"
	// ErrCodeNotFound is returned when the requested path does not exist
	ErrCodeNotFound = "NOT_FOUND"
	// ErrCodeRepoError is returned when the request to a repo fails with an error
	ErrCodeRepoError = "STORAGE_QUERY_FAILED"
	// ErrCodeRepoWriteError is returned when a change could not be written to the storage
	ErrCodeRepoWriteError = "STORAGE_WRITE_FAILED"
	// ErrCodeRequiredFieldMissing is returned when at least one required field has not been populated on an incoming
	// request
	ErrCodeRequiredFieldMissing = "REQUIRED_FIELD_MISSING"
	// ErrCodeIllegalForm is returned when the request body could not be parsed as form data
	ErrCodeIllegalForm = "ILLEGAL_FORM_REQUEST"
	// ErrCodeIllegalValue is returned when any field in the transferred data does not validate for some reason
	ErrCodeIllegalValue = "ILLEGAL_VALUE"
	// ErrCodeInvalidUint is returned when an ID is required inside a request, but is not provided or in a wrong format
	ErrCodeInvalidUint = "INVALID_UINT"
	// ErrCodeVenueNotFound is returned when an operation works on a venue that does not exist
	ErrCodeVenueNotFound = "VENUE_NOT_FOUND"
	// ErrCodeArtistNotFound is returned when an operation works on an artist that does not exist
	ErrCodeArtistNotFound = "ARTIST_NOT_FOUND"
	// ErrCodeVersionConflict is returned when an edit is based on an outdated version of the entity
	ErrCodeVersionConflict = "VERSION_CONFLICT"
	// ErrCodeVenueHasShows is returned when a venue that still has shows should be deleted
	ErrCodeVenueHasShows = "VENUE_HAS_SHOWS"
)

var (
	// ErrNotFound is returned for every path that is not handled by the API
	ErrNotFound = MakeError(http.StatusNotFound, ErrCodeNotFound, "The requested resource does not exist")
)

// HTTPError is an error that contains information about the error message to return to the client
type HTTPError struct {
	message string
	code    string
	status  int
	data    interface{}
}

// MakeError creates a new HTTPError with the given contents
func MakeError(status int, code, message string) *HTTPError {
	return MakeErrorWithData(status, code, message, nil)
}

// MakeErrorWithData creates a new HTTPError with the given contents and an additional data element
func MakeErrorWithData(status int, code, message string, data interface{}) *HTTPError {
	return &HTTPError{message, code, status, data}
}

// Error implements the errorer interface
func (e *HTTPError) Error() string {
	return e.message
}

// Status returns the HTTP status that should be returned
func (e *HTTPError) Status() int {
	return e.status
}

// ErrorCode returns the machine-readable error code
func (e *HTTPError) ErrorCode() string {
	return e.code
}

// Data returns additional data about the error
func (e *HTTPError) Data() interface{} {
	return e.data
}
