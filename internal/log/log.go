package log

const (
	// FldFile is the name of the log field for storing file name information
	FldFile = "file"
	// FldPath is the name of the log field for storing path name information
	FldPath = "path"
	// FldTransport is the name of the log field for storing a transport name
	FldTransport = "transport"
	// FldVersion is the version number of the application
	FldVersion = "ver"
	// FldID is the ID of an entity used in the log entry
	FldID = "id"
	// FldSearch is a search term used in a search
	FldSearch = "search"
	// FldRequest is the ID assigned to an incoming HTTP request
	FldRequest = "request"
	// FldMethod is the HTTP method of a request
	FldMethod = "method"
	// FldEndpoint is the name of the endpoint being called
	FldEndpoint = "endpoint"
	// FldDuration is the time an operation took
	FldDuration = "took"
	// FldVenue is the ID of a venue referenced by the log entry
	FldVenue = "venue"
	// FldArtist is the ID of an artist referenced by the log entry
	FldArtist = "artist"
	// FldPolicy is the venue deletion policy in effect
	FldPolicy = "policy"
	// FldCount is the number of rows affected or returned
	FldCount = "count"
)
