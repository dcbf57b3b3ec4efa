package models

import (
	"path"

	"github.com/kardianos/osext"
)

const (
	// DeletePolicyReject refuses to delete a venue that still has shows attached
	DeletePolicyReject = "reject"
	// DeletePolicyCascade removes all shows of a venue together with the venue itself
	DeletePolicyCascade = "cascade"
)

// AppConfig is the application's main configuration structure
type AppConfig struct {
	// The directory where Fyyur stores all of its data - defaults to the /data subdirectory of the folder, the
	// Fyyur executable resides in
	DataDir string `json:"dataDir"`
	// The IP address to listen at - including the port number
	ListenAddress string `json:"listenAddress"`
	// The minimum level of log messages to write (logrus level names)
	LogLevel string `json:"logLevel"`
	// What to do with the shows of a venue that gets deleted - see the DeletePolicy* constants
	VenueDeletePolicy string `json:"venueDeletePolicy"`
}

// ValidDeletePolicy checks if the given value is a known venue deletion policy
func ValidDeletePolicy(policy string) bool {
	return policy == DeletePolicyReject || policy == DeletePolicyCascade
}

// GetDefaultConfig returns the default configuration values for the application
func GetDefaultConfig() (*AppConfig, error) {
	execDir, err := osext.ExecutableFolder()
	if err != nil {
		return nil, err
	}
	return &AppConfig{
		DataDir:           path.Join(execDir, "data"),
		ListenAddress:     ":5000",
		LogLevel:          "info",
		VenueDeletePolicy: DeletePolicyReject,
	}, nil
}
