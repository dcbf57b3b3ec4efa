package internal

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"github.com/derWhity/fyyur/internal/ctxhelper"
	"github.com/derWhity/fyyur/internal/log"
	"github.com/derWhity/fyyur/internal/models"
)

// Environment variables overriding values of the configuration file
const (
	EnvDataDir           = "FYYUR_DATA_DIR"
	EnvListenAddress     = "FYYUR_LISTEN_ADDRESS"
	EnvLogLevel          = "FYYUR_LOG_LEVEL"
	EnvVenueDeletePolicy = "FYYUR_VENUE_DELETE_POLICY"
)

// ConfigService gives access to the application's configuration
type ConfigService interface {
	// Load loads the application config from its default file location
	Load(ctx context.Context) error
	// LoadFromFile loads the configuration from the given JSON file and applies the environment overrides
	LoadFromFile(ctx context.Context, filename string) error
	// Write writes the current application configuration to the default file name
	Write(ctx context.Context) error
	// WriteToFile writes the current application configuration to a JSON file
	WriteToFile(ctx context.Context, filename string) error
	// GetConfig retuns the current application configuration
	GetConfig(ctx context.Context) models.AppConfig
}

// -- ConfigService implementation -------------------------------------------------------------------------------------

type configService struct {
	sync.RWMutex
	configFilename string
	config         *models.AppConfig
	logger         *logrus.Entry
}

// NewConfigService creates a new configuration service instance with the given default file name
func NewConfigService(configFilename string, logger *logrus.Entry) ConfigService {
	return &configService{
		configFilename: configFilename,
		logger:         logger,
	}
}

// Load loads the application config from its default file location
func (s *configService) Load(ctx context.Context) error {
	return s.LoadFromFile(ctx, s.configFilename)
}

// LoadFromFile loads the configuration from the given JSON file and applies the environment overrides
// A missing file is not an error - the defaults are used instead
func (s *configService) LoadFromFile(ctx context.Context, filename string) error {
	logger := ctxhelper.LoggerOr(ctx, s.logger)
	logger.WithField(log.FldFile, filename).Info("Loading configuration file")
	conf, err := models.GetDefaultConfig()
	if err != nil {
		return errors.Wrap(err, "LoadFromFile: Failed to create default config")
	}
	f, err := os.Open(filename)
	switch {
	case os.IsNotExist(err):
		logger.WithField(log.FldFile, filename).Error("Configuration file does not exist - using defaults")
	case err != nil:
		return errors.Wrap(err, "LoadFromFile: cannot load configuration file")
	default:
		defer f.Close()
		if err = json.NewDecoder(f).Decode(conf); err != nil {
			return errors.Wrap(err, "LoadFromFile: Failed to decode configuration file")
		}
	}
	if err = godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "LoadFromFile: Failed to read .env file")
	}
	applyEnv(conf)
	if err = validateConfig(conf); err != nil {
		return err
	}
	s.Lock()
	defer s.Unlock()
	s.config = conf
	return nil
}

// applyEnv overwrites the configuration values for which an environment variable is set
func applyEnv(conf *models.AppConfig) {
	for env, field := range map[string]*string{
		EnvDataDir:           &conf.DataDir,
		EnvListenAddress:     &conf.ListenAddress,
		EnvLogLevel:          &conf.LogLevel,
		EnvVenueDeletePolicy: &conf.VenueDeletePolicy,
	} {
		if value, ok := os.LookupEnv(env); ok && value != "" {
			*field = value
		}
	}
}

func validateConfig(conf *models.AppConfig) error {
	if conf.ListenAddress == "" {
		return errors.New("validateConfig: No listen address configured")
	}
	if _, err := logrus.ParseLevel(conf.LogLevel); err != nil {
		return errors.Wrapf(err, "validateConfig: Illegal log level '%s'", conf.LogLevel)
	}
	if !models.ValidDeletePolicy(conf.VenueDeletePolicy) {
		return errors.Errorf("validateConfig: Unknown venue delete policy '%s'", conf.VenueDeletePolicy)
	}
	return nil
}

// Write writes the current application configuration to the default file name
func (s *configService) Write(ctx context.Context) error {
	return s.WriteToFile(ctx, s.configFilename)
}

// WriteToFile writes the current application configuration to a JSON file
func (s *configService) WriteToFile(ctx context.Context, filename string) error {
	logger := ctxhelper.LoggerOr(ctx, s.logger)
	logger.WithField(log.FldFile, filename).Info("Writing configuration file")
	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "WriteToFile: Cannot open configuration file '%s' to write to", filename)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "    ")
	conf := s.GetConfig(ctx)
	if err := enc.Encode(&conf); err != nil {
		return errors.Wrap(err, "WriteToFile: Failed to serialize configuration data")
	}
	return nil
}

// GetConfig retuns the current application configuration
func (s *configService) GetConfig(ctx context.Context) models.AppConfig {
	s.RLock()
	defer s.RUnlock()
	var ret models.AppConfig
	if s.config != nil {
		ret = *s.config
	} else {
		if tmp, err := models.GetDefaultConfig(); err == nil {
			ret = *tmp
		}
	}
	return ret
}
