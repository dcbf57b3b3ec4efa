package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/daemon"
	"github.com/jmoiron/sqlx"
	"github.com/kardianos/osext"
	_ "github.com/mattn/go-sqlite3" // Just needed for the sqlite driver
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	fyyur "github.com/derWhity/fyyur/internal"
	"github.com/derWhity/fyyur/internal/ctxhelper"
	"github.com/derWhity/fyyur/internal/log"
	"github.com/derWhity/fyyur/internal/migrate"
	artistrepo "github.com/derWhity/fyyur/internal/repos/artist/sqlite"
	showrepo "github.com/derWhity/fyyur/internal/repos/show/sqlite"
	venuerepo "github.com/derWhity/fyyur/internal/repos/venue/sqlite"
)

const (
	appName    = "Fyyur"
	appVersion = "0.1.0"
	dbFile     = "fyyur.db"
)

// Checks and tries to create the given directory recursively (or exits if this fails)
func checkAndCreateDir(path string, logger *logrus.Entry) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.WithField(log.FldPath, path).Info("Directory does not exist - trying to create...")
			if err = os.MkdirAll(path, os.ModePerm); err != nil {
				logger.WithError(err).Fatal("Failed to create directory")
			}
			logger.Info("Directory created successfully")
		} else {
			logger.WithError(err).Fatal("Stat has failed")
		}
	} else {
		if !fileInfo.IsDir() {
			logger.Fatalf("'%s' is not a directory. Remove the plain file if you want to continue", path)
		}
	}
}

// watchdog notifies systemd as long as the HTTP server answers on /alive
func watchdog(listenAddress string, logger *logrus.Entry) {
	interval, err := daemon.SdWatchdogEnabled(false)
	if err != nil || interval == 0 {
		return
	}
	logger.Info("Activating systemd watchdog goroutine")
	port := listenAddress[strings.LastIndex(listenAddress, ":")+1:]
	url := fmt.Sprintf("http://127.0.0.1:%s/alive", port)
	client := http.Client{Timeout: interval / 3}
	for {
		if res, err := client.Get(url); err == nil {
			res.Body.Close()
			daemon.SdNotify(false, "WATCHDOG=1")
		}
		time.Sleep(interval / 3)
	}
}

func main() {
	execDir, err := osext.ExecutableFolder()
	if err != nil {
		panic(err)
	}

	configFile := flag.String(
		"config",
		filepath.Join(execDir, "config.json"),
		"The configuration file to load the application's configuration from",
	)
	uiDir := flag.String(
		"ui",
		filepath.Join(execDir, "ui"),
		"The directory containing the web UI",
	)
	flag.Parse()

	ctx := context.Background()

	// Initialize the logger
	logger := logrus.WithField(log.FldVersion, appVersion)
	logger.Infof("%s version %s is starting up...", appName, appVersion)
	ctx = context.WithValue(ctx, ctxhelper.KeyLogger, logger)

	// Load the main configuration file
	cs := fyyur.NewConfigService(*configFile, logger)
	if err := cs.Load(ctx); err != nil {
		logger.WithError(err).Fatal("Cannot load config")
	}
	conf := cs.GetConfig(ctx)
	level, _ := logrus.ParseLevel(conf.LogLevel)
	logrus.SetLevel(level)

	logger.Infof("Using '%s' as data directory", conf.DataDir)
	checkAndCreateDir(conf.DataDir, logger)

	// Set up the database connection and perform pending migrations
	dbFileName := path.Join(conf.DataDir, dbFile)
	var db *sqlx.DB
	if db, err = sqlx.Open("sqlite3", dbFileName+"?_foreign_keys=1"); err != nil {
		logger.WithError(err).Fatal("Failed to open database connection")
	}
	defer db.Close()
	logger.Info("Performing database migrations...")
	if err = migrate.ExecuteMigrationsOnDb(db, logger); err != nil {
		logger.WithError(err).Fatal("Database migration has failed. Please check database for consistency and try again.")
	}

	venueRepo := venuerepo.New(db, logger)
	artistRepo := artistrepo.New(db, logger)
	showRepo := showrepo.New(db, logger)

	vSrv := fyyur.NewVenueService(venueRepo, showRepo, cs, fyyur.SystemClock, logger)
	aSrv := fyyur.NewArtistService(artistRepo, showRepo, fyyur.SystemClock, logger)
	sSrv := fyyur.NewShowService(showRepo, logger)

	httpLogger := logger.WithField(log.FldTransport, "HTTP")

	h := fyyur.MakeHTTPHandler(
		vSrv,
		aSrv,
		sSrv,
		*uiDir,
		httpLogger,
	)
	srv := &http.Server{
		Addr:    conf.ListenAddress,
		Handler: h,
	}

	// Start listening
	errs := make(chan error, 1)

	// Listen for stop signals that will end the service
	go func() {
		c := make(chan os.Signal, 2)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		sig := <-c
		logger.WithField("signal", sig.String()).Info("Caught signal to stop. Shutting down.")
		daemon.SdNotify(false, "STOPPING=1")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		errs <- srv.Shutdown(shutdownCtx)
	}()

	go func() {
		httpLogger.WithField("addr", conf.ListenAddress).Info("Starting listening port")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			errs <- err
		}
	}()

	go watchdog(conf.ListenAddress, logger)

	// Notify systemd that we are ready to go (if available)
	daemon.SdNotify(false, "READY=1")

	if err := <-errs; err != nil {
		logger.WithError(err).Error("Server stopped with an error")
		return
	}
	logger.Info("Shutdown complete")
}
