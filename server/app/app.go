// Package app wires all application dependencies.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"musicdl/server"
	"musicdl/server/config"
	"musicdl/server/httpapi"
	logpkg "musicdl/server/logger"
	"musicdl/server/provider"
	"musicdl/server/state"
	"musicdl/server/stream"
)

// App holds the assembled application.
type App struct {
	Config server.Config
	Logger *logpkg.Logger
	Store  *state.Store
	Build  BuildInfo

	server          *http.Server
	shutdownTimeout time.Duration
}

// BuildInfo provides build-time metadata.
type BuildInfo struct {
	RuntimeVer string
	BinVersion string
	CommitSHA  string
	BuildTime  string
	BuildArch  string
}

// New builds the application container.
func New(configPath string, build BuildInfo) (*App, error) {
	conf, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log, err := logpkg.New(conf.GetString("LogLevel"), conf.GetString("LogFormat"), conf.GetBool("LogSource"))
	if err != nil {
		return nil, err
	}

	store := state.NewStore(conf.GetString("StateFile"), log)
	store.Load()

	resolver := provider.NewResolver(provider.ResolverOptions{
		PaugramEndpoint:  conf.GetString("PaugramEndpoint"),
		GDStudioEndpoint: conf.GetString("GDStudioEndpoint"),
		PlaylistEndpoint: conf.GetString("PlaylistEndpoint"),
		Timeout:          time.Duration(conf.GetInt("LookupTimeoutSec")) * time.Second,
		Logger:           log,
	})

	qq := provider.NewQQClient(provider.QQClientOptions{
		BaseURL: conf.GetString("QQAPIBase"),
		Timeout: time.Duration(conf.GetInt("QQAPITimeoutSec")) * time.Second,
		Logger:  log,
	})

	streamer := stream.New(stream.Options{
		Timeout: time.Duration(conf.GetInt("StreamTimeoutSec")) * time.Second,
		Logger:  log,
	})
	qqStreamer := stream.New(stream.Options{
		Timeout: time.Duration(conf.GetInt("QQStreamTimeoutSec")) * time.Second,
		Logger:  log,
	})

	version := build.BinVersion
	if version == "" {
		version = "dev"
	}

	api := httpapi.New(httpapi.Options{
		Store:      store,
		Resolver:   resolver,
		QQ:         qq,
		Streamer:   streamer,
		QQStreamer: qqStreamer,
		Logger:     log,
		StaticDir:  conf.GetString("StaticDir"),
		Version:    version,
	})

	srv := &http.Server{
		Addr:        fmt.Sprintf(":%d", conf.GetInt("Port")),
		Handler:     api.Router(),
		ReadTimeout: 30 * time.Second,
		// Streaming responses must not be deadlined.
		WriteTimeout: 0,
		IdleTimeout:  120 * time.Second,
	}

	return &App{
		Config:          conf,
		Logger:          log,
		Store:           store,
		Build:           build,
		server:          srv,
		shutdownTimeout: time.Duration(conf.GetInt("ShutdownTimeoutSec")) * time.Second,
	}, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	settings := a.Store.Snapshot()
	a.Logger.Info("server starting",
		"addr", a.server.Addr,
		"version", a.Build.BinVersion,
		"api_source", settings.APISource,
		"music_source", settings.MusicSource,
		"music_quality", settings.MusicQuality,
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()
		err := a.server.Shutdown(shutdownCtx)
		a.Logger.Info("server stopped")
		_ = a.Logger.Close()
		return err
	})

	return g.Wait()
}
