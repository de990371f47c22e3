package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jcao219/new-ro-transit/internal/config"
	"github.com/jcao219/new-ro-transit/internal/content"
	"github.com/jcao219/new-ro-transit/internal/handler"
	"github.com/jcao219/new-ro-transit/internal/repository"
	"github.com/jcao219/new-ro-transit/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// @title           New Rochelle Transit Info API
// @version         1.0
// @description     Location data and visit counts behind the New Rochelle transit site.
// @BasePath        /
func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	level, err := zerolog.ParseLevel(config.LogLevel)
	if err != nil {
		log.Warn().Str("level", config.LogLevel).Msg("unknown log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if level > zerolog.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Site data
	var catalog *content.Catalog
	if config.DataDir != "" {
		catalog, err = content.LoadDir(config.DataDir)
	} else {
		catalog, err = content.LoadBundled()
	}
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load site data")
	}
	log.Info().
		Int("commutes", len(catalog.Commutes)).
		Int("restaurants", len(catalog.Restaurants)).
		Int("landmarks", len(catalog.Landmarks)).
		Msg("site data loaded")

	// Visit counter store
	var counter service.CounterRepository
	switch config.CounterBackend {
	case "postgres":
		conn, err := pgxpool.New(ctx, config.DBSource)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot connect to db")
		}
		defer conn.Close()

		repo := repository.NewPostgresRepository(conn)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("cannot prepare counter table")
		}
		counter = repo
	case "memory":
		counter = repository.NewMemoryRepository()
	default:
		repo, err := repository.OpenSQLiteRepository(ctx, config.SQLitePath)
		if err != nil {
			log.Fatal().Err(err).Str("path", config.SQLitePath).Msg("cannot open counter database")
		}
		defer repo.Close()
		counter = repo
	}

	// Initialize layers
	index := repository.NewSpatialIndex(catalog.Locations())

	pageService := service.NewPageService(catalog)
	locationService := service.NewLocationService(catalog)
	nearbyService := service.NewNearbyService(index)
	visitService := service.NewVisitService(counter)

	r, err := handler.NewRouter(handler.Handlers{
		Pages:     handler.NewPageHandler(pageService, config.MapboxToken),
		Locations: handler.NewLocationHandler(locationService),
		Nearby:    handler.NewNearbyHandler(nearbyService),
		Visits:    handler.NewVisitHandler(visitService),
		Counter:   visitService,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("cannot build router")
	}

	if config.MapboxToken() == "" {
		log.Warn().Msg("MAPBOX_ACCESS_TOKEN is not set, the map will not load")
	}

	srv := &http.Server{
		Addr:              config.ServerAddress,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", config.ServerAddress).Str("counter", config.CounterBackend).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
