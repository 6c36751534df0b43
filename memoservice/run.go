// Package memoservice boots the naturalist HTTP service.
package memoservice

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/t-cool/naturalist/internal/api"
	"github.com/t-cool/naturalist/internal/config"
	"github.com/t-cool/naturalist/internal/connectivity"
	"github.com/t-cool/naturalist/internal/factory"
	"github.com/t-cool/naturalist/internal/geocode"
	"github.com/t-cool/naturalist/internal/logger"
	"github.com/t-cool/naturalist/internal/sensor"
	"github.com/t-cool/naturalist/internal/service"
	"github.com/t-cool/naturalist/internal/store"
)

// Run starts the record service HTTP server and blocks until shutdown or error.
func Run() error {
	log := logger.New("memo-service")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	log.Info().
		Str("store_driver", cfg.StoreDriver).
		Int("http_port", cfg.HTTPPort).
		Str("geocoder_url", cfg.GeocoderURL).
		Msg("Memo service starting")

	// Cancellable root context bound to SIGINT/SIGTERM
	ctx, stop := newServerContext()
	defer stop()

	svc, st, gate, err := initDependencies(ctx, cfg, log)
	if err != nil {
		return err
	}

	router := api.NewRouter(svc, st, gate)
	server := newHTTPServer(ctx, cfg, router)
	errCh := serveHTTP(server, log, cfg)

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Stack().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Stack().Err(err).Msg("HTTP server failed")
		return err
	}
}

// initDependencies wires store, gate, resolver and sensor into the record
// service and loads the persisted history.
func initDependencies(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*service.RecordService, store.RecordStore, connectivity.Gate, error) {
	st, err := factory.NewRecordStore(cfg, log)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Record store unavailable")
		return nil, nil, nil, err
	}

	gate := connectivity.NewProbe(cfg.ProbeURL, cfg.ProbeTimeout)
	resolver := geocode.NewNominatim(cfg.GeocoderURL, cfg.GeocoderLanguage, cfg.GeocoderTimeout, log)
	sn := newSensor(cfg)

	svc := service.NewRecordService(st, gate, resolver, sn, log)
	if err := svc.Load(ctx); err != nil {
		log.Error().Stack().Err(err).Msg("History load failed")
		return nil, nil, nil, err
	}
	return svc, st, gate, nil
}

func newSensor(cfg *config.Config) sensor.Sensor {
	if cfg.SensorURL != "" {
		return sensor.NewHTTPSensor(cfg.SensorURL, cfg.SensorTimeout)
	}
	return sensor.Fixed{Lat: cfg.SensorLat, Lng: cfg.SensorLng}
}

func newServerContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func newHTTPServer(ctx context.Context, cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
}

func serveHTTP(server *http.Server, log zerolog.Logger, cfg *config.Config) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	return errCh
}
