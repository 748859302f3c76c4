// Command console serves the admin dashboard console: an authenticated,
// route-guarded front end over the dashboard REST API.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/admindash/console/internal/api"
	"github.com/admindash/console/internal/api/handler"
	"github.com/admindash/console/internal/core/ports"
	"github.com/admindash/console/internal/core/service"
	"github.com/admindash/console/internal/infrastructure/dashboardapi"
	mongostore "github.com/admindash/console/internal/infrastructure/db/mongo"
	redisstore "github.com/admindash/console/internal/infrastructure/db/redis"
	"github.com/admindash/console/internal/infrastructure/httpclient"
	"github.com/admindash/console/internal/infrastructure/tokenstore"
	"github.com/admindash/console/internal/pkg/config"
	"github.com/admindash/console/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "admindash-console",
	})

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// --- Token store ---
	store, closeStore, err := openTokenStore(startupCtx, cfg)
	must(log, err, "open token store")
	defer closeStore()

	// --- API client and session ---
	client, err := httpclient.New(httpclient.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	}, store, logger.Component("httpclient"))
	must(log, err, "build api client")

	apiService := dashboardapi.New(client)
	session := service.NewSessionService(store, apiService, api.NewLogNavigator(logger.Component("navigator")), logger.Component("session"))
	client.OnSessionExpired(session.Expire)

	st := session.Init(startupCtx)
	log.Info().
		Bool("authenticated", st.Authenticated).
		Str("store", cfg.Tokens.Store).
		Str("api", cfg.API.BaseURL).
		Msg("session initialised")

	// --- HTTP server ---
	e := api.NewRouter(api.Deps{
		Session: session,
		API:     apiService,
		Probes:  map[string]handler.Pinger{"token_store": store},
		Log:     logger.Component("http"),
	})

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("console listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	select {
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-serverErr:
		log.Error().Err(err).Msg("server error")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
		os.Exit(1)
	}
	log.Info().Msg("console stopped cleanly")
}

// tokenStore is what the console needs from a backend: the credential
// operations plus a reachability probe.
type tokenStore interface {
	ports.TokenStore
	handler.Pinger
}

// openTokenStore builds the backend selected by TOKEN_STORE and returns a
// function releasing its connections.
func openTokenStore(ctx context.Context, cfg *config.Config) (tokenStore, func(), error) {
	noop := func() {}

	switch cfg.Tokens.Store {
	case config.StoreMemory:
		return tokenstore.NewMemory(), noop, nil

	case config.StoreFile:
		return tokenstore.NewFile(cfg.Tokens.File), noop, nil

	case config.StoreRedis:
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		return redisstore.NewTokenStore(rdb, "", cfg.Tokens.Key), func() { _ = rdb.Close() }, nil

	case config.StoreMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(dctx)
		}
		return mongostore.NewTokenStore(db, cfg.Tokens.Key), closeFn, nil
	}

	return nil, nil, fmt.Errorf("unknown token store %q", cfg.Tokens.Store)
}

// must logs a fatal startup error and exits. Only used during wiring.
func must(log zerolog.Logger, err error, step string) {
	if err != nil {
		log.Fatal().Err(err).Str("step", step).Msg("startup failure")
	}
}
