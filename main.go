package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"mykitchen_backend/config"
	"mykitchen_backend/favorites"
	"mykitchen_backend/handlers"
	"mykitchen_backend/logger"
	"mykitchen_backend/mealdb"
	"mykitchen_backend/middleware"
	"mykitchen_backend/seo"
	"mykitchen_backend/serviceworker"
)

func main() {
	configPath := flag.String("config", "", "path to a config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:       cfg.App.LogLevel,
		Format:      cfg.App.LogFormat,
		Development: cfg.IsDevelopment(),
	})
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("Server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := newFavoritesStore(ctx, cfg.Favorites)
	if err != nil {
		return fmt.Errorf("failed to create favorites store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn("Failed to close favorites store", zap.Error(err))
		}
	}()

	handler, err := newHandler(cfg, log, store)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Server starting",
			zap.String("addr", srv.Addr),
			zap.String("favorites_backend", cfg.Favorites.Backend),
			zap.String("site_url", cfg.Site.URL),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// newHandler builds the router with every endpoint, the service worker,
// metrics and the static frontend, wrapped in CORS.
func newHandler(cfg *config.Config, log *zap.Logger, store favorites.Store) (http.Handler, error) {
	metrics := middleware.NewMetrics()

	client := mealdb.NewClient(cfg.MealDB.BaseURL, cfg.MealDB.Timeout, log, mealdb.WithRecorder(metrics))
	gen := seo.NewGenerator(seo.Site{
		URL:        cfg.Site.URL,
		Name:       cfg.Site.Name,
		Author:     cfg.Site.Author,
		Categories: cfg.Site.Categories,
	}, nil, nil)

	sw, err := serviceworker.Render(serviceworker.Config{
		CacheName: cfg.Cache.Name,
		SiteName:  cfg.Site.Name,
	})
	if err != nil {
		return nil, err
	}

	pages := os.DirFS(cfg.Server.StaticDir)

	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.Logger(log), metrics.Middleware)

	handlers.New(client, store, gen, pages, log).Register(r)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	r.Handle("/sw.js", serviceworker.Handler(sw)).Methods(http.MethodGet)
	r.PathPrefix("/").Handler(http.FileServer(http.FS(pages)))

	// Enable CORS for the configured origins
	c := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	})

	return c.Handler(r), nil
}

func newFavoritesStore(ctx context.Context, cfg config.FavoritesConfig) (favorites.Store, error) {
	switch cfg.Backend {
	case config.BackendFirestore:
		return favorites.NewFirestore(ctx, cfg.FirestoreProject, cfg.FirestoreCollection)
	case config.BackendRedis:
		return favorites.NewRedis(ctx, favorites.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		})
	default:
		return favorites.NewMemory(), nil
	}
}
