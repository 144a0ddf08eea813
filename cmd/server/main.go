package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"citysuggest/internal/cache"
	"citysuggest/internal/config"
	"citysuggest/internal/db"
	"citysuggest/internal/jobs"
	"citysuggest/internal/metrics"
	"citysuggest/internal/qgram"
	"citysuggest/internal/search"
	"citysuggest/internal/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if cfg.IsDev() {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	} else {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
	}

	widget, err := config.LoadWidgetConfig(cfg.ConfigFile)
	if err != nil {
		log.Fatalf("Failed to load widget config: %v", err)
	}

	metrics.Register(prometheus.DefaultRegisterer)

	// Initialize database
	var database *db.DB
	if cfg.UseDatabase() {
		database, err = db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer database.Close()

		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		log.Println("Migrations completed successfully")

		metrics.Init(prometheus.DefaultRegisterer, database)
	} else {
		log.Println("Selection counts are disabled. Set DATABASE_URL to enable.")
	}

	var source qgram.Source = qgram.FileSource{Path: cfg.CitiesFile}
	if cfg.CitySource == config.SourceDB {
		source = database
	}

	// Redis backs both the suggestion cache and the rate limiter
	var storage fiber.Storage
	var suggestions *cache.SuggestionCache
	if cfg.UseRedis() {
		store := cache.NewRedisStore(cfg.RedisURL)
		defer store.Close()
		storage = store
		suggestions = cache.New(store, cfg.CacheTTL)
	}

	holder := qgram.NewHolder(nil)
	refresher := jobs.NewIndexRefresher(source, holder, cfg.QgramSize, cfg.ReloadInterval)
	refresher.OnSwap(func(idx *qgram.Index) {
		metrics.SetIndexRecords(idx.Len())
		slog.Info("city index published", "records", idx.Len(), "version", idx.Version())
	})
	if err := refresher.Refresh(ctx); err != nil {
		log.Fatalf("Failed to load city index: %v", err)
	}

	srv := server.New(cfg, storage)
	deps := server.Deps{
		Holder: holder,
		Search: search.NewService(holder, suggestions, cfg.SuggestLimit, widget.MinTriggerLength),
		Widget: widget,
	}
	if database != nil {
		deps.DB = database
	}
	srv.RegisterRoutes(deps)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("Server started on %s", cfg.ServerAddr)
		return srv.Start()
	})
	g.Go(func() error {
		refresher.Start(gctx)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutting down server...")
		return srv.Shutdown()
	})

	if err := g.Wait(); err != nil {
		log.Printf("Server error: %v", err)
	}

	metrics.Flush()
	log.Println("Server exited")
}
