package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"gridboard/internal/cache"
	"gridboard/internal/config"
	"gridboard/internal/db"
	"gridboard/internal/events"
	"gridboard/internal/live"
	"gridboard/internal/provider"
	"gridboard/internal/scoring"
	"gridboard/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
)

func Run() error {
	appCfg := config.Load()

	// Play source: local store when a database is configured, the public
	// nflverse feed otherwise.
	var prov provider.PlayProvider
	var store *db.DB
	if appCfg.DatabaseURL != "" {
		database, err := db.Connect(appCfg.DatabaseURL)
		if err != nil {
			log.Printf("[DB] Failed to connect: %v (falling back to remote feed)\n", err)
		} else {
			if err := database.Migrate(); err != nil {
				log.Printf("[DB] Migration failed: %v\n", err)
			}
			store = database
			prov = database
			log.Println("[DB] Serving plays from the local store")
		}
	} else {
		log.Println("[DB] DATABASE_URL not set, running without database")
	}
	if prov == nil {
		prov = provider.NewNFLVerseClient(appCfg.PBPBaseURL)
		log.Println("[Provider] Serving plays from the nflverse feed")
	}

	// Optional leaderboard memoization.
	var boards *cache.Leaderboards
	var lbCache service.Cache
	if appCfg.RedisURL != "" {
		opts, err := redis.ParseURL(appCfg.RedisURL)
		if err != nil {
			log.Printf("[Cache] Invalid REDIS_URL: %v (memoization disabled)\n", err)
		} else {
			boards = cache.New(redis.NewClient(opts), time.Duration(appCfg.CacheTTLMinutes)*time.Minute)
			lbCache = boards
			log.Println("[Cache] Leaderboard memoization enabled")
		}
	} else {
		log.Println("[Cache] REDIS_URL not set, memoization disabled")
	}

	svc := service.New(prov, lbCache, scoring.DefaultRuleset())

	bus := events.NewBus()
	hub := live.NewHub()
	live.NewNotifier(bus, hub)
	if appCfg.RefreshSeconds > 0 {
		refresher := &live.Refresher{
			Service:  svc,
			Bus:      bus,
			Season:   appCfg.CurrentSeason,
			Interval: time.Duration(appCfg.RefreshSeconds) * time.Second,
		}
		go refresher.Run(context.Background())
		log.Printf("[Live] Refresher running every %ds for season %d\n", appCfg.RefreshSeconds, appCfg.CurrentSeason)
	}

	srv := &Server{
		Service:       svc,
		Seasons:       prov,
		Store:         store,
		Boards:        boards,
		Hub:           hub,
		CurrentSeason: appCfg.CurrentSeason,
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(90 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   strings.Split(appCfg.AllowedOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", srv.handleHealth)
	r.Get("/api/leaderboard", srv.handleLeaderboard)
	r.Get("/api/stats/{season}/{week}", srv.handleStats)
	r.Get("/api/seasons", srv.handleSeasons)
	r.Get("/api/scoring", srv.handleScoring)
	r.Get("/api/download-csv", srv.handleDownloadCSV)
	r.Post("/api/ingest", srv.handleIngest)
	r.Get("/ws/leaderboard", srv.handleLive)

	addr := "0.0.0.0:" + appCfg.Port
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		fmt.Printf("Server listening on http://localhost:%s\n", appCfg.Port)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
	}

	log.Println("[Server] Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if store != nil {
		store.Close()
	}
	return nil
}
