package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	ginGzip "github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	cachecontrol "go.eigsys.de/gin-cachecontrol/v2"
)

func main() {
	_ = godotenv.Load()

	telemetry, closeTelemetry, err := setupTelemetry()
	if err != nil {
		logWarn("Telemetry disabled: %v", err)
		telemetry = noopTelemetry{}
	}
	defer closeTelemetry()

	wordsPath := getEnvString("WORDS_FILE", "data/words.json")
	words, err := loadWords(wordsPath)
	if err != nil {
		logFatal("Failed to load words from %s: %v", wordsPath, err)
	}
	if len(words) == 0 {
		logFatal("Word list %s is empty after filtering", wordsPath)
	}
	logInfo("Loaded %d words from %s", len(words), wordsPath)

	app := NewApp(words, telemetry)
	logInfo("Starting BibleVerseQuest in %s mode", map[bool]string{true: "production", false: "development"}[app.IsProduction])
	if !dirExists(app.DataDir) {
		logInfo("Data directory %s will be created on first save", app.DataDir)
	}

	app.Telemetry.Track(EvtAppLoaded, map[string]any{
		"build":        "BVQ-v1.0.0",
		"words_loaded": len(words),
	})

	router := app.buildRouter()

	stopSweeper := make(chan struct{})
	go app.runIdleSweeper(stopSweeper)
	go app.runStoreCleanup(stopSweeper)
	defer close(stopSweeper)

	startServer(router)
}

// setupTelemetry opens the SQLite event sink when TELEMETRY_DB is set,
// falling back to the no-op sink otherwise.
func setupTelemetry() (Telemetry, func(), error) {
	dsn := os.Getenv("TELEMETRY_DB")
	if dsn == "" {
		return noopTelemetry{}, func() {}, nil
	}
	sink, err := openTelemetryDB(dsn)
	if err != nil {
		return nil, func() {}, err
	}
	logInfo("Recording telemetry events to %s", dsn)
	return sink, func() { _ = sink.Close() }, nil
}

// buildRouter wires middleware and routes onto a fresh gin engine.
func (app *App) buildRouter() *gin.Engine {
	if app.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	router.Use(ginGzip.Gzip(ginGzip.DefaultCompression,
		ginGzip.WithExcludedExtensions([]string{".svg", ".ico", ".png", ".jpg", ".jpeg", ".gif"})))

	if err := router.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logWarn("Failed to set trusted proxies: %v", err)
	}

	// Game state is per-session and mutable; never cache it.
	router.Use(cachecontrol.New(cachecontrol.Config{
		NoStore:        true,
		NoCache:        true,
		MustRevalidate: true,
	}))
	router.Use(requestIDMiddleware())

	router.GET(RouteState, app.stateHandler)
	router.POST(RouteKey, app.rateLimitMiddleware(), app.keyHandler)
	router.POST(RouteNewAttempt, app.rateLimitMiddleware(), app.newAttemptHandler)
	router.GET(RouteShare, app.shareHandler)
	router.GET("/healthz", app.healthzHandler)

	return router
}

// runIdleSweeper periodically expires stalled attempts across all live
// controllers. Together with the check at controller load and on every state
// request, this covers attempts that would otherwise stall unnoticed.
func (app *App) runIdleSweeper(stop <-chan struct{}) {
	ticker := time.NewTicker(IdleCheckInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			for _, ctrl := range app.liveControllers() {
				ctrl.ExpireIfIdle()
			}
			app.dropStaleControllers()
		case <-stop:
			return
		}
	}
}

// runStoreCleanup removes player store files that have not been touched for
// StoreMaxAge.
func (app *App) runStoreCleanup(stop <-chan struct{}) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := cleanupOldPlayerStores(app.DataDir, app.StoreMaxAge); err != nil {
				logWarn("Player store cleanup failed: %v", err)
			}
		case <-stop:
			return
		}
	}
}

func startServer(router *gin.Engine) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, syscall.SIGINT, syscall.SIGTERM)
		<-sigint
		logInfo("Shutdown signal received, shutting down server gracefully...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logWarn("HTTP server Shutdown: %v", err)
		}
		close(idleConnsClosed)
	}()

	logInfo("Server starting on http://localhost:%s", port)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		logFatal("Server failed to start: %v", err)
	}
	<-idleConnsClosed
	logInfo("Server shutdown complete")
}
