package main

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// App bundles the server's runtime state: the word rotation, per-session
// lifecycle controllers, the telemetry sink and rate-limiter bookkeeping.
type App struct {
	WordList []WordEntry

	DataDir string
	AppURL  string

	Telemetry Telemetry

	Controllers  map[string]*Controller
	SessionMutex sync.RWMutex

	LimiterMap     map[string]*rate.Limiter
	LimiterMutex   sync.Mutex
	RateLimitRPS   int
	RateLimitBurst int

	CookieMaxAge time.Duration
	StoreMaxAge  time.Duration
	IsProduction bool
	StartTime    time.Time
}

// NewApp constructs the application state with config read from the
// environment.
func NewApp(words []WordEntry, telemetry Telemetry) *App {
	if telemetry == nil {
		telemetry = noopTelemetry{}
	}
	return &App{
		WordList:       words,
		DataDir:        getEnvString("DATA_DIR", "data"),
		AppURL:         getEnvString("APP_URL", "https://bibleversequest.app"),
		Telemetry:      telemetry,
		Controllers:    make(map[string]*Controller),
		LimiterMap:     make(map[string]*rate.Limiter),
		RateLimitRPS:   getEnvInt("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 10),
		CookieMaxAge:   getEnvDuration("COOKIE_MAX_AGE", 30*24*time.Hour),
		StoreMaxAge:    getEnvDuration("STORE_MAX_AGE", 60*24*time.Hour),
		IsProduction:   getEnvString("GIN_MODE", "") == "release" || getEnvString("ENV", "") == "production",
		StartTime:      time.Now(),
	}
}
