package api

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/Harshitk-cp/wolfmind/internal/api/handlers"
	mw "github.com/Harshitk-cp/wolfmind/internal/api/middleware"
	"github.com/Harshitk-cp/wolfmind/internal/buildconfig"
	"github.com/Harshitk-cp/wolfmind/internal/domain"
	"github.com/Harshitk-cp/wolfmind/internal/service"
	"github.com/Harshitk-cp/wolfmind/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const limiterCleanupInterval = 10 * time.Minute

// Options configures the agent host.
type Options struct {
	// DB is optional. When set it backs /health and, with Diagnostics, the recorder.
	DB                *pgxpool.Pool
	Diagnostics       bool
	DiagnosticsBuffer int
	NewRand           func() service.Rand
	RateLimitRPS      float64
	RateLimitBurst    int
	SessionIdle       time.Duration
	SessionReap       time.Duration
}

// App holds the router and background services for lifecycle management.
type App struct {
	Router   *chi.Mux
	Sessions *service.SessionService
	Recorder *service.Recorder

	db        *pgxpool.Pool
	limiter   *mw.RateLimiter
	metrics   *mw.MetricsCollector
	startTime time.Time
	stopCh    chan struct{}
	wg        sync.WaitGroup
}

func NewApp(opts Options, logger *zap.Logger) *App {
	var diagStore domain.DiagnosticsStore
	if opts.DB != nil && opts.Diagnostics {
		diagStore = store.NewDiagnosticsStore(opts.DB)
		logger.Info("diagnostics persistence enabled")
	}

	if opts.RateLimitRPS <= 0 {
		opts.RateLimitRPS = 100
	}
	if opts.RateLimitBurst <= 0 {
		opts.RateLimitBurst = 20
	}

	// Services
	recorder := service.NewRecorder(diagStore, opts.DiagnosticsBuffer, logger)
	sessions := service.NewSessionService(opts.NewRand, logger)
	sessions.SetRecorder(recorder)
	if opts.SessionIdle > 0 {
		sessions.SetIdleTimeout(opts.SessionIdle)
	}
	if opts.SessionReap > 0 {
		sessions.SetInterval(opts.SessionReap)
	}

	// Handlers
	sessionHandler := handlers.NewSessionHandler(sessions)
	diagnosticsHandler := handlers.NewDiagnosticsHandler(recorder)

	r := chi.NewRouter()
	app := &App{
		Router:    r,
		Sessions:  sessions,
		Recorder:  recorder,
		db:        opts.DB,
		limiter:   mw.NewRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst),
		metrics:   mw.NewMetricsCollector(),
		startTime: time.Now(),
		stopCh:    make(chan struct{}),
	}

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(app.metrics.Middleware)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", app.healthHandler())
	r.Get("/metrics", app.metricsHandler())

	r.Route("/v1/sessions", func(r chi.Router) {
		r.Post("/", sessionHandler.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(app.limiter.Limit)

			r.Get("/", sessionHandler.GetByID)
			r.Delete("/", sessionHandler.Delete)
			r.Get("/beliefs", sessionHandler.Beliefs)
			r.Get("/snapshots", diagnosticsHandler.Snapshots)

			// Per-phase callbacks from the game runtime
			r.Post("/initialize", sessionHandler.Initialize)
			r.Post("/day-start", sessionHandler.DayStart)
			r.Post("/update", sessionHandler.Update)
			r.Post("/talk", sessionHandler.Talk)
			r.Post("/vote", sessionHandler.Vote)
			r.Post("/guard", sessionHandler.Guard)
			r.Post("/finish", sessionHandler.Finish)
		})
	})

	return app
}

// Start launches the session reaper, the diagnostics recorder and the rate
// limiter janitor.
func (app *App) Start() {
	app.Recorder.Start()
	app.Sessions.Start()

	app.wg.Add(1)
	go func() {
		defer app.wg.Done()
		ticker := time.NewTicker(limiterCleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				app.limiter.Cleanup(limiterCleanupInterval)
			case <-app.stopCh:
				return
			}
		}
	}()
}

// Stop shuts background work down. The recorder stops last so that it can
// flush what the sessions produced.
func (app *App) Stop() {
	close(app.stopCh)
	app.wg.Wait()
	app.Sessions.Stop()
	app.Recorder.Stop()
}

func (app *App) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"status": "ok",
			"build":  buildconfig.VersionInfo(),
		}

		if app.db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := app.db.Ping(ctx); err != nil {
				resp["status"] = "degraded"
				resp["error"] = err.Error()
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (app *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		uptime := time.Since(app.startTime)

		response := map[string]any{
			"uptime_seconds": uptime.Seconds(),
			"uptime_human":   uptime.Round(time.Second).String(),
			"request_count":  app.metrics.Requests(),
			"error_count":    app.metrics.Errors(),
			"in_flight":      app.metrics.InFlight(),
			"sessions":       app.Sessions.Count(),
			"diagnostics": map[string]any{
				"written": app.Recorder.Written(),
				"dropped": app.Recorder.Dropped(),
			},
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb": float64(memStats.Alloc) / 1024 / 1024,
				"sys_mb":   float64(memStats.Sys) / 1024 / 1024,
				"num_gc":   memStats.NumGC,
			},
			"go_version": runtime.Version(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

// Ensure stores satisfy interfaces at compile time.
var _ domain.DiagnosticsStore = (*store.DiagnosticsStore)(nil)
