package main

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/farxc/sil_dashboard/internal/logger"
	"github.com/farxc/sil_dashboard/internal/programacao"
	"github.com/farxc/sil_dashboard/internal/programacao/catalog"
	"github.com/farxc/sil_dashboard/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type application struct {
	config  config
	store   store.Storage
	catalog *catalog.Catalog
	logger  *logger.Logger

	dataset  atomic.Pointer[programacao.Dataset]
	reloadMu sync.Mutex
}

type config struct {
	addr        string
	dataDir     string
	catalogPath string
	logLevel    string
	watch       bool
	db          dbConfig
}

type dbConfig struct {
	addr         string
	maxOpenConns int
	maxIdleConns int
	maxIdleTime  string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(app.requestLogger)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)
		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/", app.handleGetDashboard)
			r.Get("/filters", app.handleGetFilters)
			r.Get("/kpis", app.handleGetKPIs)
			r.Get("/billing/monthly", app.handleGetMonthlyBilling)
			r.Get("/branches/share", app.handleGetBranchShare)
			r.Get("/branches/late", app.handleGetLateByBranch)
			r.Get("/schedule-types", app.handleGetScheduleTypes)
			r.Get("/punctuality", app.handleGetPunctuality)
		})
		r.Route("/ingestion", func(r chi.Router) {
			r.Get("/current", app.handleGetCurrentIngestion)
			r.Get("/history", app.handleGetIngestionHistory)
			r.Post("/", app.handleCreateIngestion)
		})
	})

	return r
}

func (app *application) requestLogger(next http.Handler) http.Handler {
	const component = "HTTP"
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		app.logger.Debug(component, "%s %s: status=%d bytes=%d duration=%s request_id=%s",
			r.Method, r.URL.Path, ww.Status(), ww.BytesWritten(), time.Since(start), middleware.GetReqID(r.Context()))
	})
}

// run serves mux until ctx is cancelled, then shuts the server down.
func (app *application) run(ctx context.Context, mux http.Handler) error {
	const component = "Server"

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 120,
		ReadTimeout:  time.Second * 40,
		IdleTimeout:  time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(component, "Server started: addr=%s", app.config.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info(component, "Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
