package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/GlebRadaev/smmpanel/internal/config"
	"github.com/GlebRadaev/smmpanel/internal/handlers"
	"github.com/GlebRadaev/smmpanel/internal/pg"
	"github.com/GlebRadaev/smmpanel/internal/provider"
	"github.com/GlebRadaev/smmpanel/internal/repo"
	"github.com/GlebRadaev/smmpanel/internal/service"
	"github.com/GlebRadaev/smmpanel/pkg/clients"
	"github.com/GlebRadaev/smmpanel/pkg/logger"
	"github.com/GlebRadaev/smmpanel/pkg/utils"
)

const (
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
	pingTimeout       = 2 * time.Second
)

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type pinger interface {
	Ping(ctx context.Context) error
}

type Application struct {
	cfg  *config.Config
	pool *pgxpool.Pool
	db   pinger
	api  *handlers.Handlers
	srv  *service.Services
	repo *repo.Repositories

	errCh chan error
	wg    sync.WaitGroup
	ready atomic.Bool
}

func New() *Application {
	return &Application{
		errCh: make(chan error, 1),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("can't load config: %w", err)
	}
	if err = logger.InitLogger(cfg.LogLvl); err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}
	a.cfg = cfg

	if err = a.connect(ctx); err != nil {
		return err
	}
	a.build()

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}
	if err = a.srv.Refresher.Start(ctx); err != nil {
		return fmt.Errorf("can't start order refresher: %w", err)
	}

	a.ready.Store(true)
	zap.L().Info("all systems started successfully",
		zap.String("address", cfg.Address),
		zap.String("provider", cfg.ProviderURL))
	return nil
}

func (a *Application) connect(ctx context.Context) error {
	pool, err := getPgxpool(ctx, a.cfg)
	if err != nil {
		zap.L().Error("build pgx pool failed", zap.Error(err))
		return fmt.Errorf("can't build pgx pool: %w", err)
	}
	if err := pg.RunMigrations(ctx, pool); err != nil {
		pool.Close()
		zap.L().Error("migrations failed", zap.Error(err))
		return fmt.Errorf("can't run migrations: %w", err)
	}
	a.pool = pool
	a.db = pool
	return nil
}

func (a *Application) build() {
	a.repo = repo.New(pg.New(a.pool), pg.NewTXManager(a.pool))
	smm := provider.NewClient(a.cfg.ProviderURL, a.cfg.ProviderKey, clients.NewHTTPClient())
	a.srv = service.New(a.repo, smm, a.cfg)
	a.api = handlers.New(a.srv)
}

func getPgxpool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	cfgpool, err := pgxpool.ParseConfig(cfg.Database)
	if err != nil {
		return nil, err
	}
	dbpool, err := pgxpool.NewWithConfig(ctx, cfgpool)
	if err != nil {
		return nil, err
	}
	if err = dbpool.Ping(ctx); err != nil {
		dbpool.Close()
		return nil, err
	}
	return dbpool, nil
}

// healthz answers 200 once everything started and the database still responds.
func (a *Application) healthz(w http.ResponseWriter, r *http.Request) {
	if !a.ready.Load() {
		utils.RespondWithError(w, http.StatusServiceUnavailable, "Starting")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()
	if err := a.db.Ping(ctx); err != nil {
		zap.L().Warn("health check failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusServiceUnavailable, "Database unavailable")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	router.Get("/healthz", a.healthz)
	a.api.InitRoutes(router)

	server := &http.Server{
		Addr:              a.cfg.Address,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()
		a.ready.Store(false)

		sCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(sCtx); err != nil {
			zap.L().Error("http server shutdown failed", zap.Error(err))
		}
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server", zap.String("address", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

// Wait blocks until ctx is done, then drains the servers and closes the pool.
// Any server error cancels ctx and is returned.
func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	close(a.errCh)
	wg.Wait()

	if a.pool != nil {
		a.pool.Close()
	}
	return appErr
}
