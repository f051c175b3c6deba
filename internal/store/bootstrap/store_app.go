package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	auth "github.com/Lexv0lk/vending-machine/internal/auth/domain"
	redisinfra "github.com/Lexv0lk/vending-machine/internal/auth/infrastructure/redis"
	"github.com/Lexv0lk/vending-machine/internal/pkg/database"
	"github.com/Lexv0lk/vending-machine/internal/pkg/logging"
	"github.com/Lexv0lk/vending-machine/internal/store/application"
	"github.com/Lexv0lk/vending-machine/internal/store/domain"
	natsinfra "github.com/Lexv0lk/vending-machine/internal/store/infrastructure/nats"
	"github.com/Lexv0lk/vending-machine/internal/store/infrastructure/postgres"
	"github.com/Lexv0lk/vending-machine/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout = 5 * time.Second
	sweepInterval   = time.Minute
)

type StoreApp struct {
	cfg    StoreConfig
	logger logging.Logger

	server *http.Server
}

func NewStoreApp(cfg StoreConfig, logger logging.Logger) *StoreApp {
	return &StoreApp{
		cfg:    cfg,
		logger: logger,
	}
}

// Run blocks until ctx is done or one of the background loops fails. The
// pending state is flushed to the database before Run returns.
func (a *StoreApp) Run(ctx context.Context) error {
	logger := a.logger
	cfg := a.cfg
	dbURL := cfg.DbSettings.GetUrl()

	if err := database.MigrateDatabase(ctx, dbURL, migrations.FS, migrations.Dir); err != nil {
		return err
	}

	dbpool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer dbpool.Close()

	txManager := database.NewDelegateTxManager(dbpool, logger)
	repository := postgres.NewStateRepository(dbpool, txManager, logger)

	accounts, err := repository.LoadAccounts(ctx)
	if err != nil {
		return err
	}

	products, err := repository.LoadProducts(ctx)
	if err != nil {
		return err
	}

	logger.Info("state loaded", "accounts", len(accounts), "products", len(products))

	publisher, closePublisher, err := a.connectPublisher()
	if err != nil {
		return err
	}
	defer closePublisher()

	limiter, closeLimiter, err := a.connectLimiter(ctx)
	if err != nil {
		return err
	}
	defer closeLimiter()

	syncer := application.NewSnapshotSyncer(repository, cfg.SyncInterval, logger)

	engine, err := NewEngine(EngineDeps{
		Accounts:   accounts,
		Products:   products,
		Tracker:    syncer,
		Publisher:  publisher,
		Limiter:    limiter,
		JwtSecret:  cfg.JwtSecret,
		SessionTTL: cfg.SessionTTL,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to build engine: %w", err)
	}

	a.server = &http.Server{
		Addr:    cfg.HttpPort,
		Handler: engine.Router,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "port", cfg.HttpPort)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("error while starting http server: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.shutdownServer()
		return nil
	})

	g.Go(func() error {
		return syncer.Run(gctx)
	})

	g.Go(func() error {
		return engine.Sessions.Run(gctx, sweepInterval)
	})

	runErr := g.Wait()

	// Requests that were still in flight during the server shutdown may have left changes behind.
	flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := syncer.Flush(flushCtx); err != nil {
		logger.Error("failed to flush remaining state", "error", err.Error(), "pending", syncer.Pending())
		return errors.Join(runErr, err)
	}

	return runErr
}

func (a *StoreApp) shutdownServer() {
	a.logger.Info("shutting down http server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("server shutdown failed", "error", err.Error())
	}
}

func (a *StoreApp) connectPublisher() (domain.EventPublisher, func(), error) {
	if a.cfg.NatsURL == "" {
		a.logger.Info("nats url is not set, ledger events are disabled")
		return natsinfra.NopPublisher{}, func() {}, nil
	}

	conn, err := natsinfra.Connect(a.cfg.NatsURL)
	if err != nil {
		return nil, nil, err
	}

	closeFn := func() {
		if err := conn.Drain(); err != nil {
			a.logger.Warn("failed to drain nats connection", "error", err.Error())
		}
	}

	return natsinfra.NewEventPublisher(conn), closeFn, nil
}

func (a *StoreApp) connectLimiter(ctx context.Context) (auth.AttemptLimiter, func(), error) {
	if a.cfg.RedisAddr == "" {
		a.logger.Info("redis address is not set, login throttling is disabled")
		return redisinfra.NopLimiter{}, func() {}, nil
	}

	client, err := redisinfra.Connect(ctx, a.cfg.RedisAddr)
	if err != nil {
		return nil, nil, err
	}

	closeFn := func() {
		if err := client.Close(); err != nil {
			a.logger.Warn("failed to close redis client", "error", err.Error())
		}
	}

	limiter := redisinfra.NewAttemptLimiter(client, int64(a.cfg.LoginAttemptsLimit), a.cfg.LoginAttemptsWindow)
	return limiter, closeFn, nil
}
