package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-sdk-go/aws/session"
	"golang.org/x/sync/errgroup"

	"perfdash/internal/domain/dashboard"
	"perfdash/internal/platform/awsclient"
	"perfdash/internal/platform/config"
	"perfdash/internal/platform/logging"
	"perfdash/internal/platform/metrics"
	"perfdash/internal/platform/secrets"
)

type App struct {
	Config  config.Config
	Logger  *slog.Logger
	Service *dashboard.Service
	Metrics *metrics.Collector
	Router  http.Handler
	Ops     http.Handler

	closeBackend func()
}

// New opens the configured store and assembles the routers. Clients are
// built once here and shared by every request.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	be, err := openBackend(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.StoreBackend, err)
	}

	secret, err := authSecret(ctx, cfg)
	if err != nil {
		if be.close != nil {
			be.close()
		}
		return nil, err
	}

	var collector *metrics.Collector
	opts := []dashboard.ServiceOption{
		dashboard.WithUsersLimit(cfg.UsersScanLimit),
		dashboard.WithLogger(logger),
	}
	if cfg.MetricsEnabled {
		collector = metrics.New()
		opts = append(opts, dashboard.WithObserver(collector))
	}
	service := dashboard.NewService(be.store, opts...)

	logger.Info("dashboard store ready", "backend", cfg.StoreBackend, "auth_required", cfg.AuthRequired)

	return &App{
		Config:  cfg,
		Logger:  logger,
		Service: service,
		Metrics: collector,
		Router: NewRouter(service, RouterOptions{
			Logger:       logger,
			Metrics:      collector,
			AuthSecret:   secret,
			AuthRequired: cfg.AuthRequired,
			Production:   cfg.Environment == "production",
		}),
		Ops:          NewOpsRouter(be.pinger, collector),
		closeBackend: be.close,
	}, nil
}

func authSecret(ctx context.Context, cfg config.Config) (string, error) {
	if !cfg.AuthRequired && cfg.JWTSecret == "" {
		return "", nil
	}
	var sess *session.Session
	if cfg.SecretsBackend == config.SecretsAWS {
		var err error
		if sess, err = awsclient.NewSession(cfg); err != nil {
			return "", err
		}
	}
	secret, err := secrets.JWTSecret(ctx, cfg, sess)
	if err != nil {
		return "", fmt.Errorf("resolve jwt secret: %w", err)
	}
	return secret, nil
}

func (a *App) Close() {
	if a.closeBackend != nil {
		a.closeBackend()
	}
}

// Serve runs the API and operations listeners until ctx is cancelled, then
// drains both within the shutdown timeout.
func (a *App) Serve(ctx context.Context) error {
	servers := []*http.Server{a.newHTTPServer(a.Config.Addr, a.Router)}
	if a.Config.OpsAddr != "" {
		servers = append(servers, a.newHTTPServer(a.Config.OpsAddr, a.Ops))
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		srv := srv // per-iteration copy (module targets go 1.21 loop semantics)
		g.Go(func() error {
			a.Logger.Info("listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("listen on %s: %w", srv.Addr, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		a.Logger.Info("shutting down", "timeout", a.Config.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.ShutdownTimeout)
		defer cancel()

		var errs []error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("shutdown %s: %w", srv.Addr, err))
			}
		}
		return errors.Join(errs...)
	})

	return g.Wait()
}

func (a *App) newHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  a.Config.ReadTimeout,
		WriteTimeout: a.Config.WriteTimeout,
		IdleTimeout:  a.Config.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(a.Logger.Handler(), slog.LevelWarn),
	}
}

// Setup loads and validates configuration and installs the process logger.
func Setup() (config.Config, *slog.Logger, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}
	logger := logging.New(cfg)
	slog.SetDefault(logger)
	return cfg, logger, nil
}

func Run() error {
	cfg, logger, err := Setup()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	return app.Serve(ctx)
}
