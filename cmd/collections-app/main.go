package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/shanavasvb/payment-app-frontend/internal/api/middleware"
	"github.com/shanavasvb/payment-app-frontend/internal/app"
	"github.com/shanavasvb/payment-app-frontend/internal/client"
	"github.com/shanavasvb/payment-app-frontend/internal/config"
	"github.com/shanavasvb/payment-app-frontend/internal/domain/customer"
	"github.com/shanavasvb/payment-app-frontend/internal/domain/payment"
	"github.com/shanavasvb/payment-app-frontend/internal/infrastructure/logging"
	"github.com/shanavasvb/payment-app-frontend/internal/notify"
	"github.com/shanavasvb/payment-app-frontend/internal/web"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 20 * time.Second

type screens struct {
	navigator *app.Navigator
	handler   *web.Handler
}

func main() {
	cfg, logger := initializeApp()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s, err := initializeScreens(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize screens", "error", err)
		os.Exit(1)
	}

	limiter := middleware.NewRateLimiterMiddleware(cfg.Server.RateLimit, logger)
	defer limiter.Stop()

	router := web.SetupRouter(s.handler, limiter, cfg, logger)
	srv := newServer(cfg.Server, router, logger)

	if err := run(ctx, srv, s.navigator, logger); err != nil {
		logger.Error("Application exited with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Application shutdown process complete.")
}

func initializeApp() (*config.Config, *slog.Logger) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.Logger)
	logger.Info("Application starting...", "config_source", viper.ConfigFileUsed())

	return cfg, logger
}

// initializeScreens wires both view models to the backend client and
// registers them with the navigator. Nothing is fetched until a screen is
// first visited.
func initializeScreens(cfg *config.Config, logger *slog.Logger) (*screens, error) {
	backend := client.New(cfg.Backend, logger)
	inbox := notify.NewInbox(cfg.Collection.AlertCapacity, logger)

	registry := customer.NewRegistry(backend, inbox, customer.Options{
		BannerTimeout:  cfg.Collection.BannerTimeout,
		CurrencySymbol: cfg.Display.CurrencySymbol,
	}, logger)
	history := payment.NewHistory(backend, inbox, logger)

	navigator := app.NewNavigator(logger)
	navigator.Register(app.ScreenCollection, registry)
	navigator.Register(app.ScreenHistory, history)

	handler, err := web.NewHandler(registry, history, navigator, inbox, web.Options{
		CurrencySymbol: cfg.Display.CurrencySymbol,
		Location:       loadLocation(cfg.Display.TimeZone, logger),
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("building web handler: %w", err)
	}
	return &screens{navigator: navigator, handler: handler}, nil
}

func loadLocation(name string, logger *slog.Logger) *time.Location {
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		logger.Warn("Unknown display time zone, using local time", "time_zone", name, "error", err)
		return time.Local
	}
	return loc
}

func newServer(cfg config.ServerConfig, router http.Handler, logger *slog.Logger) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
}

// run serves until ctx is cancelled or the server fails, then shuts the
// server down and unmounts every screen.
func run(ctx context.Context, srv *http.Server, navigator *app.Navigator, logger *slog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		logger.Info("Server closed gracefully.")
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Starting graceful shutdown...", "cause", context.Cause(gctx))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var errs []error
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server graceful shutdown failed", "error", err)
			errs = append(errs, err, srv.Close())
		}
		if err := navigator.Shutdown(shutdownCtx); err != nil {
			logger.Error("Unmounting screens failed", "error", err)
			errs = append(errs, err)
		}
		return errors.Join(errs...)
	})

	return g.Wait()
}
