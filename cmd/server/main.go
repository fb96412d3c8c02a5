package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/pharmacy/internal/config"
	"github.com/Skotchmaster/pharmacy/internal/httpserver"
	"github.com/Skotchmaster/pharmacy/internal/repo"
	"github.com/Skotchmaster/pharmacy/internal/search"
	"github.com/Skotchmaster/pharmacy/internal/service"
	pkgdb "github.com/Skotchmaster/pharmacy/pkg/db"
	"github.com/Skotchmaster/pharmacy/pkg/logging"
	"github.com/Skotchmaster/pharmacy/pkg/metrics"
	"github.com/Skotchmaster/pharmacy/pkg/middleware/csrf"
	loggingmw "github.com/Skotchmaster/pharmacy/pkg/middleware/logging"
	"github.com/Skotchmaster/pharmacy/pkg/mykafka"
)

func main() {
	cfg := config.Load()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	r := repo.New(db)
	if cfg.AutoMigrate {
		if err := r.Migrate(context.Background()); err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}

	var events service.Publisher
	var producer *mykafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer, err = mykafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			logger.Warn("kafka_disabled", "error", err)
		} else {
			events = producer
		}
	}

	var index service.Indexer
	if cfg.ESURL != "" {
		esCtx, esCancel := context.WithTimeout(context.Background(), 5*time.Second)
		idx, err := search.NewClient(esCtx, search.Config{
			URL:      cfg.ESURL,
			User:     cfg.ESUser,
			Password: cfg.ESPassword,
			Index:    cfg.ESIndex,
		})
		esCancel()
		if err != nil {
			logger.Warn("search_index_disabled", "error", err)
		} else {
			index = idx
		}
	}

	transitions := service.Permissive
	if cfg.StrictOrderTransitions {
		transitions = service.Forward
		logger.Info("strict_order_transitions_enabled")
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.Secure())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(metrics.Middleware())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: true,
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, echo.HeaderXCSRFToken},
		ExposeHeaders:    []string{echo.HeaderXCSRFToken},
	}))
	e.Use(csrf.Middleware(csrf.Config{Secure: cfg.SecureCookies}))
	e.Pre(echomw.RemoveTrailingSlash())

	httpserver.Register(e, &httpserver.Deps{
		Auth: &httpserver.AuthHTTP{
			Svc: &service.AuthService{
				Repo:      r,
				Events:    events,
				JWTSecret: cfg.JWTSecret,
				TokenTTL:  cfg.TokenTTL,
			},
			SecureCookies: cfg.SecureCookies,
		},
		Catalog:   &httpserver.CatalogHTTP{Svc: &service.CatalogService{Repo: r, Events: events, Index: index}},
		Dashboard: &httpserver.DashboardHTTP{Svc: &service.InventoryService{Repo: r}},
		Orders:    &httpserver.OrderHTTP{Svc: &service.OrderService{Repo: r, Events: events, Transitions: transitions}},
		Profile:   &httpserver.ProfileHTTP{Svc: &service.ProfileService{Repo: r}},
		JWTSecret: cfg.JWTSecret,
		Ready:     r.Ping,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)

	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Warn("kafka_close_failed", "error", err)
		}
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info("pharmacy stopped")
}
