package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diewo77/inventory-api/internal/config"
	"github.com/diewo77/inventory-api/internal/db"
	"github.com/diewo77/inventory-api/internal/logger"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var (
	migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")
	seedOnlyFlag    = flag.Bool("seed-only", false, "Run DB seed and exit")
)

func main() {
	flag.Parse()

	// Load environment variables from .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		log.WithError(envErr).Warn("error loading .env file (continuing)")
	}

	log.WithField("database", cfg.Database.Redacted()).Info("connecting to database")
	dbConn, err := db.Open(cfg.Database, log)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}

	if *migrateOnlyFlag {
		if err := db.Migrate(dbConn); err != nil {
			log.WithError(err).Fatal("migration failed")
		}
		log.Info("migrations completed successfully")
		return
	}

	if *seedOnlyFlag {
		n, err := db.Seed(dbConn)
		if err != nil {
			log.WithError(err).Fatal("seeding failed")
		}
		log.WithField("categories", n).Info("seeding completed successfully")
		return
	}

	// Schema is created on startup unless MIGRATIONS=false
	if cfg.App.Migrations {
		if err := db.Migrate(dbConn); err != nil {
			log.WithError(err).Fatal("migration failed")
		}
		log.Info("migrations completed")
	}

	if cfg.App.Seed {
		n, err := db.Seed(dbConn)
		if err != nil {
			log.WithError(err).Fatal("seeding failed")
		}
		if n > 0 {
			log.WithField("categories", n).Info("seeded default categories")
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      NewApp(dbConn, log, appOptions(cfg)),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, shutdownCtx := errgroup.WithContext(shutdownCtx)

	g.Go(func() error {
		log.WithField("port", cfg.Server.Port).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-shutdownCtx.Done()
		log.Info("shutting down, waiting for pending requests")
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.WithError(err).Error("server stopped with error")
	}
	closeDB(dbConn, log)
	log.Info("server stopped")
}

func closeDB(conn *gorm.DB, log *logrus.Logger) {
	sqlDB, err := conn.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.WithError(err).Warn("closing database")
	}
}

// appOptions derives router settings from the configuration. The request
// timeout never outlives the connection write deadline.
func appOptions(cfg *config.Config) Options {
	return Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RequestTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}
}
