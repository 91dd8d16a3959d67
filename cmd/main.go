package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/I-s-h-a-n-1/I-Tech/internal/config"
	"github.com/I-s-h-a-n-1/I-Tech/internal/handlers"
	"github.com/I-s-h-a-n-1/I-Tech/internal/logger"
	"github.com/I-s-h-a-n-1/I-Tech/internal/repository"
	"github.com/I-s-h-a-n-1/I-Tech/internal/security"
	"github.com/I-s-h-a-n-1/I-Tech/internal/server"
	"github.com/I-s-h-a-n-1/I-Tech/internal/service"
)

// Default admin seeded on first run so the portal is reachable before any
// other account exists. Operators should change this immediately.
const (
	defaultAdminName     = "Admin"
	defaultAdminEmail    = "admin@example.com"
	defaultAdminPassword = "admin123"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is optional; real deployments export the variables directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	log := logger.Get(cfg.LogLevel)

	db, err := openDB(cfg, log)
	if err != nil {
		log.Fatalw("failed to init database", "driver", cfg.DBDriver, "err", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Errorw("failed to close database", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(db)
	services := service.NewService(repos)
	sessions := security.NewSessionManager(cfg.SecretKey)
	apiHandler := handlers.NewHandler(services, sessions, log)

	if err := services.Users.EnsureAdmin(context.Background(),
		defaultAdminName, defaultAdminEmail, defaultAdminPassword); err != nil {
		log.Fatalw("failed to seed default admin", "err", err)
	}

	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	waitForShutdown(srv, log)
}

// openDB initializes the store using configuration.
func openDB(cfg *config.Config, log *logger.Logger) (*sql.DB, error) {
	if cfg.DBDriver == "sqlite" {
		log.Infow("using sqlite store", "path", cfg.DBPath)
	}
	return repository.InitDB(cfg.DBDriver, cfg.DSN())
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
