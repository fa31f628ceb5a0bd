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

	"parceltrack/cmd"
	"parceltrack/internal/adapters/out/postgres"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/gorm/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(slogger)

	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	settings := postgres.ConnectionSettings{
		Host:     configs.DBHost,
		Port:     configs.DBPort,
		User:     configs.DBUser,
		Password: configs.DBPassword,
		DBName:   configs.DBName,
		SSLMode:  configs.DBSslMode,
	}
	if err = postgres.EnsureDatabase(ctx, settings); err != nil {
		log.Fatalf("Error preparing database: %v", err)
	}
	gormDB, err := postgres.Open(settings, logger.Warn)
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err = postgres.Migrate(gormDB); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, slogger)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	e, err := app.CreateHTTPServer(ctx)
	if err != nil {
		log.Fatalf("Error building HTTP server: %v", err)
	}
	startWebServer(ctx, e, configs.HTTPPort, slogger)
}

func startWebServer(ctx context.Context, e *echo.Echo, port string, slogger *slog.Logger) {
	e.Logger.SetLevel(log.INFO)

	go func() {
		slogger.Info("HTTP server started", "port", port)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	slogger.Info("Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slogger.Error("HTTP server shutdown failed", "error", err)
	}
}
