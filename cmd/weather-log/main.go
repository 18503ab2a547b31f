package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/weather-log/internal/api/http"
	"github.com/i474232898/weather-log/internal/config"
	"github.com/i474232898/weather-log/internal/geocode"
	"github.com/i474232898/weather-log/internal/scheduler"
	"github.com/i474232898/weather-log/internal/shell"
	"github.com/i474232898/weather-log/internal/store"
	"github.com/i474232898/weather-log/internal/weather"
	"github.com/i474232898/weather-log/internal/weather/providers"
)

func main() {
	cmd := "shell"
	args := os.Args[1:]
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "shell":
		runShell(args)
	case "serve":
		runServe(args)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: weather-log [shell|serve] [options]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "  shell   interactive menu (default)")
	fmt.Fprintln(os.Stderr, "  serve   HTTP API and the optional auto-journal job")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "options:")
	fmt.Fprintln(os.Stderr, "  -store   journal file (overrides WEATHERLOG_STORE_PATH)")
}

// setup loads configuration and builds the service graph shared by both subcommands.
func setup(name string, args []string) (*config.AppConfig, *weather.Service) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	storePath := fs.String("store", "", "journal file (overrides WEATHERLOG_STORE_PATH)")
	fs.Parse(args)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *storePath != "" {
		cfg.StorePath = *storePath
	}

	journal, err := store.Open(cfg.StorePath)
	if err != nil {
		// A corrupt journal is never reset or overwritten.
		log.Fatalf("failed to open observation store: %v", err)
	}
	log.Printf("INFO: journal %s (%d dates)", journal.Path(), journal.Len())

	// Shared HTTP client for outbound met.no calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}
	metno := providers.NewMetNoProvider(httpClient, cfg.MetNoBaseURL, cfg.UserAgent)

	var opts []weather.Option
	if cfg.GeocoderAPIKey != "" {
		opts = append(opts, weather.WithGeocoder(geocode.NewGoogleGeocoder(cfg.GeocoderAPIKey)))
	}

	return cfg, weather.NewService(journal, metno, opts...)
}

func runShell(args []string) {
	_, service := setup("shell", args)

	sh := shell.New(service, os.Stdin, os.Stdout)
	if err := sh.Run(context.Background()); err != nil {
		log.Fatalf("shell: %v", err)
	}
}

func runServe(args []string) {
	cfg, service := setup("serve", args)

	// Daily auto-journal for the home location.
	if cfg.Autolog.Enabled {
		sched := scheduler.New(service, cfg.Autolog.Home(), cfg.Autolog.At)
		if err := sched.Start(); err != nil {
			log.Fatalf("failed to start scheduler: %v", err)
		}
		defer sched.Stop()
	}

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weather-log",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-log",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service)

	// Start server with graceful shutdown
	go func() {
		log.Printf("INFO: listening on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
