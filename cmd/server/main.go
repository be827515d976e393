package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/light-bringer/catalog-service/internal/services"
	"github.com/light-bringer/catalog-service/internal/transport/http/catalog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

func run() error {
	ctx := context.Background()

	config := loadConfig()

	log.Printf("Starting Catalog Service...")
	log.Printf("Spanner Database: %s", config.SpannerDB)
	log.Printf("HTTP Port: %s", config.HTTPPort)

	serviceOpts, err := services.NewServiceOptions(ctx, config.SpannerDB)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer serviceOpts.Close()

	if config.GinMode != "" {
		gin.SetMode(config.GinMode)
	}
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), catalog.RequestID())
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	serviceOpts.Handler.RegisterRoutes(router)

	httpServer := &http.Server{
		Addr:    ":" + config.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("HTTP server listening on :%s", config.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("HTTP server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	return nil
}

// Config holds application configuration.
type Config struct {
	SpannerDB string
	HTTPPort  string
	GinMode   string
}

// loadConfig loads configuration from a .env file (if present) and the
// environment, with local-development defaults.
func loadConfig() Config {
	if err := godotenv.Load(); err == nil {
		log.Printf("Loaded configuration from .env")
	}

	spannerDB := os.Getenv("SPANNER_DATABASE")
	if spannerDB == "" {
		// Default for local development with emulator
		spannerDB = "projects/test-project/instances/dev-instance/databases/catalog-db"
	}

	httpPort := os.Getenv("HTTP_PORT")
	if httpPort == "" {
		httpPort = "8080"
	}

	return Config{
		SpannerDB: spannerDB,
		HTTPPort:  httpPort,
		GinMode:   os.Getenv("GIN_MODE"),
	}
}
