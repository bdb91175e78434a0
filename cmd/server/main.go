package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/dasmlab/polyglot/pkg/server"
	"github.com/dasmlab/polyglot/pkg/translate"
)

var (
	// Server configuration flags
	port = flag.Int("port", 8080, "HTTP server port")

	// Translation API configuration
	apiKey      = flag.String("api-key", "", "Translation API key (default: $POLYGLOT_API_KEY)")
	apiProtocol = flag.String("api-protocol", translate.DefaultProtocol, "Protocol of the translation API")
	apiHost     = flag.String("api-host", translate.DefaultHost, "Host of the translation API")
	apiPort     = flag.Int("api-port", 0, "Port of the translation API (0: protocol default)")
	apiPath     = flag.String("api-path", translate.DefaultPath, "Path of the translation API")
	apiTimeout  = flag.Duration("api-timeout", translate.DefaultTimeout, "Timeout for translation API requests")
	envFile     = flag.String("env-file", ".env", "Optional file with environment variables")

	// Logging configuration
	logLevel = flag.String("log-level", "info", "Log level: debug, info, warn, error")
)

func main() {
	flag.Parse()

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	// Set log level
	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		logger.WithError(err).Warn("Invalid log level, using info")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if err := godotenv.Load(*envFile); err != nil && !os.IsNotExist(err) {
		logger.WithError(err).WithField("env_file", *envFile).Warn("Failed to load env file")
	}
	if *apiKey == "" {
		*apiKey = os.Getenv("POLYGLOT_API_KEY")
	}

	logger.WithFields(logrus.Fields{
		"port":      *port,
		"api_host":  *apiHost,
		"api_path":  *apiPath,
		"log_level": level.String(),
	}).Info("Starting polyglot gateway")

	translator, err := translate.NewTranslator(translate.Config{
		APIKey:   *apiKey,
		Protocol: *apiProtocol,
		Host:     *apiHost,
		Port:     *apiPort,
		Path:     *apiPath,
		Timeout:  *apiTimeout,
		Logger:   logger,
	})
	if err != nil {
		logger.WithError(err).Fatal("Failed to create translator")
	}

	httpServer := server.NewHTTPServer(translator, logger, *port)

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		errChan <- httpServer.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		translator.Dispose()
		if err != nil {
			logger.WithError(err).Fatal("Server error")
		}
	case sig := <-sigChan:
		logger.WithFields(logrus.Fields{
			"signal": sig.String(),
		}).Info("Received signal, shutting down gracefully...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(ctx); err != nil {
			logger.WithError(err).Warn("Graceful shutdown timeout")
		}
		// Only after in-flight requests have drained.
		translator.Dispose()
		logger.Info("Server stopped gracefully")
	}
}
