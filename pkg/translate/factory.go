package translate

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultProtocol, DefaultHost and DefaultPath locate the v2 API.
	DefaultProtocol = "https"
	DefaultHost     = "www.googleapis.com"
	DefaultPath     = "/language/translate/v2"
	// DefaultTimeout applies only when Config.HTTPClient is nil.
	DefaultTimeout = 30 * time.Second
)

var apiKeyPattern = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)

// Config holds configuration for creating a Translator instance.
type Config struct {
	// APIKey is sent as the key parameter of every request.
	APIKey string
	// Protocol, Host, Port and Path locate the API. Empty values take the
	// defaults; a Port <= 0 means the protocol's default port.
	Protocol string
	Host     string
	Port     int
	Path     string
	// HTTPClient executes requests. If nil, a client with Timeout is created.
	HTTPClient *http.Client
	// Timeout for the default client. Defaults to DefaultTimeout.
	Timeout time.Duration
	// Logger is the logger instance to use. If nil, a default logger is created.
	Logger *logrus.Logger
}

// Option adjusts the Config used by New.
type Option func(*Config)

// WithEndpoint points the translator at protocol://host:port/path.
func WithEndpoint(protocol, host string, port int, path string) Option {
	return func(cfg *Config) {
		cfg.Protocol = protocol
		cfg.Host = host
		cfg.Port = port
		cfg.Path = path
	}
}

// WithHTTPClient sets the client used to execute requests.
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *Config) {
		cfg.HTTPClient = client
	}
}

// WithTimeout sets the timeout of the default client.
func WithTimeout(timeout time.Duration) Option {
	return func(cfg *Config) {
		cfg.Timeout = timeout
	}
}

// WithLogger sets the logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = logger
	}
}

// NewTranslator creates a Translator from cfg after validating the API key.
func NewTranslator(cfg Config) (*Translator, error) {
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	if !apiKeyPattern.MatchString(apiKey) {
		return nil, fmt.Errorf("%w: API key of length [%d] must be non-empty and alphanumeric", ErrInvalidArgument, len(cfg.APIKey))
	}

	if cfg.Protocol == "" {
		cfg.Protocol = DefaultProtocol
	}
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Path == "" {
		cfg.Path = DefaultPath
	}
	if cfg.HTTPClient == nil {
		if cfg.Timeout <= 0 {
			cfg.Timeout = DefaultTimeout
		}
		cfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	cfg.Logger.WithFields(logrus.Fields{
		"protocol": cfg.Protocol,
		"host":     cfg.Host,
		"port":     cfg.Port,
		"path":     cfg.Path,
	}).Info("Creating translator instance")

	return &Translator{
		apiKey:  apiKey,
		service: NewHTTPService(cfg.Protocol, cfg.Host, cfg.Port, cfg.Path, cfg.HTTPClient, cfg.Logger),
		logger:  cfg.Logger,
	}, nil
}
