package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/dasmlab/polyglot/pkg/language"
	"github.com/dasmlab/polyglot/pkg/translate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Translator is the part of *translate.Translator the server needs.
type Translator interface {
	Detect(ctx context.Context, text string) (language.Language, error)
	Translate(ctx context.Context, text string, source, target language.Language) (string, error)
	Languages() []language.Language
}

// HTTPServer exposes detect and translate over HTTP, plus health and metrics.
type HTTPServer struct {
	translator Translator
	logger     *logrus.Logger
	server     *http.Server
}

// NewHTTPServer creates a new HTTP server listening on port.
func NewHTTPServer(translator Translator, logger *logrus.Logger, port int) *HTTPServer {
	if logger == nil {
		logger = logrus.New()
	}

	s := &HTTPServer{
		translator: translator,
		logger:     logger,
	}
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the routes served by s.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/detect", s.handleDetect)
	mux.HandleFunc("/api/v1/translate", s.handleTranslate)
	mux.HandleFunc("/api/v1/languages", s.handleLanguages)

	// Health check endpoint
	mux.HandleFunc("/health", s.handleHealth)

	// Prometheus metrics endpoint
	mux.Handle("/metrics", promhttp.Handler())

	return mux
}

// Start serves until Shutdown is called.
func (s *HTTPServer) Start() error {
	s.logger.WithFields(logrus.Fields{
		"addr": s.server.Addr,
	}).Info("Starting HTTP server")

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// handleDetect serves GET /api/v1/detect?q=...
func (s *HTTPServer) handleDetect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	detected, err := s.translator.Detect(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{
		"language": detected.Code(),
		"name":     detected.Name(),
	})
}

// handleTranslate serves GET /api/v1/translate?q=...&source=...&target=...
// Languages may be codes, names or BCP 47 tags. An absent source asks the
// service to detect it.
func (s *HTTPServer) handleTranslate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()

	source := language.Unknown
	if key := query.Get("source"); key != "" {
		var err error
		if source, err = language.Parse(key); err != nil {
			s.writeError(w, err)
			return
		}
	}

	target, err := language.Parse(query.Get("target"))
	if err != nil {
		s.writeError(w, fmt.Errorf("target: %w", err))
		return
	}

	translated, err := s.translator.Translate(r.Context(), query.Get("q"), source, target)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{
		"translatedText": translated,
	})
}

func (s *HTTPServer) handleLanguages(w http.ResponseWriter, r *http.Request) {
	languages := s.translator.Languages()
	out := make([]map[string]string, 0, len(languages))
	for _, l := range languages {
		out = append(out, map[string]string{"code": l.Code(), "name": l.Name()})
	}
	s.writeJSON(w, http.StatusOK, out)
}

// handleHealth provides a health check endpoint.
func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// writeError maps translator errors onto HTTP statuses.
func (s *HTTPServer) writeError(w http.ResponseWriter, err error) {
	var (
		respErr *translate.ResponseError
		connErr *translate.ConnectionError
	)

	status := http.StatusInternalServerError
	response := map[string]interface{}{
		"error": err.Error(),
	}

	switch {
	case errors.Is(err, translate.ErrInvalidArgument), errors.Is(err, translate.ErrNilArgument):
		status = http.StatusBadRequest
	case errors.As(err, &respErr):
		status = http.StatusBadGateway
		response["upstream_status"] = respErr.StatusCode
		response["upstream_reason"] = respErr.Reason
	case errors.As(err, &connErr):
		status = http.StatusServiceUnavailable
	case errors.Is(err, translate.ErrDisposed):
		status = http.StatusServiceUnavailable
	}

	s.logger.WithError(err).WithFields(logrus.Fields{
		"status_code": status,
	}).Warn("Request failed")

	s.writeJSON(w, status, response)
}

func (s *HTTPServer) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.WithError(err).Error("Failed to encode response")
	}
}
