package translate

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/dasmlab/polyglot/pkg/language"
)

// MaxTextSize is the maximum number of characters, after trimming, that
// Detect and Translate accept.
const MaxTextSize = 1968

// Translator detects and translates text through the remote API.
// It is safe for concurrent use until Dispose is called; Dispose must not
// race with outstanding calls.
type Translator struct {
	apiKey   string
	service  *HTTPService
	logger   *logrus.Logger
	disposed atomic.Bool
}

// New creates a Translator for the default endpoint with the given API key.
// The trimmed key must be a non-empty run of letters, digits and hyphens.
// A key that looks valid but is not is only reported by the service, as a
// *ResponseError on the first call.
func New(apiKey string, opts ...Option) (*Translator, error) {
	cfg := Config{APIKey: apiKey}
	for _, opt := range opts {
		opt(&cfg)
	}
	return NewTranslator(cfg)
}

// Detect returns the language of text as detected by the service.
func (t *Translator) Detect(ctx context.Context, text string) (language.Language, error) {
	startTime := time.Now()
	detected, err := t.detect(ctx, text)
	t.service.metrics.RecordCall("detect", time.Since(startTime), len(text), err)
	return detected, err
}

func (t *Translator) detect(ctx context.Context, text string) (language.Language, error) {
	if err := t.ensureUsable(); err != nil {
		return language.Language{}, err
	}
	if err := validateText(text); err != nil {
		return language.Language{}, err
	}

	t.logger.WithFields(logrus.Fields{
		"text_length": len(text),
	}).Debug("Detecting language")

	body, err := t.service.Query(ctx, t.buildQuery(text, language.Unknown, language.English))
	if err != nil {
		return language.Language{}, err
	}

	return ExtractLanguage(body)
}

// Translate translates text from source to target. A source of
// language.Unknown lets the service detect it; target must be known.
func (t *Translator) Translate(ctx context.Context, text string, source, target language.Language) (string, error) {
	startTime := time.Now()
	translated, err := t.translate(ctx, text, source, target)
	t.service.metrics.RecordCall("translate", time.Since(startTime), len(text), err)
	return translated, err
}

func (t *Translator) translate(ctx context.Context, text string, source, target language.Language) (string, error) {
	if err := t.ensureUsable(); err != nil {
		return "", err
	}
	if err := validateText(text); err != nil {
		return "", err
	}
	if source.IsZero() {
		return "", fmt.Errorf("%w: source language", ErrNilArgument)
	}
	if target.IsZero() {
		return "", fmt.Errorf("%w: target language", ErrNilArgument)
	}
	if target == language.Unknown {
		return "", fmt.Errorf("%w: target language must be known", ErrInvalidArgument)
	}

	t.logger.WithFields(logrus.Fields{
		"source_lang": source.Code(),
		"target_lang": target.Code(),
		"text_length": len(text),
	}).Debug("Translating text")

	body, err := t.service.Query(ctx, t.buildQuery(text, source, target))
	if err != nil {
		return "", err
	}

	return ExtractTranslation(body)
}

// Languages returns the languages the translator knows about.
func (t *Translator) Languages() []language.Language {
	return language.All()
}

// Dispose releases the transport. Every later Detect or Translate fails
// with ErrDisposed.
func (t *Translator) Dispose() {
	if t.disposed.Swap(true) {
		return
	}
	t.service.Dispose()
	t.logger.Debug("Translator disposed")
}

func (t *Translator) ensureUsable() error {
	if t.disposed.Load() {
		return ErrDisposed
	}
	return nil
}

// buildQuery omits source when it is Unknown so that the service detects it.
func (t *Translator) buildQuery(text string, source, target language.Language) string {
	if source == language.Unknown {
		return fmt.Sprintf("key=%s&target=%s&q=%s", t.apiKey, target.Code(), url.QueryEscape(text))
	}
	return fmt.Sprintf("key=%s&source=%s&target=%s&q=%s", t.apiKey, source.Code(), target.Code(), url.QueryEscape(text))
}

func validateText(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return fmt.Errorf("%w: text cannot be empty", ErrInvalidArgument)
	}
	if size := utf8.RuneCountInString(trimmed); size > MaxTextSize {
		return fmt.Errorf("%w: text size [%d] is greater than limit [%d]", ErrInvalidArgument, size, MaxTextSize)
	}
	return nil
}
