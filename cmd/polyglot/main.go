package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/dasmlab/polyglot/pkg/language"
	"github.com/dasmlab/polyglot/pkg/translate"
)

var (
	apiKey     = flag.String("key", "", "Translation API key (default: $POLYGLOT_API_KEY)")
	detect     = flag.Bool("detect", false, "Detect the language of the text instead of translating it")
	sourceLang = flag.String("source", "", "Source language code or name (empty: auto-detect)")
	targetLang = flag.String("target", "en", "Target language code or name")
	textFile   = flag.String("file", "", "Path to text file to translate")
	text       = flag.String("text", "", "Text to translate (if file not provided)")
	timeout    = flag.Duration("timeout", translate.DefaultTimeout, "Request timeout")
	verbose    = flag.Bool("v", false, "Enable debug logging")
)

func main() {
	flag.Parse()

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	// A missing .env is fine; the key may come from flags or the environment.
	_ = godotenv.Load()
	if *apiKey == "" {
		*apiKey = os.Getenv("POLYGLOT_API_KEY")
	}

	if err := run(logger); err != nil {
		logger.WithError(err).Fatal("polyglot failed")
	}
}

func run(logger *logrus.Logger) error {
	// Read text to translate
	var input string
	if *textFile != "" {
		data, err := os.ReadFile(*textFile)
		if err != nil {
			return fmt.Errorf("read file %s: %w", *textFile, err)
		}
		input = string(data)
	} else if *text != "" {
		input = *text
	} else {
		input = strings.Join(flag.Args(), " ")
	}

	translator, err := translate.New(*apiKey, translate.WithTimeout(*timeout), translate.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("create translator: %w", err)
	}
	defer translator.Dispose()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if *detect {
		detected, err := translator.Detect(ctx, input)
		if err != nil {
			return fmt.Errorf("detect: %w", err)
		}
		fmt.Println(detected)
		return nil
	}

	source := language.Unknown
	if *sourceLang != "" {
		if source, err = lookup(logger, *sourceLang); err != nil {
			return err
		}
	}
	target, err := lookup(logger, *targetLang)
	if err != nil {
		return err
	}

	startTime := time.Now()
	translated, err := translator.Translate(ctx, input, source, target)
	if err != nil {
		return fmt.Errorf("translate: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"source_lang": source.Code(),
		"target_lang": target.Code(),
		"duration_ms": time.Since(startTime).Milliseconds(),
	}).Debug("Translation completed")

	fmt.Println(translated)
	return nil
}

func lookup(logger *logrus.Logger, key string) (language.Language, error) {
	l, err := language.Parse(key)
	if err != nil {
		return l, fmt.Errorf("language %q: %w", key, err)
	}
	if l == language.Unknown {
		logger.WithField("language", key).Warn("Unrecognised language")
	}
	return l, nil
}
