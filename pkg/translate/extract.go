package translate

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/dasmlab/polyglot/pkg/language"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// translateResponse is the v2 response body. DetectedSourceLanguage is only
// present when the request had no source language.
type translateResponse struct {
	Data struct {
		Translations []translation `json:"translations"`
	} `json:"data"`
}

type translation struct {
	TranslatedText         *string `json:"translatedText"`
	DetectedSourceLanguage *string `json:"detectedSourceLanguage,omitempty"`
}

// firstTranslation decodes body and returns its first translation entry.
func firstTranslation(body string) (translation, error) {
	var resp translateResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return translation{}, fmt.Errorf("%w: %v", ErrUnexpectedPayload, err)
	}
	if len(resp.Data.Translations) == 0 {
		return translation{}, fmt.Errorf("%w: no translations in %q", ErrUnexpectedPayload, body)
	}
	first := resp.Data.Translations[0]
	if first.TranslatedText == nil {
		return translation{}, fmt.Errorf("%w: no translated text in %q", ErrUnexpectedPayload, body)
	}
	return first, nil
}

// ExtractTranslation returns the translated text of the first translation
// in body, with HTML-encoded apostrophes decoded.
func ExtractTranslation(body string) (string, error) {
	t, err := firstTranslation(strings.ReplaceAll(body, "&#39;", "'"))
	if err != nil {
		return "", err
	}
	return *t.TranslatedText, nil
}

// ExtractLanguage returns the detected source language of the first
// translation in body. Codes outside the registry resolve to
// language.Unknown; a body without a detected language is an error.
func ExtractLanguage(body string) (language.Language, error) {
	t, err := firstTranslation(body)
	if err != nil {
		return language.Language{}, err
	}
	if t.DetectedSourceLanguage == nil {
		return language.Language{}, fmt.Errorf("%w: no detected source language in %q", ErrUnexpectedPayload, body)
	}
	if strings.TrimSpace(*t.DetectedSourceLanguage) == "" {
		return language.Unknown, nil
	}
	return language.From(*t.DetectedSourceLanguage)
}
