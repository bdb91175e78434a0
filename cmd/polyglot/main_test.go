package main

import (
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dasmlab/polyglot/pkg/language"
	"github.com/dasmlab/polyglot/pkg/translate"
)

func setFlags(t *testing.T, key, input string, detectOnly bool) {
	oldKey, oldText, oldDetect := *apiKey, *text, *detect
	t.Cleanup(func() { *apiKey, *text, *detect = oldKey, oldText, oldDetect })
	*apiKey, *text, *detect = key, input, detectOnly
}

func TestRunReturnsConstructionError(t *testing.T) {
	logger, _ := test.NewNullLogger()
	setFlags(t, "bad key;", "hello", false)

	err := run(logger)
	assert.ErrorIs(t, err, translate.ErrInvalidArgument)
}

func TestRunReturnsValidationError(t *testing.T) {
	logger, _ := test.NewNullLogger()
	setFlags(t, "valid-key", "", true)

	err := run(logger)
	assert.ErrorIs(t, err, translate.ErrInvalidArgument)
}

func TestLookup(t *testing.T) {
	logger, hook := test.NewNullLogger()

	l, err := lookup(logger, "pt-BR")
	require.NoError(t, err)
	assert.Equal(t, language.Portuguese, l)
	assert.Empty(t, hook.AllEntries())

	l, err = lookup(logger, "klingon")
	require.NoError(t, err)
	assert.Equal(t, language.Unknown, l)
	assert.Len(t, hook.AllEntries(), 1)

	_, err = lookup(logger, " ")
	assert.ErrorIs(t, err, language.ErrInvalidArgument)
}
