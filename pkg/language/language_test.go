package language

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	textlang "golang.org/x/text/language"
)

func TestFromRoundTrip(t *testing.T) {
	for _, l := range All() {
		byCode, err := From(l.Code())
		require.NoError(t, err)
		assert.Equal(t, l, byCode, "lookup by code %q", l.Code())

		byUpperCode, err := From(strings.ToUpper(l.Code()))
		require.NoError(t, err)
		assert.Equal(t, l, byUpperCode, "lookup by upper-case code %q", l.Code())

		byName, err := From(strings.ToLower(l.Name()))
		require.NoError(t, err)
		assert.Equal(t, l, byName, "lookup by identifier %q", l.Name())
	}
}

func TestFromUnknownKey(t *testing.T) {
	l, err := From("eskimo")
	require.NoError(t, err)
	assert.Equal(t, Unknown, l)

	l, err = From("?")
	require.NoError(t, err)
	assert.Equal(t, Unknown, l)
}

func TestFromBlankKey(t *testing.T) {
	for _, key := range []string{"", "   ", "\t\n"} {
		_, err := From(key)
		assert.ErrorIs(t, err, ErrInvalidArgument, "key %q", key)
	}
}

func TestMustFromPanicsOnBlank(t *testing.T) {
	assert.Panics(t, func() { MustFrom(" ") })
	assert.Equal(t, Spanish, MustFrom("es"))
}

func TestAllExcludesUnknown(t *testing.T) {
	all := All()
	assert.Len(t, all, 53)
	assert.NotContains(t, all, Unknown)

	all[0] = Unknown
	assert.Equal(t, Afrikaans, All()[0], "All must return a copy")
}

func TestString(t *testing.T) {
	assert.Equal(t, "CHINESE_SIMPLIFIED [zh-CN]", ChineseSimplified.String())
	assert.Equal(t, "UNKNOWN [?]", Unknown.String())
}

func TestZeroValue(t *testing.T) {
	var l Language
	assert.True(t, l.IsZero())
	assert.False(t, English.IsZero())
	assert.False(t, Unknown.IsZero())
}

func TestTag(t *testing.T) {
	assert.Equal(t, "en", English.Tag().String())
	assert.Equal(t, textlang.Und, Unknown.Tag())

	base, _ := ChineseTraditional.Tag().Base()
	assert.Equal(t, "zh", base.String())
}

func TestFromLegacySpelling(t *testing.T) {
	l, err := From("hatian_creole")
	require.NoError(t, err)
	assert.Equal(t, HaitianCreole, l)

	l, err = From("HAITIAN_CREOLE")
	require.NoError(t, err)
	assert.Equal(t, HaitianCreole, l)
}

func TestParseAcceptsTags(t *testing.T) {
	cases := map[string]Language{
		"en":        English,
		"english":   English,
		"en-US":     English,
		"pt-BR":     Portuguese,
		"ES-419":    Spanish,
		"zh-TW":     ChineseTraditional,
		"zh-HK":     Unknown,
		"eskimo":    Unknown,
		"not a tag": Unknown,
	}
	for key, want := range cases {
		got, err := Parse(key)
		require.NoError(t, err, "key %q", key)
		assert.Equal(t, want, got, "key %q", key)
	}
}

func TestParseBlankKey(t *testing.T) {
	_, err := Parse(" ")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
