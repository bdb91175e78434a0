// Package language holds the fixed registry of languages understood by the
// translation API, together with a lenient lookup by code or name.
package language

import (
	"errors"
	"fmt"
	"strings"

	textlang "golang.org/x/text/language"
)

// ErrInvalidArgument is returned for blank lookup keys.
var ErrInvalidArgument = errors.New("invalid argument")

// Language is an immutable registry entry: an identifier such as "ENGLISH"
// and its ISO 639-1 code such as "en".
// The zero value is not a language; it stands for "not supplied".
type Language struct {
	name string
	code string
}

// Name returns the upper-case identifier, e.g. "CHINESE_SIMPLIFIED".
func (l Language) Name() string { return l.name }

// Code returns the language code sent on the wire, e.g. "zh-CN".
func (l Language) Code() string { return l.code }

// IsZero reports whether l is the zero value.
func (l Language) IsZero() bool { return l.name == "" && l.code == "" }

func (l Language) String() string {
	return fmt.Sprintf("%s [%s]", l.name, l.code)
}

// Tag returns the x/text tag for the language code. Unknown maps to und.
func (l Language) Tag() textlang.Tag {
	if l == Unknown || l.IsZero() {
		return textlang.Und
	}
	return textlang.Make(l.code)
}

var (
	Afrikaans          = Language{"AFRIKAANS", "af"}
	Albanian           = Language{"ALBANIAN", "sq"}
	Arabic             = Language{"ARABIC", "ar"}
	Basque             = Language{"BASQUE", "eu"}
	Belarusian         = Language{"BELARUSIAN", "be"}
	Bulgarian          = Language{"BULGARIAN", "bg"}
	Catalan            = Language{"CATALAN", "ca"}
	ChineseSimplified  = Language{"CHINESE_SIMPLIFIED", "zh-CN"}
	ChineseTraditional = Language{"CHINESE_TRADITIONAL", "zh-TW"}
	Croatian           = Language{"CROATIAN", "hr"}
	Czech              = Language{"CZECH", "cs"}
	Danish             = Language{"DANISH", "da"}
	Dutch              = Language{"DUTCH", "nl"}
	English            = Language{"ENGLISH", "en"}
	Estonian           = Language{"ESTONIAN", "et"}
	Filipino           = Language{"FILIPINO", "fil"}
	Finnish            = Language{"FINNISH", "fi"}
	French             = Language{"FRENCH", "fr"}
	Galician           = Language{"GALICIAN", "gl"}
	German             = Language{"GERMAN", "de"}
	Greek              = Language{"GREEK", "el"}
	HaitianCreole      = Language{"HAITIAN_CREOLE", "ht"}
	Hebrew             = Language{"HEBREW", "iw"}
	Hindi              = Language{"HINDI", "hi"}
	Hungarian          = Language{"HUNGARIAN", "hu"}
	Icelandic          = Language{"ICELANDIC", "is"}
	Indonesian         = Language{"INDONESIAN", "id"}
	Irish              = Language{"IRISH", "ga"}
	Italian            = Language{"ITALIAN", "it"}
	Japanese           = Language{"JAPANESE", "ja"}
	Latvian            = Language{"LATVIAN", "lv"}
	Lithuanian         = Language{"LITHUANIAN", "lt"}
	Macedonian         = Language{"MACEDONIAN", "mk"}
	Malay              = Language{"MALAY", "ms"}
	Maltese            = Language{"MALTESE", "mt"}
	Norwegian          = Language{"NORWEGIAN", "no"}
	Persian            = Language{"PERSIAN", "fa"}
	Polish             = Language{"POLISH", "pl"}
	Portuguese         = Language{"PORTUGUESE", "pt"}
	Romanian           = Language{"ROMANIAN", "ro"}
	Russian            = Language{"RUSSIAN", "ru"}
	Serbian            = Language{"SERBIAN", "sr"}
	Slovak             = Language{"SLOVAK", "sk"}
	Slovenian          = Language{"SLOVENIAN", "sl"}
	Spanish            = Language{"SPANISH", "es"}
	Swahili            = Language{"SWAHILI", "sw"}
	Swedish            = Language{"SWEDISH", "sv"}
	Thai               = Language{"THAI", "th"}
	Turkish            = Language{"TURKISH", "tr"}
	Ukrainian          = Language{"UKRAINIAN", "uk"}
	Vietnamese         = Language{"VIETNAMESE", "vi"}
	Welsh              = Language{"WELSH", "cy"}
	Yiddish            = Language{"YIDDISH", "yi"}

	// Unknown is returned for keys that match nothing. As a translation
	// source it asks the service to detect the language.
	Unknown = Language{"UNKNOWN", "?"}
)

var registry = []Language{
	Afrikaans, Albanian, Arabic, Basque, Belarusian, Bulgarian, Catalan,
	ChineseSimplified, ChineseTraditional, Croatian, Czech, Danish, Dutch,
	English, Estonian, Filipino, Finnish, French, Galician, German, Greek,
	HaitianCreole, Hebrew, Hindi, Hungarian, Icelandic, Indonesian, Irish,
	Italian, Japanese, Latvian, Lithuanian, Macedonian, Malay, Maltese,
	Norwegian, Persian, Polish, Portuguese, Romanian, Russian, Serbian,
	Slovak, Slovenian, Spanish, Swahili, Swedish, Thai, Turkish, Ukrainian,
	Vietnamese, Welsh, Yiddish,
}

// byKey maps upper-cased codes and identifiers to their language.
var byKey = buildIndex()

func buildIndex() map[string]Language {
	index := make(map[string]Language, 2*(len(registry)+1))
	for _, l := range append(All(), Unknown) {
		index[strings.ToUpper(l.code)] = l
		index[l.name] = l
	}
	// Spelling used by earlier releases.
	index["HATIAN_CREOLE"] = HaitianCreole
	return index
}

// All returns every supported language in registry order, without Unknown.
func All() []Language {
	out := make([]Language, len(registry))
	copy(out, registry)
	return out
}

// From returns the language whose code or identifier matches key, ignoring
// case. Keys that match nothing resolve to Unknown.
// A blank key fails with ErrInvalidArgument.
func From(key string) (Language, error) {
	if strings.TrimSpace(key) == "" {
		return Language{}, fmt.Errorf("%w: language key cannot be empty", ErrInvalidArgument)
	}
	if l, ok := byKey[strings.ToUpper(key)]; ok {
		return l, nil
	}
	return Unknown, nil
}

// Parse is like From but also accepts BCP 47 tags such as "en-US" or
// "pt-BR". A tag that From does not know is matched against the registry by
// full tag, then by base language when exactly one entry shares it.
func Parse(key string) (Language, error) {
	l, err := From(key)
	if err != nil || l != Unknown {
		return l, err
	}

	tag, err := textlang.Parse(key)
	if err != nil {
		return Unknown, nil
	}
	for _, candidate := range registry {
		if candidate.Tag() == tag {
			return candidate, nil
		}
	}

	base, _ := tag.Base()
	match := Unknown
	for _, candidate := range registry {
		if b, _ := candidate.Tag().Base(); b == base {
			if match != Unknown {
				return Unknown, nil
			}
			match = candidate
		}
	}
	return match, nil
}

// MustFrom is like From but panics on a blank key.
func MustFrom(key string) Language {
	l, err := From(key)
	if err != nil {
		panic(err)
	}
	return l
}
