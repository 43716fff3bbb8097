package i18n

import "strings"

// Language is a supported UI language.
type Language string

const (
	English    Language = "en"
	Vietnamese Language = "vi"
)

// DefaultLanguage is used when the caller expresses no preference.
const DefaultLanguage = Vietnamese

// Translator resolves translation keys for one language. Create one per
// request and pass it down; there is no process-wide language state.
type Translator struct {
	lang  Language
	table map[string]string
}

// New returns a translator for lang, falling back to DefaultLanguage for
// unsupported languages.
func New(lang Language) *Translator {
	table, ok := tables[lang]
	if !ok {
		lang = DefaultLanguage
		table = tables[lang]
	}
	return &Translator{lang: lang, table: table}
}

// ParseLanguage picks a supported language from a query value or an
// Accept-Language header ("vi-VN,vi;q=0.9,en;q=0.8").
func ParseLanguage(raw string) Language {
	for _, part := range strings.Split(raw, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		base := strings.ToLower(strings.SplitN(tag, "-", 2)[0])
		if _, ok := tables[Language(base)]; ok {
			return Language(base)
		}
	}
	return DefaultLanguage
}

func (t *Translator) Language() Language {
	return t.lang
}

// T returns the translation of key, or key itself when it is untranslated.
func (t *Translator) T(key string) string {
	if v, ok := t.table[key]; ok {
		return v
	}
	return key
}
