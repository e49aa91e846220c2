package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"

	"github.com/ironarian/ukr-jobs-japan/internal/domain"
)

//go:embed locales/*.json
var embeddedLocales embed.FS

// Bundle holds UI strings per display language.
type Bundle struct {
	dict     map[domain.Lang]map[string]string
	fallback domain.Lang
	matcher  language.Matcher
	tags     []domain.Lang
}

// Default loads the locales embedded in the binary with ua as fallback.
func Default() (*Bundle, error) {
	sub, err := fs.Sub(embeddedLocales, "locales")
	if err != nil {
		return nil, err
	}
	return Load(sub, domain.DefaultLang)
}

// Load reads <lang>.json for every supported language from fsys. The fallback
// locale must be present; other missing files are tolerated.
func Load(fsys fs.FS, fallback domain.Lang) (*Bundle, error) {
	if !fallback.Valid() {
		return nil, fmt.Errorf("i18n: %w: %q", domain.ErrUnsupportedLanguage, fallback)
	}
	b := &Bundle{
		dict:     map[domain.Lang]map[string]string{},
		fallback: fallback,
	}
	for _, lang := range domain.SupportedLangs() {
		raw, err := fs.ReadFile(fsys, path.Clean(string(lang)+".json"))
		if err != nil {
			if lang == fallback {
				return nil, fmt.Errorf("i18n: load locale %s: %w", lang, err)
			}
			continue
		}
		var m map[string]string
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("i18n: unmarshal %s: %w", lang, err)
		}
		b.dict[lang] = m
		b.tags = append(b.tags, lang)
	}

	// The fallback goes first so the matcher returns it when nothing matches.
	sort.SliceStable(b.tags, func(i, j int) bool { return b.tags[i] == fallback && b.tags[j] != fallback })
	tags := make([]language.Tag, 0, len(b.tags))
	for _, lang := range b.tags {
		tags = append(tags, languageTag(lang))
	}
	b.matcher = language.NewMatcher(tags)
	return b, nil
}

// Fallback returns the configured fallback language.
func (b *Bundle) Fallback() domain.Lang { return b.fallback }

// T returns the string for key in lang, falling back to the fallback locale and finally the key itself.
func (b *Bundle) T(lang domain.Lang, key string) string {
	if m, ok := b.dict[lang]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	if v, ok := b.dict[b.fallback][key]; ok {
		return v
	}
	return key
}

// Messages returns a copy of every string for lang, with fallback strings filling gaps.
func (b *Bundle) Messages(lang domain.Lang) map[string]string {
	out := make(map[string]string, len(b.dict[b.fallback]))
	for k, v := range b.dict[b.fallback] {
		out[k] = v
	}
	for k, v := range b.dict[lang] {
		out[k] = v
	}
	return out
}

// Match picks the best supported language for an Accept-Language header.
// The site codes ua and jp are accepted alongside the BCP 47 tags uk and ja.
func (b *Bundle) Match(acceptLanguage string) domain.Lang {
	acceptLanguage = strings.TrimSpace(acceptLanguage)
	if acceptLanguage == "" {
		return b.fallback
	}
	if lang, err := domain.ParseLang(acceptLanguage); err == nil && b.has(lang) {
		return lang
	}

	prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(prefs) == 0 {
		return b.fallback
	}
	_, idx, confidence := b.matcher.Match(prefs...)
	if confidence == language.No || idx < 0 || idx >= len(b.tags) {
		return b.fallback
	}
	return b.tags[idx]
}

func (b *Bundle) has(lang domain.Lang) bool {
	_, ok := b.dict[lang]
	return ok
}

func languageTag(lang domain.Lang) language.Tag {
	switch lang {
	case domain.LangUA:
		return language.Ukrainian
	case domain.LangJP:
		return language.Japanese
	case domain.LangEN:
		return language.English
	}
	return language.Und
}

// ContentLanguage returns the BCP 47 tag for the Content-Language header.
func ContentLanguage(lang domain.Lang) string {
	return languageTag(lang).String()
}
