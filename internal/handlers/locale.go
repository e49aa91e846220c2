package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/ironarian/ukr-jobs-japan/internal/domain"
	"github.com/ironarian/ukr-jobs-japan/internal/i18n"
	"github.com/ironarian/ukr-jobs-japan/internal/platform/httpx"
	"github.com/ironarian/ukr-jobs-japan/internal/platform/requestctx"
)

const (
	defaultLocaleCookie = "lang"
	defaultLocaleMaxAge = 365 * 24 * time.Hour
	langQueryParam      = "lang"
)

// LocaleSettings controls how the display language is negotiated.
type LocaleSettings struct {
	Default      domain.Lang
	CookieName   string
	CookieMaxAge time.Duration
}

func (s LocaleSettings) normalized() LocaleSettings {
	if !s.Default.Valid() {
		s.Default = domain.DefaultLang
	}
	if strings.TrimSpace(s.CookieName) == "" {
		s.CookieName = defaultLocaleCookie
	}
	if s.CookieMaxAge <= 0 {
		s.CookieMaxAge = defaultLocaleMaxAge
	}
	return s
}

// LocaleMiddleware selects the request language. A ?lang= query wins and is
// persisted in the preference cookie; an unsupported value is rejected with 400.
// Otherwise a valid cookie is used, then Accept-Language, then the default.
func LocaleMiddleware(bundle *i18n.Bundle, settings LocaleSettings) func(http.Handler) http.Handler {
	settings = settings.normalized()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang, ok := resolveLang(w, r, bundle, settings)
			if !ok {
				return
			}
			w.Header().Set("Content-Language", i18n.ContentLanguage(lang))
			w.Header().Add("Vary", "Accept-Language")
			w.Header().Add("Vary", "Cookie")
			next.ServeHTTP(w, r.WithContext(requestctx.WithLang(r.Context(), lang)))
		})
	}
}

func resolveLang(w http.ResponseWriter, r *http.Request, bundle *i18n.Bundle, settings LocaleSettings) (domain.Lang, bool) {
	if raw := strings.TrimSpace(r.URL.Query().Get(langQueryParam)); raw != "" {
		lang, err := domain.ParseLang(raw)
		if err != nil {
			httpx.WriteError(r.Context(), w, httpx.NewError("unsupported_language", err.Error(), http.StatusBadRequest).
				WithDetails(map[string]any{"supported": domain.SupportedLangs()}))
			return "", false
		}
		http.SetCookie(w, &http.Cookie{
			Name:     settings.CookieName,
			Value:    string(lang),
			Path:     "/",
			MaxAge:   int(settings.CookieMaxAge.Seconds()),
			SameSite: http.SameSiteLaxMode,
		})
		return lang, true
	}

	if c, err := r.Cookie(settings.CookieName); err == nil {
		// stale or tampered cookies fall through to negotiation
		if lang, err := domain.ParseLang(c.Value); err == nil {
			return lang, true
		}
	}

	header := strings.TrimSpace(r.Header.Get("Accept-Language"))
	if header == "" || bundle == nil {
		return settings.Default, true
	}
	return bundle.Match(header), true
}

// langOf returns the language chosen by LocaleMiddleware.
func langOf(r *http.Request) domain.Lang {
	if lang, ok := requestctx.Lang(r.Context()); ok {
		return lang
	}
	return domain.DefaultLang
}
