package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ironarian/ukr-jobs-japan/internal/domain"
	"github.com/ironarian/ukr-jobs-japan/internal/i18n"
	"github.com/ironarian/ukr-jobs-japan/internal/platform/requestctx"
)

func TestNewRouter_Probes(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 12, 14, 9, 0, 0, 0, time.UTC)
	store := newTestStore(t)
	router := NewRouter(WithHealthHandlers(NewHealthHandlers(
		WithHealthClock(func() time.Time { return now }),
		WithReadinessCheck("catalog", CatalogReadiness(store)),
	)))

	t.Run("healthz", func(t *testing.T) {
		rr := serve(t, router, "/healthz")
		if rr.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rr.Code)
		}
		body := decode[map[string]any](t, rr)
		if body["status"] != "ok" || body["timestamp"] != "2025-12-14T09:00:00Z" {
			t.Fatalf("unexpected payload %v", body)
		}
	})

	t.Run("readyz", func(t *testing.T) {
		rr := serve(t, router, "/readyz")
		if rr.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rr.Code)
		}
		body := decode[map[string]any](t, rr)
		checks, _ := body["checks"].(map[string]any)
		entry, _ := checks["catalog"].(map[string]any)
		if entry["status"] != "ok" || entry["version"] != store.Version() {
			t.Fatalf("unexpected catalog check %v", entry)
		}
		if jobs, _ := entry["jobs"].(float64); int(jobs) != store.Len() {
			t.Fatalf("expected %d jobs, got %v", store.Len(), entry["jobs"])
		}
	})
}

func TestNewRouter_ReadinessFailure(t *testing.T) {
	t.Parallel()

	router := NewRouter(WithHealthHandlers(NewHealthHandlers(
		WithReadinessCheck("catalog", CatalogReadiness(nil)),
		WithReadinessCheck("other", func(context.Context) (map[string]any, error) {
			return nil, errors.New("down")
		}),
	)))

	rr := serve(t, router, "/readyz")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
	body := decode[map[string]any](t, rr)
	if body["status"] != "error" {
		t.Fatalf("unexpected status %v", body["status"])
	}
}

func TestNewRouter_UnknownRouteAndMethod(t *testing.T) {
	t.Parallel()

	router := NewRouter(WithRoutes(NewJobHandlers(WithJobCatalog(newTestStore(t))).Routes))

	rr := serve(t, router, "/api/v1/nowhere")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	if body := decode[map[string]any](t, rr); body["error"] != errorNotFoundCode {
		t.Fatalf("unexpected error %v", body["error"])
	}

	rr = serve(t, router, "/api/v1/jobs", func(r *http.Request) { r.Method = http.MethodPost })
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}
}

func TestNewRouter_BasePath(t *testing.T) {
	t.Parallel()

	router := NewRouter(
		WithBasePath("/v2"),
		WithRoutes(NewJobHandlers(WithJobCatalog(newTestStore(t))).Routes),
	)
	if rr := serve(t, router, "/v2/jobs"); rr.Code != http.StatusOK {
		t.Fatalf("expected 200 under custom base path, got %d", rr.Code)
	}
	if rr := serve(t, router, "/api/v1/jobs"); rr.Code != http.StatusNotFound {
		t.Fatalf("expected default prefix to be unmounted, got %d", rr.Code)
	}
}

func localeProbe(t *testing.T, settings LocaleSettings) http.Handler {
	t.Helper()
	bundle, err := i18n.Default()
	if err != nil {
		t.Fatalf("load bundle: %v", err)
	}
	r := chi.NewRouter()
	r.Use(LocaleMiddleware(bundle, settings))
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		lang, ok := requestctx.Lang(req.Context())
		if !ok {
			t.Errorf("language missing from context")
		}
		_, _ = w.Write([]byte(lang))
	})
	return r
}

func TestLocaleMiddleware(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		target   string
		cookie   string
		accept   string
		settings LocaleSettings
		want     domain.Lang
		content  string
	}{
		{name: "default", target: "/", want: domain.LangUA, content: "uk"},
		{name: "configured default", target: "/", settings: LocaleSettings{Default: domain.LangEN}, want: domain.LangEN, content: "en"},
		{name: "query", target: "/?lang=JP", want: domain.LangJP, content: "ja"},
		{name: "query beats cookie", target: "/?lang=en", cookie: "jp", want: domain.LangEN, content: "en"},
		{name: "cookie", target: "/", cookie: "jp", accept: "en", want: domain.LangJP, content: "ja"},
		{name: "invalid cookie ignored", target: "/", cookie: "de", accept: "en-US,en;q=0.9", want: domain.LangEN, content: "en"},
		{name: "accept language bcp47", target: "/", accept: "ja-JP,ja;q=0.9", want: domain.LangJP, content: "ja"},
		{name: "accept language site code", target: "/", accept: "ua", want: domain.LangUA, content: "uk"},
		{name: "unmatched accept language", target: "/", accept: "fr-FR", want: domain.LangUA, content: "uk"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rr := serve(t, localeProbe(t, tc.settings), tc.target, func(r *http.Request) {
				if tc.cookie != "" {
					r.AddCookie(&http.Cookie{Name: defaultLocaleCookie, Value: tc.cookie})
				}
				if tc.accept != "" {
					r.Header.Set("Accept-Language", tc.accept)
				}
			})
			if rr.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rr.Code)
			}
			if got := domain.Lang(rr.Body.String()); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
			if got := rr.Header().Get("Content-Language"); got != tc.content {
				t.Fatalf("expected content-language %q, got %q", tc.content, got)
			}
		})
	}
}

func TestLocaleMiddlewarePersistsQueryChoice(t *testing.T) {
	t.Parallel()

	rr := serve(t, localeProbe(t, LocaleSettings{CookieName: "pref", CookieMaxAge: time.Hour}), "/?lang=en")
	cookie := rr.Header().Get("Set-Cookie")
	if !strings.HasPrefix(cookie, "pref=en;") || !strings.Contains(cookie, "Max-Age=3600") {
		t.Fatalf("unexpected cookie %q", cookie)
	}

	plain := serve(t, localeProbe(t, LocaleSettings{}), "/")
	if plain.Header().Get("Set-Cookie") != "" {
		t.Fatalf("expected no cookie without a query override")
	}
}

func TestLocaleMiddlewareRejectsUnsupportedQuery(t *testing.T) {
	t.Parallel()

	rr := serve(t, localeProbe(t, LocaleSettings{}), "/?lang=uk")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	body := decode[map[string]any](t, rr)
	if body["error"] != "unsupported_language" {
		t.Fatalf("unexpected error %v", body["error"])
	}
	supported, _ := body["supported"].([]any)
	if len(supported) != 3 {
		t.Fatalf("expected supported languages, got %v", body["supported"])
	}
}
