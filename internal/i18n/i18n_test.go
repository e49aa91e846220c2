package i18n

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/ironarian/ukr-jobs-japan/internal/domain"
)

func TestDefaultBundleHasEveryKeyInEveryLanguage(t *testing.T) {
	t.Parallel()

	b, err := Default()
	require.NoError(t, err)

	base := b.dict[domain.LangUA]
	require.NotEmpty(t, base)
	for _, lang := range domain.SupportedLangs() {
		m, ok := b.dict[lang]
		require.True(t, ok, lang)
		require.Len(t, m, len(base), lang)
		for key := range base {
			require.NotEmpty(t, m[key], "%s/%s", lang, key)
		}
	}

	require.Equal(t, "Знайдено:", b.T(domain.LangUA, "jobs.found"))
	require.Equal(t, "件数:", b.T(domain.LangJP, "jobs.found"))
	require.Equal(t, "No jobs match your filters.", b.T(domain.LangEN, "jobs.empty"))
	require.Equal(t, "missing.key", b.T(domain.LangEN, "missing.key"))
}

func TestMatchAcceptLanguage(t *testing.T) {
	t.Parallel()

	b, err := Default()
	require.NoError(t, err)

	cases := []struct {
		header string
		want   domain.Lang
	}{
		{"", domain.LangUA},
		{"uk-UA,uk;q=0.9", domain.LangUA},
		{"ja-JP,ja;q=0.9,en;q=0.8", domain.LangJP},
		{"ja;q=0.8, en;q=0.9", domain.LangEN},
		{"en-GB", domain.LangEN},
		{"de-DE,fr;q=0.5", domain.LangUA},
		{"jp", domain.LangJP},
		{"EN", domain.LangEN},
		{";;;", domain.LangUA},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, b.Match(tc.header), tc.header)
	}
}

func TestLoadFallsBackForMissingKeysAndLocales(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"ua.json": {Data: []byte(`{"nav.jobs":"Вакансії","job.back":"Назад до вакансій"}`)},
		"en.json": {Data: []byte(`{"nav.jobs":"Jobs"}`)},
	}
	b, err := Load(fsys, domain.LangUA)
	require.NoError(t, err)

	require.Equal(t, "Назад до вакансій", b.T(domain.LangEN, "job.back"))
	require.Equal(t, "Вакансії", b.T(domain.LangJP, "nav.jobs"))
	require.Equal(t, map[string]string{"nav.jobs": "Jobs", "job.back": "Назад до вакансій"}, b.Messages(domain.LangEN))
	require.Equal(t, domain.LangUA, b.Match("ja"))
}

func TestLoadRequiresFallbackLocale(t *testing.T) {
	t.Parallel()

	_, err := Load(fstest.MapFS{"en.json": {Data: []byte(`{}`)}}, domain.LangUA)
	require.Error(t, err)

	_, err = Load(fstest.MapFS{"ua.json": {Data: []byte(`not json`)}}, domain.LangUA)
	require.Error(t, err)

	_, err = Load(fstest.MapFS{}, domain.Lang("de"))
	require.ErrorIs(t, err, domain.ErrUnsupportedLanguage)
}

func TestContentLanguage(t *testing.T) {
	t.Parallel()

	require.Equal(t, "uk", ContentLanguage(domain.LangUA))
	require.Equal(t, "ja", ContentLanguage(domain.LangJP))
	require.Equal(t, "en", ContentLanguage(domain.LangEN))
}
