package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseLang(t *testing.T) {
	t.Parallel()

	cases := map[string]Lang{
		"ua":   LangUA,
		" JP ": LangJP,
		"En":   LangEN,
	}
	for raw, want := range cases {
		got, err := ParseLang(raw)
		require.NoError(t, err, raw)
		require.Equal(t, want, got)
	}

	for _, raw := range []string{"", "uk", "ja", "en-US", "de"} {
		_, err := ParseLang(raw)
		require.Error(t, err, raw)
		require.True(t, errors.Is(err, ErrUnsupportedLanguage))
	}
}

func TestJPLevelRankIsStrictTotalOrder(t *testing.T) {
	t.Parallel()

	levels := AllJPLevels()
	for i, level := range levels {
		require.Equal(t, i, level.Rank(), level)
		for j, other := range levels {
			switch {
			case i == j:
				require.Equal(t, level.Rank(), other.Rank())
			case i < j:
				require.Less(t, level.Rank(), other.Rank())
			default:
				require.Greater(t, level.Rank(), other.Rank())
			}
		}
	}
	require.Equal(t, -1, JPLevel("N5").Rank())
	require.False(t, JPLevel("").Valid())
}

func TestJPLevelMeets(t *testing.T) {
	t.Parallel()

	require.True(t, JPLevelN1.Meets(JPLevelNone))
	require.True(t, JPLevelN3.Meets(JPLevelN3))
	require.False(t, JPLevelBasic.Meets(JPLevelN4))
	require.False(t, JPLevel("N5").Meets(JPLevelNone))
}

func TestLabelsCoverEveryVariant(t *testing.T) {
	t.Parallel()

	check := func(t *testing.T, label Label, ok bool) {
		t.Helper()
		require.True(t, ok)
		for _, lang := range SupportedLangs() {
			require.NotEmpty(t, label.In(lang), lang)
		}
	}

	for _, jobType := range AllJobTypes() {
		label, ok := jobType.Label()
		check(t, label, ok)
		require.True(t, jobType.Valid())
	}
	for _, duration := range AllDurations() {
		label, ok := duration.Label()
		check(t, label, ok)
		require.True(t, duration.Valid())
	}
	for _, level := range AllJPLevels() {
		label, ok := level.Label()
		check(t, label, ok)
		detail, ok := level.DetailLabel()
		check(t, detail, ok)
	}

	_, ok := JobType("Freelance").Label()
	require.False(t, ok)
}

func TestLabelWording(t *testing.T) {
	t.Parallel()

	intern, _ := JobTypeIntern.Label()
	require.Equal(t, "Internship", intern.In(LangEN))

	shortTerm, _ := DurationShortTerm.Label()
	require.Equal(t, "短期", shortTerm.In(LangJP))

	basic, _ := JPLevelBasic.Label()
	require.Equal(t, "初級", basic.In(LangJP))
	basicDetail, _ := JPLevelBasic.DetailLabel()
	require.Equal(t, "基礎", basicDetail.In(LangJP))
	require.Equal(t, "Базовий", basicDetail.In(LangUA))

	require.Empty(t, basic.In(Lang("de")))
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	want := time.Date(2025, time.December, 14, 0, 0, 0, 0, time.UTC)
	for _, raw := range []string{"2025-12-14", "2025/12/14", " 2025-12-14 ", "2025-12-14T00:00:00Z"} {
		got, err := ParseDate(raw)
		require.NoError(t, err, raw)
		require.True(t, want.Equal(got), raw)
	}

	got, err := ParseDate("2025-1-5")
	require.NoError(t, err)
	require.Equal(t, time.January, got.Month())

	for _, raw := range []string{"", "yesterday", "14.12.2025"} {
		_, err := ParseDate(raw)
		require.ErrorIs(t, err, ErrInvalidDate, raw)
	}
}

func TestJobHelpers(t *testing.T) {
	t.Parallel()

	job := &Job{ID: "  cafe  "}
	require.Equal(t, "cafe", job.TrimmedID())
	require.Equal(t, DefaultContactEmail, job.ContactAddress())

	job.ContactEmail = String("  ")
	require.Equal(t, DefaultContactEmail, job.ContactAddress())

	require.Equal(t, "desk@example.org", job.ContactAddressOr("desk@example.org"))

	job.ContactEmail = String("center@example.com")
	require.Equal(t, "center@example.com", job.ContactAddress())
	require.Equal(t, "center@example.com", job.ContactAddressOr("desk@example.org"))

	var missing *Job
	require.Empty(t, missing.TrimmedID())
	require.Equal(t, DefaultContactEmail, missing.ContactAddress())
}
