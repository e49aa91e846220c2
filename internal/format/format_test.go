package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ironarian/ukr-jobs-japan/internal/domain"
)

func TestFmtDate(t *testing.T) {
	t.Parallel()

	day := time.Date(2025, time.December, 14, 0, 0, 0, 0, time.UTC)
	require.Equal(t, "14 грудня 2025", FmtDate(day, domain.LangUA))
	require.Equal(t, "2025年12月14日", FmtDate(day, domain.LangJP))
	require.Equal(t, "Dec 14, 2025", FmtDate(day, domain.LangEN))
	require.Equal(t, "2025-12-14", FmtDate(day, domain.Lang("de")))
	require.Equal(t, "1 січня 2026", FmtDate(time.Date(2026, time.January, 1, 8, 0, 0, 0, time.UTC), domain.LangUA))
	require.Empty(t, FmtDate(time.Time{}, domain.LangEN))
}

func TestISODateUsesUTC(t *testing.T) {
	t.Parallel()

	tokyo := time.FixedZone("JST", 9*60*60)
	require.Equal(t, "2025-12-13", ISODate(time.Date(2025, time.December, 14, 8, 0, 0, 0, tokyo)))
	require.Empty(t, ISODate(time.Time{}))
}
