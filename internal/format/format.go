package format

import (
	"fmt"
	"time"

	"github.com/ironarian/ukr-jobs-japan/internal/domain"
)

var ukrainianMonths = [...]string{
	"січня", "лютого", "березня", "квітня", "травня", "червня",
	"липня", "серпня", "вересня", "жовтня", "листопада", "грудня",
}

// FmtDate formats t as a short calendar date for lang:
// ua "14 грудня 2025", jp "2025年12月14日", en "Dec 14, 2025".
// The zero time formats to the empty string.
func FmtDate(t time.Time, lang domain.Lang) string {
	if t.IsZero() {
		return ""
	}
	t = t.UTC()
	switch lang {
	case domain.LangUA:
		return fmt.Sprintf("%d %s %d", t.Day(), ukrainianMonths[t.Month()-1], t.Year())
	case domain.LangJP:
		return fmt.Sprintf("%d年%d月%d日", t.Year(), int(t.Month()), t.Day())
	case domain.LangEN:
		return t.Format("Jan 2, 2006")
	}
	return t.Format("2006-01-02")
}

// ISODate formats t as YYYY-MM-DD, the form used in catalog records.
func ISODate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}
