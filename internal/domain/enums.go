package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Lang is one of the three display languages.
type Lang string

const (
	// LangUA selects Ukrainian, the base language of the catalog.
	LangUA Lang = "ua"
	// LangJP selects Japanese.
	LangJP Lang = "jp"
	// LangEN selects English.
	LangEN Lang = "en"
)

// DefaultLang is used when a caller has no stored preference.
const DefaultLang = LangUA

// ErrUnsupportedLanguage is returned for tags outside ua, jp and en.
var ErrUnsupportedLanguage = errors.New("domain: unsupported language")

// SupportedLangs lists the display languages in switcher order.
func SupportedLangs() []Lang {
	return []Lang{LangUA, LangJP, LangEN}
}

// ParseLang validates a language tag. Matching ignores case and surrounding space.
func ParseLang(raw string) (Lang, error) {
	switch Lang(strings.ToLower(strings.TrimSpace(raw))) {
	case LangUA:
		return LangUA, nil
	case LangJP:
		return LangJP, nil
	case LangEN:
		return LangEN, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, raw)
}

// Valid reports whether l is one of the supported tags.
func (l Lang) Valid() bool {
	switch l {
	case LangUA, LangJP, LangEN:
		return true
	}
	return false
}

// JobType is the employment form.
type JobType string

const (
	JobTypeFullTime JobType = "Full-time"
	JobTypePartTime JobType = "Part-time"
	JobTypeContract JobType = "Contract"
	JobTypeIntern   JobType = "Intern"
)

// AllJobTypes lists job types in the order filters present them.
func AllJobTypes() []JobType {
	return []JobType{JobTypePartTime, JobTypeFullTime, JobTypeContract, JobTypeIntern}
}

// Valid reports whether t is a known job type.
func (t JobType) Valid() bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeIntern:
		return true
	}
	return false
}

// Duration is the expected engagement length.
type Duration string

const (
	DurationOneDay    Duration = "OneDay"
	DurationShortTerm Duration = "ShortTerm"
	DurationOneMonth  Duration = "OneMonth"
	DurationFullTime  Duration = "FullTime"
)

// AllDurations lists durations from shortest to longest.
func AllDurations() []Duration {
	return []Duration{DurationOneDay, DurationShortTerm, DurationOneMonth, DurationFullTime}
}

// Valid reports whether d is a known duration.
func (d Duration) Valid() bool {
	switch d {
	case DurationOneDay, DurationShortTerm, DurationOneMonth, DurationFullTime:
		return true
	}
	return false
}

// JPLevel is a Japanese proficiency level. Levels are totally ordered by Rank.
type JPLevel string

const (
	JPLevelNone  JPLevel = "None"
	JPLevelBasic JPLevel = "Basic"
	JPLevelN4    JPLevel = "N4"
	JPLevelN3    JPLevel = "N3"
	JPLevelN2    JPLevel = "N2"
	JPLevelN1    JPLevel = "N1"
)

// AllJPLevels lists levels in ascending rank.
func AllJPLevels() []JPLevel {
	return []JPLevel{JPLevelNone, JPLevelBasic, JPLevelN4, JPLevelN3, JPLevelN2, JPLevelN1}
}

// Rank returns the position of l in None < Basic < N4 < N3 < N2 < N1, or -1 for unknown values.
func (l JPLevel) Rank() int {
	switch l {
	case JPLevelNone:
		return 0
	case JPLevelBasic:
		return 1
	case JPLevelN4:
		return 2
	case JPLevelN3:
		return 3
	case JPLevelN2:
		return 4
	case JPLevelN1:
		return 5
	}
	return -1
}

// Valid reports whether l is a known level.
func (l JPLevel) Valid() bool {
	return l.Rank() >= 0
}

// Meets reports whether a candidate at level l satisfies a job requiring level required.
func (l JPLevel) Meets(required JPLevel) bool {
	return l.Valid() && required.Valid() && l.Rank() >= required.Rank()
}
