package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultContactEmail receives inquiries for jobs that do not carry their own contact address.
const DefaultContactEmail = "hello@ukrjobsjapan.example"

// Job is a single curated posting. Localized groups carry a base value plus optional
// per-language overrides; a nil override means the override is absent.
type Job struct {
	ID string `json:"id" yaml:"id" firestore:"id"`

	Title   string  `json:"title" yaml:"title" firestore:"title"`
	TitleJP *string `json:"titleJP,omitempty" yaml:"titleJP,omitempty" firestore:"titleJP,omitempty"`
	TitleEN *string `json:"titleEN,omitempty" yaml:"titleEN,omitempty" firestore:"titleEN,omitempty"`

	Company   string  `json:"company" yaml:"company" firestore:"company"`
	CompanyJP *string `json:"companyJP,omitempty" yaml:"companyJP,omitempty" firestore:"companyJP,omitempty"`
	CompanyEN *string `json:"companyEN,omitempty" yaml:"companyEN,omitempty" firestore:"companyEN,omitempty"`

	Location   string  `json:"location" yaml:"location" firestore:"location"`
	LocationUA *string `json:"locationUA,omitempty" yaml:"locationUA,omitempty" firestore:"locationUA,omitempty"`
	LocationJP *string `json:"locationJP,omitempty" yaml:"locationJP,omitempty" firestore:"locationJP,omitempty"`
	LocationEN *string `json:"locationEN,omitempty" yaml:"locationEN,omitempty" firestore:"locationEN,omitempty"`

	Type     JobType  `json:"type" yaml:"type" firestore:"type"`
	Duration Duration `json:"duration" yaml:"duration" firestore:"duration"`
	JPLevel  JPLevel  `json:"jpLevel" yaml:"jpLevel" firestore:"jpLevel"`

	SalaryUA *string `json:"salaryUA,omitempty" yaml:"salaryUA,omitempty" firestore:"salaryUA,omitempty"`
	SalaryJP *string `json:"salaryJP,omitempty" yaml:"salaryJP,omitempty" firestore:"salaryJP,omitempty"`
	SalaryEN *string `json:"salaryEN,omitempty" yaml:"salaryEN,omitempty" firestore:"salaryEN,omitempty"`

	TagsUA []string `json:"tagsUA,omitempty" yaml:"tagsUA,omitempty" firestore:"tagsUA,omitempty"`
	TagsJP []string `json:"tagsJP,omitempty" yaml:"tagsJP,omitempty" firestore:"tagsJP,omitempty"`
	TagsEN []string `json:"tagsEN,omitempty" yaml:"tagsEN,omitempty" firestore:"tagsEN,omitempty"`

	UpdatedAt string `json:"updatedAt" yaml:"updatedAt" firestore:"updatedAt"`

	DescriptionUA *string `json:"descriptionUA,omitempty" yaml:"descriptionUA,omitempty" firestore:"descriptionUA,omitempty"`
	DescriptionJP *string `json:"descriptionJP,omitempty" yaml:"descriptionJP,omitempty" firestore:"descriptionJP,omitempty"`
	DescriptionEN *string `json:"descriptionEN,omitempty" yaml:"descriptionEN,omitempty" firestore:"descriptionEN,omitempty"`

	ApplyNoteUA *string `json:"applyNoteUA,omitempty" yaml:"applyNoteUA,omitempty" firestore:"applyNoteUA,omitempty"`
	ApplyNoteJP *string `json:"applyNoteJP,omitempty" yaml:"applyNoteJP,omitempty" firestore:"applyNoteJP,omitempty"`
	ApplyNoteEN *string `json:"applyNoteEN,omitempty" yaml:"applyNoteEN,omitempty" firestore:"applyNoteEN,omitempty"`

	ContactEmail *string `json:"contactEmail,omitempty" yaml:"contactEmail,omitempty" firestore:"contactEmail,omitempty"`

	// Updated is UpdatedAt parsed at catalog load. Records are read-only afterwards.
	Updated time.Time `json:"-" yaml:"-" firestore:"-"`
}

// TrimmedID returns the identifier used for lookups and uniqueness checks.
func (j *Job) TrimmedID() string {
	if j == nil {
		return ""
	}
	return strings.TrimSpace(j.ID)
}

// ContactAddress returns the job's contact email or DefaultContactEmail.
func (j *Job) ContactAddress() string {
	return j.ContactAddressOr(DefaultContactEmail)
}

// ContactAddressOr returns the job's contact email, or fallback when the job has none.
func (j *Job) ContactAddressOr(fallback string) string {
	if j != nil && j.ContactEmail != nil {
		if addr := strings.TrimSpace(*j.ContactEmail); addr != "" {
			return addr
		}
	}
	return fallback
}

// ErrInvalidDate reports an updatedAt value that does not parse to an instant.
var ErrInvalidDate = errors.New("domain: invalid date")

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006/01/02",
	"2006-1-2",
}

// ParseDate parses the date formats accepted for updatedAt. Dates without a zone are UTC.
func ParseDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrInvalidDate)
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
}

// String returns a pointer to s, for building optional overrides.
func String(s string) *string {
	return &s
}
