package localize

import (
	"time"

	"github.com/ironarian/ukr-jobs-japan/internal/domain"
)

// View is a job with every localized group resolved for one language.
type View struct {
	ID          string
	Lang        domain.Lang
	Title       string
	Company     string
	Location    string
	Salary      Optional[string]
	Tags        Optional[[]string]
	Description Optional[string]
	ApplyNote   Optional[string]

	Type          domain.JobType
	TypeLabel     string
	Duration      domain.Duration
	DurationLabel string
	JPLevel       domain.JPLevel
	JPLevelLabel  string

	UpdatedAt string
	Updated   time.Time
}

// NewView resolves job for lang. Enum labels use listing wording; see DetailView.
func NewView(job *domain.Job, lang domain.Lang) View {
	typeLabel, _ := job.Type.Label()
	durationLabel, _ := job.Duration.Label()
	levelLabel, _ := job.JPLevel.Label()

	return View{
		ID:            job.TrimmedID(),
		Lang:          lang,
		Title:         Title(job, lang),
		Company:       Company(job, lang),
		Location:      Location(job, lang),
		Salary:        Salary(job, lang),
		Tags:          Tags(job, lang),
		Description:   Description(job, lang),
		ApplyNote:     ApplyNote(job, lang),
		Type:          job.Type,
		TypeLabel:     typeLabel.In(lang),
		Duration:      job.Duration,
		DurationLabel: durationLabel.In(lang),
		JPLevel:       job.JPLevel,
		JPLevelLabel:  levelLabel.In(lang),
		UpdatedAt:     job.UpdatedAt,
		Updated:       job.Updated,
	}
}

// DetailView is NewView with the single-job wording for the Japanese level.
func DetailView(job *domain.Job, lang domain.Lang) View {
	view := NewView(job, lang)
	if label, ok := job.JPLevel.DetailLabel(); ok {
		view.JPLevelLabel = label.In(lang)
	}
	return view
}
