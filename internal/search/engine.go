// Package search filters and orders catalog jobs.
package search

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/ironarian/ukr-jobs-japan/internal/domain"
)

const (
	// TypeAll disables the job type criterion.
	TypeAll domain.JobType = ""
	// DurationAll disables the duration criterion.
	DurationAll domain.Duration = ""
	// JPLevelUnset disables the Japanese level criterion.
	JPLevelUnset domain.JPLevel = ""
)

const allKeyword = "All"

// Criteria selects jobs. The zero value matches every job.
type Criteria struct {
	Type     domain.JobType
	Duration domain.Duration
	// JPLevel is the candidate's own level; jobs requiring more are excluded.
	JPLevel domain.JPLevel
}

// Key returns a stable representation used for caching and ETags.
func (c Criteria) Key() string {
	return fmt.Sprintf("type=%s|duration=%s|jp=%s", c.Type, c.Duration, c.JPLevel)
}

// Matches reports whether job passes every active criterion.
func (c Criteria) Matches(job *domain.Job) bool {
	if job == nil {
		return false
	}
	if c.Type != TypeAll && job.Type != c.Type {
		return false
	}
	if c.Duration != DurationAll && job.Duration != c.Duration {
		return false
	}
	if c.JPLevel != JPLevelUnset && !c.JPLevel.Meets(job.JPLevel) {
		return false
	}
	return true
}

// Result is an ordered selection of catalog jobs.
type Result struct {
	Jobs  []*domain.Job
	Count int
}

// Apply returns the jobs matching criteria, most recently updated first. Jobs with the
// same update time keep their catalog order. The returned slice holds the catalog's
// pointers; jobs are never copied or modified.
func Apply(jobs []*domain.Job, criteria Criteria) Result {
	matched := make([]*domain.Job, 0, len(jobs))
	for _, job := range jobs {
		if criteria.Matches(job) {
			matched = append(matched, job)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Updated.After(matched[j].Updated)
	})
	return Result{Jobs: matched, Count: len(matched)}
}

// ParseCriteria reads type, duration and jpLevel query parameters. Empty values and
// "All" select the sentinel.
func ParseCriteria(values url.Values) (Criteria, error) {
	var criteria Criteria

	if raw := strings.TrimSpace(values.Get("type")); raw != "" && !strings.EqualFold(raw, allKeyword) {
		jobType := domain.JobType(raw)
		if !jobType.Valid() {
			return Criteria{}, fmt.Errorf("invalid type %q", raw)
		}
		criteria.Type = jobType
	}

	if raw := strings.TrimSpace(values.Get("duration")); raw != "" && !strings.EqualFold(raw, allKeyword) {
		duration := domain.Duration(raw)
		if !duration.Valid() {
			return Criteria{}, fmt.Errorf("invalid duration %q", raw)
		}
		criteria.Duration = duration
	}

	if raw := strings.TrimSpace(values.Get("jpLevel")); raw != "" {
		level := domain.JPLevel(raw)
		if !level.Valid() {
			return Criteria{}, fmt.Errorf("invalid jpLevel %q", raw)
		}
		criteria.JPLevel = level
	}

	return criteria, nil
}
