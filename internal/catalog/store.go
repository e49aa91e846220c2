// Package catalog holds the read-only job catalog loaded once at start-up.
package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ironarian/ukr-jobs-japan/internal/domain"
)

// Store is the immutable catalog. Records keep their source order, which is the
// canonical sequence used to break sort ties. A Store is safe for concurrent reads.
type Store struct {
	jobs    []*domain.Job
	byID    map[string]*domain.Job
	ids     []string
	version string
}

// New validates jobs and builds a Store over private copies of them. Every
// violation is reported in a single *ValidationError.
func New(jobs []domain.Job) (*Store, error) {
	s := &Store{
		jobs: make([]*domain.Job, 0, len(jobs)),
		byID: make(map[string]*domain.Job, len(jobs)),
		ids:  make([]string, 0, len(jobs)),
	}

	verr := &ValidationError{}
	firstIndex := make(map[string]int, len(jobs))
	for i := range jobs {
		job := cloneJob(jobs[i])
		validateJob(i, job, verr)

		if id := job.TrimmedID(); id != "" {
			if prev, dup := firstIndex[id]; dup {
				verr.add(i, id, "id", fmt.Sprintf("duplicate of record %d", prev))
				continue
			}
			firstIndex[id] = i
			s.byID[id] = job
			s.ids = append(s.ids, id)
		}
		s.jobs = append(s.jobs, job)
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	version, err := contentVersion(s.jobs)
	if err != nil {
		return nil, err
	}
	s.version = version
	return s, nil
}

// MustNew is New for fixtures known to be valid.
func MustNew(jobs []domain.Job) *Store {
	s, err := New(jobs)
	if err != nil {
		panic(err)
	}
	return s
}

// Jobs returns the catalog in canonical order. The slice is a fresh copy; the
// records it points to must not be modified.
func (s *Store) Jobs() []*domain.Job {
	out := make([]*domain.Job, len(s.jobs))
	copy(out, s.jobs)
	return out
}

// Lookup finds a job by id after trimming surrounding whitespace. A miss returns
// a *NotFoundError carrying every known id.
func (s *Store) Lookup(id string) (*domain.Job, error) {
	clean := strings.TrimSpace(id)
	if job, ok := s.byID[clean]; ok {
		return job, nil
	}
	return nil, &NotFoundError{ID: clean, KnownIDs: s.KnownIDs()}
}

// KnownIDs lists the trimmed ids in canonical order.
func (s *Store) KnownIDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Version identifies the catalog content. Equal content gives an equal version.
func (s *Store) Version() string { return s.version }

// Len reports the number of jobs.
func (s *Store) Len() int { return len(s.jobs) }

func contentVersion(jobs []*domain.Job) (string, error) {
	payload, err := json.Marshal(jobs)
	if err != nil {
		return "", fmt.Errorf("catalog: encode for version: %w", err)
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:12]), nil
}

func cloneJob(in domain.Job) *domain.Job {
	out := in
	out.TagsUA = cloneStrings(in.TagsUA)
	out.TagsJP = cloneStrings(in.TagsJP)
	out.TagsEN = cloneStrings(in.TagsEN)
	for _, p := range []**string{
		&out.TitleJP, &out.TitleEN,
		&out.CompanyJP, &out.CompanyEN,
		&out.LocationUA, &out.LocationJP, &out.LocationEN,
		&out.SalaryUA, &out.SalaryJP, &out.SalaryEN,
		&out.DescriptionUA, &out.DescriptionJP, &out.DescriptionEN,
		&out.ApplyNoteUA, &out.ApplyNoteJP, &out.ApplyNoteEN,
		&out.ContactEmail,
	} {
		if *p != nil {
			v := **p
			*p = &v
		}
	}
	return &out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
