package catalog

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/ironarian/ukr-jobs-japan/internal/domain"
)

// validateJob checks the load-time invariants of a single record and parses its
// updatedAt into job.Updated.
func validateJob(index int, job *domain.Job, verr *ValidationError) {
	id := job.TrimmedID()
	required := []struct {
		field string
		value string
	}{
		{"id", id},
		{"title", job.Title},
		{"company", job.Company},
		{"location", job.Location},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			verr.add(index, id, r.field, "required")
		}
	}

	if !job.Type.Valid() {
		verr.add(index, id, "type", fmt.Sprintf("unknown value %q", job.Type))
	}
	if !job.Duration.Valid() {
		verr.add(index, id, "duration", fmt.Sprintf("unknown value %q", job.Duration))
	}
	if !job.JPLevel.Valid() {
		verr.add(index, id, "jpLevel", fmt.Sprintf("unknown value %q", job.JPLevel))
	}

	updated, err := domain.ParseDate(job.UpdatedAt)
	if err != nil {
		verr.add(index, id, "updatedAt", fmt.Sprintf("unparseable date %q", job.UpdatedAt))
	} else {
		job.Updated = updated
	}

	if job.ContactEmail != nil {
		addr := strings.TrimSpace(*job.ContactEmail)
		if addr != "" && !validAddress(addr) {
			verr.add(index, id, "contactEmail", fmt.Sprintf("malformed address %q", addr))
		}
	}
}

func validAddress(addr string) bool {
	parsed, err := mail.ParseAddress(addr)
	return err == nil && parsed.Address == addr
}
