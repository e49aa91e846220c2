// Package contact builds prefilled mailto targets for job inquiries.
package contact

import (
	"fmt"
	"strings"

	"github.com/ironarian/ukr-jobs-japan/internal/domain"
	"github.com/ironarian/ukr-jobs-japan/internal/localize"
)

// Target is what an inquiry is about: a catalog job, a free-form reference, or nothing.
type Target struct {
	job       *domain.Job
	reference string
}

// JobTarget addresses an inquiry about job.
func JobTarget(job *domain.Job) Target {
	return Target{job: job}
}

// ReferenceTarget addresses an inquiry quoting ref verbatim. The reference is not
// looked up in the catalog. An empty reference is a generic inquiry.
func ReferenceTarget(ref string) Target {
	return Target{reference: ref}
}

// GenericTarget addresses a general employment inquiry.
func GenericTarget() Target {
	return Target{}
}

// Job returns the target job, if any.
func (t Target) Job() *domain.Job { return t.job }

// Reference returns the free-form reference, if any.
func (t Target) Reference() string { return t.reference }

// Message is a composed inquiry. Body uses LF line breaks; MailtoURL carries the
// CRLF form, percent-encoded.
type Message struct {
	Address   string
	Subject   string
	Body      string
	MailtoURL string
}

// Composer renders inquiry messages. It holds no mutable state.
type Composer struct {
	defaultAddress string
}

// Option customises a Composer.
type Option func(*Composer)

// WithDefaultAddress sets the address used when a target has no contact email.
func WithDefaultAddress(addr string) Option {
	return func(c *Composer) {
		if trimmed := strings.TrimSpace(addr); trimmed != "" {
			c.defaultAddress = trimmed
		}
	}
}

// NewComposer constructs a Composer that falls back to domain.DefaultContactEmail.
func NewComposer(opts ...Option) *Composer {
	c := &Composer{defaultAddress: domain.DefaultContactEmail}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// DefaultAddress returns the fallback recipient.
func (c *Composer) DefaultAddress() string {
	return c.defaultAddress
}

// AddressFor returns the recipient of inquiries about job.
func (c *Composer) AddressFor(job *domain.Job) string {
	return job.ContactAddressOr(c.defaultAddress)
}

// Compose renders target in lang. Identical inputs always give identical output.
func (c *Composer) Compose(target Target, lang domain.Lang) (Message, error) {
	var (
		address string
		subject string
		body    string
	)

	if job := target.job; job != nil {
		tmpl, ok := jobTemplateFor(lang)
		if !ok {
			return Message{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedLanguage, lang)
		}
		subject, body = tmpl.render(
			localize.Title(job, lang),
			localize.Company(job, lang),
			localize.Location(job, lang),
		)
		address = c.AddressFor(job)
	} else {
		tmpl, ok := inquiryTemplateFor(lang)
		if !ok {
			return Message{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedLanguage, lang)
		}
		subject, body = tmpl.render(target.reference)
		address = c.defaultAddress
	}

	return Message{
		Address:   address,
		Subject:   subject,
		Body:      body,
		MailtoURL: MailtoURL(address, subject, body),
	}, nil
}

// Compose renders target with the default composer.
func Compose(target Target, lang domain.Lang) (Message, error) {
	return defaultComposer.Compose(target, lang)
}

var defaultComposer = NewComposer()

// MailtoURL assembles mailto:<address>?subject=<s>&body=<b>. Line breaks are converted to
// CRLF before each value is encoded.
func MailtoURL(address, subject, body string) string {
	var b strings.Builder
	b.WriteString("mailto:")
	b.WriteString(address)
	b.WriteString("?subject=")
	b.WriteString(EncodeComponent(NormalizeLineEndings(subject)))
	b.WriteString("&body=")
	b.WriteString(EncodeComponent(NormalizeLineEndings(body)))
	return b.String()
}
