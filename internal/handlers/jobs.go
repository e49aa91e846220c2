package handlers

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ironarian/ukr-jobs-japan/internal/catalog"
	"github.com/ironarian/ukr-jobs-japan/internal/contact"
	"github.com/ironarian/ukr-jobs-japan/internal/domain"
	"github.com/ironarian/ukr-jobs-japan/internal/format"
	"github.com/ironarian/ukr-jobs-japan/internal/i18n"
	"github.com/ironarian/ukr-jobs-japan/internal/localize"
	"github.com/ironarian/ukr-jobs-japan/internal/platform/httpx"
	"github.com/ironarian/ukr-jobs-japan/internal/platform/requestctx"
	"github.com/ironarian/ukr-jobs-japan/internal/search"
)

const jobsCacheControl = "public, max-age=300"

// CatalogReader is the read side of the job catalog.
type CatalogReader interface {
	Jobs() []*domain.Job
	Lookup(id string) (*domain.Job, error)
	Version() string
	Len() int
}

// Searcher selects and orders catalog jobs.
type Searcher interface {
	Apply(ctx context.Context, version string, jobs []*domain.Job, criteria search.Criteria) search.Result
}

// SearcherFunc adapts a function to the Searcher interface.
type SearcherFunc func(ctx context.Context, version string, jobs []*domain.Job, criteria search.Criteria) search.Result

// Apply implements Searcher.
func (fn SearcherFunc) Apply(ctx context.Context, version string, jobs []*domain.Job, criteria search.Criteria) search.Result {
	return fn(ctx, version, jobs, criteria)
}

// DescriptionRenderer turns description markdown into safe HTML.
type DescriptionRenderer interface {
	Render(src string) (template.HTML, error)
}

// JobHandlers exposes listing, detail, contact and label endpoints.
type JobHandlers struct {
	catalog  CatalogReader
	searcher Searcher
	composer *contact.Composer
	renderer DescriptionRenderer
	bundle   *i18n.Bundle
	locale   LocaleSettings
}

// JobOption customises construction of JobHandlers.
type JobOption func(*JobHandlers)

// WithJobCatalog injects the catalog.
func WithJobCatalog(c CatalogReader) JobOption {
	return func(h *JobHandlers) {
		h.catalog = c
	}
}

// WithJobSearcher replaces the uncached search engine, typically with a *search.Cache.
func WithJobSearcher(s Searcher) JobOption {
	return func(h *JobHandlers) {
		if s != nil {
			h.searcher = s
		}
	}
}

// WithJobComposer sets the contact composer.
func WithJobComposer(c *contact.Composer) JobOption {
	return func(h *JobHandlers) {
		if c != nil {
			h.composer = c
		}
	}
}

// WithJobRenderer sets the description renderer. Without one descriptionHtml is omitted.
func WithJobRenderer(r DescriptionRenderer) JobOption {
	return func(h *JobHandlers) {
		h.renderer = r
	}
}

// WithJobBundle sets the UI message bundle used for labels and negotiation.
func WithJobBundle(b *i18n.Bundle) JobOption {
	return func(h *JobHandlers) {
		h.bundle = b
	}
}

// WithJobLocale configures language negotiation.
func WithJobLocale(settings LocaleSettings) JobOption {
	return func(h *JobHandlers) {
		h.locale = settings
	}
}

// NewJobHandlers constructs the job endpoints.
func NewJobHandlers(opts ...JobOption) *JobHandlers {
	h := &JobHandlers{
		searcher: SearcherFunc(func(_ context.Context, _ string, jobs []*domain.Job, criteria search.Criteria) search.Result {
			return search.Apply(jobs, criteria)
		}),
		composer: contact.NewComposer(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// Routes registers the job endpoints behind language negotiation.
func (h *JobHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Group(func(g chi.Router) {
		g.Use(LocaleMiddleware(h.bundle, h.locale))
		g.Get("/jobs", h.listJobs)
		g.Get("/jobs/{jobID}", h.getJob)
		g.Get("/jobs/{jobID}/contact", h.jobContact)
		g.Get("/contact", h.inquiry)
		g.Get("/labels", h.labels)
	})
}

func (h *JobHandlers) listJobs(w http.ResponseWriter, r *http.Request) {
	if h.catalog == nil {
		writeCatalogUnavailable(r.Context(), w)
		return
	}

	criteria, err := search.ParseCriteria(r.URL.Query())
	if err != nil {
		httpx.WriteError(r.Context(), w, httpx.NewError("invalid_filter", err.Error(), http.StatusBadRequest))
		return
	}
	lang := langOf(r)
	version := h.catalog.Version()

	w.Header().Set("Cache-Control", jobsCacheControl)
	etag := computeETag(version, criteria.Key(), string(lang))
	w.Header().Set("ETag", etag)
	if matchesETag(r, etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	result := h.searcher.Apply(r.Context(), version, h.catalog.Jobs(), criteria)
	items := make([]jobPayload, 0, len(result.Jobs))
	for _, job := range result.Jobs {
		items = append(items, newJobPayload(localize.NewView(job, lang), h.composer.AddressFor(job)))
	}

	httpx.WriteJSON(w, http.StatusOK, jobListResponse{
		Lang:    lang,
		Count:   result.Count,
		Filters: newFilterPayload(criteria),
		Jobs:    items,
	})
}

func (h *JobHandlers) getJob(w http.ResponseWriter, r *http.Request) {
	job, ok := h.lookupJob(w, r)
	if !ok {
		return
	}
	lang := langOf(r)

	w.Header().Set("Cache-Control", jobsCacheControl)
	etag := computeETag(h.catalog.Version(), job.TrimmedID(), string(lang))
	w.Header().Set("ETag", etag)
	if matchesETag(r, etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	view := localize.DetailView(job, lang)
	payload := jobDetailPayload{
		jobPayload:  newJobPayload(view, h.composer.AddressFor(job)),
		Description: optionalString(view.Description),
		ApplyNote:   optionalString(view.ApplyNote),
	}

	if description, ok := view.Description.Get(); ok && h.renderer != nil {
		rendered, err := h.renderer.Render(description)
		if err != nil {
			requestctx.Logger(r.Context()).Error("render description failed", zap.String("job_id", view.ID), zap.Error(err))
			httpx.WriteError(r.Context(), w, httpx.NewError("render_failed", "job description could not be rendered", http.StatusInternalServerError))
			return
		}
		payload.DescriptionHTML = string(rendered)
	}

	msg, err := h.composer.Compose(contact.JobTarget(job), lang)
	if err != nil {
		httpx.WriteError(r.Context(), w, httpx.NewError("compose_failed", err.Error(), http.StatusInternalServerError))
		return
	}
	payload.Mailto = msg.MailtoURL

	httpx.WriteJSON(w, http.StatusOK, payload)
}

func (h *JobHandlers) jobContact(w http.ResponseWriter, r *http.Request) {
	job, ok := h.lookupJob(w, r)
	if !ok {
		return
	}
	msg, err := h.composer.Compose(contact.JobTarget(job), langOf(r))
	if err != nil {
		httpx.WriteError(r.Context(), w, httpx.NewError("compose_failed", err.Error(), http.StatusInternalServerError))
		return
	}
	payload := newContactPayload(msg)
	payload.JobID = job.TrimmedID()
	httpx.WriteJSON(w, http.StatusOK, payload)
}

// inquiry composes a message for /contact?job=<ref>. The reference is quoted as
// given and never resolved against the catalog.
func (h *JobHandlers) inquiry(w http.ResponseWriter, r *http.Request) {
	ref := strings.TrimSpace(r.URL.Query().Get("job"))
	target := contact.GenericTarget()
	if ref != "" {
		target = contact.ReferenceTarget(ref)
	}
	msg, err := h.composer.Compose(target, langOf(r))
	if err != nil {
		httpx.WriteError(r.Context(), w, httpx.NewError("compose_failed", err.Error(), http.StatusInternalServerError))
		return
	}
	payload := newContactPayload(msg)
	payload.Reference = ref
	httpx.WriteJSON(w, http.StatusOK, payload)
}

func (h *JobHandlers) labels(w http.ResponseWriter, r *http.Request) {
	lang := langOf(r)

	response := labelsResponse{
		Lang:      lang,
		Languages: domain.SupportedLangs(),
	}
	for _, t := range domain.AllJobTypes() {
		label, _ := t.Label()
		response.Types = append(response.Types, labelPayload{Value: string(t), Label: label.In(lang)})
	}
	for _, d := range domain.AllDurations() {
		label, _ := d.Label()
		response.Durations = append(response.Durations, labelPayload{Value: string(d), Label: label.In(lang)})
	}
	for _, l := range domain.AllJPLevels() {
		label, _ := l.Label()
		response.JPLevels = append(response.JPLevels, labelPayload{Value: string(l), Label: label.In(lang)})
	}
	if h.bundle != nil {
		response.Messages = h.bundle.Messages(lang)
	}

	w.Header().Set("Cache-Control", jobsCacheControl)
	httpx.WriteJSON(w, http.StatusOK, response)
}

func (h *JobHandlers) lookupJob(w http.ResponseWriter, r *http.Request) (*domain.Job, bool) {
	if h.catalog == nil {
		writeCatalogUnavailable(r.Context(), w)
		return nil, false
	}

	job, err := h.catalog.Lookup(chi.URLParam(r, "jobID"))
	if err == nil {
		return job, true
	}

	var notFound *catalog.NotFoundError
	if errors.As(err, &notFound) {
		message := "job not found"
		if h.bundle != nil {
			message = h.bundle.T(langOf(r), "job.notFound.title")
		}
		httpx.WriteError(r.Context(), w, httpx.NewError("job_not_found", message, http.StatusNotFound).
			WithDetails(map[string]any{
				"requested_id": notFound.ID,
				"known_ids":    notFound.KnownIDs,
			}))
		return nil, false
	}

	httpx.WriteError(r.Context(), w, httpx.NewError("catalog_error", err.Error(), http.StatusInternalServerError))
	return nil, false
}

// CatalogReadiness reports the loaded catalog's version and size on /readyz.
func CatalogReadiness(c CatalogReader) ReadinessCheck {
	return func(context.Context) (map[string]any, error) {
		if c == nil {
			return nil, errors.New("catalog not loaded")
		}
		return map[string]any{
			"version": c.Version(),
			"jobs":    c.Len(),
		}, nil
	}
}

func writeCatalogUnavailable(ctx context.Context, w http.ResponseWriter) {
	httpx.WriteError(ctx, w, httpx.NewError("catalog_unavailable", "catalog is unavailable", http.StatusServiceUnavailable))
}

type jobListResponse struct {
	Lang    domain.Lang   `json:"lang"`
	Count   int           `json:"count"`
	Filters filterPayload `json:"filters"`
	Jobs    []jobPayload  `json:"jobs"`
}

type filterPayload struct {
	Type     string `json:"type"`
	Duration string `json:"duration"`
	JPLevel  string `json:"jpLevel"`
}

func newFilterPayload(c search.Criteria) filterPayload {
	payload := filterPayload{Type: "All", Duration: "All", JPLevel: string(c.JPLevel)}
	if c.Type != search.TypeAll {
		payload.Type = string(c.Type)
	}
	if c.Duration != search.DurationAll {
		payload.Duration = string(c.Duration)
	}
	return payload
}

type jobPayload struct {
	ID               string          `json:"id"`
	Title            string          `json:"title"`
	Company          string          `json:"company"`
	Location         string          `json:"location"`
	Salary           *string         `json:"salary,omitempty"`
	Tags             []string        `json:"tags"`
	Type             domain.JobType  `json:"type"`
	TypeLabel        string          `json:"typeLabel"`
	Duration         domain.Duration `json:"duration"`
	DurationLabel    string          `json:"durationLabel"`
	JPLevel          domain.JPLevel  `json:"jpLevel"`
	JPLevelLabel     string          `json:"jpLevelLabel"`
	UpdatedAt        string          `json:"updatedAt"`
	UpdatedAtDisplay string          `json:"updatedAtDisplay"`
	ContactEmail     string          `json:"contactEmail"`
}

// newJobPayload renders view. contactEmail is the recipient the composer would use.
func newJobPayload(view localize.View, contactEmail string) jobPayload {
	tags, _ := view.Tags.Get()
	return jobPayload{
		ID:               view.ID,
		Title:            view.Title,
		Company:          view.Company,
		Location:         view.Location,
		Salary:           optionalString(view.Salary),
		Tags:             tags,
		Type:             view.Type,
		TypeLabel:        view.TypeLabel,
		Duration:         view.Duration,
		DurationLabel:    view.DurationLabel,
		JPLevel:          view.JPLevel,
		JPLevelLabel:     view.JPLevelLabel,
		UpdatedAt:        format.ISODate(view.Updated),
		UpdatedAtDisplay: format.FmtDate(view.Updated, view.Lang),
		ContactEmail:     contactEmail,
	}
}

type jobDetailPayload struct {
	jobPayload
	Description     *string `json:"description,omitempty"`
	DescriptionHTML string  `json:"descriptionHtml,omitempty"`
	ApplyNote       *string `json:"applyNote,omitempty"`
	Mailto          string  `json:"mailto"`
}

type contactPayload struct {
	JobID     string `json:"jobId,omitempty"`
	Reference string `json:"reference,omitempty"`
	Address   string `json:"address"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	Mailto    string `json:"mailto"`
}

func newContactPayload(msg contact.Message) contactPayload {
	return contactPayload{
		Address: msg.Address,
		Subject: msg.Subject,
		Body:    msg.Body,
		Mailto:  msg.MailtoURL,
	}
}

type labelPayload struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type labelsResponse struct {
	Lang      domain.Lang       `json:"lang"`
	Languages []domain.Lang     `json:"languages"`
	Types     []labelPayload    `json:"types"`
	Durations []labelPayload    `json:"durations"`
	JPLevels  []labelPayload    `json:"jpLevels"`
	Messages  map[string]string `json:"messages,omitempty"`
}

func optionalString(o localize.Optional[string]) *string {
	if value, ok := o.Get(); ok {
		return &value
	}
	return nil
}

func computeETag(parts ...string) string {
	hash := sha256.New()
	for _, part := range parts {
		hash.Write([]byte(part))
		hash.Write([]byte("|"))
	}
	return fmt.Sprintf("W/\"%x\"", hash.Sum(nil)[:16])
}

func matchesETag(r *http.Request, etag string) bool {
	if etag == "" || r == nil {
		return false
	}
	raw := r.Header.Get("If-None-Match")
	if strings.TrimSpace(raw) == "" {
		return false
	}
	for _, candidate := range strings.Split(raw, ",") {
		trimmed := strings.TrimSpace(candidate)
		if trimmed == "*" || trimmed == etag {
			return true
		}
	}
	return false
}
