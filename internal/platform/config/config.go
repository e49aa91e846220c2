package config

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/mail"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ironarian/ukr-jobs-japan/internal/domain"
)

const (
	defaultEnvFile            = ".env"
	defaultPort               = "8080"
	defaultBasePath           = "/api/v1"
	defaultReadTimeout        = 15 * time.Second
	defaultWriteTimeout       = 30 * time.Second
	defaultIdleTimeout        = 120 * time.Second
	defaultShutdownTimeout    = 10 * time.Second
	defaultLogLevel           = "info"
	defaultLocaleCookie       = "lang"
	defaultLocaleCookieMaxAge = 365 * 24 * time.Hour
	defaultSearchCacheEntries = 256
	defaultFirestoreJobs      = "jobs"
)

// CatalogSource selects where the job catalog is read from at start-up.
type CatalogSource string

const (
	CatalogSourceEmbedded  CatalogSource = "embedded"
	CatalogSourceFile      CatalogSource = "file"
	CatalogSourceStorage   CatalogSource = "gcs"
	CatalogSourceFirestore CatalogSource = "firestore"
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	ProjectID string
	Catalog   CatalogConfig
	Contact   ContactConfig
	Locale    LocaleConfig
	Search    SearchConfig
	Firestore FirestoreConfig
	Storage   StorageConfig
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Port            string
	BasePath        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level string
}

// CatalogConfig selects and validates the catalog source.
type CatalogConfig struct {
	Source CatalogSource
	// Path is the YAML or JSON file read when Source is "file".
	Path string
	// SkipSchema disables the JSON-schema pass over raw records.
	SkipSchema bool
}

// ContactConfig holds the inquiry fallback recipient.
type ContactConfig struct {
	DefaultEmail string
}

// LocaleConfig controls language negotiation.
type LocaleConfig struct {
	Default      domain.Lang
	CookieName   string
	CookieMaxAge time.Duration
}

// SearchConfig sizes the filter memo.
type SearchConfig struct {
	CacheEntries int
}

// FirestoreConfig stores database parameters for the firestore catalog source.
type FirestoreConfig struct {
	ProjectID       string
	EmulatorHost    string
	Collection      string
	OrderBy         string
	CredentialsJSON string
}

// StorageConfig points at the catalog object for the gcs catalog source.
type StorageConfig struct {
	Bucket          string
	Object          string
	CredentialsJSON string
}

// SecretResolver resolves references to external secrets (e.g. Secret Manager URIs).
type SecretResolver interface {
	ResolveSecret(ctx context.Context, ref string) (string, error)
}

// SecretResolverFunc adapts ordinary functions to SecretResolver.
type SecretResolverFunc func(context.Context, string) (string, error)

// ResolveSecret resolves the secret using the wrapped function.
func (f SecretResolverFunc) ResolveSecret(ctx context.Context, ref string) (string, error) {
	return f(ctx, ref)
}

// ValidationError is returned when required configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// SecretError describes failures while resolving a secret reference.
type SecretError struct {
	Field string
	Ref   string
	Err   error
}

// Error implements the error interface.
func (e *SecretError) Error() string {
	return fmt.Sprintf("secret resolution failed for %s (ref %q): %v", e.Field, e.Ref, e.Err)
}

// Unwrap exposes the underlying error.
func (e *SecretError) Unwrap() error { return e.Err }

var errSecretResolverNotConfigured = errors.New("secret resolver not configured")

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
	secret       SecretResolver
}

// WithEnvFile overrides the .env file path used for local overrides.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects an explicit key/value map for environment lookups. Values in the map
// take precedence over system environment variables.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from os.LookupEnv, relying only on provided maps and .env files.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// WithSecretResolver sets the resolver used for secret:// and sm:// references.
func WithSecretResolver(resolver SecretResolver) Option {
	return func(o *loaderOptions) {
		o.secret = resolver
	}
}

func newOptions(opts []Option) loaderOptions {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	return options
}

// Lookup reports the effective value of key using the same precedence as Load
// (.env < OS env < explicit map). main uses it to build the secret resolver before Load.
func Lookup(key string, opts ...Option) (string, bool, error) {
	options := newOptions(opts)
	lookup, err := options.lookupFunc()
	if err != nil {
		return "", false, err
	}
	value, ok := lookup(key)
	return value, ok, nil
}

func (o loaderOptions) lookupFunc() (func(string) (string, bool), error) {
	dotEnvValues, err := loadDotEnv(o.envFile)
	if err != nil {
		return nil, err
	}
	return func(key string) (string, bool) {
		if o.envMap != nil {
			if value, ok := o.envMap[key]; ok {
				return value, true
			}
		}
		if o.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if value, ok := dotEnvValues[key]; ok {
			return value, true
		}
		return "", false
	}, nil
}

// Load assembles the application configuration by combining defaults, .env overrides,
// environment variables, and optional secret manager lookups.
func Load(ctx context.Context, opts ...Option) (Config, error) {
	options := newOptions(opts)
	lookup, err := options.lookupFunc()
	if err != nil {
		return Config{}, err
	}

	projectID := stringWithDefault(lookup, "JOBBOARD_PROJECT_ID", stringWithDefault(lookup, "GOOGLE_CLOUD_PROJECT", ""))

	cfg := Config{
		Server: ServerConfig{
			Port:            stringWithDefault(lookup, "JOBBOARD_SERVER_PORT", stringWithDefault(lookup, "PORT", defaultPort)),
			BasePath:        stringWithDefault(lookup, "JOBBOARD_SERVER_BASE_PATH", defaultBasePath),
			ReadTimeout:     durationWithDefault(lookup, "JOBBOARD_SERVER_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout:    durationWithDefault(lookup, "JOBBOARD_SERVER_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:     durationWithDefault(lookup, "JOBBOARD_SERVER_IDLE_TIMEOUT", defaultIdleTimeout),
			ShutdownTimeout: durationWithDefault(lookup, "JOBBOARD_SERVER_SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		},
		Log: LogConfig{
			Level: stringWithDefault(lookup, "JOBBOARD_LOG_LEVEL", stringWithDefault(lookup, "LOG_LEVEL", defaultLogLevel)),
		},
		ProjectID: projectID,
		Catalog: CatalogConfig{
			Source:     CatalogSource(strings.ToLower(stringWithDefault(lookup, "JOBBOARD_CATALOG_SOURCE", string(CatalogSourceEmbedded)))),
			Path:       stringWithDefault(lookup, "JOBBOARD_CATALOG_PATH", ""),
			SkipSchema: boolWithDefault(lookup, "JOBBOARD_CATALOG_SKIP_SCHEMA", false),
		},
		Contact: ContactConfig{
			DefaultEmail: stringWithDefault(lookup, "JOBBOARD_CONTACT_DEFAULT_EMAIL", domain.DefaultContactEmail),
		},
		Locale: LocaleConfig{
			Default:      domain.Lang(strings.ToLower(stringWithDefault(lookup, "JOBBOARD_LOCALE_DEFAULT", string(domain.DefaultLang)))),
			CookieName:   stringWithDefault(lookup, "JOBBOARD_LOCALE_COOKIE", defaultLocaleCookie),
			CookieMaxAge: durationWithDefault(lookup, "JOBBOARD_LOCALE_COOKIE_MAX_AGE", defaultLocaleCookieMaxAge),
		},
		Search: SearchConfig{
			CacheEntries: intWithDefault(lookup, "JOBBOARD_SEARCH_CACHE_ENTRIES", defaultSearchCacheEntries),
		},
		Firestore: FirestoreConfig{
			ProjectID:       stringWithDefault(lookup, "JOBBOARD_FIRESTORE_PROJECT_ID", projectID),
			EmulatorHost:    stringWithDefault(lookup, "JOBBOARD_FIRESTORE_EMULATOR_HOST", stringWithDefault(lookup, "FIRESTORE_EMULATOR_HOST", "")),
			Collection:      stringWithDefault(lookup, "JOBBOARD_FIRESTORE_COLLECTION", defaultFirestoreJobs),
			OrderBy:         stringWithDefault(lookup, "JOBBOARD_FIRESTORE_ORDER_BY", ""),
			CredentialsJSON: stringWithDefault(lookup, "JOBBOARD_FIRESTORE_CREDENTIALS", ""),
		},
		Storage: StorageConfig{
			Bucket:          stringWithDefault(lookup, "JOBBOARD_STORAGE_BUCKET", ""),
			Object:          stringWithDefault(lookup, "JOBBOARD_STORAGE_OBJECT", "jobs.yaml"),
			CredentialsJSON: stringWithDefault(lookup, "JOBBOARD_STORAGE_CREDENTIALS", ""),
		},
	}

	secretFields := []struct {
		name  string
		field *string
	}{
		{"Firestore.CredentialsJSON", &cfg.Firestore.CredentialsJSON},
		{"Storage.CredentialsJSON", &cfg.Storage.CredentialsJSON},
	}
	for _, target := range secretFields {
		resolved, err := resolveSecret(ctx, *target.field, options.secret)
		if err != nil {
			var secretErr *SecretError
			if errors.As(err, &secretErr) {
				secretErr.Field = target.name
			}
			return Config{}, err
		}
		*target.field = resolved
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func resolveSecret(ctx context.Context, value string, resolver SecretResolver) (string, error) {
	if !isSecretReference(value) {
		return value, nil
	}
	normalized := normalizeSecretReference(value)
	if resolver == nil {
		return "", &SecretError{Ref: normalized, Err: errSecretResolverNotConfigured}
	}
	secret, err := resolver.ResolveSecret(ctx, normalized)
	if err != nil {
		return "", &SecretError{Ref: normalized, Err: err}
	}
	return secret, nil
}

// plainAddress accepts a bare addr-spec. Display names and angle brackets would
// end up verbatim in mailto links.
func plainAddress(value string) bool {
	parsed, err := mail.ParseAddress(value)
	return err == nil && parsed.Address == value
}

func validateConfig(cfg Config) error {
	var invalid []string

	if _, err := strconv.Atoi(cfg.Server.Port); err != nil {
		invalid = append(invalid, "Server.Port")
	}
	if !strings.HasPrefix(cfg.Server.BasePath, "/") {
		invalid = append(invalid, "Server.BasePath")
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		invalid = append(invalid, "Server.ShutdownTimeout")
	}
	if !plainAddress(cfg.Contact.DefaultEmail) {
		invalid = append(invalid, "Contact.DefaultEmail")
	}
	if !cfg.Locale.Default.Valid() {
		invalid = append(invalid, "Locale.Default")
	}
	if strings.TrimSpace(cfg.Locale.CookieName) == "" {
		invalid = append(invalid, "Locale.CookieName")
	}
	if cfg.Search.CacheEntries < 0 {
		invalid = append(invalid, "Search.CacheEntries")
	}

	switch cfg.Catalog.Source {
	case CatalogSourceEmbedded:
	case CatalogSourceFile:
		if strings.TrimSpace(cfg.Catalog.Path) == "" {
			invalid = append(invalid, "Catalog.Path")
		}
	case CatalogSourceStorage:
		// a gs:// catalog path names the bucket and object itself
		if strings.HasPrefix(strings.TrimSpace(cfg.Catalog.Path), "gs://") {
			break
		}
		if cfg.Storage.Bucket == "" {
			invalid = append(invalid, "Storage.Bucket")
		}
		if cfg.Storage.Object == "" {
			invalid = append(invalid, "Storage.Object")
		}
	case CatalogSourceFirestore:
		if cfg.Firestore.ProjectID == "" {
			invalid = append(invalid, "Firestore.ProjectID")
		}
		if cfg.Firestore.Collection == "" {
			invalid = append(invalid, "Firestore.Collection")
		}
	default:
		invalid = append(invalid, "Catalog.Source")
	}

	if len(invalid) > 0 {
		return &ValidationError{fields: invalid}
	}
	return nil
}

func isSecretReference(value string) bool {
	trimmed := strings.TrimSpace(value)
	return strings.HasPrefix(trimmed, "secret://") || strings.HasPrefix(trimmed, "sm://")
}

func normalizeSecretReference(value string) string {
	trimmed := strings.TrimSpace(value)
	if strings.HasPrefix(trimmed, "sm://") {
		return "secret://" + strings.TrimPrefix(trimmed, "sm://")
	}
	return trimmed
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	file, err := os.Open(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", absPath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	values := make(map[string]string)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		values[key] = strings.Trim(strings.TrimSpace(value), "\"'")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: failed parsing %s: %w", absPath, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		if d, err := time.ParseDuration(strings.TrimSpace(value)); err == nil {
			return d
		}
	}
	return fallback
}

func intWithDefault(lookup func(string) (string, bool), key string, fallback int) int {
	if value, ok := lookup(key); ok && value != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return parsed
		}
	}
	return fallback
}

func boolWithDefault(lookup func(string) (string, bool), key string, fallback bool) bool {
	if value, ok := lookup(key); ok && value != "" {
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return fallback
}
