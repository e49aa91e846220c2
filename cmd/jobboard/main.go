package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/ironarian/ukr-jobs-japan/internal/catalog"
	"github.com/ironarian/ukr-jobs-japan/internal/contact"
	"github.com/ironarian/ukr-jobs-japan/internal/handlers"
	"github.com/ironarian/ukr-jobs-japan/internal/i18n"
	"github.com/ironarian/ukr-jobs-japan/internal/platform/config"
	pfirestore "github.com/ironarian/ukr-jobs-japan/internal/platform/firestore"
	"github.com/ironarian/ukr-jobs-japan/internal/platform/markdown"
	"github.com/ironarian/ukr-jobs-japan/internal/platform/observability"
	"github.com/ironarian/ukr-jobs-japan/internal/platform/secrets"
	platformstorage "github.com/ironarian/ukr-jobs-japan/internal/platform/storage"
	"github.com/ironarian/ukr-jobs-japan/internal/search"
)

const (
	meterName          = "github.com/ironarian/ukr-jobs-japan"
	catalogLoadTimeout = 30 * time.Second
)

func main() {
	ctx := context.Background()

	baseLogger, err := observability.NewLogger(lookupFirst("JOBBOARD_LOG_LEVEL", "LOG_LEVEL"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = baseLogger.Sync()
	}()

	logger := baseLogger.Named("jobboard")

	resolverOpts := []secrets.Option{
		secrets.WithLogger(logger.Named("secrets")),
		secrets.WithProject(lookupFirst("JOBBOARD_PROJECT_ID", "GOOGLE_CLOUD_PROJECT")),
	}
	if path := lookupFirst("JOBBOARD_SECRETS_FALLBACK_FILE"); path != "" {
		resolverOpts = append(resolverOpts, secrets.WithFallbackFile(path))
	}
	resolver := secrets.NewResolver(ctx, resolverOpts...)
	defer func() {
		if err := resolver.Close(); err != nil {
			logger.Warn("secret resolver close error", zap.Error(err))
		}
	}()

	cfg, err := config.Load(ctx, config.WithSecretResolver(resolver))
	if err != nil {
		var invalid *config.ValidationError
		if errors.As(err, &invalid) {
			logger.Fatal("invalid configuration", zap.Strings("fields", invalid.Fields()))
		}
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	store, err := loadCatalog(ctx, cfg, logger.Named("catalog"))
	if err != nil {
		logger.Fatal("failed to load catalog", zap.Error(err))
	}

	bundle, err := i18n.Default()
	if err != nil {
		logger.Fatal("failed to load ui messages", zap.Error(err))
	}

	meter := otel.GetMeterProvider().Meter(meterName)
	jobOpts := []handlers.JobOption{
		handlers.WithJobCatalog(store),
		handlers.WithJobComposer(contact.NewComposer(contact.WithDefaultAddress(cfg.Contact.DefaultEmail))),
		handlers.WithJobRenderer(markdown.NewRenderer()),
		handlers.WithJobBundle(bundle),
		handlers.WithJobLocale(handlers.LocaleSettings{
			Default:      cfg.Locale.Default,
			CookieName:   cfg.Locale.CookieName,
			CookieMaxAge: cfg.Locale.CookieMaxAge,
		}),
	}
	if cfg.Search.CacheEntries > 0 {
		jobOpts = append(jobOpts, handlers.WithJobSearcher(search.NewCache(
			search.WithMaxEntries(cfg.Search.CacheEntries),
			search.WithMeter(meter),
		)))
	}
	jobHandlers := handlers.NewJobHandlers(jobOpts...)

	router := handlers.NewRouter(
		handlers.WithBasePath(cfg.Server.BasePath),
		handlers.WithMiddlewares(
			observability.RequestIDMiddleware,
			observability.TraceMiddleware(cfg.ProjectID),
			observability.InjectLoggerMiddleware(logger.Named("http")),
			observability.RequestLoggerMiddleware(),
			observability.RecoveryMiddleware(logger),
		),
		handlers.WithHealthHandlers(handlers.NewHealthHandlers(
			handlers.WithReadinessCheck("catalog", handlers.CatalogReadiness(store)),
		)),
		handlers.WithRoutes(jobHandlers.Routes),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	serverLogger := logger.Named("http").With(zap.String("addr", server.Addr))
	go func() {
		serverLogger.Info("jobboard listening",
			zap.String("base_path", cfg.Server.BasePath),
			zap.String("catalog_version", store.Version()),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverLogger.Fatal("http server error", zap.Error(err))
		}
	}()

	<-shutdown
	logger.Info("shutdown signal received; draining requests")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// loadCatalog reads the configured source once. Source clients are closed as
// soon as the catalog is in memory.
func loadCatalog(ctx context.Context, cfg config.Config, logger *zap.Logger) (*catalog.Store, error) {
	source, closeSource, err := newCatalogSource(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := closeSource(); err != nil {
			logger.Warn("catalog source close error", zap.Error(err))
		}
	}()

	opts := []catalog.LoadOption{catalog.WithLogger(logger)}
	if cfg.Catalog.SkipSchema {
		opts = append(opts, catalog.WithoutSchema())
	}

	loadCtx, cancel := context.WithTimeout(ctx, catalogLoadTimeout)
	defer cancel()
	return catalog.Load(loadCtx, source, opts...)
}

func newCatalogSource(ctx context.Context, cfg config.Config) (catalog.Source, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Catalog.Source {
	case config.CatalogSourceFile:
		return catalog.FileSource{Path: cfg.Catalog.Path}, noop, nil
	case config.CatalogSourceStorage:
		bucket, object := cfg.Storage.Bucket, cfg.Storage.Object
		if path := strings.TrimSpace(cfg.Catalog.Path); strings.HasPrefix(path, "gs://") {
			b, o, err := platformstorage.ParseURI(path)
			if err != nil {
				return nil, nil, err
			}
			bucket, object = b, o
		}
		reader, err := platformstorage.NewReader(ctx, cfg.Storage)
		if err != nil {
			return nil, nil, err
		}
		return catalog.StorageSource{Reader: reader, Bucket: bucket, Object: object}, reader.Close, nil
	case config.CatalogSourceFirestore:
		provider := pfirestore.NewProvider(cfg.Firestore)
		source := catalog.FirestoreSource{
			Provider:   provider,
			Collection: cfg.Firestore.Collection,
			OrderBy:    cfg.Firestore.OrderBy,
		}
		return source, provider.Close, nil
	default:
		return catalog.EmbeddedSource{}, noop, nil
	}
}

// lookupFirst returns the first non-empty value among keys, read before the
// full configuration is loaded.
func lookupFirst(keys ...string) string {
	for _, key := range keys {
		value, ok, err := config.Lookup(key)
		if err != nil || !ok {
			continue
		}
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
