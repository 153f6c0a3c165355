package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"cloud.google.com/go/pubsub"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/storeforge/api/internal/catalog"
	"github.com/storeforge/api/internal/domain"
	"github.com/storeforge/api/internal/handlers"
	"github.com/storeforge/api/internal/platform/config"
	"github.com/storeforge/api/internal/platform/events"
	pfirestore "github.com/storeforge/api/internal/platform/firestore"
	"github.com/storeforge/api/internal/platform/observability"
	"github.com/storeforge/api/internal/render"
	firestoreRepo "github.com/storeforge/api/internal/repositories/firestore"
	"github.com/storeforge/api/internal/repositories/memory"
	"github.com/storeforge/api/internal/services"
)

func main() {
	ctx := context.Background()
	startedAt := time.Now().UTC()

	baseLogger, err := observability.NewLogger()
	if err != nil {
		os.Stderr.WriteString("failed to initialise logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		_ = baseLogger.Sync()
	}()

	logger := baseLogger.Named("api")
	ctx = observability.WithLogger(ctx, logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	firestoreProvider := pfirestore.NewProvider(cfg.Firestore)
	firestoreClient, err := firestoreProvider.Client(ctx)
	if err != nil {
		logger.Fatal("failed to initialise firestore client", zap.Error(err))
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := firestoreProvider.Close(closeCtx); err != nil {
			logger.Warn("firestore close error", zap.Error(err))
		}
	}()

	storeRepo, err := firestoreRepo.NewStoreRepository(firestoreProvider)
	if err != nil {
		logger.Fatal("failed to initialise store repository", zap.Error(err))
	}
	blobRepo := memory.NewMediaBlobRepository()

	var publisher services.EventPublisher
	if cfg.Features.EnableEventPublishing {
		pubsubClient, topic, err := newEventTopic(ctx, cfg.PubSub)
		if err != nil {
			logger.Fatal("failed to initialise pubsub topic", zap.Error(err))
		}
		defer func() {
			topic.Stop()
			if err := pubsubClient.Close(); err != nil {
				logger.Warn("pubsub close error", zap.Error(err))
			}
		}()
		publisher, err = events.NewPubSubPublisher(topic)
		if err != nil {
			logger.Fatal("failed to initialise event publisher", zap.Error(err))
		}
	} else {
		logger.Info("event publishing disabled by feature flag")
	}

	registry := catalog.NewRegistry()
	templates := catalog.NewTemplates(catalog.TemplatesDeps{})

	storeService, err := services.NewStoreService(services.StoreServiceDeps{
		Stores:    storeRepo,
		Templates: templates,
		Events:    publisher,
		Logger:    eventLogger(logger.Named("stores")),
	})
	if err != nil {
		logger.Fatal("failed to initialise store service", zap.Error(err))
	}

	saveQueue, err := services.NewSaveQueue(services.SaveQueueDeps{
		Save: func(ctx context.Context, storeID string, sections []domain.SectionInstance) error {
			_, err := storeService.ReplaceSections(ctx, storeID, sections)
			return err
		},
		Logger: eventLogger(logger.Named("saves")),
	})
	if err != nil {
		logger.Fatal("failed to initialise save queue", zap.Error(err))
	}

	builderService, err := services.NewBuilderService(services.BuilderServiceDeps{
		Stores:    storeService,
		Registry:  registry,
		Templates: templates,
		Queue:     saveQueue,
		Logger:    eventLogger(logger.Named("builder")),
	})
	if err != nil {
		logger.Fatal("failed to initialise builder service", zap.Error(err))
	}

	mediaService, err := services.NewMediaService(services.MediaServiceDeps{
		Blobs:  blobRepo,
		Logger: eventLogger(logger.Named("media")),
	})
	if err != nil {
		logger.Fatal("failed to initialise media service", zap.Error(err))
	}

	renderer, err := render.NewRenderer(render.RendererDeps{
		Logger: eventLogger(logger.Named("render")),
	})
	if err != nil {
		logger.Fatal("failed to initialise renderer", zap.Error(err))
	}

	catalogHandlers, err := handlers.NewCatalogHandlers(registry, templates)
	if err != nil {
		logger.Fatal("failed to initialise catalog handlers", zap.Error(err))
	}
	storeHandlers, err := handlers.NewStoreHandlers(handlers.StoreHandlersDeps{
		Stores:          storeService,
		Templates:       templates,
		Renderer:        renderer,
		DefaultPageSize: cfg.Listing.DefaultPageSize,
		MaxPageSize:     cfg.Listing.MaxPageSize,
	})
	if err != nil {
		logger.Fatal("failed to initialise store handlers", zap.Error(err))
	}
	builderHandlers, err := handlers.NewBuilderHandlers(builderService, renderer)
	if err != nil {
		logger.Fatal("failed to initialise builder handlers", zap.Error(err))
	}
	mediaHandlers, err := handlers.NewMediaHandlers(mediaService)
	if err != nil {
		logger.Fatal("failed to initialise media handlers", zap.Error(err))
	}

	healthHandlers := handlers.NewHealthHandlers(
		handlers.WithHealthBuildInfo(buildInfoFromEnv(startedAt)),
		handlers.WithHealthCheck("firestore", func(ctx context.Context) error {
			probeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			defer cancel()
			_, err := firestoreClient.Collection("stores").Limit(1).Documents(probeCtx).GetAll()
			return err
		}),
	)

	middlewares := []func(http.Handler) http.Handler{
		observability.InjectLoggerMiddleware(logger.Named("http")),
		observability.TraceMiddleware(cfg.Firestore.ProjectID),
		observability.RecoveryMiddleware(logger.Named("http")),
		observability.RequestLoggerMiddleware(),
	}

	opts := []handlers.Option{
		handlers.WithMiddlewares(middlewares...),
		handlers.WithHealthHandlers(healthHandlers),
		handlers.WithCatalogRoutes(catalogHandlers.Routes),
		handlers.WithStoreRoutes(storeHandlers.Routes),
		handlers.WithBuilderRoutes(builderHandlers.Routes),
		handlers.WithMediaRoutes(mediaHandlers.Routes),
	}
	if cfg.Features.EnablePublicStorefront {
		publicHandlers, err := handlers.NewPublicHandlers(storeService, templates, renderer)
		if err != nil {
			logger.Fatal("failed to initialise public handlers", zap.Error(err))
		}
		opts = append(opts, handlers.WithPublicRoutes(publicHandlers.Routes))
	} else {
		logger.Info("public storefront disabled by feature flag")
	}

	router := handlers.NewRouter(opts...)
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
		serverLogger.Info("storeforge api listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverLogger.Fatal("http server error", zap.Error(err))
		}
	}()

	<-shutdown
	logger.Info("shutdown signal received; draining requests")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// newEventTopic dials Pub/Sub and resolves the store event topic. The
// emulator endpoint, when configured, replaces production credentials.
func newEventTopic(ctx context.Context, cfg config.PubSubConfig) (*pubsub.Client, *pubsub.Topic, error) {
	var opts []option.ClientOption
	if host := strings.TrimSpace(cfg.EmulatorHost); host != "" {
		conn, err := grpc.NewClient(host, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, option.WithGRPCConn(conn), option.WithoutAuthentication())
	}
	client, err := pubsub.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, nil, err
	}
	return client, client.Topic(cfg.TopicID), nil
}

// eventLogger adapts a zap logger to the event/fields callback the services use.
func eventLogger(logger *zap.Logger) func(ctx context.Context, event string, fields map[string]any) {
	return func(_ context.Context, event string, fields map[string]any) {
		zFields := make([]zap.Field, 0, len(fields)+1)
		zFields = append(zFields, zap.String("event", event))
		for k, v := range fields {
			zFields = append(zFields, zap.Any(k, v))
		}
		logger.Debug("service log", zFields...)
	}
}

func buildInfoFromEnv(started time.Time) handlers.BuildInfo {
	version := strings.TrimSpace(os.Getenv("API_BUILD_VERSION"))
	if version == "" {
		version = "dev"
	}
	commit := strings.TrimSpace(os.Getenv("API_BUILD_COMMIT_SHA"))
	if commit == "" {
		commit = "unknown"
	}
	environment := strings.TrimSpace(os.Getenv("API_ENVIRONMENT"))
	if environment == "" {
		environment = "local"
	}
	return handlers.BuildInfo{
		Version:     version,
		CommitSHA:   commit,
		Environment: environment,
		StartedAt:   started,
	}
}
